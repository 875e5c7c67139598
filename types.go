package main

import (
	"errors"
	"fmt"
	"io/fs"
)

// Validation failures. Match them with errors.Is against a *ValidationError.
var (
	ErrNotFound      = errors.New("does not exist in root directory")
	ErrNotADirectory = errors.New("is not a folder")
	ErrOutsideRoot   = errors.New("resolves outside the root directory")
)

// ErrBadEncoding marks a matched file whose bytes are not valid UTF-8.
var ErrBadEncoding = errors.New("file is not UTF-8 encoded")

// ValidationError reports why a requested folder cannot be summarized.
type ValidationError struct {
	Name string // Folder name as requested (trimmed)
	Path string // Path it resolved to
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("folder '%s' (%s) %v", e.Name, e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ReadError is recorded in place of content when a matched file cannot be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	var pathErr *fs.PathError
	if errors.As(e.Err, &pathErr) {
		return e.Err.Error()
	}
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Target is a validated folder, ready to walk.
type Target struct {
	Name string // Trimmed folder name as requested
	Rel  string // Slash-separated path relative to the root ("." for the root itself)
	Dir  string // Absolute directory on disk
}

// FileRecord is one matched file in traversal order.
type FileRecord struct {
	Path    string // Root-relative, always '/'-separated
	Content string // Full text when Err is nil
	Err     error  // *ReadError when the content could not be read
}

// Text returns the content, or the inline marker written in its place.
func (r FileRecord) Text() string {
	if r.Err == nil {
		return r.Content
	}
	if errors.Is(r.Err, ErrBadEncoding) {
		return "[Read Error] File is not UTF-8 encoded, cannot read content.\n"
	}
	var re *ReadError
	if errors.As(r.Err, &re) {
		return fmt.Sprintf("[Read Error] Failed to read file: %v\n", re.Err)
	}
	return fmt.Sprintf("[Read Error] Failed to read file: %v\n", r.Err)
}

// Header describes the document being produced.
type Header struct {
	Title     string
	Requested string
	Root      string
	Target    string
	Suffixes  SuffixSet
}

// Summary holds the result of one run.
type Summary struct {
	Files  int // Records written, including unreadable ones
	Tokens int // Only populated when a tokenizer is configured
	Target Target
}
