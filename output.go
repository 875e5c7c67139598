package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const traversalOrder = "Directory Tree (Parent → Child, sorted by filename)"

var (
	blockRule = strings.Repeat("=", 100)
	fileRule  = strings.Repeat("-", 80)
)

// RecordSink receives the header once, then every record in traversal order.
type RecordSink interface {
	WriteHeader(h Header) error
	WriteRecord(rec FileRecord) error
}

// TextSink writes the plain-text summary document.
type TextSink struct {
	w io.Writer
}

func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

func (s *TextSink) WriteHeader(h Header) error {
	var b strings.Builder
	fmt.Fprintf(&b, "===== %s - %s =====\n", h.Title, h.Requested)
	fmt.Fprintf(&b, "Root Directory: %s\n", h.Root)
	fmt.Fprintf(&b, "Target Folder: %s\n", h.Target)
	fmt.Fprintf(&b, "Target File Types: %s\n", h.Suffixes)
	fmt.Fprintf(&b, "Traversal Order: %s\n", traversalOrder)
	b.WriteString(blockRule)
	b.WriteString("\n\n")
	_, err := io.WriteString(s.w, b.String())
	return err
}

// WriteRecord appends one block with a single write.
func (s *TextSink) WriteRecord(rec FileRecord) error {
	var b strings.Builder
	fmt.Fprintf(&b, "[FILE] %s\n", rec.Path)
	b.WriteString(fileRule)
	b.WriteString("\nContent:\n")
	b.WriteString(rec.Text())
	b.WriteString("\n")
	b.WriteString(blockRule)
	b.WriteString("\n\n")
	_, err := io.WriteString(s.w, b.String())
	return err
}

// MultiSink duplicates every call to each sink, stopping at the first error.
func MultiSink(sinks ...RecordSink) RecordSink {
	return multiSink(sinks)
}

type multiSink []RecordSink

func (m multiSink) WriteHeader(h Header) error {
	for _, s := range m {
		if err := s.WriteHeader(h); err != nil {
			return err
		}
	}
	return nil
}

func (m multiSink) WriteRecord(rec FileRecord) error {
	for _, s := range m {
		if err := s.WriteRecord(rec); err != nil {
			return err
		}
	}
	return nil
}

// outputPath is where the summary of the named folder is saved.
func outputPath(root, name string) string {
	return filepath.Join(root, name+"_summary.txt")
}

// fileSink creates its file on the first write, so a run that fails
// validation leaves nothing behind.
type fileSink struct {
	path string
	f    *os.File
	buf  *bufio.Writer
}

func newFileSink(path string) *fileSink {
	return &fileSink{path: path}
}

func (s *fileSink) Write(p []byte) (int, error) {
	if s.f == nil {
		f, err := os.Create(s.path)
		if err != nil {
			return 0, fmt.Errorf("failed to create summary file: %w", err)
		}
		s.f = f
		s.buf = bufio.NewWriter(f)
	}
	return s.buf.Write(p)
}

// Created reports whether the file has been opened.
func (s *fileSink) Created() bool {
	return s.f != nil
}

// Close flushes and closes the file if it was ever created.
func (s *fileSink) Close() error {
	if s.f == nil {
		return nil
	}
	flushErr := s.buf.Flush()
	closeErr := s.f.Close()
	if flushErr != nil {
		return fmt.Errorf("failed to write summary file %s: %w", s.path, flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close summary file %s: %w", s.path, closeErr)
	}
	return nil
}
