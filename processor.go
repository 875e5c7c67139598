package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	gitignore "github.com/monochromegane/go-gitignore"
)

// Aggregator walks a folder under Root and writes every matching file to a sink.
type Aggregator struct {
	Root     string // Absolute root directory
	FS       fs.FS  // Filesystem rooted at Root
	Suffixes SuffixSet

	// Exclude lists root-relative slash paths that are never emitted,
	// typically the summary file itself.
	Exclude []string

	// Gitignore enables the target's top-level .gitignore.
	Gitignore bool

	Tokenizer Tokenizer // Optional
	Log       Logger    // Optional
}

// NewAggregator returns an Aggregator reading from the real filesystem under root.
func NewAggregator(root string, suffixes SuffixSet) (*Aggregator, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("error resolving root %s: %w", root, err)
	}
	return &Aggregator{
		Root:     abs,
		FS:       os.DirFS(abs),
		Suffixes: suffixes,
	}, nil
}

func (a *Aggregator) logger() Logger {
	if a.Log == nil {
		return nopLogger{}
	}
	return a.Log
}

// Validate resolves the requested folder under the root.
func (a *Aggregator) Validate(requested string) (Target, error) {
	name := strings.TrimSpace(requested)
	dir := filepath.Join(a.Root, name)

	rel := path.Clean(filepath.ToSlash(name))
	if rel == "" {
		rel = "."
	}
	if filepath.IsAbs(name) || !fs.ValidPath(rel) {
		return Target{}, &ValidationError{Name: name, Path: dir, Err: ErrOutsideRoot}
	}

	info, err := fs.Stat(a.FS, rel)
	if err != nil {
		return Target{}, &ValidationError{Name: name, Path: dir, Err: fmt.Errorf("%w: %v", ErrNotFound, err)}
	}
	if !info.IsDir() {
		return Target{}, &ValidationError{Name: name, Path: dir, Err: ErrNotADirectory}
	}
	return Target{Name: name, Rel: rel, Dir: filepath.Join(a.Root, filepath.FromSlash(rel))}, nil
}

// Walk yields the matching files under target in traversal order: a
// directory's files by name, then its subdirectories by name, recursively.
// Every range over the result walks the tree again from the start.
func (a *Aggregator) Walk(target Target) iter.Seq[FileRecord] {
	return func(yield func(FileRecord) bool) {
		w := walker{a: a, target: target, exclude: make(map[string]bool, len(a.Exclude))}
		for _, p := range a.Exclude {
			w.exclude[p] = true
		}
		if a.Gitignore {
			w.ignore = a.loadGitignore(target)
		}
		w.dir(target.Rel, yield)
	}
}

type walker struct {
	a       *Aggregator
	target  Target
	exclude map[string]bool
	ignore  gitignore.IgnoreMatcher
}

// dir returns false once the consumer has stopped.
func (w *walker) dir(dir string, yield func(FileRecord) bool) bool {
	entries, err := fs.ReadDir(w.a.FS, dir)
	if err != nil {
		// Entries read before the error are still visited.
		w.a.logger().Warn("could not list %s: %v", dir, err)
	}

	var subdirs []string
	for _, entry := range entries {
		name := path.Join(dir, entry.Name())
		if w.skip(name, entry.IsDir()) {
			continue
		}
		if entry.IsDir() {
			subdirs = append(subdirs, name)
			continue
		}
		if !w.a.Suffixes.Match(entry.Name()) {
			continue
		}
		if entry.Type()&fs.ModeSymlink != 0 && w.linksToDir(name) {
			// Linked directories are neither read nor followed.
			continue
		}
		if !yield(w.a.read(name)) {
			return false
		}
	}

	for _, sub := range subdirs {
		if !w.dir(sub, yield) {
			return false
		}
	}
	return true
}

// linksToDir reports whether the symlink at name resolves to a directory.
// Broken links resolve to nothing and are read like files.
func (w *walker) linksToDir(name string) bool {
	info, err := fs.Stat(w.a.FS, name)
	return err == nil && info.IsDir()
}

func (w *walker) skip(name string, isDir bool) bool {
	if w.exclude[name] {
		return true
	}
	if w.ignore == nil {
		return false
	}
	return w.ignore.Match(w.targetRel(name), isDir)
}

// targetRel makes a root-relative path relative to the target folder.
func (w *walker) targetRel(name string) string {
	if w.target.Rel == "." {
		return name
	}
	return strings.TrimPrefix(name, w.target.Rel+"/")
}

// loadGitignore reads the target's top-level .gitignore, if any. Patterns
// are matched against paths relative to the target.
func (a *Aggregator) loadGitignore(target Target) gitignore.IgnoreMatcher {
	data, err := fs.ReadFile(a.FS, path.Join(target.Rel, ".gitignore"))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			a.logger().Warn("could not read .gitignore in %s: %v", target.Dir, err)
		}
		return nil
	}
	return gitignore.NewGitIgnoreFromReader(".", bytes.NewReader(data))
}

// read loads one matched file. Failures are recorded on the record.
func (a *Aggregator) read(name string) FileRecord {
	rec := FileRecord{Path: name}
	data, err := fs.ReadFile(a.FS, name)
	switch {
	case err != nil:
		rec.Err = &ReadError{Path: name, Err: err}
	case !utf8.Valid(data):
		rec.Err = &ReadError{Path: name, Err: ErrBadEncoding}
	default:
		rec.Content = string(data)
	}
	return rec
}

// Header builds the document header for target.
func (a *Aggregator) Header(target Target) Header {
	return Header{
		Title:     a.Suffixes.Title(),
		Requested: target.Name,
		Root:      a.Root,
		Target:    target.Dir,
		Suffixes:  a.Suffixes,
	}
}

// Run validates requested, then writes the header and one block per
// matching file to sink, in traversal order. Nothing is written when
// validation fails.
func (a *Aggregator) Run(requested string, sink RecordSink) (Summary, error) {
	target, err := a.Validate(requested)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Target: target}
	if err := sink.WriteHeader(a.Header(target)); err != nil {
		return summary, fmt.Errorf("error writing summary header: %w", err)
	}

	log := a.logger()
	for rec := range a.Walk(target) {
		log.Progress("Summarizing: %s", rec.Path)
		if rec.Err != nil {
			log.Warn("%s: %v", rec.Path, errors.Unwrap(rec.Err))
		}
		if err := sink.WriteRecord(rec); err != nil {
			return summary, fmt.Errorf("error writing %s to summary: %w", rec.Path, err)
		}
		summary.Files++
		if a.Tokenizer != nil && rec.Err == nil {
			summary.Tokens += a.Tokenizer.CountTokens(rec.Content)
		}
	}
	return summary, nil
}
