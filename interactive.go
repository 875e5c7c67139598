package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
)

// errAborted is returned when the user leaves the picker without choosing.
var errAborted = errors.New("selection aborted")

// promptFolder asks for the folder name on in and returns it trimmed.
func promptFolder(in io.Reader, out io.Writer, root string, suffixes SuffixSet) (string, error) {
	fmt.Fprintf(out, "===== %s Tool =====\n", suffixes.Title())
	fmt.Fprintf(out, "Root Directory: %s\n", root)
	fmt.Fprintf(out, "Target File Types: %s\n", suffixes)
	fmt.Fprintln(out, "Please enter the FOLDER NAME (in root directory) to summarize:")
	fmt.Fprint(out, "> ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("error reading folder name: %w", err)
	}
	if err != nil && line == "" {
		return "", fmt.Errorf("no folder name entered")
	}
	return strings.TrimSpace(line), nil
}

// folderCandidates lists every directory under root, relative to it.
// Hidden directories are not descended into.
func folderCandidates(root string) ([]string, error) {
	var candidates []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Continue walking
		}
		if path == root || !d.IsDir() {
			return nil
		}
		if isHidden(d.Name()) {
			return fs.SkipDir
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		candidates = append(candidates, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning for directories: %w", err)
	}
	return candidates, nil
}

// pickFolder lets the user choose a folder under root with a fuzzy finder.
func pickFolder(root string) (string, error) {
	candidates, err := folderCandidates(root)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no folders found in %s", root)
	}

	idx, err := fuzzyfinder.Find(
		candidates,
		func(i int) string {
			return candidates[i]
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Select the folder to summarize. Enter to confirm, Esc to abort."
			}
			entries, readErr := os.ReadDir(filepath.Join(root, filepath.FromSlash(candidates[i])))
			if readErr != nil {
				return fmt.Sprintf("Folder: %s\nError listing: %v", candidates[i], readErr)
			}
			var b strings.Builder
			fmt.Fprintf(&b, "Folder: %s\n\n", candidates[i])
			for _, e := range entries {
				if e.IsDir() {
					fmt.Fprintf(&b, "%s/\n", e.Name())
				} else {
					fmt.Fprintln(&b, e.Name())
				}
			}
			return b.String()
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", errAborted
		}
		return "", fmt.Errorf("fuzzy finder error: %w", err)
	}
	return candidates[idx], nil
}

// isHidden checks if a name is hidden (starts with '.').
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return len(name) > 0 && name[0] == '.'
}
