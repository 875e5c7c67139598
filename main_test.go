package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// writeTree creates files (slash paths relative to root) with their contents.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func newTestConsole() (*Console, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewConsole(&out, &errOut), &out, &errOut
}

func TestCollectWritesSummaryFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"proj/a.js":      "x=1",
		"proj/sub/b.js":  "y=2",
		"proj/readme.md": "# readme",
	})
	console, out, _ := newTestConsole()

	err := collect(Options{Root: root}, []string{"proj"}, nil, console)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "proj_summary.txt"))
	require.NoError(t, err)
	doc := string(data)
	assert.True(t, strings.HasPrefix(doc, "===== JS Files Summary - proj =====\n"))
	assert.Contains(t, doc, "Target Folder: "+filepath.Join(root, "proj")+"\n")
	assert.Equal(t, 2, strings.Count(doc, "[FILE] "))
	assert.Less(t, strings.Index(doc, "[FILE] proj/a.js"), strings.Index(doc, "[FILE] proj/sub/b.js"))
	assert.NotContains(t, doc, "readme.md")

	assert.Contains(t, out.String(), "Summarizing: proj/a.js\n")
	assert.Contains(t, out.String(), "Summarizing: proj/sub/b.js\n")
	assert.Contains(t, out.String(), "Total .js files summarized: 2\n")
	assert.Contains(t, out.String(), "Summary file saved to: "+filepath.Join(root, "proj_summary.txt"))
	assert.NotContains(t, out.String(), "Note: No")
}

func TestCollectPromptsForFolder(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"src/main.py": "print(1)"})
	console, out, _ := newTestConsole()

	err := collect(Options{Root: root, Langs: []string{"Python"}}, nil, strings.NewReader("  src \n"), console)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Please enter the FOLDER NAME")
	assert.FileExists(t, filepath.Join(root, "src_summary.txt"))
}

func TestCollectValidationFailureLeavesNoFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"notes.txt": "n"})

	tests := []struct {
		name string
		want error
	}{
		{"missing", ErrNotFound},
		{"notes.txt", ErrNotADirectory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			console, _, _ := newTestConsole()
			err := collect(Options{Root: root}, []string{tt.name}, nil, console)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.NoFileExists(t, filepath.Join(root, tt.name+"_summary.txt"))
		})
	}
}

func TestCollectReportsEmptyFolder(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"docs/readme.md": "r"})
	console, out, _ := newTestConsole()

	require.NoError(t, collect(Options{Root: root}, []string{"docs"}, nil, console))
	assert.Contains(t, out.String(), "Total .js files summarized: 0\n")
	assert.Contains(t, out.String(), "Note: No .js files found in 'docs'.")
	assert.FileExists(t, filepath.Join(root, "docs_summary.txt"))
}

func TestCollectNeverIncludesItsOwnOutput(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"notes.txt":     "n",
		"._summary.txt": "stale",
	})
	console, _, _ := newTestConsole()

	require.NoError(t, collect(Options{Root: root, Exts: []string{".txt"}}, []string{"."}, nil, console))

	data, err := os.ReadFile(filepath.Join(root, "._summary.txt"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "[FILE] "))
	assert.Contains(t, string(data), "[FILE] notes.txt\n")
}

func TestCollectWarnsAboutUnreadableFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"proj/a.js":   "a",
		"proj/bin.js": string([]byte{0xff, 0xfe}),
	})
	console, out, errOut := newTestConsole()

	require.NoError(t, collect(Options{Root: root}, []string{"proj"}, nil, console))
	assert.Contains(t, out.String(), "Total .js files summarized: 2\n")
	assert.Contains(t, errOut.String(), "Warning: proj/bin.js")
}

func TestCollectWritesPDF(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"proj/a.js": "const a = 1;\n"})
	pdfPath := filepath.Join(t.TempDir(), "proj.pdf")
	console, out, _ := newTestConsole()

	require.NoError(t, collect(Options{Root: root, PDF: pdfPath}, []string{"proj"}, nil, console))
	assert.FileExists(t, pdfPath)
	assert.Contains(t, out.String(), "PDF saved to: "+pdfPath)
}

func TestRootCommandRejectsBadInvocation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown flag", args: []string{"--bogus"}},
		{name: "too many folders", args: []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetErr(&out)
			rootCmd.SetArgs(tt.args)
			t.Cleanup(func() {
				rootCmd.SetOut(nil)
				rootCmd.SetErr(nil)
				rootCmd.SetArgs(nil)
			})

			// main exits with status 1 whenever Execute fails.
			assert.Error(t, rootCmd.Execute())
			assert.Contains(t, out.String(), "Error:")
		})
	}
}
