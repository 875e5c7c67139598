package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptionsDefaults(t *testing.T) {
	opts, err := loadOptions(newConfig())
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, opts.Root)
	assert.Empty(t, opts.Exts)
	assert.Equal(t, "tiktoken", opts.Tokenizer.Type)
	assert.False(t, opts.Gitignore)
}

func TestLoadOptionsFromEnvironment(t *testing.T) {
	root := t.TempDir()
	t.Setenv("COLLECT_ROOT", root)
	t.Setenv("COLLECT_EXT", ".py,.js")
	t.Setenv("COLLECT_GITIGNORE", "true")
	t.Setenv("COLLECT_TOKENIZER_FILE", "/tmp/tokenizer.json")

	opts, err := loadOptions(newConfig())
	require.NoError(t, err)
	assert.Equal(t, root, opts.Root)
	assert.True(t, opts.Gitignore)
	assert.Equal(t, "/tmp/tokenizer.json", opts.Tokenizer.File)

	set, err := resolveSuffixes(opts.Exts, opts.Langs)
	require.NoError(t, err)
	assert.Equal(t, SuffixSet{".py", ".js"}, set)
}

func TestLoadOptionsExplicitValues(t *testing.T) {
	root := t.TempDir()
	v := newConfig()
	v.Set("root", root)
	v.Set("ext", []string{".go"})
	v.Set("lang", []string{"Python"})
	v.Set("pdf", filepath.Join(root, "out.pdf"))

	opts, err := loadOptions(v)
	require.NoError(t, err)
	assert.Equal(t, []string{".go"}, opts.Exts)
	assert.Equal(t, []string{"Python"}, opts.Langs)
	assert.Equal(t, filepath.Join(root, "out.pdf"), opts.PDF)
}

func TestLoadOptionsRejectsBadRoot(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("x"), 0o644))

	v := newConfig()
	v.Set("root", filePath)
	_, err := loadOptions(v)
	assert.Error(t, err)

	v.Set("root", filepath.Join(dir, "missing"))
	_, err = loadOptions(v)
	assert.Error(t, err)
}
