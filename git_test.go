package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeRepositoryOutsideRepo(t *testing.T) {
	dir := t.TempDir()

	// The temp dir may itself live inside a checkout; only assert when it does not.
	if _, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true}); err == nil {
		t.Skip("temp dir is inside a git repository")
	}

	desc, ok, err := describeRepository(dir)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, desc)
}

func TestDescribeRepositoryWithoutCommits(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	desc, ok, err := describeRepository(dir)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "(no commits)", desc)
}

func TestDescribeRepositoryFromSubfolder(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	sub := filepath.Join(dir, "proj")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "a.js"), []byte("x=1"), 0o644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("proj/a.js")
	require.NoError(t, err)
	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	head, err := repo.Head()
	require.NoError(t, err)

	desc, ok, err := describeRepository(sub)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, head.Name().Short()+"@"+hash.String()[:7], desc)
}
