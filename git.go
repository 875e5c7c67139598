package main

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// describeRepository reports the branch and commit of the git repository
// containing dir, e.g. "main@1a2b3c4". ok is false when dir is not inside a
// repository.
func describeRepository(dir string) (desc string, ok bool, err error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to open repository at %s: %w", dir, err)
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			// Freshly initialized repository without commits.
			return "(no commits)", true, nil
		}
		return "", true, fmt.Errorf("failed to resolve HEAD in %s: %w", dir, err)
	}

	hash := head.Hash().String()
	if len(hash) > 7 {
		hash = hash[:7]
	}
	if head.Name().IsBranch() {
		return fmt.Sprintf("%s@%s", head.Name().Short(), hash), true, nil
	}
	return fmt.Sprintf("detached@%s", hash), true, nil
}
