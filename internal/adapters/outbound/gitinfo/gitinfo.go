package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// Revision implements domain.RevisionInfo using go-git. It resolves the
// commit of the repository that holds the check registry so a report can
// say which version of the checks produced it.
type Revision struct{}

func New() *Revision {
	return &Revision{}
}

// IsGitRepo reports whether path is inside a git work tree.
func (r *Revision) IsGitRepo(path string) bool {
	_, err := open(path)
	return err == nil
}

// CommitHash returns the HEAD commit of the repository containing path.
// Parent directories are searched for .git.
func (r *Revision) CommitHash(path string) (string, error) {
	repo, err := open(path)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	return head.Hash().String(), nil
}

func open(path string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
}
