// Package buildinfo reads repository metadata that generated configs embed
// as compile-time constants.
package buildinfo

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
)

// Info identifies the source revision a build is generated from.
type Info struct {
	Commit string // full commit hash
	Short  string // abbreviated commit hash
	Branch string // empty on a detached HEAD
	Dirty  bool   // uncommitted changes in the worktree

	// Version is derived from the nearest semver tag.
	Version string
}

// Detect opens the repository containing dir. It returns a zero Info and no
// error when dir is not inside a git repository.
func Detect(dir string) (Info, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return Info{}, nil
		}
		return Info{}, fmt.Errorf("opening repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		// Fresh repository without commits.
		return Info{}, nil
	}

	info := Info{Commit: head.Hash().String()}
	info.Short = info.Commit
	if len(info.Short) > 8 {
		info.Short = info.Short[:8]
	}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}

	v, err := nearestVersion(repo, head.Hash())
	if err != nil {
		return Info{}, err
	}
	info.Version = v.String(info.Short)

	wt, err := repo.Worktree()
	if err != nil {
		return info, nil // bare repository
	}
	status, err := wt.Status()
	if err != nil {
		return Info{}, fmt.Errorf("reading worktree status: %w", err)
	}
	info.Dirty = !status.IsClean()
	return info, nil
}

// Defines returns the constants to inject, keyed by variable name.
// A zero Info yields no defines.
func (i Info) Defines() map[string]string {
	if i.Commit == "" {
		return nil
	}
	d := map[string]string{
		"BUILD_COMMIT":       i.Commit,
		"BUILD_COMMIT_SHORT": i.Short,
		"BUILD_VERSION":      i.Version,
	}
	if i.Branch != "" {
		d["BUILD_BRANCH"] = i.Branch
	}
	if i.Dirty {
		d["BUILD_DIRTY"] = "true"
	}
	return d
}
