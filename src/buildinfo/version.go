package buildinfo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// devVersion is reported when no semver tag is reachable from HEAD.
const devVersion = "0.0.0"

// Version describes the nearest semver tag reachable from HEAD.
type Version struct {
	Tag       string          // tag name as written, e.g. "v1.2.3"
	Semver    *semver.Version // nil when no tag was found
	IsRelease bool            // HEAD is exactly at Tag
}

// String renders the version: the tag itself for a release, otherwise
// "<tag>-dev+<short>" ("0.0.0-dev+<short>" when untagged).
func (v Version) String(short string) string {
	base := devVersion
	if v.Semver != nil {
		base = v.Semver.String()
	}
	if v.IsRelease {
		return base
	}
	return fmt.Sprintf("%s-dev+%s", base, short)
}

// nearestVersion walks history from head and returns the highest semver tag
// on the first tagged commit it meets.
func nearestVersion(repo *git.Repository, head plumbing.Hash) (Version, error) {
	tagged, err := semverTags(repo)
	if err != nil {
		return Version{}, err
	}
	if len(tagged) == 0 {
		return Version{}, nil
	}

	iter, err := repo.Log(&git.LogOptions{From: head})
	if err != nil {
		return Version{}, fmt.Errorf("walking history: %w", err)
	}
	defer iter.Close()

	var found Version
	err = iter.ForEach(func(c *object.Commit) error {
		tags, ok := tagged[c.Hash]
		if !ok {
			return nil
		}
		best := tags[0]
		for _, t := range tags[1:] {
			if t.Semver.GreaterThan(best.Semver) {
				best = t
			}
		}
		best.IsRelease = c.Hash == head
		found = best
		return storer.ErrStop
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return Version{}, fmt.Errorf("walking history: %w", err)
	}
	return found, nil
}

// semverTags maps commit hashes to the semver tags pointing at them.
// Tags that do not parse as semver are skipped.
func semverTags(repo *git.Repository) (map[plumbing.Hash][]Version, error) {
	refs, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer refs.Close()

	out := map[plumbing.Hash][]Version{}
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		sv, err := semver.NewVersion(strings.TrimSpace(name))
		if err != nil {
			return nil
		}
		target := ref.Hash()
		// Annotated tags point at a tag object, not the commit.
		if tag, err := repo.TagObject(target); err == nil {
			c, err := tag.Commit()
			if err != nil {
				return nil
			}
			target = c.Hash
		}
		out[target] = append(out[target], Version{Tag: name, Semver: sv})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
