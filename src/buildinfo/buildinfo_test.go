package buildinfo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectOutsideRepository(t *testing.T) {
	info, err := Detect(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Info{}, info)
	assert.Nil(t, info.Defines())
}

func TestDetectCommit(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.jsx"), []byte("export default 1\n"), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("index.jsx")
	require.NoError(t, err)
	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "dev", Email: "dev@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	sub := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	info, err := Detect(sub)
	require.NoError(t, err)
	assert.Equal(t, hash.String(), info.Commit)
	assert.Equal(t, hash.String()[:8], info.Short)
	assert.NotEmpty(t, info.Branch)
	assert.False(t, info.Dirty)

	d := info.Defines()
	assert.Equal(t, hash.String(), d["BUILD_COMMIT"])
	assert.Equal(t, info.Branch, d["BUILD_BRANCH"])
	assert.NotContains(t, d, "BUILD_DIRTY")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.jsx"), []byte("export default 2\n"), 0o644))
	info, err = Detect(dir)
	require.NoError(t, err)
	assert.True(t, info.Dirty)
	assert.Equal(t, "true", info.Defines()["BUILD_DIRTY"])
}

func commit(t *testing.T, repo *git.Repository, dir, content string) plumbing.Hash {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.jsx"), []byte(content), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("index.jsx")
	require.NoError(t, err)
	hash, err := wt.Commit(content, &git.CommitOptions{Author: signature()})
	require.NoError(t, err)
	return hash
}

func signature() *object.Signature {
	return &object.Signature{Name: "dev", Email: "dev@example.com", When: time.Now()}
}

func TestDetectVersion(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	first := commit(t, repo, dir, "export default 1\n")
	info, err := Detect(dir)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0-dev+"+first.String()[:8], info.Version)

	_, err = repo.CreateTag("v1.2.0", first, nil)
	require.NoError(t, err)
	_, err = repo.CreateTag("not-a-version", first, nil)
	require.NoError(t, err)
	info, err = Detect(dir)
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", info.Version)
	assert.Equal(t, "1.2.0", info.Defines()["BUILD_VERSION"])

	second := commit(t, repo, dir, "export default 2\n")
	info, err = Detect(dir)
	require.NoError(t, err)
	assert.Equal(t, "1.2.0-dev+"+second.String()[:8], info.Version)

	_, err = repo.CreateTag("v1.3.0-rc.1", second, &git.CreateTagOptions{
		Tagger:  signature(),
		Message: "release candidate",
	})
	require.NoError(t, err)
	info, err = Detect(dir)
	require.NoError(t, err)
	assert.Equal(t, "1.3.0-rc.1", info.Version)
}
