package git

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirName(t *testing.T) {
	tests := []struct {
		repoURL string
		want    string
	}{
		{"https://github.com/acme/webapp.git", "webapp"},
		{"https://github.com/acme/webapp", "webapp"},
		{"https://gitlab.example.com/group/sub/tool.git", "tool"},
		{"https://github.com/acme/webapp.git/", "webapp"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DirName(tt.repoURL), "DirName(%q)", tt.repoURL)
	}
}

func TestAuthURL(t *testing.T) {
	tests := []struct {
		name    string
		repoURL string
		token   string
		want    string
	}{
		{
			"token spliced after scheme",
			"https://github.com/acme/webapp.git",
			"ghp_abc123",
			"https://ghp_abc123@github.com/acme/webapp.git",
		},
		{
			"empty token leaves URL unchanged",
			"https://github.com/acme/webapp.git",
			"",
			"https://github.com/acme/webapp.git",
		},
		{
			"schemeless URL left alone",
			"git@github.com:acme/webapp.git",
			"ghp_abc123",
			"git@github.com:acme/webapp.git",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AuthURL(tt.repoURL, tt.token))
		})
	}
}

// stubGit replaces runGit and records every invocation as "subcommand" of
// its first argument.
func stubGit(t *testing.T, fail bool) *[][]string {
	t.Helper()
	var calls [][]string
	orig := runGit
	runGit = func(workingDir string, args ...string) (string, string, error) {
		calls = append(calls, append([]string{workingDir}, args...))
		if fail {
			return "", "fatal: simulated", errors.New("exit status 128")
		}
		return "", "", nil
	}
	t.Cleanup(func() { runGit = orig })
	return &calls
}

func TestFetchClonesFreshTarget(t *testing.T) {
	calls := stubGit(t, false)
	baseDir := t.TempDir()

	dir, err := Fetch(baseDir, "https://github.com/acme/webapp.git", "tok", "main")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(baseDir, "webapp"), dir)

	require.Len(t, *calls, 1, "fresh target must issue exactly one git command")
	args := (*calls)[0]
	assert.Equal(t, "clone", args[1])
	assert.Contains(t, args, "--branch")
	assert.Contains(t, args, "main")
	assert.Contains(t, args, "--single-branch")
	assert.Contains(t, args, "https://tok@github.com/acme/webapp.git")
}

func TestFetchUpdatesExistingCheckout(t *testing.T) {
	calls := stubGit(t, false)
	baseDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(baseDir, "webapp"), 0755))

	dir, err := Fetch(baseDir, "https://github.com/acme/webapp.git", "tok", "release")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(baseDir, "webapp"), dir)

	require.Len(t, *calls, 3)
	assert.Equal(t, "fetch", (*calls)[0][1])
	assert.Equal(t, "checkout", (*calls)[1][1])
	assert.Equal(t, "pull", (*calls)[2][1])
	for _, call := range *calls {
		assert.Equal(t, dir, call[0], "updates must run inside the checkout")
	}
}

func TestFetchCloneFailureNamesAction(t *testing.T) {
	stubGit(t, true)

	_, err := Fetch(t.TempDir(), "https://github.com/acme/webapp.git", "tok", "main")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clone")
	assert.NotContains(t, err.Error(), "tok", "token must not appear in errors")
}

func TestFetchUpdateFailureNamesAction(t *testing.T) {
	stubGit(t, true)
	baseDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(baseDir, "webapp"), 0755))

	_, err := Fetch(baseDir, "https://github.com/acme/webapp.git", "", "main")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "update") || strings.Contains(err.Error(), "fetch"))
}
