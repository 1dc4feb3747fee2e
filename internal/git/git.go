// Package git wraps the git command-line client. Every command runs with an
// explicit working directory; the process working directory never changes.
package git

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/nroussel/dockhand/internal/security"
)

// runGit is replaceable in tests.
var runGit = run

// run executes git in workingDir and returns the captured stdout and stderr.
func run(workingDir string, args ...string) (stdout, stderr string, err error) {
	log.Debugf("git %s", strings.Join(maskArgs(args), " "))
	cmd := exec.Command("git", args...)
	cmd.Env = os.Environ()
	cmd.Dir = workingDir
	var o, e bytes.Buffer
	cmd.Stdout = &o
	cmd.Stderr = &e
	err = cmd.Run()
	return o.String(), e.String(), err
}

func maskArgs(args []string) []string {
	masked := make([]string, len(args))
	for i, a := range args {
		masked[i] = security.MaskURL(a)
	}
	return masked
}

// DirName derives the checkout directory name from a repository URL: the
// URL's base name with any .git suffix stripped.
func DirName(repoURL string) string {
	base := path.Base(strings.TrimSuffix(repoURL, "/"))
	return strings.TrimSuffix(base, ".git")
}

// AuthURL splices an access token into repoURL as basic-auth credentials.
// The URL is returned unchanged when the token is empty or the URL has no
// recognizable scheme and host.
func AuthURL(repoURL, token string) string {
	if token == "" {
		return repoURL
	}
	u, err := url.Parse(repoURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return repoURL
	}
	u.User = url.User(token)
	return u.String()
}

// Fetch ensures a local checkout of the requested branch under baseDir and
// returns its path. A directory matching the derived repository name is
// treated as an existing checkout and updated in place; otherwise a fresh
// single-branch clone is made with the token embedded in the URL.
func Fetch(baseDir, repoURL, token, branch string) (string, error) {
	dir := filepath.Join(baseDir, DirName(repoURL))

	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		log.Infof("Updating existing checkout %s (branch %s)", dir, branch)
		if err := update(dir, branch); err != nil {
			return "", fmt.Errorf("failed to update %s: %w", security.MaskURL(repoURL), err)
		}
		return dir, nil
	}

	log.Infof("Cloning %s (branch %s)", security.MaskURL(repoURL), branch)
	if err := clone(baseDir, repoURL, token, branch, dir); err != nil {
		return "", fmt.Errorf("failed to clone %s: %w", security.MaskURL(repoURL), err)
	}
	return dir, nil
}

func update(dir, branch string) error {
	for _, args := range [][]string{
		{"fetch", "--all", "--prune"},
		{"checkout", branch},
		{"pull", "origin", branch},
	} {
		if _, stderr, err := runGit(dir, args...); err != nil {
			return fmt.Errorf("git %s: %v (%s)", args[0], err, strings.TrimSpace(stderr))
		}
	}
	return nil
}

func clone(baseDir, repoURL, token, branch, dir string) error {
	args := []string{"clone", "--branch", branch, "--single-branch", AuthURL(repoURL, token), dir}
	if _, stderr, err := runGit(baseDir, args...); err != nil {
		// git echoes the full URL on failure; keep the token out of the log.
		if token != "" {
			stderr = strings.ReplaceAll(stderr, token, "****")
		}
		return fmt.Errorf("git clone: %v (%s)", err, strings.TrimSpace(stderr))
	}
	return nil
}
