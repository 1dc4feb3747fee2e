package transfer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nroussel/dockhand/internal/config"
	"github.com/nroussel/dockhand/internal/ssh"
)

func testParams() *config.Params {
	return &config.Params{
		RepoURL: "https://github.com/acme/webapp.git",
		User:    "deploy",
		Host:    "203.0.113.10",
		KeyPath: "/home/op/.ssh/id_ed25519",
		SSHPort: 22,
		Port:    "3000",
	}
}

func TestRsyncArgs(t *testing.T) {
	args := rsyncArgs("/tmp/webapp", "/home/deploy/deployments/webapp", testParams())

	joined := strings.Join(args, " ")
	assert.Contains(t, joined, "-az")
	assert.Contains(t, joined, "--delete")
	assert.Contains(t, joined, "-o StrictHostKeyChecking=no")
	assert.Contains(t, joined, "-i '/home/op/.ssh/id_ed25519'")
	assert.Equal(t, "/tmp/webapp/", args[len(args)-2], "source must end with a slash to mirror contents")
	assert.Equal(t, "deploy@203.0.113.10:/home/deploy/deployments/webapp/", args[len(args)-1])
}

func TestRsyncArgsQuotesKeyPathWithSpaces(t *testing.T) {
	p := testParams()
	p.KeyPath = "/home/op/my keys/id_ed25519"

	joined := strings.Join(rsyncArgs("/tmp/webapp", "/home/deploy/deployments/webapp", p), " ")
	assert.Contains(t, joined, "-i '/home/op/my keys/id_ed25519'")
}

func TestRsyncArgsStrictHostKeyMode(t *testing.T) {
	t.Setenv("DOCKHAND_STRICT_HOST_KEY", "true")

	joined := strings.Join(rsyncArgs("/tmp/webapp", "/home/deploy/deployments/webapp", testParams()), " ")
	assert.NotContains(t, joined, "StrictHostKeyChecking=no")
}

func TestRsyncArgsWithoutKeyPath(t *testing.T) {
	p := testParams()
	p.KeyPath = ""
	p.SSHPort = 2222

	args := rsyncArgs("/tmp/webapp", "/home/deploy/deployments/webapp", p)
	joined := strings.Join(args, " ")
	assert.NotContains(t, joined, "-i ")
	assert.Contains(t, joined, "ssh -p 2222")
}

func TestMirrorFailsWhenRemoteDirCannotBeCreated(t *testing.T) {
	mock := &ssh.MockExecutor{
		ExecFunc: func(command string) (*ssh.ExecResult, error) {
			return &ssh.ExecResult{ExitCode: 1, Stderr: "permission denied"}, nil
		},
	}

	err := Mirror(mock, testParams(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remote directory")
	require.Len(t, mock.Commands, 1)
	assert.Contains(t, mock.Commands[0], "mkdir -p '/home/deploy/deployments/webapp'")
}
