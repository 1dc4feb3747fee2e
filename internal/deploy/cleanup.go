package deploy

import (
	"fmt"

	"github.com/nroussel/dockhand/internal/security"
	"github.com/nroussel/dockhand/internal/ssh"
)

// CleanupSteps returns the remote sequence that tears down a previous
// deployment of app. The cleanup flow has no checkout to inspect, so both
// the compose and the single-container shape are torn down; whichever was
// never started is tolerated. Removing the deployment directory is the one
// step that must succeed.
func CleanupSteps(app, remoteDir string) []ssh.Step {
	dir := security.ShellEscape(remoteDir)
	escaped := security.ShellEscape(app)

	return []ssh.Step{
		{
			Name:   "stop stack",
			Cmd:    fmt.Sprintf("cd %s && docker-compose down", dir),
			Policy: ssh.Advisory,
		},
		{
			Name:   "remove container",
			Cmd:    fmt.Sprintf("docker rm -f %s", escaped),
			Policy: ssh.Advisory,
		},
		{
			Name:   "remove deployment directory",
			Cmd:    fmt.Sprintf("rm -rf %s", dir),
			Policy: ssh.Fatal,
		},
	}
}
