// Package remote prepares the target host: container runtime, compose tool,
// and reverse-proxy packages with their services enabled.
package remote

import (
	"fmt"

	"github.com/nroussel/dockhand/internal/security"
	"github.com/nroussel/dockhand/internal/ssh"
)

// Steps returns the environment preparation sequence for a remote user.
// Group membership and service enablement are advisory: the group may
// already contain the user and the services may already be running.
func Steps(user string) []ssh.Step {
	return []ssh.Step{
		{
			Name:   "package index refresh",
			Cmd:    "sudo apt-get update -qq",
			Policy: ssh.Fatal,
		},
		{
			Name:   "package install",
			Cmd:    "sudo DEBIAN_FRONTEND=noninteractive apt-get install -y -qq docker.io docker-compose nginx",
			Policy: ssh.Fatal,
		},
		{
			Name:   "docker group membership",
			Cmd:    fmt.Sprintf("sudo usermod -aG docker %s", security.ShellEscape(user)),
			Policy: ssh.Advisory,
		},
		{
			Name:   "enable docker service",
			Cmd:    "sudo systemctl enable docker",
			Policy: ssh.Advisory,
		},
		{
			Name:   "start docker service",
			Cmd:    "sudo systemctl start docker",
			Policy: ssh.Advisory,
		},
		{
			Name:   "enable nginx service",
			Cmd:    "sudo systemctl enable nginx",
			Policy: ssh.Advisory,
		},
		{
			Name:   "start nginx service",
			Cmd:    "sudo systemctl start nginx",
			Policy: ssh.Advisory,
		},
	}
}

// Prepare installs and enables the deployment prerequisites on the target.
func Prepare(e ssh.Executor, user string) error {
	return ssh.RunScript(e, Steps(user))
}
