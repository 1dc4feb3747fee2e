// Package deploy orchestrates a full rollout: repository fetch, descriptor
// detection, host preparation, artifact transfer, container start, proxy
// configuration, and validation. It also drives the cleanup flow.
package deploy

import (
	"fmt"

	"github.com/nroussel/dockhand/internal/project"
	"github.com/nroussel/dockhand/internal/security"
	"github.com/nroussel/dockhand/internal/ssh"
)

// Deployment carries everything the container stage needs.
type Deployment struct {
	App       string
	Port      int
	RemoteDir string
	Desc      *project.Descriptor
}

// Steps returns the remote command sequence that replaces any previous
// deployment of the app with the freshly transferred one. Stopping what is
// not running is tolerated; build and start failures abort.
func Steps(d Deployment) []ssh.Step {
	dir := security.ShellEscape(d.RemoteDir)
	app := security.ShellEscape(d.App)

	if d.Desc.Kind == project.KindCompose {
		return []ssh.Step{
			{
				Name:   "stop previous stack",
				Cmd:    fmt.Sprintf("cd %s && docker-compose down", dir),
				Policy: ssh.Advisory,
			},
			{
				Name:   "start stack",
				Cmd:    fmt.Sprintf("cd %s && docker-compose up -d --build", dir),
				Policy: ssh.Fatal,
			},
		}
	}

	return []ssh.Step{
		{
			Name:   "stop previous container",
			Cmd:    fmt.Sprintf("docker stop %s", app),
			Policy: ssh.Advisory,
		},
		{
			Name:   "remove previous container",
			Cmd:    fmt.Sprintf("docker rm %s", app),
			Policy: ssh.Advisory,
		},
		{
			Name:   "build image",
			Cmd:    fmt.Sprintf("cd %s && docker build -t %s .", dir, app),
			Policy: ssh.Fatal,
		},
		{
			Name:   "run container",
			Cmd:    fmt.Sprintf("docker run -d --name %s --restart unless-stopped -p %d:%d %s", app, d.Port, d.Port, app),
			Policy: ssh.Fatal,
		},
	}
}

// RunContainers executes the container stage on the target.
func RunContainers(e ssh.Executor, d Deployment) error {
	return ssh.RunScript(e, Steps(d))
}
