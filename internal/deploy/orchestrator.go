package deploy

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/nroussel/dockhand/internal/config"
	"github.com/nroussel/dockhand/internal/constants"
	"github.com/nroussel/dockhand/internal/exit"
	"github.com/nroussel/dockhand/internal/git"
	"github.com/nroussel/dockhand/internal/nginx"
	"github.com/nroussel/dockhand/internal/project"
	"github.com/nroussel/dockhand/internal/remote"
	sshc "github.com/nroussel/dockhand/internal/ssh"
	"github.com/nroussel/dockhand/internal/transfer"
)

// Options holds the pipeline's pluggable stages. Tests substitute fakes;
// production code uses DefaultOptions.
type Options struct {
	// BaseDir is the local directory checkouts live under.
	BaseDir string

	Fetch    func(baseDir, repoURL, token, branch string) (string, error)
	Detect   func(dir string) (*project.Descriptor, error)
	Dial     func(p *config.Params) (sshc.Executor, error)
	Transfer func(e sshc.Executor, p *config.Params, localDir string) error
}

// DefaultOptions wires the real stages.
func DefaultOptions(baseDir string) Options {
	return Options{
		BaseDir:  baseDir,
		Fetch:    git.Fetch,
		Detect:   project.Detect,
		Dial:     dial,
		Transfer: transfer.Mirror,
	}
}

// dial checks reachability, opens the connection, and verifies the channel
// with a probe before handing the client to the pipeline.
func dial(p *config.Params) (sshc.Executor, error) {
	if err := sshc.Reachable(p.Host, p.SSHPort, constants.ConnectTimeout); err != nil {
		return nil, err
	}
	client := sshc.NewClient(p.Host, p.User, p.SSHPort, p.KeyPath)
	if err := client.Connect(); err != nil {
		return nil, err
	}
	if err := sshc.Probe(client); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

// Deploy runs the full pipeline against the target described by p.
func Deploy(p *config.Params, opts Options) error {
	if err := p.Validate(); err != nil {
		return err
	}

	log.Infof("Fetching %s", p.AppName())
	localDir, err := opts.Fetch(opts.BaseDir, p.RepoURL, p.Token, p.Branch)
	if err != nil {
		return err
	}

	desc, err := opts.Detect(localDir)
	if err != nil {
		return exit.WithCode(exit.NoDescriptor, err)
	}
	log.Infof("Found %s", describeDescriptor(desc))

	log.Infof("Connecting to %s@%s", p.User, p.Host)
	e, err := opts.Dial(p)
	if err != nil {
		return exit.WithCode(exit.Connectivity, err)
	}
	defer e.Close()

	log.Info("Preparing the host")
	if err := remote.Prepare(e, p.User); err != nil {
		return fmt.Errorf("host preparation failed: %w", err)
	}

	log.Infof("Transferring %s to %s", localDir, p.DeployPath())
	if err := opts.Transfer(e, p, localDir); err != nil {
		return fmt.Errorf("transfer failed: %w", err)
	}

	log.Info("Starting containers")
	d := Deployment{
		App:       p.AppName(),
		Port:      p.PortNumber(),
		RemoteDir: p.DeployPath(),
		Desc:      desc,
	}
	if err := RunContainers(e, d); err != nil {
		return fmt.Errorf("container start failed: %w", err)
	}

	log.Info("Configuring the reverse proxy")
	if err := nginx.Configure(e, d.App, d.Port); err != nil {
		return fmt.Errorf("proxy configuration failed: %w", err)
	}

	log.Info("Validating the deployment")
	for _, warning := range Validate(e, d.App) {
		log.Warn(warning)
	}

	log.Infof("Deployed %s on http://%s/", d.App, p.Host)
	return nil
}

// Cleanup removes a previous deployment of the app from the target. It never
// fetches, transfers, or starts anything.
func Cleanup(p *config.Params, opts Options) error {
	if err := p.Validate(); err != nil {
		return err
	}

	log.Infof("Connecting to %s@%s", p.User, p.Host)
	e, err := opts.Dial(p)
	if err != nil {
		return exit.WithCode(exit.Connectivity, err)
	}
	defer e.Close()

	app := p.AppName()
	log.Infof("Removing deployment %s", app)
	if err := sshc.RunScript(e, CleanupSteps(app, p.DeployPath())); err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}

	log.Info("Removing the proxy site")
	if err := sshc.RunScript(e, nginx.RemoveSteps(app)); err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}

	log.Infof("Removed %s from %s", app, p.Host)
	return nil
}

func describeDescriptor(desc *project.Descriptor) string {
	if desc.Kind == project.KindCompose {
		return desc.Manifest
	}
	return "Dockerfile"
}
