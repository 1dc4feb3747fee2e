// Package config holds the deployment parameter set for one run. The set is
// constructed once during parameter collection and passed explicitly into
// every stage; it is never persisted.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/nroussel/dockhand/internal/constants"
	"github.com/nroussel/dockhand/internal/exit"
	"github.com/nroussel/dockhand/internal/git"
	"github.com/nroussel/dockhand/internal/security"
)

// DefaultBranch is used when the operator leaves the branch blank.
const DefaultBranch = "main"

// PortValue carries the raw port input so the digits-only rule is enforced
// in one place. It accepts quoted and bare scalars from YAML.
type PortValue string

// UnmarshalYAML keeps the scalar's literal text.
func (v *PortValue) UnmarshalYAML(node *yaml.Node) error {
	*v = PortValue(node.Value)
	return nil
}

// Params is the full deployment parameter set.
type Params struct {
	RepoURL string    `yaml:"repo_url"`
	Token   string    `yaml:"token,omitempty"`
	Branch  string    `yaml:"branch,omitempty"`
	User    string    `yaml:"user"`
	Host    string    `yaml:"host"`
	KeyPath string    `yaml:"key_path,omitempty"`
	SSHPort int       `yaml:"ssh_port,omitempty"`
	Port    PortValue `yaml:"port"`
}

// Load reads a parameter set from a YAML file.
func Load(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read params file: %w", err)
	}
	var p Params
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse params file: %w", err)
	}
	return &p, nil
}

// Merge overlays the non-empty fields of other onto p.
func (p *Params) Merge(other *Params) {
	if other.RepoURL != "" {
		p.RepoURL = other.RepoURL
	}
	if other.Token != "" {
		p.Token = other.Token
	}
	if other.Branch != "" {
		p.Branch = other.Branch
	}
	if other.User != "" {
		p.User = other.User
	}
	if other.Host != "" {
		p.Host = other.Host
	}
	if other.KeyPath != "" {
		p.KeyPath = other.KeyPath
	}
	if other.SSHPort != 0 {
		p.SSHPort = other.SSHPort
	}
	if other.Port != "" {
		p.Port = other.Port
	}
}

// ApplyDefaults fills the branch and SSH port defaults.
func (p *Params) ApplyDefaults() {
	if p.Branch == "" {
		p.Branch = DefaultBranch
	}
	if p.SSHPort == 0 {
		p.SSHPort = constants.DefaultSSHPort
	}
}

// Validate checks the collected parameter set. An invalid port carries its
// own exit code so scripting callers can tell it apart from later failures.
func (p *Params) Validate() error {
	if err := security.ValidatePort(string(p.Port)); err != nil {
		return exit.WithCode(exit.InvalidPort, fmt.Errorf("invalid application port: %w", err))
	}
	if p.RepoURL == "" {
		return fmt.Errorf("repository URL is required")
	}
	if p.Host == "" {
		return fmt.Errorf("remote host is required")
	}
	if err := security.ValidateUnixUser(p.User); err != nil {
		return fmt.Errorf("invalid remote username: %w", err)
	}
	if err := security.ValidateAppName(p.AppName()); err != nil {
		return fmt.Errorf("repository name %q is not usable as an app name: %w", p.AppName(), err)
	}
	return nil
}

// PortNumber returns the validated application port as an integer.
func (p *Params) PortNumber() int {
	n, _ := strconv.Atoi(string(p.Port))
	return n
}

// AppName derives the application name from the repository URL's base name.
func (p *Params) AppName() string {
	return git.DirName(p.RepoURL)
}

// DeployPath returns the remote deployment directory for this run.
func (p *Params) DeployPath() string {
	return constants.DeployPath(p.User, p.AppName())
}
