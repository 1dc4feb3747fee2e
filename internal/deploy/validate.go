package deploy

import (
	"fmt"
	"strings"

	"github.com/nroussel/dockhand/internal/security"
	"github.com/nroussel/dockhand/internal/ssh"
)

// Validate runs the post-deployment checks on the target and returns a
// warning per failed check. The checks never fail the run; a deployment
// that serves slowly on first start is still a deployment.
func Validate(e ssh.Executor, app string) []string {
	var warnings []string

	if state, err := ssh.ExecWithOutput(e, "systemctl is-active docker"); err != nil {
		warnings = append(warnings, fmt.Sprintf("docker service check failed: %v", err))
	} else if state != "active" {
		warnings = append(warnings, fmt.Sprintf("docker service check failed: state %q", state))
	}

	checks := []struct {
		name string
		cmd  string
		ok   func(r *ssh.ExecResult) bool
	}{
		{
			name: "container running",
			cmd:  fmt.Sprintf("docker ps --filter name=%s --format '{{.Names}}'", security.ShellEscape(app)),
			ok: func(r *ssh.ExecResult) bool {
				return r.ExitCode == 0 && strings.TrimSpace(r.Stdout) != ""
			},
		},
		{
			name: "proxy responds",
			cmd:  "curl -sf -o /dev/null http://127.0.0.1:80/",
			ok: func(r *ssh.ExecResult) bool {
				return r.ExitCode == 0
			},
		},
	}

	for _, check := range checks {
		result, err := e.Exec(check.cmd)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s check failed: %v", check.name, err))
			continue
		}
		if !check.ok(result) {
			warnings = append(warnings, fmt.Sprintf("%s check failed: %s", check.name, failureSummary(result)))
		}
	}
	return warnings
}

func failureSummary(result *ssh.ExecResult) string {
	msg := strings.TrimSpace(result.Stderr)
	if msg == "" {
		msg = strings.TrimSpace(result.Stdout)
	}
	if msg == "" {
		return fmt.Sprintf("exit %d", result.ExitCode)
	}
	return fmt.Sprintf("exit %d: %s", result.ExitCode, msg)
}
