package deploy

import (
	"strings"
	"testing"

	"github.com/nroussel/dockhand/internal/ssh"
)

func TestValidateAllHealthy(t *testing.T) {
	mock := &ssh.MockExecutor{
		ExecFunc: func(command string) (*ssh.ExecResult, error) {
			switch {
			case strings.Contains(command, "is-active"):
				return &ssh.ExecResult{Stdout: "active\n"}, nil
			case strings.Contains(command, "docker ps"):
				return &ssh.ExecResult{Stdout: "webapp\n"}, nil
			default:
				return &ssh.ExecResult{}, nil
			}
		},
	}

	if warnings := Validate(mock, "webapp"); len(warnings) != 0 {
		t.Errorf("Validate() = %v, want no warnings", warnings)
	}
	if len(mock.Commands) != 3 {
		t.Errorf("ran %d checks, want 3", len(mock.Commands))
	}
}

func TestValidateCollectsAllWarnings(t *testing.T) {
	mock := &ssh.MockExecutor{
		ExecFunc: func(command string) (*ssh.ExecResult, error) {
			return &ssh.ExecResult{ExitCode: 1, Stderr: "broken"}, nil
		},
	}

	warnings := Validate(mock, "webapp")
	if len(warnings) != 3 {
		t.Fatalf("Validate() = %v, want 3 warnings", warnings)
	}
	if len(mock.Commands) != 3 {
		t.Errorf("ran %d checks, want all 3 despite failures", len(mock.Commands))
	}
}

func TestValidateWarnsWhenDockerInactive(t *testing.T) {
	mock := &ssh.MockExecutor{
		ExecFunc: func(command string) (*ssh.ExecResult, error) {
			if strings.Contains(command, "is-active") {
				return &ssh.ExecResult{Stdout: "inactive\n", ExitCode: 3}, nil
			}
			if strings.Contains(command, "docker ps") {
				return &ssh.ExecResult{Stdout: "webapp\n"}, nil
			}
			return &ssh.ExecResult{}, nil
		},
	}

	warnings := Validate(mock, "webapp")
	if len(warnings) != 1 {
		t.Fatalf("Validate() = %v, want 1 warning", warnings)
	}
	if !strings.Contains(warnings[0], "docker service") {
		t.Errorf("warning must name the docker service check: %s", warnings[0])
	}
}

func TestValidateEmptyContainerListWarns(t *testing.T) {
	mock := &ssh.MockExecutor{
		ExecFunc: func(command string) (*ssh.ExecResult, error) {
			if strings.Contains(command, "is-active") {
				return &ssh.ExecResult{Stdout: "active\n"}, nil
			}
			return &ssh.ExecResult{}, nil
		},
	}

	warnings := Validate(mock, "webapp")
	if len(warnings) != 1 {
		t.Fatalf("Validate() = %v, want 1 warning for the empty container list", warnings)
	}
	if !strings.Contains(warnings[0], "container running") {
		t.Errorf("warning must name the failed check: %s", warnings[0])
	}
}
