package ssh

import (
	"errors"
	"testing"
)

func TestProbe(t *testing.T) {
	tests := []struct {
		name    string
		result  *ExecResult
		err     error
		wantErr bool
	}{
		{"sentinel echoed", &ExecResult{Stdout: "dockhand-probe\n"}, nil, false},
		{"wrong output", &ExecResult{Stdout: "something else\n"}, nil, true},
		{"non-zero exit", &ExecResult{Stdout: "dockhand-probe\n", ExitCode: 1}, nil, true},
		{"transport failure", nil, errors.New("dial timeout"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockExecutor{
				ExecFunc: func(command string) (*ExecResult, error) {
					return tt.result, tt.err
				},
			}
			err := Probe(mock)
			if (err != nil) != tt.wantErr {
				t.Errorf("Probe() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
