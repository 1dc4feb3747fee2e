package ssh

// MockExecutor is a test double that records commands and returns configured
// results.
type MockExecutor struct {
	ExecFunc func(command string) (*ExecResult, error)
	Commands []string
}

// Exec records the command and delegates to ExecFunc.
func (m *MockExecutor) Exec(command string) (*ExecResult, error) {
	m.Commands = append(m.Commands, command)
	if m.ExecFunc != nil {
		return m.ExecFunc(command)
	}
	return &ExecResult{Stdout: "", Stderr: "", ExitCode: 0}, nil
}

// Close is a no-op for the mock.
func (m *MockExecutor) Close() error {
	return nil
}
