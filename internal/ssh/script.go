package ssh

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Policy declares whether a step's failure aborts the script.
type Policy int

const (
	// Fatal steps abort the script on the first failure.
	Fatal Policy = iota
	// Advisory steps log their failure and let the script continue.
	Advisory
)

// Step is one remote command with an explicit failure policy.
type Step struct {
	Name   string
	Cmd    string
	Policy Policy
}

// RunScript executes steps in order against the target. Fatal steps stop the
// script on the first non-zero exit; advisory steps log a warning and
// continue.
func RunScript(e Executor, steps []Step) error {
	for _, step := range steps {
		log.Debugf("  > %s", step.Cmd)
		result, err := e.Exec(step.Cmd)
		if err == nil && result.ExitCode == 0 {
			continue
		}
		if step.Policy == Advisory {
			log.Warnf("%s failed (ignored): %s", step.Name, failureDetail(result, err))
			continue
		}
		return fmt.Errorf("%s failed: %s", step.Name, failureDetail(result, err))
	}
	return nil
}

func failureDetail(result *ExecResult, err error) string {
	if err != nil {
		return err.Error()
	}
	msg := strings.TrimSpace(result.Stderr)
	if msg == "" {
		msg = strings.TrimSpace(result.Stdout)
	}
	return fmt.Sprintf("exit %d: %s", result.ExitCode, msg)
}
