package ssh

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// probeSentinel is echoed back by the target to prove the channel works.
const probeSentinel = "dockhand-probe"

// Reachable performs a cheap TCP reachability pre-check of the SSH port
// before a full handshake is attempted.
func Reachable(host string, port int, timeout time.Duration) error {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return fmt.Errorf("host %s is unreachable: %w", addr, err)
	}
	return conn.Close()
}

// Probe runs one low-cost command over the secure channel and verifies the
// echoed sentinel.
func Probe(e Executor) error {
	result, err := e.Exec("echo " + probeSentinel)
	if err != nil {
		return fmt.Errorf("connectivity probe failed: %w", err)
	}
	if result.ExitCode != 0 || !strings.Contains(result.Stdout, probeSentinel) {
		return fmt.Errorf("connectivity probe failed: unexpected response %q", strings.TrimSpace(result.Stdout))
	}
	return nil
}
