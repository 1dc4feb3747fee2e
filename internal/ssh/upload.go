package ssh

import (
	"encoding/base64"
	"fmt"
	"path/filepath"

	"github.com/nroussel/dockhand/internal/security"
)

// UploadCommand returns a shell command that writes content to remotePath.
// The content travels base64-encoded so arbitrary text never reaches the
// remote shell unquoted. With sudo the write goes through tee for
// root-owned paths.
func UploadCommand(content, remotePath string, sudo bool) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(content))
	if sudo {
		return fmt.Sprintf("echo '%s' | base64 -d | sudo tee %s > /dev/null",
			encoded, security.ShellEscape(remotePath))
	}
	return fmt.Sprintf("mkdir -p %s && echo '%s' | base64 -d > %s",
		security.ShellEscape(filepath.Dir(remotePath)), encoded, security.ShellEscape(remotePath))
}
