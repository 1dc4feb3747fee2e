package ssh

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestUploadCommand(t *testing.T) {
	content := "server {\n    listen 80;\n}\n"
	encoded := base64.StdEncoding.EncodeToString([]byte(content))

	cmd := UploadCommand(content, "/etc/nginx/sites-available/webapp", true)
	if !strings.Contains(cmd, encoded) {
		t.Error("command does not carry the base64-encoded content")
	}
	if !strings.Contains(cmd, "sudo tee '/etc/nginx/sites-available/webapp'") {
		t.Errorf("command does not tee to the escaped path: %s", cmd)
	}
	if strings.Contains(cmd, "listen 80") {
		t.Error("raw content leaked into the shell command")
	}

	cmd = UploadCommand(content, "/home/deploy/file.txt", false)
	if !strings.Contains(cmd, "mkdir -p '/home/deploy'") {
		t.Errorf("unprivileged upload must create the parent directory: %s", cmd)
	}
	if strings.Contains(cmd, "sudo") {
		t.Error("unprivileged upload must not use sudo")
	}
}
