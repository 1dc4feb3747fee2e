// Package transfer mirrors the local checkout to the remote deployment
// directory.
package transfer

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/sftp"
	log "github.com/sirupsen/logrus"

	"github.com/nroussel/dockhand/internal/config"
	"github.com/nroussel/dockhand/internal/security"
	sshc "github.com/nroussel/dockhand/internal/ssh"
)

// Mirror copies the checkout at localDir to the deployment directory on the
// target. rsync provides the delta/compressed transfer; when no local rsync
// binary exists the checkout is copied file by file over SFTP on the
// existing connection. Concurrent runs against the same remote directory
// are not guarded against.
func Mirror(e sshc.Executor, p *config.Params, localDir string) error {
	remoteDir := p.DeployPath()

	result, err := e.Exec(fmt.Sprintf("mkdir -p %s", security.ShellEscape(remoteDir)))
	if err != nil {
		return fmt.Errorf("failed to create remote directory: %w", err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("failed to create remote directory: %s", result.Stderr)
	}

	if _, err := exec.LookPath("rsync"); err == nil {
		return Rsync(localDir, remoteDir, p)
	}

	client, ok := e.(*sshc.Client)
	if !ok {
		return fmt.Errorf("rsync not available and no SSH client for the SFTP fallback")
	}
	log.Warn("rsync not found locally, copying over SFTP instead")
	return SFTPMirror(client, localDir, remoteDir)
}

// Rsync runs a delta transfer of localDir to the remote deployment
// directory over the secure channel.
func Rsync(localDir, remoteDir string, p *config.Params) error {
	args := rsyncArgs(localDir, remoteDir, p)
	log.Debugf("rsync %v", args)
	cmd := exec.Command("rsync", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("rsync failed: %w", err)
	}
	return nil
}

// rsync tokenizes the -e value itself honoring quotes, so the key path is
// single-quoted the same way remote arguments are. Host-key checking follows
// the SSH client's mode.
func rsyncArgs(localDir, remoteDir string, p *config.Params) []string {
	sshCmd := fmt.Sprintf("ssh -p %d", p.SSHPort)
	if os.Getenv("DOCKHAND_STRICT_HOST_KEY") != "true" {
		sshCmd += " -o StrictHostKeyChecking=no"
	}
	if p.KeyPath != "" {
		sshCmd += " -i " + security.ShellEscape(p.KeyPath)
	}

	return []string{
		"-az", "--delete",
		"-e", sshCmd,
		localDir + "/",
		fmt.Sprintf("%s@%s:%s/", p.User, p.Host, remoteDir),
	}
}

// SFTPMirror walks localDir and uploads every file to remoteDir. Plain
// copy, not a delta transfer; used only when rsync is unavailable.
func SFTPMirror(client *sshc.Client, localDir, remoteDir string) error {
	sftpClient, err := sftp.NewClient(client.GetClient())
	if err != nil {
		return fmt.Errorf("failed to open sftp session: %w", err)
	}
	defer sftpClient.Close()

	return filepath.Walk(localDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(localDir, path)
		if err != nil {
			return err
		}
		remotePath := filepath.ToSlash(filepath.Join(remoteDir, rel))
		if info.IsDir() {
			return sftpClient.MkdirAll(remotePath)
		}
		return uploadFile(sftpClient, path, remotePath)
	})
}

func uploadFile(sftpClient *sftp.Client, localPath, remotePath string) error {
	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer src.Close()

	dst, err := sftpClient.Create(remotePath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", remotePath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to upload %s: %w", remotePath, err)
	}
	return nil
}
