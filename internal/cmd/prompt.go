package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/nroussel/dockhand/internal/config"
)

// promptMissing asks for every parameter not already collected, in the
// pipeline's collection order. Optional parameters accept a blank answer;
// required ones are caught by validation afterwards.
func promptMissing(p *config.Params, in io.Reader) error {
	reader := bufio.NewReader(in)
	var err error

	if p.RepoURL == "" {
		if p.RepoURL, err = promptLine(reader, "Repository URL: "); err != nil {
			return err
		}
	}
	if p.Token == "" {
		if p.Token, err = promptSecret(reader, in, "Access token (blank for public repos): "); err != nil {
			return err
		}
	}
	if p.Branch == "" {
		if p.Branch, err = promptLine(reader, fmt.Sprintf("Branch [%s]: ", config.DefaultBranch)); err != nil {
			return err
		}
	}
	if p.User == "" {
		if p.User, err = promptLine(reader, "Remote username: "); err != nil {
			return err
		}
	}
	if p.Host == "" {
		if p.Host, err = promptLine(reader, "Remote host: "); err != nil {
			return err
		}
	}
	if p.KeyPath == "" {
		if p.KeyPath, err = promptLine(reader, "Private key path (blank to auto-discover): "); err != nil {
			return err
		}
	}
	if p.Port == "" {
		port, err := promptLine(reader, "Application port: ")
		if err != nil {
			return err
		}
		p.Port = config.PortValue(port)
	}
	return nil
}

func promptLine(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptSecret reads without echo when the input is a terminal, so the token
// never appears on screen or in terminal scrollback.
func promptSecret(reader *bufio.Reader, in io.Reader, label string) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Print(label)
		secret, err := term.ReadPassword(int(f.Fd()))
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(secret)), nil
	}
	return promptLine(reader, label)
}

// confirmCleanup asks the operator to confirm the teardown. Anything but an
// explicit yes declines.
func confirmCleanup(in io.Reader, p *config.Params) bool {
	fmt.Printf("Remove %s and its proxy site from %s? [y/N] ", p.AppName(), p.Host)
	reader := bufio.NewReader(in)
	line, _ := reader.ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
