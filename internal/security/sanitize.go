// Package security validates operator-supplied identifiers and escapes
// values before they are interpolated into remote shell commands.
package security

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	// appNameRegex validates application names. They end up as Docker
	// container names, image tags, and nginx site file names.
	appNameRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9._-]{0,61}[a-z0-9])?$`)

	// unixUserRegex validates remote usernames (POSIX rules).
	unixUserRegex = regexp.MustCompile(`^[a-z_][a-z0-9_-]{0,31}$`)

	// portRegex accepts digits only. Signed, floating-point, and empty
	// inputs are all rejected.
	portRegex = regexp.MustCompile(`^[0-9]+$`)
)

// ValidateAppName validates an application name derived from a repository URL.
func ValidateAppName(name string) error {
	if name == "" {
		return fmt.Errorf("app name cannot be empty")
	}
	if len(name) > 63 {
		return fmt.Errorf("app name too long (max 63 characters)")
	}
	if !appNameRegex.MatchString(name) {
		return fmt.Errorf("app name must contain only lowercase letters, numbers, dots, underscores, and hyphens")
	}
	return nil
}

// ValidateUnixUser validates a remote Unix username.
func ValidateUnixUser(user string) error {
	if user == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if len(user) > 32 {
		return fmt.Errorf("username too long (max 32 characters)")
	}
	if !unixUserRegex.MatchString(user) {
		return fmt.Errorf("username must start with a lowercase letter or underscore, followed by lowercase letters, numbers, underscores, or hyphens")
	}
	return nil
}

// ValidatePort checks that raw is composed only of digits.
func ValidatePort(raw string) error {
	if raw == "" {
		return fmt.Errorf("port cannot be empty")
	}
	if !portRegex.MatchString(raw) {
		return fmt.Errorf("port must contain only digits, got %q", raw)
	}
	return nil
}

// ShellEscape escapes a string for safe use in shell commands by wrapping it
// in single quotes and escaping any internal single quotes using the POSIX
// pattern: ' → '\''
func ShellEscape(s string) string {
	escaped := strings.ReplaceAll(s, "'", `'\''`)
	return "'" + escaped + "'"
}

// MaskURL strips any userinfo (embedded access token) from a URL before it
// is logged. Unparseable values are returned unchanged.
func MaskURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	u.User = url.User("****")
	return u.String()
}
