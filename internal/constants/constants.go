package constants

import (
	"path/filepath"
	"time"
)

// Remote reverse-proxy layout (Debian-style nginx).
const (
	NginxSitesAvailable = "/etc/nginx/sites-available"
	NginxSitesEnabled   = "/etc/nginx/sites-enabled"
)

// Connection defaults
const (
	DefaultSSHPort = 22
	ConnectTimeout = 10 * time.Second
)

// DeployBasePath returns the deployments root for a remote user.
func DeployBasePath(user string) string {
	return filepath.Join("/home", user, "deployments")
}

// DeployPath returns the deployment directory for an app on the server.
func DeployPath(user, app string) string {
	return filepath.Join(DeployBasePath(user), app)
}

// NginxSitePath returns the sites-available path for an app.
func NginxSitePath(app string) string {
	return filepath.Join(NginxSitesAvailable, app)
}

// NginxSiteLink returns the sites-enabled symlink path for an app.
func NginxSiteLink(app string) string {
	return filepath.Join(NginxSitesEnabled, app)
}
