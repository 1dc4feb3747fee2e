// Package nginx generates and installs the reverse-proxy site configuration
// on the target host.
package nginx

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/nroussel/dockhand/internal/constants"
	"github.com/nroussel/dockhand/internal/ssh"
)

// siteTemplate routes all request paths on port 80 to the local application
// port, forwarding the standard proxy headers.
var siteTemplate = template.Must(template.New("site").Parse(`# {{ .App }} - generated by dockhand
server {
    listen 80;
    server_name _;

    location / {
        proxy_pass http://127.0.0.1:{{ .Port }};
        proxy_set_header Host $host;
        proxy_set_header X-Real-IP $remote_addr;
        proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;
        proxy_set_header X-Forwarded-Proto $scheme;
    }
}
`))

// Site is the data for one generated site file.
type Site struct {
	App  string
	Port int
}

// GenerateSite renders the reverse-proxy site file for s.
func GenerateSite(s Site) (string, error) {
	var buf bytes.Buffer
	if err := siteTemplate.Execute(&buf, s); err != nil {
		return "", fmt.Errorf("failed to render site config: %w", err)
	}
	return buf.String(), nil
}

// InstallSteps returns the remote sequence that writes the site file,
// activates it, validates the server's global configuration syntax, and
// reloads the proxy. The syntax check runs before the reload and aborts the
// script on failure.
func InstallSteps(app, content string) []ssh.Step {
	sitePath := constants.NginxSitePath(app)
	return []ssh.Step{
		{
			Name:   "write site file",
			Cmd:    ssh.UploadCommand(content, sitePath, true),
			Policy: ssh.Fatal,
		},
		{
			Name:   "enable site",
			Cmd:    fmt.Sprintf("sudo ln -sf %s %s", sitePath, constants.NginxSiteLink(app)),
			Policy: ssh.Fatal,
		},
		{
			Name:   "config syntax check",
			Cmd:    "sudo nginx -t",
			Policy: ssh.Fatal,
		},
		{
			Name:   "reload proxy",
			Cmd:    "sudo systemctl reload nginx",
			Policy: ssh.Fatal,
		},
	}
}

// RemoveSteps returns the remote sequence that removes the site file, its
// symlink, and reloads the proxy. Reload failure is tolerated during
// cleanup.
func RemoveSteps(app string) []ssh.Step {
	return []ssh.Step{
		{
			Name:   "remove site file",
			Cmd:    fmt.Sprintf("sudo rm -f %s %s", constants.NginxSitePath(app), constants.NginxSiteLink(app)),
			Policy: ssh.Fatal,
		},
		{
			Name:   "reload proxy",
			Cmd:    "sudo systemctl reload nginx",
			Policy: ssh.Advisory,
		},
	}
}

// Configure renders the site for app and installs it on the target.
func Configure(e ssh.Executor, app string, port int) error {
	content, err := GenerateSite(Site{App: app, Port: port})
	if err != nil {
		return err
	}
	return ssh.RunScript(e, InstallSteps(app, content))
}
