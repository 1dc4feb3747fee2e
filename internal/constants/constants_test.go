package constants

import "testing"

func TestRemotePaths(t *testing.T) {
	if got := DeployPath("deploy", "myapp"); got != "/home/deploy/deployments/myapp" {
		t.Errorf("DeployPath() = %q", got)
	}
	if got := NginxSitePath("myapp"); got != "/etc/nginx/sites-available/myapp" {
		t.Errorf("NginxSitePath() = %q", got)
	}
	if got := NginxSiteLink("myapp"); got != "/etc/nginx/sites-enabled/myapp" {
		t.Errorf("NginxSiteLink() = %q", got)
	}
}
