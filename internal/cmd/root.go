// Package cmd wires the command-line interface. One root command runs the
// deploy pipeline; --cleanup switches it to teardown.
package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nroussel/dockhand/internal/config"
	"github.com/nroussel/dockhand/internal/deploy"
	"github.com/nroussel/dockhand/internal/logging"
)

var (
	// Version is set at build time
	Version = "dev"

	verbose     bool
	yesFlag     bool // CI/CD: skip confirmations
	cleanupFlag bool
	paramsFile  string
	baseDir     string

	flagRepo    string
	flagToken   string
	flagBranch  string
	flagUser    string
	flagHost    string
	flagKey     string
	flagSSHPort int
	flagPort    string

	// logFile stays open until main has written its final error line.
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "dockhand",
	Short: "Deploy a containerized application to a remote host",
	Long: `dockhand provisions a remote Linux host over SSH and deploys a
containerized application onto it, fronted by an nginx reverse proxy.

It fetches the repository, verifies a Dockerfile or compose manifest is
present, installs docker and nginx on the target, transfers the checkout,
starts the containers, and publishes the app on port 80.

Parameters come from flags, a YAML file (--params), or interactive
prompts. The access token is read without echo.

Quick start:
  dockhand --repo https://github.com/acme/webapp.git \
           --user deploy --host 203.0.113.10 --port 3000
  dockhand --cleanup --repo ... --user ... --host ...   # tear it down

CI/CD Environment Variables:
  DOCKHAND_SSH_KEY          SSH private key content
  DOCKHAND_STRICT_HOST_KEY  Verify host keys against known_hosts (true/false)`,
	Version:       Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command, for documentation generation.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed logs")
	rootCmd.PersistentFlags().BoolVarP(&yesFlag, "yes", "y", false, "Skip confirmations (CI/CD mode)")

	rootCmd.Flags().BoolVar(&cleanupFlag, "cleanup", false, "Remove the deployment instead of installing it")
	rootCmd.Flags().StringVar(&paramsFile, "params", "", "YAML parameters file")
	rootCmd.Flags().StringVar(&baseDir, "base-dir", ".", "Local directory for checkouts and the log file")

	rootCmd.Flags().StringVar(&flagRepo, "repo", "", "Repository URL")
	rootCmd.Flags().StringVar(&flagToken, "token", "", "Access token for private repositories")
	rootCmd.Flags().StringVar(&flagBranch, "branch", "", "Branch to deploy (default \"main\")")
	rootCmd.Flags().StringVar(&flagUser, "user", "", "Remote username")
	rootCmd.Flags().StringVar(&flagHost, "host", "", "Remote host")
	rootCmd.Flags().StringVar(&flagKey, "key", "", "SSH private key path")
	rootCmd.Flags().IntVar(&flagSSHPort, "ssh-port", 0, "SSH port (default 22)")
	rootCmd.Flags().StringVar(&flagPort, "port", "", "Application port the container listens on")

	rootCmd.SetVersionTemplate(`dockhand {{.Version}}
`)
}

// CloseLog closes the run's log file. main calls it after logging the final
// error line, so fatal failures reach the file before it closes.
func CloseLog() {
	if logFile == nil {
		return
	}
	log.SetOutput(os.Stderr)
	logFile.Close()
	logFile = nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	f, err := logging.Setup(baseDir, verbose)
	if err != nil {
		return err
	}
	logFile = f

	p, err := collectParams(os.Stdin)
	if err != nil {
		return err
	}

	opts := deploy.DefaultOptions(baseDir)

	if cleanupFlag {
		if isInteractive() && !confirmCleanup(os.Stdin, p) {
			log.Info("Cleanup aborted")
			return nil
		}
		return deploy.Cleanup(p, opts)
	}
	return deploy.Deploy(p, opts)
}

// collectParams layers the parameter sources: the YAML file first, flags on
// top, and interactive prompts for whatever is still missing.
func collectParams(in *os.File) (*config.Params, error) {
	p := &config.Params{}

	if paramsFile != "" {
		loaded, err := config.Load(paramsFile)
		if err != nil {
			return nil, err
		}
		p = loaded
	}

	p.Merge(&config.Params{
		RepoURL: flagRepo,
		Token:   flagToken,
		Branch:  flagBranch,
		User:    flagUser,
		Host:    flagHost,
		KeyPath: flagKey,
		SSHPort: flagSSHPort,
		Port:    config.PortValue(flagPort),
	})

	if err := promptMissing(p, in); err != nil {
		return nil, fmt.Errorf("parameter collection failed: %w", err)
	}

	p.ApplyDefaults()
	return p, nil
}

// isInteractive returns true if stdin is a terminal and --yes was not given.
func isInteractive() bool {
	if yesFlag {
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}
