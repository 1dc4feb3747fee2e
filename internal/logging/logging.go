// Package logging configures the process-wide logger: timestamped
// human-readable lines written to stdout and mirrored to a date-named local
// file. Re-runs on the same day append to the same file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
)

// FileName returns the log file name for the given day.
func FileName(t time.Time) string {
	return fmt.Sprintf("dockhand-%s.log", t.Format("2006-01-02"))
}

// Setup points the standard logger at stdout and an append-only file under
// dir. The returned file must be closed by the caller.
func Setup(dir string, verbose bool) (*os.File, error) {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableColors:   true,
	})
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	path := filepath.Join(dir, FileName(time.Now()))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	log.SetOutput(io.MultiWriter(os.Stdout, f))
	return f, nil
}
