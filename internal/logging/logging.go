// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/rohitvarshney-web/schengen-slots/internal/config"
)

// DefaultFileName is used for the TUI log when no file is configured.
const DefaultFileName = "schengen.log"

// Init applies level and format. Output goes to w; a configured log file
// always wins over w. The returned closer releases the file, if any.
func Init(cfg config.LogConfig, w io.Writer) (io.Closer, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true, DisableColors: cfg.File != ""})
	}

	if cfg.File == "" {
		log.SetOutput(w)
		return io.NopCloser(nil), nil
	}
	f, err := openFile(cfg.File)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	return f, nil
}

// InitForTUI is Init with the output forced into a file, since the
// terminal belongs to the dashboard.
func InitForTUI(cfg config.LogConfig) (io.Closer, error) {
	if cfg.File == "" {
		dir, err := config.Dir()
		if err != nil {
			return nil, err
		}
		cfg.File = filepath.Join(dir, DefaultFileName)
	}
	return Init(cfg, io.Discard)
}

func openFile(p string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
