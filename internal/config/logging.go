package config

import (
	"os"
	"path/filepath"

	"github.com/rshade/sift/internal/logging"
)

// LoggingConfig is the logging section of the config file.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// ToLoggingConfig converts the config section to a logging.Config.
//
// The conversion applies these rules:
//   - Level, Format are copied directly
//   - If File is set, Output becomes "file" and File is passed through
//   - If File is empty, Output defaults to "stderr"
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// DefaultLogFile returns the log file used by the interactive browser.
func DefaultLogFile() string {
	dir, err := HomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), logFileName)
	}
	return filepath.Join(dir, logFileName)
}
