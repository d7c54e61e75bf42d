// Package config loads sift configuration and persists user column widths.
//
// Configuration is read from ~/.sift/config.yaml (or SIFT_CONFIG) on top of built-in
// defaults; each top-level section present in the file replaces the default section.
// Environment variables override the file for logging settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvConfigPath = "SIFT_CONFIG"
	EnvHome       = "SIFT_HOME"
	EnvLogLevel   = "SIFT_LOG_LEVEL"
	EnvLogFormat  = "SIFT_LOG_FORMAT"
)

// File names under the sift home directory.
const (
	dirName        = ".sift"
	configFileName = "config.yaml"
	widthsFileName = "widths.json"
	logFileName    = "sift.log"
)

// Config is the complete sift configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	View    ViewConfig    `yaml:"view"`
}

// ViewConfig tunes the list view. Sizes are in terminal cells.
type ViewConfig struct {
	// RowHeight is the estimated row size fed to the virtualizer.
	RowHeight int `yaml:"row_height"`
	// Overscan is the number of rows rendered past each viewport edge.
	Overscan int `yaml:"overscan"`
	// Padding is the total horizontal padding around the table.
	Padding int `yaml:"padding"`
	// ScrollbarWidth is reserved next to the table for the scrollbar.
	ScrollbarWidth int `yaml:"scrollbar_width"`
	// SnapTolerance is how close manual widths must get to the viewport to re-lock.
	SnapTolerance int `yaml:"snap_tolerance"`
	// InspectorWidth is the width of the side inspector panel.
	InspectorWidth int `yaml:"inspector_width"`
	// CellWidth is the pixel width of one terminal cell used to scale column sizes.
	CellWidth int `yaml:"cell_width"`
	// SelectionPolicy is "remap" or "clear".
	SelectionPolicy string `yaml:"selection_policy"`
	// ShowHidden includes dotfiles in listings.
	ShowHidden bool `yaml:"show_hidden"`
	// PersistWidths saves manual column widths between sessions.
	PersistWidths bool `yaml:"persist_widths"`
	// IdentifyConcurrency bounds concurrent content identification.
	IdentifyConcurrency int `yaml:"identify_concurrency"`
}

// ErrInvalidConfig wraps validation failures.
var ErrInvalidConfig = errors.New("invalid configuration")

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "",
		},
		View: ViewConfig{
			RowHeight:           1,
			Overscan:            5,
			Padding:             2,
			ScrollbarWidth:      1,
			SnapTolerance:       2,
			InspectorWidth:      32,
			CellWidth:           8,
			SelectionPolicy:     "remap",
			ShowHidden:          false,
			PersistWidths:       true,
			IdentifyConcurrency: 4,
		},
	}
}

// Validate checks value ranges.
func (c Config) Validate() error {
	v := c.View
	switch {
	case v.RowHeight <= 0:
		return fmt.Errorf("%w: view.row_height must be > 0, got %d", ErrInvalidConfig, v.RowHeight)
	case v.Overscan < 0:
		return fmt.Errorf("%w: view.overscan must be >= 0, got %d", ErrInvalidConfig, v.Overscan)
	case v.Padding < 0 || v.ScrollbarWidth < 0 || v.InspectorWidth < 0:
		return fmt.Errorf("%w: view padding, scrollbar and inspector widths must be >= 0", ErrInvalidConfig)
	case v.SnapTolerance <= 0:
		return fmt.Errorf("%w: view.snap_tolerance must be > 0, got %d", ErrInvalidConfig, v.SnapTolerance)
	case v.CellWidth <= 0:
		return fmt.Errorf("%w: view.cell_width must be > 0, got %d", ErrInvalidConfig, v.CellWidth)
	case v.IdentifyConcurrency <= 0:
		return fmt.Errorf("%w: view.identify_concurrency must be > 0, got %d", ErrInvalidConfig, v.IdentifyConcurrency)
	case v.SelectionPolicy != "remap" && v.SelectionPolicy != "clear":
		return fmt.Errorf("%w: view.selection_policy must be remap or clear, got %q", ErrInvalidConfig, v.SelectionPolicy)
	}
	return nil
}

// HomeDir returns the sift state directory, honoring SIFT_HOME.
func HomeDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determining home directory: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// Path returns the config file path, honoring SIFT_CONFIG.
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// WidthsPath returns the column width store path.
func WidthsPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, widthsFileName), nil
}

// Load reads the config file at path over the defaults and applies environment
// overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		err := ShallowMergeYAML(&cfg, path)
		switch {
		case err == nil:
		case errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDefault loads the config from the default path.
func LoadDefault() (Config, error) {
	path, err := Path()
	if err != nil {
		return Config{}, err
	}
	return Load(path)
}

func (c *Config) applyEnv() {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
	if format := os.Getenv(EnvLogFormat); format != "" {
		c.Logging.Format = format
	}
}

// Save writes the config as YAML, creating parent directories.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
