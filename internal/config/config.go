// Package config holds the user-facing settings for prettyplots: where
// figures land, the default output format, the gallery database, and
// watch-mode tuning. Settings live in a YAML file and can be overridden
// per-invocation through PRETTYPLOTS_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	// Output controls where and how rendered figures are written.
	Output OutputConfig `yaml:"output"`

	// Gallery configures the render history database.
	Gallery GalleryConfig `yaml:"gallery"`

	// Watch configures recipe watch mode.
	Watch WatchConfig `yaml:"watch"`

	// Logging configuration.
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig controls figure output.
type OutputConfig struct {
	Dir    string  `yaml:"dir"`    // default directory for rendered figures
	Format string  `yaml:"format"` // default extension when a recipe names none
	DPI    float64 `yaml:"dpi"`    // raster formats only
}

// GalleryConfig configures the render history store.
type GalleryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // sqlite database file
}

// WatchConfig tunes recipe watch mode.
type WatchConfig struct {
	Debounce string `yaml:"debounce"` // settle time after a file event
}

// LoggingConfig controls log verbosity and format.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:    ".",
			Format: "pdf",
			DPI:    96,
		},
		Gallery: GalleryConfig{
			Enabled: true,
			Path:    filepath.Join(".prettyplots", "gallery.db"),
		},
		Watch: WatchConfig{
			Debounce: "300ms",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the config at path, falling back to defaults when the
// file does not exist. Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the config to path, creating parent directories.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PRETTYPLOTS_OUTPUT_DIR"); v != "" {
		c.Output.Dir = v
	}
	if v := os.Getenv("PRETTYPLOTS_FORMAT"); v != "" {
		c.Output.Format = v
	}
	if v := os.Getenv("PRETTYPLOTS_DPI"); v != "" {
		if dpi, err := strconv.ParseFloat(v, 64); err == nil && dpi > 0 {
			c.Output.DPI = dpi
		}
	}
	if v := os.Getenv("PRETTYPLOTS_GALLERY"); v != "" {
		c.Gallery.Path = v
	}
	if v := os.Getenv("PRETTYPLOTS_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks settings that would otherwise fail deep inside a
// render.
func (c *Config) Validate() error {
	format := strings.TrimPrefix(c.Output.Format, ".")
	switch format {
	case "pdf", "png", "svg", "eps", "jpg", "jpeg", "tif", "tiff":
	default:
		return fmt.Errorf("unsupported output format %q", c.Output.Format)
	}
	if c.Output.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %v", c.Output.DPI)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}

// GetDebounce returns the watch debounce as a duration, falling back
// to 300ms on a missing or malformed value.
func (c *Config) GetDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		return 300 * time.Millisecond
	}
	return d
}

// Ext returns the default output format as a file extension.
func (c *Config) Ext() string {
	return "." + strings.TrimPrefix(c.Output.Format, ".")
}

// DefaultPath returns the conventional config location under the
// workspace root.
func DefaultPath(workspace string) string {
	return filepath.Join(workspace, ".prettyplots", "config.yaml")
}
