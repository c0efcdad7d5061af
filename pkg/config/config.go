// Package config handles loading and managing trafficscope configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/trafficscope/trafficscope/pkg/surface"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TRAFFICSCOPE_"

// Config is the top-level configuration for trafficscope.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// InputConfig controls where segments are read from.
type InputConfig struct {
	Paths    []string `yaml:"paths"`
	Simulate bool     `yaml:"simulate"` // fill missing weather, class and forecast
	Seed     uint64   `yaml:"seed"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Format string `yaml:"format"`
}

// ExportConfig selects where rendered reports are stored.
type ExportConfig struct {
	Backend  string `yaml:"backend"` // none, local, s3, gcs
	Dir      string `yaml:"dir"`     // local backend root
	Bucket   string `yaml:"bucket"`
	Prefix   string `yaml:"prefix"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"` // custom S3 endpoint, e.g. MinIO
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// MetricsConfig controls the prometheus textfile written after each run.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Paths: []string{"data"},
			Seed:  1,
		},
		Output: OutputConfig{
			Format: "terminal",
		},
		Export: ExportConfig{
			Backend: "none",
			Dir:     "reports",
			Region:  "us-east-1",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
// Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	ApplyEnv(cfg)
	return cfg, nil
}

// FindConfigFile looks for .trafficscope/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".trafficscope", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// ApplyEnv overlays TRAFFICSCOPE_* environment variables onto cfg.
// Malformed numeric or boolean values are ignored.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvPrefix + "INPUT"); v != "" {
		cfg.Input.Paths = filepath.SplitList(v)
	}
	if v := os.Getenv(EnvPrefix + "SIMULATE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Input.Simulate = b
		}
	}
	if v := os.Getenv(EnvPrefix + "SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Input.Seed = n
		}
	}
	if v := os.Getenv(EnvPrefix + "OUTPUT"); v != "" {
		cfg.Output.Format = v
	}
	if v := os.Getenv(EnvPrefix + "EXPORT_BACKEND"); v != "" {
		cfg.Export.Backend = v
	}
	if v := os.Getenv(EnvPrefix + "EXPORT_DIR"); v != "" {
		cfg.Export.Dir = v
	}
	if v := os.Getenv(EnvPrefix + "EXPORT_BUCKET"); v != "" {
		cfg.Export.Bucket = v
	}
	if v := os.Getenv(EnvPrefix + "EXPORT_PREFIX"); v != "" {
		cfg.Export.Prefix = v
	}
	if v := os.Getenv(EnvPrefix + "EXPORT_REGION"); v != "" {
		cfg.Export.Region = v
	}
	if v := os.Getenv(EnvPrefix + "EXPORT_ENDPOINT"); v != "" {
		cfg.Export.Endpoint = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv(EnvPrefix + "METRICS_TEXTFILE"); v != "" {
		cfg.Metrics.Textfile = v
	}
}

// Validate reports every invalid setting in cfg.
func (c *Config) Validate() error {
	var errs []error

	if _, err := surface.LookupFormat(c.Output.Format); err != nil {
		errs = append(errs, err)
	}

	switch strings.ToLower(c.Export.Backend) {
	case "", "none":
	case "local":
		if c.Export.Dir == "" {
			errs = append(errs, errors.New("export.dir is required for the local backend"))
		}
	case "s3", "gcs":
		if c.Export.Bucket == "" {
			errs = append(errs, fmt.Errorf("export.bucket is required for the %s backend", c.Export.Backend))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown export backend %q", c.Export.Backend))
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Logging.Format))
	}

	return errors.Join(errs...)
}

// ExportEnabled reports whether a report store is configured.
func (c *Config) ExportEnabled() bool {
	b := strings.ToLower(c.Export.Backend)
	return b != "" && b != "none"
}
