package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "terminal", cfg.Output.Format)
	assert.Equal(t, "none", cfg.Export.Backend)
	assert.False(t, cfg.ExportEnabled(), "expected export disabled by default")
	assert.Equal(t, []string{"data"}, cfg.Input.Paths)
	assert.NoError(t, cfg.Validate(), "default config should validate")
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		missing bool
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:    "non-existent file returns defaults",
			missing: true,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "terminal", cfg.Output.Format)
				assert.Equal(t, uint64(1), cfg.Input.Seed)
			},
		},
		{
			name: "valid YAML overrides defaults",
			yaml: `
input:
  paths: [roads, extra/ring.geojson]
  simulate: true
  seed: 99
output:
  format: markdown
export:
  backend: s3
  bucket: traffic-reports
  endpoint: http://localhost:9000
logging:
  level: debug
  format: json
metrics:
  textfile: /var/lib/node_exporter/trafficscope.prom
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"roads", "extra/ring.geojson"}, cfg.Input.Paths)
				assert.True(t, cfg.Input.Simulate)
				assert.Equal(t, uint64(99), cfg.Input.Seed)
				assert.Equal(t, "markdown", cfg.Output.Format)
				assert.Equal(t, "traffic-reports", cfg.Export.Bucket)
				assert.Equal(t, "http://localhost:9000", cfg.Export.Endpoint)
				assert.Equal(t, "us-east-1", cfg.Export.Region, "region default should survive a partial export section")
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.NotEmpty(t, cfg.Metrics.Textfile)
			},
		},
		{
			name:    "invalid YAML returns error",
			yaml:    "{{invalid yaml",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if !tc.missing {
				require.NoError(t, os.WriteFile(path, []byte(tc.yaml), 0o644))
			}

			cfg, err := Load(path)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tc.check != nil {
				tc.check(t, cfg)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TRAFFICSCOPE_INPUT", strings.Join([]string{"a", "b"}, string(os.PathListSeparator)))
	t.Setenv("TRAFFICSCOPE_SIMULATE", "true")
	t.Setenv("TRAFFICSCOPE_SEED", "not-a-number")
	t.Setenv("TRAFFICSCOPE_OUTPUT", "csv")
	t.Setenv("TRAFFICSCOPE_EXPORT_BACKEND", "gcs")
	t.Setenv("TRAFFICSCOPE_EXPORT_BUCKET", "city-traffic")
	t.Setenv("TRAFFICSCOPE_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, cfg.Input.Paths)
	assert.True(t, cfg.Input.Simulate)
	assert.Equal(t, uint64(1), cfg.Input.Seed, "malformed seed should be ignored")
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.Equal(t, "gcs", cfg.Export.Backend)
	assert.Equal(t, "city-traffic", cfg.Export.Bucket)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{name: "unknown format", mutate: func(c *Config) { c.Output.Format = "pdf" }, wantErr: "unknown output format"},
		{name: "unknown backend", mutate: func(c *Config) { c.Export.Backend = "ftp" }, wantErr: "unknown export backend"},
		{name: "s3 without bucket", mutate: func(c *Config) { c.Export.Backend = "s3" }, wantErr: "export.bucket"},
		{name: "local without dir", mutate: func(c *Config) { c.Export.Backend = "local"; c.Export.Dir = "" }, wantErr: "export.dir"},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "verbose" }, wantErr: "unknown log level"},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "unknown log format"},
		{name: "local ok", mutate: func(c *Config) { c.Export.Backend = "local" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	root := t.TempDir()
	cfgDir := filepath.Join(root, ".trafficscope")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	cfgPath := filepath.Join(cfgDir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output:\n  format: json\n"), 0o644))

	nested := filepath.Join(root, "data", "moscow")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Equal(t, cfgPath, FindConfigFile(nested))
	assert.Empty(t, FindConfigFile(t.TempDir()))
}
