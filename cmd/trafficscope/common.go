package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/trafficscope/trafficscope/internal/observability"
	"github.com/trafficscope/trafficscope/pkg/config"
	"github.com/trafficscope/trafficscope/pkg/segment"
)

// loadConfig resolves the config file, applies persistent flag overrides and
// validates the result. An explicit --config path must exist.
func loadConfig(g *globalOpts) (*config.Config, error) {
	path := g.configPath
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else if cwd, err := os.Getwd(); err == nil {
		path = config.FindConfigFile(cwd)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	cfg.Logging.Level = firstNonEmpty(g.logLevel, cfg.Logging.Level)
	cfg.Logging.Format = firstNonEmpty(g.logFormat, cfg.Logging.Format)
	return cfg, nil
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	return observability.NewLogger(w, cfg.Logging.Level, cfg.Logging.Format)
}

// loadSegments reads every input path and logs what was skipped.
func loadSegments(logger *slog.Logger, paths []string) (*segment.LoadResult, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no input paths given (use --input or input.paths in config)")
	}
	res, err := segment.NewLoader(logger).LoadPaths(paths...)
	if err != nil {
		return nil, fmt.Errorf("loading segments: %w", err)
	}
	logger.Info("segments loaded", "files", len(res.Files), "records", len(res.Records), "skipped", res.Skipped)
	if res.Skipped > 0 {
		logger.Warn("features skipped for missing or malformed properties", "count", res.Skipped)
	}
	if len(res.Records) == 0 {
		logger.Warn("no valid segments in input", "files", res.Files)
	}
	return res, nil
}

// simulationOpts are the --simulate and --seed flags shared by analyze and list.
type simulationOpts struct {
	simulate bool
	seed     uint64
	seedSet  bool
}

func (o *simulationOpts) addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVar(&o.simulate, "simulate", false, "Fill missing weather, road class and forecast with seeded values")
	f.Uint64Var(&o.seed, "seed", 1, "Seed for --simulate")
}

// apply overrides the config's input section. seedSet must be filled from
// cmd.Flags().Changed("seed") before the command runs.
func (o simulationOpts) apply(cfg *config.Config) {
	if o.simulate {
		cfg.Input.Simulate = true
	}
	if o.seedSet {
		cfg.Input.Seed = o.seed
	}
}

// simulate fills missing segment context in place when simulation is enabled.
func simulate(logger *slog.Logger, cfg *config.Config, records []segment.Record) {
	if !cfg.Input.Simulate {
		return
	}
	logger.Info("simulating missing segment context", "seed", cfg.Input.Seed)
	segment.NewSimulator(cfg.Input.Seed).FillAll(records)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
