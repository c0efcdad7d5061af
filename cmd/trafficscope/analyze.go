package main

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/trafficscope/trafficscope/internal/export"
	"github.com/trafficscope/trafficscope/internal/observability"
	"github.com/trafficscope/trafficscope/pkg/recommend"
	"github.com/trafficscope/trafficscope/pkg/segment"
	"github.com/trafficscope/trafficscope/pkg/surface"
)

func newAnalyzeCmd(g *globalOpts) *cobra.Command {
	var opts analyzeOpts

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score segments and recommend mitigation actions",
		Long: `Loads road segments, scores their congestion severity, selects the most
cost-efficient action for each, and renders the reports.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.simulation.seedSet = cmd.Flags().Changed("seed")
			return runAnalyze(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), g, opts)
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&opts.inputs, "input", "i", nil, "GeoJSON file or directory (repeatable; default from config)")
	f.StringVar(&opts.segment, "segment", "", "Analyse only the segment with this name")
	f.StringVarP(&opts.outputFmt, "output", "o", "", "Output format: terminal, json, markdown, html, csv")
	opts.simulation.addFlags(cmd)
	f.BoolVar(&opts.export, "export", false, "Store the rendered report in the configured export backend")
	f.StringVar(&opts.metricsFile, "metrics-file", "", "Write prometheus metrics to this textfile")

	return cmd
}

type analyzeOpts struct {
	inputs      []string
	segment     string
	outputFmt   string
	simulation  simulationOpts
	export      bool
	metricsFile string
}

func runAnalyze(ctx context.Context, stdout, stderr io.Writer, g *globalOpts, opts analyzeOpts) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	if opts.outputFmt != "" {
		cfg.Output.Format = opts.outputFmt
	}
	if len(opts.inputs) > 0 {
		cfg.Input.Paths = opts.inputs
	}
	opts.simulation.apply(cfg)
	cfg.Metrics.Textfile = firstNonEmpty(opts.metricsFile, cfg.Metrics.Textfile)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(stderr, cfg)

	loaded, err := loadSegments(logger, cfg.Input.Paths)
	if err != nil {
		return err
	}
	// Simulate over the whole batch so a segment's values do not depend on the filter.
	simulate(logger, cfg, loaded.Records)

	records := loaded.Records
	if opts.segment != "" {
		records, err = selectSegment(records, opts.segment)
		if err != nil {
			return err
		}
	}

	run := recommend.NewEngine(recommend.WithLogger(logger)).AnalyzeAll(records)
	sum := run.Summary()
	logger.Info("analysis complete", "run_id", run.ID, "segments", sum.Total, "max_score", sum.MaxScore)

	format, err := surface.LookupFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := format.New().Render(&buf, run); err != nil {
		return fmt.Errorf("rendering %s: %w", format.Name, err)
	}
	if _, err := stdout.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if opts.export {
		store, err := export.New(ctx, cfg.Export)
		if err != nil {
			return fmt.Errorf("creating report store: %w", err)
		}
		if store == nil {
			return fmt.Errorf("--export given but export.backend is %q", cfg.Export.Backend)
		}
		defer store.Close()

		name := "report" + format.Extension
		if err := store.PutReport(ctx, run.ID, name, format.ContentType, buf.Bytes()); err != nil {
			return fmt.Errorf("exporting report: %w", err)
		}
		logger.Info("report exported", "location", store.Location(run.ID, name))
	}

	if cfg.Metrics.Textfile != "" {
		m := observability.NewMetrics()
		m.FeaturesSkipped.Add(float64(loaded.Skipped))
		m.ObserveRun(run)
		if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			return err
		}
		logger.Debug("metrics written", "path", cfg.Metrics.Textfile)
	}

	return nil
}

// selectSegment returns the records whose name matches exactly.
func selectSegment(records []segment.Record, name string) ([]segment.Record, error) {
	var out []segment.Record
	for _, r := range records {
		if r.Name == name {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("segment %q not found", name)
	}
	return out, nil
}
