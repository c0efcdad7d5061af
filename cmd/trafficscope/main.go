// Package main provides the trafficscope CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var version = "dev"

// globalOpts holds the persistent flags shared by every subcommand.
type globalOpts struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	g := &globalOpts{}

	rootCmd := &cobra.Command{
		Use:   "trafficscope",
		Short: "Congestion severity scoring for road networks",
		Long: `trafficscope loads road segments from GeoJSON, scores each segment's
congestion severity, and recommends the most cost-efficient mitigation.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "Path to config file (default: .trafficscope/config.yaml in this or a parent directory)")
	pf.StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&g.logFormat, "log-format", "", "Log format: text or json")

	rootCmd.AddCommand(
		newAnalyzeCmd(g),
		newListCmd(g),
		newCatalogCmd(),
	)
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
