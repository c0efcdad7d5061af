package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/trafficscope/trafficscope/pkg/action"
	"github.com/trafficscope/trafficscope/pkg/scoring"
)

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Show the mitigation action catalog and each action's utility",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(cmd.OutOrStdout(), action.DefaultCatalog())
		},
	}
}

func runCatalog(w io.Writer, c *action.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STRENGTH\tACTION\tCOST\tEFFECT\tUTILITY")
	for _, s := range action.Strengths {
		for _, d := range c.Group(s) {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%.0f%%\t%.3g\n",
				s, d.Name, d.Cost.StringFixed(0), d.EffectReduction*100, d.Utility())
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tier policy:")
	for _, t := range scoring.Tiers {
		info := t.Info()
		note := "best utility in group"
		if t == scoring.Tier4 {
			note = "first Minor action"
		}
		fmt.Fprintf(w, "  %s %-8s score > %-4s %s (%s)\n", t, info.Label, thresholdLabel(info.MinScore), info.Strength, note)
	}
	fmt.Fprintln(w, "  Arterial roads also consider Medium actions for Minor and Medium tiers.")
	return nil
}

func thresholdLabel(min float64) string {
	if min < 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f", min)
}
