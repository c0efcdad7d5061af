package surface

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/trafficscope/trafficscope/pkg/recommend"
	"github.com/trafficscope/trafficscope/pkg/scoring"
)

// TerminalRenderer renders a run as colored terminal panels, one per segment.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func tierColor(t scoring.Tier) string {
	if noColor() {
		return ""
	}
	switch t {
	case scoring.Tier1:
		return colorRed
	case scoring.Tier2:
		return colorYellow
	case scoring.Tier3:
		return colorGreen
	case scoring.Tier4:
		return colorBlue
	default:
		return ""
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r *TerminalRenderer) Render(w io.Writer, run *recommend.Run) error {
	sum := run.Summary()

	fmt.Fprintf(w, "%s\n", bold(fmt.Sprintf("trafficscope: %d segments analysed", sum.Total)))
	fmt.Fprintf(w, "%s\n\n", dim(fmt.Sprintf("run %s at %s", run.ID, run.CreatedAt.Format("2006-01-02 15:04:05 MST"))))

	if sum.Total == 0 {
		fmt.Fprintln(w, "No segments.")
		fmt.Fprintln(w)
		return nil
	}

	var counts []string
	for _, t := range scoring.Tiers {
		counts = append(counts, colored(fmt.Sprintf("%s %s: %d", t, t.Label(), sum.ByTier[t]), tierColor(t)))
	}
	fmt.Fprintf(w, "Tiers: %s\n", strings.Join(counts, "  "))
	fmt.Fprintf(w, "Recommended spend: %s\n\n", sum.TotalCost.StringFixed(0))

	for _, rep := range run.Reports {
		renderPanel(w, rep)
	}
	return nil
}

func renderPanel(w io.Writer, rep recommend.Report) {
	tc := tierColor(rep.Tier)

	fmt.Fprintf(w, "%s %s\n", colored("●", tc), bold(rep.SegmentName))
	fmt.Fprintf(w, "  Tier %s (%s), severity %.1f\n",
		colored(rep.Tier.String(), tc), rep.TierLabel, rep.SeverityScore)
	fmt.Fprintf(w, "  Load (current/forecast): %.2f / %.2f\n", rep.CurrentLoad, rep.PredictiveLoad)
	for _, line := range wrapText(rep.Narrative, 70) {
		fmt.Fprintf(w, "    %s\n", dim(line))
	}

	fmt.Fprintln(w, "  Factors:")
	fmt.Fprintf(w, "    1. Road hierarchy: %s\n", rep.ClassExplanation)
	fmt.Fprintf(w, "    2. Weather: %s\n", rep.WeatherExplanation)
	fmt.Fprintf(w, "    3. Structure: %s\n", rep.StructuralExplanation)

	ra := rep.RecommendedAction
	fmt.Fprintf(w, "  Action: %s\n", bold(ra.Name))
	fmt.Fprintf(w, "    %s measure for %s and above, cost %s, projected load reduction %.0f%%\n",
		ra.StrengthLabel, ra.TargetTier, ra.Cost.StringFixed(0), ra.ProjectedLoadReductionPercent)
	fmt.Fprintln(w)
}

// wrapText wraps a string at the given width, returning lines.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]

	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
		} else {
			current += " " + word
		}
	}
	lines = append(lines, current)
	return lines
}
