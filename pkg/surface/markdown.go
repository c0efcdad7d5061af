package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/trafficscope/trafficscope/pkg/recommend"
	"github.com/trafficscope/trafficscope/pkg/scoring"
)

// MarkdownRenderer produces a markdown summary table followed by per-segment findings.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(w io.Writer, run *recommend.Run) error {
	_, err := io.WriteString(w, BuildMarkdown(run))
	return err
}

// BuildMarkdown renders run as a markdown document.
func BuildMarkdown(run *recommend.Run) string {
	var sb strings.Builder
	sum := run.Summary()

	sb.WriteString(fmt.Sprintf("## trafficscope: %d segments analysed\n\n", sum.Total))
	sb.WriteString(fmt.Sprintf("_Run `%s` at %s_\n\n", run.ID, run.CreatedAt.Format("2006-01-02 15:04 MST")))

	// Tier counts
	sb.WriteString("### Tiers\n\n")
	sb.WriteString("| Tier | Label | Segments |\n|------|-------|----------|\n")
	for _, t := range scoring.Tiers {
		sb.WriteString(fmt.Sprintf("| %s %s | %s | %d |\n", tierIcon(t), t, t.Label(), sum.ByTier[t]))
	}
	sb.WriteString(fmt.Sprintf("\nRecommended spend: **%s**\n\n", sum.TotalCost.StringFixed(0)))

	if sum.Total == 0 {
		return sb.String()
	}

	// Segment table
	sb.WriteString("### Segments\n\n")
	sb.WriteString("| Segment | Score | Tier | Load | Action | Cost |\n|---------|-------|------|------|--------|------|\n")
	for _, rep := range run.Reports {
		sb.WriteString(fmt.Sprintf("| %s | %.1f | %s | %.2f / %.2f | %s | %s |\n",
			escapeMarkdown(rep.SegmentName), rep.SeverityScore, rep.Tier,
			rep.CurrentLoad, rep.PredictiveLoad,
			escapeMarkdown(rep.RecommendedAction.Name), rep.RecommendedAction.Cost.StringFixed(0)))
	}
	sb.WriteString("\n")

	// Findings
	sb.WriteString("### Findings\n\n")
	for _, rep := range run.Reports {
		ra := rep.RecommendedAction
		sb.WriteString(fmt.Sprintf("#### %s %s\n\n", tierIcon(rep.Tier), escapeMarkdown(rep.SegmentName)))
		sb.WriteString(fmt.Sprintf("**%s (%s)**, severity %.1f. %s\n\n", rep.Tier, rep.TierLabel, rep.SeverityScore, rep.Narrative))
		sb.WriteString(fmt.Sprintf("- Road hierarchy: %s\n", rep.ClassExplanation))
		sb.WriteString(fmt.Sprintf("- Weather: %s\n", rep.WeatherExplanation))
		sb.WriteString(fmt.Sprintf("- Structure: %s\n", rep.StructuralExplanation))
		sb.WriteString(fmt.Sprintf("- **Action: %s** (%s, cost %s, load reduction %.0f%%)\n\n",
			escapeMarkdown(ra.Name), ra.StrengthLabel, ra.Cost.StringFixed(0), ra.ProjectedLoadReductionPercent))
	}

	return sb.String()
}

func tierIcon(t scoring.Tier) string {
	switch t {
	case scoring.Tier1:
		return ":red_circle:"
	case scoring.Tier2:
		return ":orange_circle:"
	case scoring.Tier3:
		return ":green_circle:"
	default:
		return ":blue_circle:"
	}
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
	"|", `\|`,
)

// escapeMarkdown escapes user-supplied text for headings, emphasis and table cells.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
