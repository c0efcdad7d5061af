package surface

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/trafficscope/trafficscope/pkg/recommend"
)

// CSVRenderer writes one row per segment, suitable for spreadsheets.
type CSVRenderer struct{}

var csvHeader = []string{
	"segment", "road_class", "weather", "lanes", "current_load", "predictive_load",
	"severity_score", "tier", "tier_label", "action", "action_strength", "action_cost",
	"load_reduction_percent",
}

func (r *CSVRenderer) Render(w io.Writer, run *recommend.Run) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, rep := range run.Reports {
		ra := rep.RecommendedAction
		row := []string{
			rep.SegmentName,
			string(rep.RoadClass),
			string(rep.Weather),
			strconv.Itoa(rep.Lanes),
			strconv.FormatFloat(rep.CurrentLoad, 'f', 2, 64),
			strconv.FormatFloat(rep.PredictiveLoad, 'f', 2, 64),
			strconv.FormatFloat(rep.SeverityScore, 'f', 1, 64),
			rep.Tier.String(),
			rep.TierLabel,
			ra.Name,
			string(ra.StrengthLabel),
			ra.Cost.StringFixed(0),
			strconv.FormatFloat(ra.ProjectedLoadReductionPercent, 'f', 0, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %q: %w", rep.SegmentName, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
