package recommend

import (
	"fmt"

	"github.com/trafficscope/trafficscope/pkg/action"
	"github.com/trafficscope/trafficscope/pkg/scoring"
	"github.com/trafficscope/trafficscope/pkg/segment"
)

type weatherText struct {
	description string
	color       string
}

var weatherTexts = map[segment.WeatherImpact]weatherText{
	segment.WeatherNormal:  {"none (normal conditions)", "#000000"},
	segment.WeatherRainFog: {"elevated (rain/fog), which raises accident risk and lowers speeds", "#1E90FF"},
	segment.WeatherSnowIce: {"critical (snow/ice), which seriously threatens capacity", "#DC143C"},
}

// Compose merges a segment's severity and action selection into a Report.
// It performs no scoring of its own.
func Compose(rec segment.Record, sev scoring.SeverityResult, sel action.Selection) Report {
	info := sev.Tier.Info()
	pred := rec.EffectivePredictiveLoad()
	wt := weatherTexts[sev.Weather]
	if wt.color == "" {
		wt = weatherTexts[segment.WeatherNormal]
	}

	return Report{
		SegmentName:    rec.Name,
		SeverityScore:  sev.Score,
		Tier:           sev.Tier,
		TierLabel:      info.Label,
		CurrentLoad:    rec.CurrentLoad,
		PredictiveLoad: pred,

		Narrative:             sev.Tier.Narrative(pred),
		WeatherExplanation:    fmt.Sprintf("Severity multiplier %s (x%.2f): %s.", sev.Weather, sev.WeatherMultiplier, wt.description),
		ClassExplanation:      classExplanation(sev.Class, sev.ClassWeight),
		StructuralExplanation: structuralExplanation(rec, sev.Lanes),

		RecommendedAction: RecommendedAction{
			Name:                          sel.Action.Name,
			StrengthLabel:                 sel.Strength,
			TargetTier:                    sev.Tier,
			Cost:                          sel.Action.Cost,
			ProjectedLoadReductionPercent: sel.Action.EffectReduction * 100,
			Utility:                       sel.Utility,
			Default:                       sel.Override,
		},

		StatusColor:     info.StatusColor,
		BackgroundColor: info.BackgroundColor,
		WeatherColor:    wt.color,
		Lanes:           sev.Lanes,
		Weather:         sev.Weather,
		RoadClass:       sev.Class,
		LengthMeters:    rec.LengthMeters,
	}
}

func classExplanation(c segment.RoadClass, weight float64) string {
	if c == segment.ClassLocal {
		return fmt.Sprintf("%q (weight x%.2f). The problem is localised, so targeted fixes are enough.", c, weight)
	}
	return fmt.Sprintf("%q (weight x%.2f). Any deterioration here has a wide network effect.", c, weight)
}

func structuralExplanation(rec segment.Record, lanes int) string {
	kind := "An ordinary segment"
	if rec.IsCrossroad {
		kind = "A crossroad"
	}
	control := "without signal control"
	if rec.IsControlled {
		control = "with signal control"
	}
	noun := "lanes"
	if lanes == 1 {
		noun = "lane"
	}
	return fmt.Sprintf("%s with %d %s, %s.", kind, lanes, noun, control)
}
