package scoring

import (
	"math"

	"github.com/trafficscope/trafficscope/pkg/segment"
)

// Score computes the congestion severity of a single segment.
//
// The base score is the worse of current and forecast load as a percentage,
// plus fixed bumps for crossroads, signal control and narrow carriageways. It
// is then scaled by the weather multiplier and the road-class weight and
// clamped to MaxScore. Negative loads are not rejected and can produce a
// negative score.
func Score(rec segment.Record) SeverityResult {
	return defaults.Score(rec)
}

// Score computes the severity of rec using w instead of the default
// constants. Tier thresholds are fixed and do not depend on w.
func (w Weights) Score(rec segment.Record) SeverityResult {
	lanes := w.lanes(rec.WidthMeters)

	base := math.Max(rec.CurrentLoad, rec.EffectivePredictiveLoad()) * 100
	if rec.IsCrossroad {
		base += w.CrossroadBonus
	}
	if rec.IsControlled {
		base += w.ControlledBonus
	}
	if lanes <= w.NarrowMaxLanes {
		base += w.NarrowBonus
	}

	weather := rec.WeatherOrDefault()
	class := rec.ClassOrDefault()
	wm := w.weatherMultiplier(weather)
	cw := w.classWeight(class)

	raw := base * wm * cw
	score := math.Min(raw, w.MaxScore)

	return SeverityResult{
		Score:             score,
		Tier:              ClassifyTier(score),
		BaseScore:         base,
		RawScore:          raw,
		WeatherMultiplier: wm,
		ClassWeight:       cw,
		Lanes:             lanes,
		Weather:           weather,
		Class:             class,
	}
}
