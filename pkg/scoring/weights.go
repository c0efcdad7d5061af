package scoring

import (
	"math"

	"github.com/trafficscope/trafficscope/pkg/segment"
)

// Weights holds the constants of the severity heuristic.
type Weights struct {
	// Structural bumps added to the load score
	CrossroadBonus  float64
	ControlledBonus float64
	NarrowBonus     float64
	NarrowMaxLanes  int // segments with at most this many lanes get NarrowBonus

	LaneWidthMeters float64
	MaxScore        float64

	ClassWeights       map[segment.RoadClass]float64
	WeatherMultipliers map[segment.WeatherImpact]float64
}

// Defaults returns the severity heuristic's constants.
func Defaults() Weights {
	return Weights{
		CrossroadBonus:  15,
		ControlledBonus: 5,
		NarrowBonus:     10,
		NarrowMaxLanes:  2,

		LaneWidthMeters: 3,
		MaxScore:        MaxScore,

		ClassWeights: map[segment.RoadClass]float64{
			segment.ClassArterial: 1.30,
			segment.ClassDistrict: 1.15,
			segment.ClassLocal:    0.90,
		},
		WeatherMultipliers: map[segment.WeatherImpact]float64{
			segment.WeatherNormal:  1.00,
			segment.WeatherRainFog: 1.15,
			segment.WeatherSnowIce: 1.30,
		},
	}
}

var defaults = Defaults()

// MaxScore is the upper bound of the severity index.
const MaxScore = 180.0

// LanesFromWidth estimates the lane count of a carriageway from its width in
// meters. Unknown (zero or negative) widths count as a single lane.
func LanesFromWidth(width float64) int {
	return defaults.lanes(width)
}

// ClassWeight returns the network-importance weight for a road class.
// Unknown or unrecognised classes weigh 1.0.
func ClassWeight(c segment.RoadClass) float64 {
	return defaults.classWeight(c)
}

// WeatherMultiplier returns the severity multiplier for weather conditions.
func WeatherMultiplier(w segment.WeatherImpact) float64 {
	return defaults.weatherMultiplier(w)
}

func (w Weights) lanes(width float64) int {
	if width <= 0 {
		return 1
	}
	return max(1, int(math.Floor(width/w.LaneWidthMeters)))
}

func (w Weights) classWeight(c segment.RoadClass) float64 {
	if v, ok := w.ClassWeights[c]; ok {
		return v
	}
	return 1.0
}

func (w Weights) weatherMultiplier(wi segment.WeatherImpact) float64 {
	if v, ok := w.WeatherMultipliers[wi]; ok {
		return v
	}
	return 1.0
}
