// Package scoring implements the trafficscope congestion severity scorer.
// It combines load, structural, weather and road-class factors into a single
// severity index and classifies it into one of four tiers.
package scoring

import "github.com/trafficscope/trafficscope/pkg/segment"

// SeverityResult is the complete output of scoring a single road segment.
// Immutable once computed.
type SeverityResult struct {
	Score             float64 `json:"score"`      // clamped to MaxScore, no lower clamp
	Tier              Tier    `json:"tier"`
	BaseScore         float64 `json:"base_score"` // load plus structural bumps
	RawScore          float64 `json:"raw_score"`  // before the upper clamp
	WeatherMultiplier float64 `json:"weather_multiplier"`
	ClassWeight       float64 `json:"class_weight"`
	Lanes             int     `json:"lanes"`

	Weather segment.WeatherImpact `json:"weather"`
	Class   segment.RoadClass     `json:"road_class"`
}

// Clamped reports whether the raw score exceeded the upper bound.
func (r SeverityResult) Clamped() bool {
	return r.RawScore > r.Score
}

// Strength is the magnitude of a mitigation action group.
type Strength string

const (
	StrengthMinor  Strength = "Minor"
	StrengthMedium Strength = "Medium"
	StrengthMajor  Strength = "Major"
)
