// Package recommend composes severity scores and action selections into the
// structured reports consumed by renderers.
package recommend

import (
	"github.com/shopspring/decimal"

	"github.com/trafficscope/trafficscope/pkg/scoring"
	"github.com/trafficscope/trafficscope/pkg/segment"
)

// Report is the full analysis of one segment. Renderers display it as-is.
type Report struct {
	SegmentName    string       `json:"segment_name"`
	SeverityScore  float64      `json:"severity_score"`
	Tier           scoring.Tier `json:"tier"`
	TierLabel      string       `json:"tier_label"`
	CurrentLoad    float64      `json:"current_load"`
	PredictiveLoad float64      `json:"predictive_load"`

	Narrative             string `json:"narrative"`
	WeatherExplanation    string `json:"weather_explanation"`
	ClassExplanation      string `json:"class_explanation"`
	StructuralExplanation string `json:"structural_explanation"`

	RecommendedAction RecommendedAction `json:"recommended_action"`

	// Display metadata
	StatusColor     string                `json:"status_color"`
	BackgroundColor string                `json:"background_color"`
	WeatherColor    string                `json:"weather_color"`
	Lanes           int                   `json:"lanes"`
	Weather         segment.WeatherImpact `json:"weather"`
	RoadClass       segment.RoadClass     `json:"road_class"`
	LengthMeters    float64               `json:"length_meters,omitempty"`
}

// RecommendedAction describes the chosen mitigation.
type RecommendedAction struct {
	Name                          string           `json:"name"`
	StrengthLabel                 scoring.Strength `json:"strength_label"`
	TargetTier                    scoring.Tier     `json:"target_tier"`
	Cost                          decimal.Decimal  `json:"cost"`
	ProjectedLoadReductionPercent float64          `json:"projected_load_reduction_percent"`
	Utility                       float64          `json:"utility"`
	Default                       bool             `json:"default,omitempty"` // routine default, not utility-ranked
}
