// Package segment defines road-segment input records and loads them from
// GeoJSON feature collections.
package segment

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
)

// WeatherImpact describes the weather conditions affecting a segment.
type WeatherImpact string

const (
	WeatherNormal  WeatherImpact = "Normal"
	WeatherRainFog WeatherImpact = "Rain/Fog"
	WeatherSnowIce WeatherImpact = "Snow/Ice"
)

// RoadClass is the functional class of a road in the network hierarchy.
type RoadClass string

const (
	ClassArterial RoadClass = "Arterial"
	ClassDistrict RoadClass = "District"
	ClassLocal    RoadClass = "Local"
	ClassUnknown  RoadClass = "Unknown"
)

// Record is a single road segment as supplied to the scoring engine.
// Immutable for the duration of an analysis call.
type Record struct {
	Name           string        `json:"name"`
	WidthMeters    float64       `json:"width_meters"`
	CurrentLoad    float64       `json:"current_load"`
	PredictiveLoad *float64      `json:"predictive_load,omitempty"` // nil = no forecast
	IsControlled   bool          `json:"is_controlled"`
	IsCrossroad    bool          `json:"is_crossroad"`
	Weather        WeatherImpact `json:"weather,omitempty"`    // empty = not reported, scored as Normal
	Class          RoadClass     `json:"road_class,omitempty"` // empty = not reported, scored as Unknown

	Geometry     orb.Geometry `json:"-"`
	LengthMeters float64      `json:"length_meters,omitempty"`
}

// EffectivePredictiveLoad returns the forecast load, falling back to the
// current load when no forecast was supplied.
func (r Record) EffectivePredictiveLoad() float64 {
	if r.PredictiveLoad == nil {
		return r.CurrentLoad
	}
	return *r.PredictiveLoad
}

// WeatherOrDefault returns the reported weather, or Normal when none was reported.
func (r Record) WeatherOrDefault() WeatherImpact {
	if r.Weather == "" {
		return WeatherNormal
	}
	return r.Weather
}

// ClassOrDefault returns the reported road class, or Unknown when none was reported.
func (r Record) ClassOrDefault() RoadClass {
	if r.Class == "" {
		return ClassUnknown
	}
	return r.Class
}

// ParseWeather normalises a weather label. An empty label means Normal.
func ParseWeather(s string) (WeatherImpact, error) {
	switch normalizeLabel(s) {
	case "", "normal":
		return WeatherNormal, nil
	case "rainfog", "rain", "fog":
		return WeatherRainFog, nil
	case "snowice", "snow", "ice":
		return WeatherSnowIce, nil
	default:
		return "", fmt.Errorf("unknown weather impact %q", s)
	}
}

// highwayClasses maps OSM highway tags onto functional road classes.
var highwayClasses = map[string]RoadClass{
	"motorway":       ClassArterial,
	"motorway_link":  ClassArterial,
	"trunk":          ClassArterial,
	"trunk_link":     ClassArterial,
	"primary":        ClassArterial,
	"primary_link":   ClassArterial,
	"secondary":      ClassDistrict,
	"secondary_link": ClassDistrict,
	"tertiary":       ClassDistrict,
	"tertiary_link":  ClassDistrict,
	"unclassified":   ClassLocal,
	"residential":    ClassLocal,
	"service":        ClassLocal,
	"living_street":  ClassLocal,
	"pedestrian":     ClassLocal,
}

// ParseRoadClass accepts a functional class name or an OSM highway tag.
// Anything unrecognised is ClassUnknown.
func ParseRoadClass(s string) RoadClass {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "arterial":
		return ClassArterial
	case "district":
		return ClassDistrict
	case "local":
		return ClassLocal
	}
	if c, ok := highwayClasses[v]; ok {
		return c
	}
	return ClassUnknown
}

// normalizeLabel lowercases s and drops separators so "Rain/Fog", "rain_fog"
// and "RainFog" compare equal.
func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("/", "", "_", "", "-", "", " ", "").Replace(s)
}
