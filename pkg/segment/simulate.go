package segment

import (
	"math"
	"math/rand/v2"
)

var (
	simulatedWeather = []WeatherImpact{WeatherNormal, WeatherNormal, WeatherNormal, WeatherRainFog, WeatherSnowIce}
	simulatedClasses = []RoadClass{ClassArterial, ClassArterial, ClassDistrict, ClassDistrict, ClassLocal}
)

// Simulator fills in the context fields that survey data usually lacks:
// weather, functional class and a load forecast. It only touches fields the
// source left empty and is deterministic for a given seed.
type Simulator struct {
	rng *rand.Rand
}

// NewSimulator creates a Simulator seeded with seed.
func NewSimulator(seed uint64) *Simulator {
	return &Simulator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Fill sets missing weather, class and predictive load on rec.
func (s *Simulator) Fill(rec *Record) {
	if rec.Weather == "" {
		rec.Weather = simulatedWeather[s.rng.IntN(len(simulatedWeather))]
	}
	if rec.Class == "" {
		rec.Class = simulatedClasses[s.rng.IntN(len(simulatedClasses))]
	}
	if rec.PredictiveLoad == nil {
		growth := 0.02 + s.rng.Float64()*0.13
		pred := math.Min(1.0, rec.CurrentLoad*(1+growth))
		rec.PredictiveLoad = &pred
	}
}

// FillAll applies Fill to every record in place.
func (s *Simulator) FillAll(recs []Record) {
	for i := range recs {
		s.Fill(&recs[i])
	}
}
