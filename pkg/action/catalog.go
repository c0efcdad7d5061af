// Package action holds the mitigation action catalog and the optimizer that
// picks the most cost-efficient action for a scored segment.
package action

import (
	"github.com/shopspring/decimal"

	"github.com/trafficscope/trafficscope/pkg/scoring"
)

// Strength is the magnitude of an action group.
type Strength = scoring.Strength

const (
	Minor  = scoring.StrengthMinor
	Medium = scoring.StrengthMedium
	Major  = scoring.StrengthMajor
)

// Strengths lists the groups in ascending order of magnitude.
var Strengths = []Strength{Minor, Medium, Major}

// Definition is a single mitigation action.
type Definition struct {
	Name            string          `json:"name"`
	Cost            decimal.Decimal `json:"cost"`             // currency units
	EffectReduction float64         `json:"effect_reduction"` // fraction of load removed, (0,1]
}

// Utility is the effect gained per unit of cost. Costs below one unit are
// treated as one so free actions do not divide by zero.
func (d Definition) Utility() float64 {
	cost := d.Cost.InexactFloat64()
	if cost < 1 {
		cost = 1
	}
	return d.EffectReduction / cost
}

// NoAction is returned when no candidate exists at all.
var NoAction = Definition{Name: "No action available", Cost: decimal.Zero}

// Catalog is an immutable registry of actions grouped by strength. Group
// order is significant: ties and the routine default resolve to the first entry.
type Catalog struct {
	groups map[Strength][]Definition
}

// NewCatalog builds a catalog from the given groups. The input is copied.
func NewCatalog(groups map[Strength][]Definition) *Catalog {
	c := &Catalog{groups: make(map[Strength][]Definition, len(groups))}
	for s, defs := range groups {
		c.groups[s] = append([]Definition(nil), defs...)
	}
	return c
}

// Group returns a copy of the actions in the given strength group.
func (c *Catalog) Group(s Strength) []Definition {
	return append([]Definition(nil), c.groups[s]...)
}

// StrengthOf reports the group containing the named action.
func (c *Catalog) StrengthOf(name string) (Strength, bool) {
	for _, s := range Strengths {
		for _, d := range c.groups[s] {
			if d.Name == name {
				return s, true
			}
		}
	}
	return "", false
}

// Len returns the total number of actions.
func (c *Catalog) Len() int {
	n := 0
	for _, defs := range c.groups {
		n += len(defs)
	}
	return n
}

func def(name string, cost int64, effect float64) Definition {
	return Definition{Name: name, Cost: decimal.NewFromInt(cost), EffectReduction: effect}
}

var defaultCatalog = NewCatalog(map[Strength][]Definition{
	Minor: {
		def("Traffic-light phase optimization", 5000, 0.10),
		def("Peak-hour navigation rerouting", 1000, 0.05),
		def("Additional priority signage", 3000, 0.08),
	},
	Medium: {
		def("Adaptive traffic signal control", 25000, 0.15),
		def("Reversible lane pilot", 40000, 0.20),
		def("Left-turn prohibition at intersection", 8000, 0.12),
	},
	Major: {
		def("Intersection/interchange reconstruction", 500000, 0.40),
		def("Additional ramp/bypass construction", 1000000, 0.50),
		def("Road widening by one lane", 750000, 0.35),
	},
})

// DefaultCatalog returns the built-in action catalog.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}
