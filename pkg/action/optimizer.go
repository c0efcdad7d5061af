package action

import (
	"github.com/trafficscope/trafficscope/pkg/scoring"
	"github.com/trafficscope/trafficscope/pkg/segment"
)

// Selection is the optimizer's choice for one segment.
type Selection struct {
	Action   Definition `json:"action"`
	Strength Strength   `json:"strength"` // group the chosen action belongs to
	Utility  float64    `json:"utility"`
	Override bool       `json:"override"` // routine default, utility not evaluated
}

// HasAction reports whether a real catalog action was chosen.
func (s Selection) HasAction() bool {
	return s.Action.Name != NoAction.Name
}

// Optimizer selects the most cost-efficient action from a catalog.
type Optimizer struct {
	catalog *Catalog
}

// NewOptimizer creates an optimizer over catalog. A nil catalog means DefaultCatalog.
func NewOptimizer(catalog *Catalog) *Optimizer {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Optimizer{catalog: catalog}
}

// Catalog returns the catalog the optimizer draws from.
func (o *Optimizer) Catalog() *Catalog {
	return o.catalog
}

// SelectAction runs the optimizer over the default catalog.
func SelectAction(tier scoring.Tier, class segment.RoadClass) Selection {
	return NewOptimizer(nil).Select(tier, class)
}

// candidate is a pool entry tagged with the group it was drawn from.
type candidate struct {
	def      Definition
	strength Strength
}

func (o *Optimizer) pool(s Strength) []candidate {
	group := o.catalog.Group(s)
	out := make([]candidate, len(group))
	for i, d := range group {
		out[i] = candidate{def: d, strength: s}
	}
	return out
}

// Select picks an action for a segment of the given tier and road class.
//
// Routine segments, and any tier outside Tier1..Tier3, always get the first
// Minor action. Otherwise the tier's strength group is the candidate pool;
// arterial roads also see the Medium group when their own pool is Minor or
// Medium. The candidate with the highest effect per unit cost wins, the
// earlier one on ties.
func (o *Optimizer) Select(tier scoring.Tier, class segment.RoadClass) Selection {
	if tier < scoring.Tier1 || tier >= scoring.Tier4 {
		if minor := o.pool(Minor); len(minor) > 0 {
			return selection(minor[0], true)
		}
		return Selection{Action: NoAction, Override: true}
	}

	strength := tier.Info().Strength
	pool := o.pool(strength)
	if class == segment.ClassArterial && (strength == Medium || strength == Minor) {
		pool = append(pool, o.pool(Medium)...)
	}

	if len(pool) == 0 {
		return o.fallback(strength)
	}

	best := pool[0]
	bestUtility := best.def.Utility()
	for _, c := range pool[1:] {
		if u := c.def.Utility(); u > bestUtility {
			best, bestUtility = c, u
		}
	}
	return selection(best, false)
}

// fallback handles an empty candidate pool. A missing Major group escalates
// to the most expensive Medium action.
func (o *Optimizer) fallback(strength Strength) Selection {
	if strength == Major {
		medium := o.pool(Medium)
		if len(medium) > 0 {
			best := medium[0]
			for _, c := range medium[1:] {
				if c.def.Cost.GreaterThan(best.def.Cost) {
					best = c
				}
			}
			return selection(best, false)
		}
	}
	return Selection{Action: NoAction}
}

func selection(c candidate, override bool) Selection {
	return Selection{Action: c.def, Strength: c.strength, Utility: c.def.Utility(), Override: override}
}
