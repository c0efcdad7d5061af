package action_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trafficscope/trafficscope/pkg/action"
	"github.com/trafficscope/trafficscope/pkg/scoring"
	"github.com/trafficscope/trafficscope/pkg/segment"
)

var allClasses = []segment.RoadClass{
	segment.ClassArterial, segment.ClassDistrict, segment.ClassLocal, segment.ClassUnknown, "",
}

func def(name string, cost int64, effect float64) action.Definition {
	return action.Definition{Name: name, Cost: decimal.NewFromInt(cost), EffectReduction: effect}
}

func TestDefaultCatalog(t *testing.T) {
	c := action.DefaultCatalog()
	assert.Equal(t, 9, c.Len())

	minor := c.Group(action.Minor)
	require.Len(t, minor, 3)
	assert.Equal(t, "Traffic-light phase optimization", minor[0].Name)
	assert.True(t, minor[0].Cost.Equal(decimal.NewFromInt(5000)))

	s, ok := c.StrengthOf("Reversible lane pilot")
	assert.True(t, ok)
	assert.Equal(t, action.Medium, s)

	_, ok = c.StrengthOf("Teleportation")
	assert.False(t, ok)
}

func TestCatalogGroupReturnsCopy(t *testing.T) {
	c := action.DefaultCatalog()
	g := c.Group(action.Minor)
	g[0].Name = "mutated"
	_ = append(g, def("extra", 1, 1))

	assert.Equal(t, "Traffic-light phase optimization", c.Group(action.Minor)[0].Name)
	assert.Len(t, c.Group(action.Minor), 3)
}

func TestUtility(t *testing.T) {
	assert.InDelta(t, 8e-7, def("a", 500000, 0.40).Utility(), 1e-15)
	// costs below one unit are treated as one
	assert.InDelta(t, 0.5, def("free", 0, 0.5).Utility(), 1e-12)
}

func TestSelectCriticalAlwaysMajor(t *testing.T) {
	for _, c := range allClasses {
		sel := action.SelectAction(scoring.Tier1, c)
		assert.Equal(t, action.Major, sel.Strength, "class %q", c)
		assert.Equal(t, "Intersection/interchange reconstruction", sel.Action.Name)
		assert.False(t, sel.Override)
	}
}

func TestSelectRoutineAlwaysFirstMinor(t *testing.T) {
	for _, c := range allClasses {
		sel := action.SelectAction(scoring.Tier4, c)
		assert.Equal(t, "Traffic-light phase optimization", sel.Action.Name, "class %q", c)
		assert.Equal(t, action.Minor, sel.Strength)
		assert.True(t, sel.Override)
	}
}

func TestSelectHighPicksBestMedium(t *testing.T) {
	for _, c := range allClasses {
		sel := action.SelectAction(scoring.Tier2, c)
		assert.Equal(t, "Left-turn prohibition at intersection", sel.Action.Name, "class %q", c)
		assert.InDelta(t, 1.5e-5, sel.Utility, 1e-12)
	}
}

func TestSelectMediumPicksBestMinor(t *testing.T) {
	local := action.SelectAction(scoring.Tier3, segment.ClassLocal)
	assert.Equal(t, "Peak-hour navigation rerouting", local.Action.Name)
	assert.InDelta(t, 5e-5, local.Utility, 1e-12)

	// Medium entries join the pool but none beats rerouting.
	arterial := action.SelectAction(scoring.Tier3, segment.ClassArterial)
	assert.Equal(t, "Peak-hour navigation rerouting", arterial.Action.Name)
	assert.Equal(t, action.Minor, arterial.Strength)
}

func TestArterialCanEscalateToMedium(t *testing.T) {
	c := action.NewCatalog(map[action.Strength][]action.Definition{
		action.Minor:  {def("paint", 1000, 0.01)},
		action.Medium: {def("cheap signals", 1000, 0.20)},
		action.Major:  {def("bridge", 1000000, 0.5)},
	})
	o := action.NewOptimizer(c)

	local := o.Select(scoring.Tier3, segment.ClassLocal)
	assert.Equal(t, "paint", local.Action.Name)

	arterial := o.Select(scoring.Tier3, segment.ClassArterial)
	assert.Equal(t, "cheap signals", arterial.Action.Name)
	assert.Equal(t, action.Medium, arterial.Strength)

	// the catalog is not widened by the arterial lookup
	assert.Len(t, c.Group(action.Minor), 1)
}

func TestSelectTieKeepsFirst(t *testing.T) {
	c := action.NewCatalog(map[action.Strength][]action.Definition{
		action.Medium: {def("first", 1000, 0.1), def("second", 2000, 0.2), def("third", 500, 0.01)},
	})
	sel := action.NewOptimizer(c).Select(scoring.Tier2, segment.ClassLocal)
	assert.Equal(t, "first", sel.Action.Name)
}

func TestSelectEmptyMajorEscalatesToCostliestMedium(t *testing.T) {
	c := action.NewCatalog(map[action.Strength][]action.Definition{
		action.Minor:  {def("paint", 1000, 0.01)},
		action.Medium: {def("signals", 25000, 0.15), def("reversible lane", 40000, 0.20), def("no left turn", 8000, 0.12)},
	})
	sel := action.NewOptimizer(c).Select(scoring.Tier1, segment.ClassLocal)
	assert.Equal(t, "reversible lane", sel.Action.Name)
	assert.Equal(t, action.Medium, sel.Strength)
	assert.True(t, sel.HasAction())
}

func TestSelectEmptyPoolReturnsNoAction(t *testing.T) {
	o := action.NewOptimizer(action.NewCatalog(nil))

	for _, tier := range scoring.Tiers {
		sel := o.Select(tier, segment.ClassLocal)
		assert.False(t, sel.HasAction(), "tier %s", tier)
		assert.Equal(t, action.NoAction, sel.Action)
	}
}

func TestNewOptimizerDefaultsCatalog(t *testing.T) {
	assert.Same(t, action.DefaultCatalog(), action.NewOptimizer(nil).Catalog())
}

func TestSelectLabelsStrengthByGroupDrawnFrom(t *testing.T) {
	c := action.NewCatalog(map[action.Strength][]action.Definition{
		action.Minor:  {def("signal retiming", 1000, 0.05)},
		action.Medium: {def("signal retiming", 2000, 0.50)},
	})

	sel := action.NewOptimizer(c).Select(scoring.Tier3, segment.ClassArterial)
	assert.Equal(t, "signal retiming", sel.Action.Name)
	assert.Equal(t, 0.50, sel.Action.EffectReduction)
	assert.Equal(t, action.Medium, sel.Strength)

	sel = action.NewOptimizer(c).Select(scoring.Tier3, segment.ClassLocal)
	assert.Equal(t, 0.05, sel.Action.EffectReduction)
	assert.Equal(t, action.Minor, sel.Strength)
}

func TestSelectOutOfRangeTierIsRoutine(t *testing.T) {
	for _, tier := range []scoring.Tier{0, -1, 5, 42} {
		for _, c := range allClasses {
			sel := action.SelectAction(tier, c)
			assert.True(t, sel.Override, "tier %d class %q", int(tier), c)
			assert.Equal(t, "Traffic-light phase optimization", sel.Action.Name)
			assert.Equal(t, action.Minor, sel.Strength)
		}
	}
}
