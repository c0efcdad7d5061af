package scoring

import (
	"fmt"
	"math"
	"strings"
)

// Tier ranks a segment's congestion severity. Tier1 is the most severe.
type Tier int

const (
	Tier1 Tier = iota + 1
	Tier2
	Tier3
	Tier4
)

// Tiers lists every tier from most to least severe.
var Tiers = []Tier{Tier1, Tier2, Tier3, Tier4}

// TierInfo is the display and policy metadata attached to a tier.
type TierInfo struct {
	Label           string
	Narrative       string // may contain the {predictive} placeholder
	StatusColor     string
	BackgroundColor string
	Strength        Strength // action group the optimizer draws from
	MinScore        float64  // exclusive lower bound
}

var tierTable = map[Tier]TierInfo{
	Tier1: {
		Label: "Critical",
		Narrative: "This segment is in a critical state. Current or forecast load exceeds capacity " +
			"and risks a network-wide gridlock in the near term. Urgent capital intervention is required.",
		StatusColor:     "#CC0000",
		BackgroundColor: "#FFCCCC",
		Strength:        StrengthMajor,
		MinScore:        130,
	},
	Tier2: {
		Label: "High",
		Narrative: "This segment is a high priority. Current load causes regular, long peak-hour queues. " +
			"Without improvements the forecast growth (to a load of {predictive}) will push it into Tier 1. " +
			"A significant traffic-management or small construction measure is required.",
		StatusColor:     "#FF8800",
		BackgroundColor: "#FFE0B2",
		Strength:        StrengthMedium,
		MinScore:        100,
	},
	Tier3: {
		Label: "Medium",
		Narrative: "Moderate problem. Load is close to the limit and adverse conditions such as bad weather " +
			"can quickly move the segment into Tier 2. A planned traffic-management improvement is recommended " +
			"to build a safety margin.",
		StatusColor:     "#009900",
		BackgroundColor: "#CCFFCC",
		Strength:        StrengthMinor,
		MinScore:        70,
	},
	Tier4: {
		Label: "Routine",
		Narrative: "This segment is within normal limits. Load is low, but minimal optimisation measures " +
			"are recommended as part of routine monitoring to use the existing network more efficiently.",
		StatusColor:     "#0066CC",
		BackgroundColor: "#CCEEFF",
		Strength:        StrengthMinor,
		MinScore:        math.Inf(-1),
	},
}

// Info returns the metadata for t. Out-of-range tiers get Tier4's metadata.
func (t Tier) Info() TierInfo {
	if info, ok := tierTable[t]; ok {
		return info
	}
	return tierTable[Tier4]
}

// Label is shorthand for t.Info().Label.
func (t Tier) Label() string {
	return t.Info().Label
}

// Narrative renders the tier's narrative for a segment's forecast load.
func (t Tier) Narrative(predictiveLoad float64) string {
	return strings.ReplaceAll(t.Info().Narrative, "{predictive}", fmt.Sprintf("%.2f", predictiveLoad))
}

func (t Tier) String() string {
	return fmt.Sprintf("T%d", int(t))
}

// MarshalText encodes a tier as "T1".."T4".
func (t Tier) MarshalText() ([]byte, error) {
	if _, ok := tierTable[t]; !ok {
		return nil, fmt.Errorf("invalid tier %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText accepts "T1".."T4" and "Tier1".."Tier4".
func (t *Tier) UnmarshalText(b []byte) error {
	parsed, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTier parses a tier name such as "T2", "tier2" or "2".
func ParseTier(s string) (Tier, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.TrimPrefix(v, "tier")
	v = strings.TrimPrefix(v, "t")
	v = strings.TrimSpace(v)
	for _, tier := range Tiers {
		if v == fmt.Sprint(int(tier)) {
			return tier, nil
		}
	}
	return 0, fmt.Errorf("unknown tier %q", s)
}

// ClassifyTier maps a severity score to a tier. Thresholds are strict, so a
// score sitting exactly on a boundary belongs to the lower tier.
func ClassifyTier(score float64) Tier {
	switch {
	case score > tierTable[Tier1].MinScore:
		return Tier1
	case score > tierTable[Tier2].MinScore:
		return Tier2
	case score > tierTable[Tier3].MinScore:
		return Tier3
	default:
		return Tier4
	}
}
