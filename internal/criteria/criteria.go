package criteria

// Package criteria holds the screening rule configuration: which metrics
// are scored, how each metric maps to a 0-1 score, and per-sector
// overrides. Loaded once from YAML, validated, then treated as immutable.

// Rule defines the scoring shape for one metric.
//
// Bound semantics:
//   - Max set, Min unset: lower is better (PE, debt). 1.0 at/below ideal,
//     0.0 at/above max.
//   - Min set, Max unset: higher is better (ROE, growth). 1.0 at/above
//     ideal, 0.0 at/below min.
//   - Both set: banded (current ratio). 1.0 within [ideal, max], linear
//     rise from min to ideal, linear decay above max.
//
// Validation rejects rules with neither bound set.
type Rule struct {
	Ideal  float64  `yaml:"ideal" json:"ideal"`
	Weight float64  `yaml:"weight" json:"weight"`
	Min    *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max    *float64 `yaml:"max,omitempty" json:"max,omitempty"`
}

// RuleSet maps metric name to its scoring rule.
type RuleSet map[string]Rule

// Criteria is the full screening configuration.
type Criteria struct {
	MinMarketCap float64 `yaml:"min_market_cap" json:"min_market_cap"`
	MaxMarketCap float64 `yaml:"max_market_cap" json:"max_market_cap"`
	MinPrice     float64 `yaml:"min_price" json:"min_price"`
	TopN         int     `yaml:"top_n" json:"top_n"`

	Scoring         RuleSet            `yaml:"scoring" json:"scoring"`
	SectorOverrides map[string]RuleSet `yaml:"sector_overrides,omitempty" json:"sector_overrides,omitempty"`
}

// File is the on-disk YAML document shape.
type File struct {
	Screening Criteria `yaml:"screening" json:"screening"`
}

// Effective merges base scoring with the sector's overrides into a fresh
// rule set. The receiver is never mutated; callers own the returned map.
func (c *Criteria) Effective(sector string) RuleSet {
	merged := make(RuleSet, len(c.Scoring))
	for name, rule := range c.Scoring {
		merged[name] = rule
	}
	if sector == "" {
		return merged
	}
	if overrides, ok := c.SectorOverrides[sector]; ok {
		for name, rule := range overrides {
			merged[name] = rule
		}
	}
	return merged
}

// Default returns the hardcoded fallback criteria used when the config
// file is missing or unreadable.
func Default() *Criteria {
	f := func(v float64) *float64 { return &v }
	return &Criteria{
		MinMarketCap: 300_000_000,
		MaxMarketCap: 500_000_000_000,
		MinPrice:     5.0,
		TopN:         100,
		Scoring: RuleSet{
			"pe_ratio":         {Ideal: 15, Weight: 1.0, Max: f(30)},
			"debt_equity":      {Ideal: 0.5, Weight: 1.0, Max: f(2.0)},
			"roe":              {Ideal: 0.15, Weight: 1.5, Min: f(0.05)},
			"revenue_growth":   {Ideal: 0.10, Weight: 1.0, Min: f(0)},
			"current_ratio":    {Ideal: 1.5, Weight: 0.5, Min: f(1.0), Max: f(3.0)},
			"fcf_yield":        {Ideal: 0.06, Weight: 1.5, Min: f(0.01)},
			"operating_margin": {Ideal: 0.20, Weight: 1.0, Min: f(0.05)},
			"roic":             {Ideal: 0.12, Weight: 1.5, Min: f(0.04)},
			"revenue_cagr":     {Ideal: 0.08, Weight: 1.0, Min: f(0)},
		},
	}
}
