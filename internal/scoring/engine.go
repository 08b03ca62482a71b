package scoring

import (
	"time"

	"github.com/wonny/valuescout/backend/internal/contracts"
	"github.com/wonny/valuescout/backend/internal/criteria"
	"github.com/wonny/valuescout/backend/pkg/logger"
)

// recognizedMetrics is the allow-list of metric names the engine scores.
// Rules for anything else are silently ignored.
var recognizedMetrics = map[string]struct{}{
	"pe_ratio":             {},
	"debt_equity":          {},
	"roe":                  {},
	"revenue_growth":       {},
	"current_ratio":        {},
	"fcf_yield":            {},
	"earnings_quality":     {},
	"payout_ratio":         {},
	"operating_margin":     {},
	"roe_consistency":      {},
	"roic":                 {},
	"margin_stability":     {},
	"earnings_consistency": {},
	"revenue_cagr":         {},
	"fcf_consistency":      {},
}

// Engine turns raw fundamentals into a weighted quality score plus a
// data-completeness confidence.
// ⭐ SSOT: 퀄리티 점수 계산은 여기서만
type Engine struct {
	criteria *criteria.Criteria
	logger   *logger.Logger
}

// NewEngine creates a scoring engine over a validated criteria set.
func NewEngine(crit *criteria.Criteria, log *logger.Logger) *Engine {
	return &Engine{
		criteria: crit,
		logger:   log,
	}
}

// ScoreCompany scores one company's fundamentals with the sector's
// effective rule set. Missing metrics only reduce confidence.
func (e *Engine) ScoreCompany(fund *contracts.CompanyFundamentals) *contracts.ScoredCompany {
	rules := e.criteria.Effective(fund.Sector)
	score, confidence := Score(fund.Metrics, rules)

	e.logger.WithFields(map[string]interface{}{
		"symbol":     fund.Symbol,
		"sector":     fund.Sector,
		"score":      score,
		"confidence": confidence,
	}).Debug("Scored company")

	return &contracts.ScoredCompany{
		Symbol:     fund.Symbol,
		Name:       fund.Name,
		Sector:     fund.Sector,
		MarketCap:  fund.MarketCap,
		Price:      fund.Price,
		RawMetrics: fund.Metrics,
		Score:      score,
		Confidence: confidence,
		ScoredAt:   time.Now(),
	}
}

// Score computes (score, confidence) for a metric map against an
// effective rule set.
//
// The total score is intentionally NOT normalized by scored weight:
// a data-rich company should not be penalized relative to a data-poor
// one. Confidence = scoredWeight / totalPossibleWeight captures data
// completeness separately.
func Score(metrics map[string]*float64, rules criteria.RuleSet) (float64, float64) {
	if len(rules) == 0 {
		return 0, 0
	}

	var totalScore, scoredWeight, totalPossibleWeight float64

	for name, rule := range rules {
		if _, ok := recognizedMetrics[name]; !ok {
			continue
		}

		totalPossibleWeight += rule.Weight

		value, ok := metrics[name]
		if !ok || value == nil {
			continue
		}

		totalScore += metricScore(*value, rule) * rule.Weight
		scoredWeight += rule.Weight
	}

	if totalPossibleWeight <= 0 {
		return 0, 0
	}
	return totalScore, scoredWeight / totalPossibleWeight
}

// metricScore computes the 0-1 score for a single metric value.
//
//   - at ideal: 1.0 regardless of bound shape
//   - at/beyond the zero bound: 0.0
//   - linear interpolation between
func metricScore(value float64, rule criteria.Rule) float64 {
	// Lower is better (max only): PE, debt ratios
	if rule.Max != nil && rule.Min == nil {
		switch {
		case value <= rule.Ideal:
			return 1.0
		case value >= *rule.Max:
			return 0.0
		default:
			return 1.0 - (value-rule.Ideal)/(*rule.Max-rule.Ideal)
		}
	}

	// Higher is better (min only): ROE, growth
	if rule.Min != nil && rule.Max == nil {
		switch {
		case value >= rule.Ideal:
			return 1.0
		case value <= *rule.Min:
			return 0.0
		default:
			return (value - *rule.Min) / (rule.Ideal - *rule.Min)
		}
	}

	// Banded (both bounds): current ratio style
	if rule.Min != nil && rule.Max != nil {
		if value >= rule.Ideal {
			if value <= *rule.Max {
				return 1.0
			}
			decayed := 1.0 - (value-*rule.Max)/(*rule.Max)
			if decayed < 0 {
				return 0.0
			}
			return decayed
		}
		if value <= *rule.Min {
			return 0.0
		}
		return (value - *rule.Min) / (rule.Ideal - *rule.Min)
	}

	// No bounds: criteria validation rejects this shape at load time,
	// so a validated rule set never reaches here. Kept as a neutral
	// score rather than a panic for unvalidated callers.
	if value == rule.Ideal {
		return 1.0
	}
	return 0.5
}
