package contracts

import "time"

// CompanyFundamentals is the raw per-symbol input from the metric provider.
// Metric values are nullable: an absent metric lowers scoring confidence
// instead of failing the symbol.
type CompanyFundamentals struct {
	Symbol    string              `json:"symbol"`
	Name      string              `json:"name"`
	Sector    string              `json:"sector"`
	Industry  string              `json:"industry,omitempty"`
	MarketCap float64             `json:"market_cap"`
	Price     *float64            `json:"price,omitempty"`
	Metrics   map[string]*float64 `json:"metrics"`
}

// ScoredCompany is the scoring engine output for one company.
// Recomputed wholesale every screening pass, never mutated in place.
type ScoredCompany struct {
	Symbol     string              `json:"symbol"`
	Name       string              `json:"name"`
	Sector     string              `json:"sector"`
	MarketCap  float64             `json:"market_cap"`
	Price      *float64            `json:"price,omitempty"`
	RawMetrics map[string]*float64 `json:"raw_metrics"`
	Score      float64             `json:"score"`
	Confidence float64             `json:"confidence"`
	ScoredAt   time.Time           `json:"scored_at"`
}

// EffectiveScore weights the raw score by data confidence.
// Used only for ranking and tie-breaking, never persisted in place of Score.
func (s *ScoredCompany) EffectiveScore() float64 {
	return s.Score * s.Confidence
}
