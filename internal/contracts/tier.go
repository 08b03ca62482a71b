package contracts

// Tier levels. Lower number = more favorable; 0 = excluded.
const (
	TierExcluded = 0 // low quality, dropped from the watchlist
	TierBuyZone  = 1 // high quality at/below target entry
	TierWatch    = 2 // high quality, above target or price unconfirmed
	TierMonitor  = 3 // moderate quality, monitored on quality alone
)

// QualityLevel combines moat durability and conviction into a coarse grade.
type QualityLevel string

const (
	QualityHigh     QualityLevel = "high"
	QualityModerate QualityLevel = "moderate"
	QualityLow      QualityLevel = "low"
)

// PriceStatus records whether the price inputs behind a tier decision
// were actually resolved. Both unresolved cases land in tier 2, but
// reports can tell "no price published" from "provider gave nothing".
type PriceStatus string

const (
	PriceResolved    PriceStatus = "resolved"
	PriceUnavailable PriceStatus = "unavailable"
)

// TierAssignment is the classifier output for one symbol.
// Recomputed fresh each run.
type TierAssignment struct {
	Symbol            string       `json:"symbol"`
	Tier              int          `json:"tier"`
	QualityLevel      QualityLevel `json:"quality_level"`
	Reason            string       `json:"reason"`
	TargetEntryPrice  *float64     `json:"target_entry_price,omitempty"`
	CurrentPrice      *float64     `json:"current_price,omitempty"`
	PriceGapPct       *float64     `json:"price_gap_pct,omitempty"` // positive = above target
	ApproachingTarget bool         `json:"approaching_target"`
	PriceStatus       PriceStatus  `json:"price_status"`
}

// EntryTranche is one step of a staged-entry ladder.
type EntryTranche struct {
	Tranche    int     `json:"tranche"`
	Price      float64 `json:"price"`
	Allocation float64 `json:"allocation"`
}
