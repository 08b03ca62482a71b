package contracts

// MoatDurability is the coarse durability rating of a company's
// competitive advantage, supplied by the qualitative analysis source.
type MoatDurability string

const (
	MoatStrong   MoatDurability = "strong"
	MoatModerate MoatDurability = "moderate"
	MoatWeak     MoatDurability = "weak"
	MoatNone     MoatDurability = "none"
)

// Conviction is the analyst conviction level for a company.
type Conviction string

const (
	ConvictionHigh   Conviction = "HIGH"
	ConvictionMedium Conviction = "MEDIUM"
	ConvictionLow    Conviction = "LOW"
)

// QualitativeAssessment is the external qualitative analysis for a symbol.
// 외부 분석 소스에서 받은 입력 그대로 사용 — 검증하지 않음 (opaque input)
type QualitativeAssessment struct {
	Symbol           string         `json:"symbol"`
	CompanyName      string         `json:"company_name,omitempty"`
	Sector           string         `json:"sector,omitempty"`
	MoatDurability   MoatDurability `json:"moat_durability"`
	Conviction       Conviction     `json:"conviction"`
	TargetEntryPrice *float64       `json:"target_entry_price,omitempty"`
	CurrentPrice     *float64       `json:"current_price,omitempty"`

	// Payload carries the full upstream document for the study record.
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// FairValue is an externally aggregated valuation, used only as a
// fallback when the assessment omits price fields.
type FairValue struct {
	Symbol           string   `json:"symbol"`
	CurrentPrice     *float64 `json:"current_price,omitempty"`
	AverageFairValue *float64 `json:"average_fair_value,omitempty"`
}
