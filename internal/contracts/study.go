package contracts

import "time"

// StudyRecord is the permanent per-symbol study entry. Upserted, never
// deleted; survives campaign rotation.
type StudyRecord struct {
	Symbol             string                 `json:"symbol"`
	CompanyName        string                 `json:"company_name"`
	Sector             string                 `json:"sector"`
	AssessmentPayload  map[string]interface{} `json:"assessment,omitempty"`
	Tier               int                    `json:"tier"`
	TierReason         string                 `json:"tier_reason"`
	TargetEntryPrice   *float64               `json:"target_entry_price,omitempty"`
	PriceAtAnalysis    *float64               `json:"current_price_at_analysis,omitempty"`
	AnalyzedAt         time.Time              `json:"analyzed_at"`
	ScreenerScore      float64                `json:"screener_score"`
	ScreenerConfidence float64                `json:"screener_confidence"`
}

// CampaignState tracks screening coverage for one time-boxed campaign.
// Exactly one campaign is active at a time.
type CampaignState struct {
	CampaignID string               `json:"campaign_id"`
	StartedAt  time.Time            `json:"started_at"`
	Screened   []string             `json:"screened"`
	Passed     []string             `json:"passed"`
	Failed     map[string]time.Time `json:"failed"` // symbol -> screen time, for carry-forward
	Analyzed   []string             `json:"analyzed"`
}

// CampaignProgress is the progress summary for report generation.
type CampaignProgress struct {
	CampaignID             string  `json:"campaign_id"`
	UniverseSize           int     `json:"universe_size"`
	Screened               int     `json:"screened"`
	Passed                 int     `json:"passed"`
	Failed                 int     `json:"failed"`
	Analyzed               int     `json:"analyzed"`
	CoveragePct            float64 `json:"coverage_pct"`
	EstimatedRunsRemaining int     `json:"estimated_runs_remaining"`
	TotalStudiedAllTime    int     `json:"total_studied_all_time"`
}

// ScreenResult is one symbol's screening outcome fed to the registry.
// Combined() is compared against the campaign pass threshold.
type ScreenResult struct {
	Symbol     string  `json:"symbol"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
}

// Combined is the pass/fail sub-score for campaign bookkeeping:
// the raw quality score plus a confidence bonus so that two companies
// with equal scores rank by data completeness.
func (r ScreenResult) Combined() float64 {
	return r.Score + r.Confidence
}
