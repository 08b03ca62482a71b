package registry

import (
	"fmt"
	"sort"
	"time"

	"github.com/wonny/valuescout/backend/internal/contracts"
)

// CurrentVersion is the registry document version this code reads and
// writes. A mismatch on load discards the old state.
const CurrentVersion = 1

// screensPerRun is the assumed screening throughput used for the
// runs-remaining estimate.
const screensPerRun = 100

// Registry is the persistent ledger of every company ever studied,
// organized into rotating coverage campaigns. It is a memory layer for
// the pipeline, not the source of truth for financial data: losing it
// costs re-screening effort, never correctness.
//
// Single-writer: one run loads, mutates in memory and saves. Two
// simultaneous runs against the same path are misuse.
// ⭐ SSOT: 커버리지 캠페인 상태는 여기서만
type Registry struct {
	Version  int
	Campaign contracts.CampaignState
	Studies  map[string]contracts.StudyRecord
}

// New creates an empty registry with a fresh campaign.
func New() *Registry {
	return &Registry{
		Version: CurrentVersion,
		Campaign: contracts.CampaignState{
			CampaignID: quarterID(time.Now()),
			StartedAt:  time.Now(),
			Screened:   []string{},
			Passed:     []string{},
			Failed:     map[string]time.Time{},
			Analyzed:   []string{},
		},
		Studies: make(map[string]contracts.StudyRecord),
	}
}

// UnstudiedSymbols returns the universe symbols not yet screened in the
// current campaign, preserving universe order.
func (r *Registry) UnstudiedSymbols(universe []string) []string {
	screened := toSet(r.Campaign.Screened)
	out := make([]string, 0, len(universe))
	for _, symbol := range universe {
		if _, ok := screened[symbol]; !ok {
			out = append(out, symbol)
		}
	}
	return out
}

// UnanalyzedPassed returns symbols that passed screening but have not
// been deeply analyzed this campaign.
func (r *Registry) UnanalyzedPassed() []string {
	analyzed := toSet(r.Campaign.Analyzed)
	out := make([]string, 0, len(r.Campaign.Passed))
	for _, symbol := range r.Campaign.Passed {
		if _, ok := analyzed[symbol]; !ok {
			out = append(out, symbol)
		}
	}
	return out
}

// MarkScreened records screening outcomes for the campaign. Symbols
// whose combined sub-score reaches minScore join the passed set; the
// rest are recorded as failed with a timestamp so rotation can carry
// recent failures forward. Already-screened symbols are skipped.
func (r *Registry) MarkScreened(symbols []string, results []contracts.ScreenResult, minScore float64) {
	screened := toSet(r.Campaign.Screened)
	passed := toSet(r.Campaign.Passed)
	if r.Campaign.Failed == nil {
		r.Campaign.Failed = map[string]time.Time{}
	}

	resultBySymbol := make(map[string]contracts.ScreenResult, len(results))
	for _, res := range results {
		resultBySymbol[res.Symbol] = res
	}

	now := time.Now()
	for _, symbol := range symbols {
		if _, done := screened[symbol]; done {
			continue
		}
		screened[symbol] = struct{}{}

		if res, ok := resultBySymbol[symbol]; ok && res.Combined() >= minScore {
			passed[symbol] = struct{}{}
		} else {
			r.Campaign.Failed[symbol] = now
		}
	}

	r.Campaign.Screened = toSorted(screened)
	r.Campaign.Passed = toSorted(passed)
}

// MarkAnalyzed records a deep analysis for this campaign. Idempotent.
func (r *Registry) MarkAnalyzed(symbol string) {
	analyzed := toSet(r.Campaign.Analyzed)
	analyzed[symbol] = struct{}{}
	r.Campaign.Analyzed = toSorted(analyzed)
}

// AddStudy upserts the permanent study record for a symbol. Studies
// survive campaign rotation and are never deleted.
func (r *Registry) AddStudy(assessment *contracts.QualitativeAssessment, tier contracts.TierAssignment, score, confidence float64) {
	name := assessment.CompanyName
	if name == "" {
		name = assessment.Symbol
	}

	r.Studies[assessment.Symbol] = contracts.StudyRecord{
		Symbol:             assessment.Symbol,
		CompanyName:        name,
		Sector:             assessment.Sector,
		AssessmentPayload:  assessment.Payload,
		Tier:               tier.Tier,
		TierReason:         tier.Reason,
		TargetEntryPrice:   tier.TargetEntryPrice,
		PriceAtAnalysis:    tier.CurrentPrice,
		AnalyzedAt:         time.Now(),
		ScreenerScore:      score,
		ScreenerConfidence: confidence,
	}
}

// Study returns the study record for a symbol, if any.
func (r *Registry) Study(symbol string) (contracts.StudyRecord, bool) {
	rec, ok := r.Studies[symbol]
	return rec, ok
}

// TierEntries returns all study records in the given tiers.
func (r *Registry) TierEntries(tiers ...int) map[string]contracts.StudyRecord {
	want := make(map[int]struct{}, len(tiers))
	for _, t := range tiers {
		want[t] = struct{}{}
	}
	out := make(map[string]contracts.StudyRecord)
	for symbol, rec := range r.Studies {
		if _, ok := want[rec.Tier]; ok {
			out[symbol] = rec
		}
	}
	return out
}

// Progress summarizes the current campaign against a universe size.
func (r *Registry) Progress(universeSize int) contracts.CampaignProgress {
	screened := len(r.Campaign.Screened)

	coverage := 0.0
	if universeSize > 0 {
		coverage = float64(screened) / float64(universeSize)
	}

	remaining := universeSize - screened
	if remaining < 0 {
		remaining = 0
	}
	estRuns := 0
	if remaining > 0 {
		estRuns = (remaining + screensPerRun - 1) / screensPerRun
	}

	return contracts.CampaignProgress{
		CampaignID:             r.Campaign.CampaignID,
		UniverseSize:           universeSize,
		Screened:               screened,
		Passed:                 len(r.Campaign.Passed),
		Failed:                 len(r.Campaign.Failed),
		Analyzed:               len(r.Campaign.Analyzed),
		CoveragePct:            coverage,
		EstimatedRunsRemaining: estRuns,
		TotalStudiedAllTime:    len(r.Studies),
	}
}

// ShouldStartNewCampaign reports whether screening coverage strictly
// exceeds 90% of the universe.
func (r *Registry) ShouldStartNewCampaign(universeSize int) bool {
	if universeSize <= 0 {
		return false
	}
	return float64(len(r.Campaign.Screened))/float64(universeSize) > 0.90
}

// StartNewCampaign rotates the campaign, keeping all studies.
//
// Failures newer than carryForwardDays are carried into the new
// campaign's screened/failed sets so their screening cost is not
// re-spent; older failures are dropped and will be screened fresh.
// Returns the new campaign id.
func (r *Registry) StartNewCampaign(carryForwardDays int) string {
	newID := quarterID(time.Now())
	if newID == r.Campaign.CampaignID {
		// Same-quarter rotation: disambiguate the id
		newID = newID + "b"
	}

	cutoff := time.Now().AddDate(0, 0, -carryForwardDays)
	carried := make(map[string]time.Time)
	for symbol, failedAt := range r.Campaign.Failed {
		if failedAt.After(cutoff) {
			carried[symbol] = failedAt
		}
	}

	carriedScreened := make([]string, 0, len(carried))
	for symbol := range carried {
		carriedScreened = append(carriedScreened, symbol)
	}
	sort.Strings(carriedScreened)

	r.Campaign = contracts.CampaignState{
		CampaignID: newID,
		StartedAt:  time.Now(),
		Screened:   carriedScreened,
		Passed:     []string{},
		Failed:     carried,
		Analyzed:   []string{},
	}

	return newID
}

// NeedsRefresh reports whether a symbol has no study or a study older
// than maxAgeDays.
func (r *Registry) NeedsRefresh(symbol string, maxAgeDays int) bool {
	rec, ok := r.Studies[symbol]
	if !ok {
		return true
	}
	return time.Since(rec.AnalyzedAt) > time.Duration(maxAgeDays)*24*time.Hour
}

// StaleSymbols returns all studied symbols whose analysis is older than
// maxAgeDays, in sorted order.
func (r *Registry) StaleSymbols(maxAgeDays int) []string {
	maxAge := time.Duration(maxAgeDays) * 24 * time.Hour
	stale := make([]string, 0)
	for symbol, rec := range r.Studies {
		if time.Since(rec.AnalyzedAt) > maxAge {
			stale = append(stale, symbol)
		}
	}
	sort.Strings(stale)
	return stale
}

// quarterID builds a quarter-based campaign id like "2026-Q3".
func quarterID(t time.Time) string {
	q := (int(t.Month())-1)/3 + 1
	return fmt.Sprintf("%d-Q%d", t.Year(), q)
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

func toSorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for item := range set {
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}
