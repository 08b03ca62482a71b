package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/valuescout/backend/internal/contracts"
	"github.com/wonny/valuescout/backend/internal/pipeline"
)

func f64(v float64) *float64 { return &v }

func TestRender(t *testing.T) {
	gap := 0.08
	result := &pipeline.RunResult{
		UniverseSize: 3,
		Screened:     3,
		Analyzed:     2,
		Duration:     1200 * time.Millisecond,
		Assignments: map[string]contracts.TierAssignment{
			"AAA": {
				Symbol: "AAA", Tier: contracts.TierBuyZone,
				TargetEntryPrice: f64(100), CurrentPrice: f64(90),
				PriceGapPct: f64(-0.10), PriceStatus: contracts.PriceResolved,
			},
			"BBB": {
				Symbol: "BBB", Tier: contracts.TierWatch,
				TargetEntryPrice: f64(100), CurrentPrice: f64(108),
				PriceGapPct: &gap, ApproachingTarget: true,
				PriceStatus: contracts.PriceResolved,
			},
		},
		Movements: []contracts.WatchlistMovement{
			{Symbol: "AAA", ChangeType: contracts.ChangeNew, Detail: "entered at tier 1"},
			{Symbol: "BBB", ChangeType: contracts.ChangeApproaching, Detail: "within 8.0% of target"},
		},
		Progress: contracts.CampaignProgress{
			CampaignID: "2026-Q3", UniverseSize: 3, Screened: 3,
			Passed: 2, Analyzed: 2, CoveragePct: 1.0, TotalStudiedAllTime: 2,
		},
	}

	out := Render(result)

	assert.Contains(t, out, "NEW")
	assert.Contains(t, out, "APPROACHING")
	assert.Contains(t, out, "Tier 1 · Buy zone")
	assert.Contains(t, out, "gap +8.0%")
	assert.Contains(t, out, "approaching target")
	assert.Contains(t, out, "2026-Q3")
	assert.Contains(t, out, "coverage 100.0%")
}

func TestRender_QuietRun(t *testing.T) {
	result := &pipeline.RunResult{
		Progress: contracts.CampaignProgress{CampaignID: "2026-Q3", UniverseSize: 500, Screened: 100, EstimatedRunsRemaining: 4},
	}
	out := Render(result)
	assert.Contains(t, out, "(none)")
	assert.Contains(t, out, "~4 runs to full coverage")
}
