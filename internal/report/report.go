// Package report renders run results as plain text for the CLI and for
// log-friendly summaries.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/wonny/valuescout/backend/internal/contracts"
	"github.com/wonny/valuescout/backend/internal/pipeline"
)

var tierLabels = map[int]string{
	contracts.TierBuyZone: "Tier 1 · Buy zone",
	contracts.TierWatch:   "Tier 2 · Watch",
	contracts.TierMonitor: "Tier 3 · Monitor",
}

var changeLabels = map[contracts.ChangeType]string{
	contracts.ChangeNew:         "NEW",
	contracts.ChangeRemoved:     "REMOVED",
	contracts.ChangeTierUp:      "TIER UP",
	contracts.ChangeTierDown:    "TIER DOWN",
	contracts.ChangeApproaching: "APPROACHING",
}

// Render produces the full run report: movements first (the actionable
// part), then the watchlist by tier, then campaign progress.
func Render(result *pipeline.RunResult) string {
	var b strings.Builder

	b.WriteString("═══ Research Run ═══\n")
	fmt.Fprintf(&b, "Universe %d · screened %d · analyzed %d · %s\n\n",
		result.UniverseSize, result.Screened, result.Analyzed,
		result.Duration.Round(time.Millisecond).String())

	renderMovements(&b, result.Movements)
	renderWatchlist(&b, result.Assignments)
	renderProgress(&b, result.Progress, result.CampaignRotated)

	return b.String()
}

func renderMovements(b *strings.Builder, movements []contracts.WatchlistMovement) {
	b.WriteString("── Movements ──\n")
	if len(movements) == 0 {
		b.WriteString("  (none)\n\n")
		return
	}
	for _, mv := range movements {
		label := changeLabels[mv.ChangeType]
		if label == "" {
			label = strings.ToUpper(string(mv.ChangeType))
		}
		fmt.Fprintf(b, "  %-12s %-6s %s\n", label, mv.Symbol, mv.Detail)
	}
	b.WriteString("\n")
}

func renderWatchlist(b *strings.Builder, assignments map[string]contracts.TierAssignment) {
	b.WriteString("── Watchlist ──\n")

	for _, tier := range []int{contracts.TierBuyZone, contracts.TierWatch, contracts.TierMonitor} {
		symbols := make([]string, 0)
		for symbol, a := range assignments {
			if a.Tier == tier {
				symbols = append(symbols, symbol)
			}
		}
		if len(symbols) == 0 {
			continue
		}
		sort.Strings(symbols)

		fmt.Fprintf(b, "%s\n", tierLabels[tier])
		for _, symbol := range symbols {
			b.WriteString(renderEntry(assignments[symbol]))
		}
	}
	b.WriteString("\n")
}

func renderEntry(a contracts.TierAssignment) string {
	var parts []string
	if a.TargetEntryPrice != nil {
		parts = append(parts, fmt.Sprintf("target %.2f", *a.TargetEntryPrice))
	}
	if a.CurrentPrice != nil {
		parts = append(parts, fmt.Sprintf("now %.2f", *a.CurrentPrice))
	}
	if a.PriceGapPct != nil {
		parts = append(parts, fmt.Sprintf("gap %+.1f%%", *a.PriceGapPct*100))
	}
	if a.ApproachingTarget {
		parts = append(parts, "⚠ approaching target")
	}
	if a.PriceStatus == contracts.PriceUnavailable {
		parts = append(parts, "price target unavailable")
	}

	detail := strings.Join(parts, " · ")
	if detail == "" {
		return fmt.Sprintf("  %-6s\n", a.Symbol)
	}
	return fmt.Sprintf("  %-6s %s\n", a.Symbol, detail)
}

func renderProgress(b *strings.Builder, p contracts.CampaignProgress, rotated bool) {
	b.WriteString("── Campaign ──\n")
	fmt.Fprintf(b, "  %s", p.CampaignID)
	if rotated {
		b.WriteString(" (rotated this run)")
	}
	b.WriteString("\n")
	fmt.Fprintf(b, "  coverage %.1f%% (%d/%d screened, %d passed, %d failed)\n",
		p.CoveragePct*100, p.Screened, p.UniverseSize, p.Passed, p.Failed)
	fmt.Fprintf(b, "  analyzed %d this campaign · %d studied all-time\n",
		p.Analyzed, p.TotalStudiedAllTime)
	if p.EstimatedRunsRemaining > 0 {
		fmt.Fprintf(b, "  ~%d runs to full coverage\n", p.EstimatedRunsRemaining)
	}
}

// RenderProgress renders just the campaign block, for the status command.
func RenderProgress(p contracts.CampaignProgress) string {
	var b strings.Builder
	renderProgress(&b, p, false)
	return b.String()
}
