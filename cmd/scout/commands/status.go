package commands

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/valuescout/backend/internal/report"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "캠페인 진행 상황과 워치리스트 조회",
	Long: `현재 캠페인의 커버리지와 워치리스트를 표시합니다.

표시 정보:
- 캠페인 ID와 스크리닝 커버리지
- 통과/실패/분석 종목 수
- 티어별 워치리스트

Example:
  go run ./cmd/scout status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	reg := a.regStore.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	universeSize := 0
	if symbols, uerr := a.universe.Symbols(ctx); uerr == nil {
		universeSize = len(symbols)
	} else {
		a.log.WithError(uerr).Warn("Universe unavailable, coverage shown against 0")
	}

	fmt.Print(report.RenderProgress(reg.Progress(universeSize)))

	snapshot := a.snapshots.Load()
	fmt.Printf("\n── Watchlist (%d entries, as of %s) ──\n",
		len(snapshot.Entries), snapshot.AsOf.Format("2006-01-02"))

	symbols := make([]string, 0, len(snapshot.Entries))
	for symbol := range snapshot.Entries {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	for _, symbol := range symbols {
		entry := snapshot.Entries[symbol]
		line := fmt.Sprintf("  T%d %-6s", entry.Tier, symbol)
		if entry.TargetEntryPrice != nil {
			line += fmt.Sprintf(" target %.2f", *entry.TargetEntryPrice)
		}
		if entry.CurrentPrice != nil {
			line += fmt.Sprintf(" now %.2f", *entry.CurrentPrice)
		}
		if entry.ApproachingTarget {
			line += " ⚠ approaching"
		}
		fmt.Println(line)
	}

	printStale(a, reg.StaleSymbols(a.cfg.Campaign.MaxStudyAgeDays))
	return nil
}

func printStale(a *app, stale []string) {
	if len(stale) == 0 {
		return
	}
	fmt.Printf("\n%d studies older than %d days (refreshed when re-screened):\n",
		len(stale), a.cfg.Campaign.MaxStudyAgeDays)
	for _, symbol := range stale {
		fmt.Printf("  %s\n", symbol)
	}
}
