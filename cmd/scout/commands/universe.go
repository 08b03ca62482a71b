package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// universeCmd represents the universe command
var universeCmd = &cobra.Command{
	Use:   "universe",
	Short: "종목 유니버스 관리",
	Long: `스크리닝 대상 유니버스를 관리합니다.

유니버스는 인덱스 구성종목 페이지에서 수집하고
7일간 캐시합니다. 수집 실패 시 큐레이션 목록으로 대체합니다.

Example:
  go run ./cmd/scout universe show
  go run ./cmd/scout universe refresh`,
}

// universeShowCmd represents the show subcommand
var universeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "현재 유니버스 출력",
	RunE:  runUniverseShow,
}

// universeRefreshCmd represents the refresh subcommand
var universeRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "캐시 무시하고 유니버스 재수집",
	RunE:  runUniverseRefresh,
}

func init() {
	rootCmd.AddCommand(universeCmd)
	universeCmd.AddCommand(universeShowCmd)
	universeCmd.AddCommand(universeRefreshCmd)
}

func runUniverseShow(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	members, err := a.universe.Members(ctx)
	if err != nil {
		return fmt.Errorf("build universe: %w", err)
	}

	sectors := make(map[string]int)
	for _, m := range members {
		sectors[m.Sector]++
		fmt.Printf("%-7s %-40s %s\n", m.Symbol, m.Name, m.Sector)
	}
	fmt.Printf("\n%d symbols across %d sectors\n", len(members), len(sectors))
	return nil
}

func runUniverseRefresh(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	// Dropping the cache forces a live fetch on the next build.
	if err := os.Remove(a.cfg.UniverseCachePath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("drop universe cache: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	members, err := a.universe.Members(ctx)
	if err != nil {
		return fmt.Errorf("build universe: %w", err)
	}

	fmt.Printf("Universe refreshed: %d symbols\n", len(members))
	return nil
}
