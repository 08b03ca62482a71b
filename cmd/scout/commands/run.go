package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/valuescout/backend/internal/report"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "리서치 파이프라인 1회 실행",
	Long: `전체 리서치 파이프라인을 한 번 실행합니다.

이 명령어는:
- 유니버스 갱신 (캐시 7일)
- 미검토 종목 정량 스크리닝
- 상위 후보 심층 분석 및 티어 분류
- 워치리스트 변동 리포트 출력

중단해도 안전합니다. 레지스트리에 진행 상황이 저장되어
다음 실행이 이어서 진행됩니다.

Example:
  go run ./cmd/scout run
  go run ./cmd/scout run --seed 42`,
	RunE: runPipeline,
}

var runSeed int64

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "랭킹 시드 (0 = 실행마다 생성)")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	if runSeed != 0 {
		a.cfg.Screening.RankSeed = runSeed
	}

	runner, err := a.newRunner()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("research run: %w", err)
	}

	fmt.Print(report.Render(result))
	return nil
}
