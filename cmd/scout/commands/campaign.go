package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// campaignCmd represents the campaign command
var campaignCmd = &cobra.Command{
	Use:   "campaign",
	Short: "커버리지 캠페인 관리",
	Long: `커버리지 캠페인을 관리합니다.

캠페인은 유니버스 전체를 한 바퀴 도는 단위입니다.
커버리지 90% 초과 시 run 명령이 자동 회전하지만,
기준 변경 등으로 즉시 새 캠페인이 필요하면 여기서 시작합니다.

Example:
  go run ./cmd/scout campaign new
  go run ./cmd/scout campaign new --carry-forward 30`,
}

// campaignNewCmd represents the new subcommand
var campaignNewCmd = &cobra.Command{
	Use:   "new",
	Short: "새 캠페인 강제 시작",
	Long: `현재 캠페인을 닫고 새 캠페인을 시작합니다.

축적된 스터디는 모두 유지됩니다. 최근 탈락 종목은
--carry-forward 일수 내라면 재스크리닝을 건너뜁니다.`,
	RunE: runCampaignNew,
}

var campaignCarryForward int

func init() {
	rootCmd.AddCommand(campaignCmd)
	campaignCmd.AddCommand(campaignNewCmd)

	campaignNewCmd.Flags().IntVar(&campaignCarryForward, "carry-forward", -1,
		"최근 탈락 유지 일수 (-1 = 설정값 사용)")
}

func runCampaignNew(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	days := campaignCarryForward
	if days < 0 {
		days = a.cfg.Campaign.CarryForwardDays
	}

	reg := a.regStore.Load()
	oldID := reg.Campaign.CampaignID
	newID := reg.StartNewCampaign(days)

	if err := a.regStore.Save(reg); err != nil {
		return fmt.Errorf("save registry: %w", err)
	}

	fmt.Printf("Campaign rotated: %s → %s\n", oldID, newID)
	fmt.Printf("Carried forward %d recent failures, %d studies kept\n",
		len(reg.Campaign.Failed), len(reg.Studies))
	return nil
}
