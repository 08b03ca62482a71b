package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/valuescout/backend/internal/scheduler"
	"github.com/wonny/valuescout/backend/internal/scheduler/jobs"
)

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "스케줄러로 파이프라인 주기 실행",
	Long: `cron 스케줄에 따라 리서치 파이프라인을 반복 실행합니다.

기본 스케줄은 평일 아침 7시(초 단위 표현식)입니다.
Ctrl+C로 종료하면 실행 중인 작업이 끝날 때까지 대기합니다.

Example:
  go run ./cmd/scout schedule
  go run ./cmd/scout schedule --cron "0 0 7 * * 1-5"`,
	RunE: runSchedule,
}

var scheduleCron string

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().StringVar(&scheduleCron, "cron", "0 0 7 * * 1-5", "cron 표현식 (초 포함 6필드)")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	runner, err := a.newRunner()
	if err != nil {
		return err
	}

	sched := scheduler.New(a.log)
	if err := sched.AddJob(jobs.NewResearchJob(runner, scheduleCron, a.log)); err != nil {
		return err
	}

	sched.Start()
	defer sched.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	return nil
}
