package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scout",
	Short: "ValueScout - 가치투자 리서치 파이프라인",
	Long: `ValueScout Unified CLI

정량 스크리닝부터 티어 분류까지, 가치투자 리서치 자동화.
캠페인 단위로 유니버스 전체를 순회하며 워치리스트를 관리합니다.

Usage:
  go run ./cmd/scout [command]

Examples:
  go run ./cmd/scout run
  go run ./cmd/scout status
  go run ./cmd/scout universe refresh
  go run ./cmd/scout serve`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
