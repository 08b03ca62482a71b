package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/valuescout/backend/internal/api"
	"github.com/wonny/valuescout/backend/internal/api/handlers"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "읽기 전용 API 서버 시작",
	Long: `레지스트리와 워치리스트를 조회하는 REST API 서버를 시작합니다.

모든 엔드포인트는 읽기 전용입니다. 상태 변경은 run 명령으로만.

Endpoints:
  GET /health                  - Health check
  GET /api/campaign            - 캠페인 진행 상황
  GET /api/watchlist           - 최신 워치리스트 스냅샷
  GET /api/studies/{symbol}    - 종목 스터디 조회

Example:
  go run ./cmd/scout serve
  go run ./cmd/scout serve --port 8080`,
	RunE: runServe,
}

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "API 서버 포트 (기본: PORT 환경변수)")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	if servePort != "" {
		a.cfg.Port = servePort
	}

	handler := handlers.NewResearchHandler(a.regStore, a.snapshots, a.universe, a.log)
	router := api.NewRouter(handler, a.log)
	server := api.New(a.cfg, a.log, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		fmt.Printf("\nReceived %v, shutting down\n", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
