// Package main runs a local stand-in for the registration spreadsheet web app.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/yigit/teamreg/internal/middleware"
	"github.com/yigit/teamreg/internal/pkg/logger"
	"github.com/yigit/teamreg/internal/seed"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		port   string
		path   string
		reject string
		empty  bool
	)

	cmd := &cobra.Command{
		Use:   "sheetstub",
		Short: "Serve demo registration data like the spreadsheet web app",
		Long: `Serve demo categories, activities and teams the way the deployed
Google Apps Script web app does, so the site can run without a spreadsheet.

Examples:
  sheetstub                              # serve on :8081/exec
  sheetstub --reject "sheet is locked"   # refuse every new team
  GATEWAY_URL=http://localhost:8081/exec go run ./cmd/web
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(port, path, reject, empty)
		},
	}

	cmd.Flags().StringVar(&port, "port", "8081", "Port to listen on")
	cmd.Flags().StringVar(&path, "path", "/exec", "URL path of the web app")
	cmd.Flags().StringVar(&reject, "reject", "", "Reject every addTeam with this message")
	cmd.Flags().BoolVar(&empty, "empty", false, "Start without the demo teams")

	return cmd
}

func run(port, path, reject string, empty bool) error {
	lgr := logger.Component("sheetstub")

	data := seed.DefaultData()
	if empty {
		data.Teams = nil
	}

	stub := seed.NewScriptStub(data, lgr)
	if reject != "" {
		stub.RejectSubmissions(reject)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(lgr))
	stub.Register(router, path)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		lgr.Info().Str("addr", srv.Addr).Str("path", path).Msg("Sheet stub listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
