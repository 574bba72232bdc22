package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Tomlord1122/kanban-backend/internal/server"
)

var skipMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not auto-migrate the schema at startup")
}

func runServe(cmd *cobra.Command, args []string) error {
	metrics := server.NewMetrics()
	a, err := newApp(cmd.Context(), metrics)
	if err != nil {
		return err
	}

	if !skipMigrate {
		if err := a.migrate(); err != nil {
			a.close()
			return err
		}
	}
	if err := a.kanban.Load(cmd.Context()); err != nil {
		a.close()
		return fmt.Errorf("load board state: %w", err)
	}
	if a.cfg.Seed {
		if _, err := a.kanban.Seed(cmd.Context()); err != nil {
			a.close()
			return fmt.Errorf("seed sample boards: %w", err)
		}
	}
	metrics.RegisterStateGauges(a.kanban.Counts)

	apiServer := server.NewServer(a.cfg.Port, a.kanban, a.db, metrics, a.log)

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, a, done)

	a.log.WithField("addr", apiServer.Addr).Info("Starting server")
	if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.close()
		return fmt.Errorf("http server: %w", err)
	}

	<-done
	a.log.Info("Graceful shutdown complete")
	return nil
}

func gracefulShutdown(apiServer *http.Server, a *app, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	a.log.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		a.log.WithError(err).Error("Server forced to shutdown")
	}

	a.close()
	a.log.WithFields(logrus.Fields{"addr": apiServer.Addr}).Info("Server exiting")

	done <- true
}
