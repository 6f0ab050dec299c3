package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/NeCjoi157/rfid-access-gateway/internal/config"
	"github.com/NeCjoi157/rfid-access-gateway/internal/db"
	"github.com/NeCjoi157/rfid-access-gateway/internal/gate/service"
	sqlitestore "github.com/NeCjoi157/rfid-access-gateway/internal/gate/store/sqlite"
	"github.com/NeCjoi157/rfid-access-gateway/internal/httpapi"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the access gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "access-gateway ", log.LstdFlags|log.LUTC)

	conn, err := db.Open(ctx, db.Config{Path: cfg.DBPath})
	if err != nil {
		return err
	}
	defer conn.Close()

	writer := db.NewWorker(conn)
	defer writer.Close()

	refs := sqlitestore.NewReferenceStore(conn)
	ledger := sqlitestore.NewAuditLedger(conn, writer)

	accessSvc := service.NewAccessService(refs, ledger, cfg.StorageTimeout)
	reportingSvc := service.NewReportingService(refs, ledger, cfg.StorageTimeout)

	srv := httpapi.NewServer(httpapi.Dependencies{
		Logger:    logger,
		Addr:      cfg.HTTPAddr,
		Access:    accessSvc,
		Reporting: reportingSvc,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("listening on %s", cfg.HTTPAddr)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
