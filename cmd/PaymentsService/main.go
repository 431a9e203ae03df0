package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	database "github.com/sebuszqo/PaymentsService/db"
	"github.com/sebuszqo/PaymentsService/internal/artist"
	"github.com/sebuszqo/PaymentsService/internal/config"
	"github.com/sebuszqo/PaymentsService/internal/metrics"
	"github.com/sebuszqo/PaymentsService/internal/payment/application"
	"github.com/sebuszqo/PaymentsService/internal/payment/infrastructure"
	"github.com/sebuszqo/PaymentsService/internal/payment/interfaces"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "payments-service",
		Short:         "Records artist payments and issues PDF receipts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var skipMigrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, skipMigrate)
		},
	}
	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not apply the database schema on start")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			connStr, err := config.LoadDatabase()
			if err != nil {
				return err
			}
			dbService, err := database.NewDBService(cmd.Context(), connStr)
			if err != nil {
				return err
			}
			defer dbService.Close()
			return dbService.Migrate(cmd.Context())
		},
	}
}

func serve(ctx context.Context, skipMigrate bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dbService, err := database.NewDBService(ctx, cfg.DBConnectionString)
	if err != nil {
		return err
	}
	defer dbService.Close()

	if !skipMigrate {
		if err := dbService.Migrate(ctx); err != nil {
			return err
		}
	}

	paymentMetrics := metrics.GetMetrics()

	paymentRepo := infrastructure.NewPaymentRepository(dbService.DB)
	paymentService := application.NewPaymentService(paymentRepo, paymentMetrics)
	artistClient := artist.NewClient(cfg.ArtistsServiceURL, cfg.ArtistsTimeout, paymentMetrics)
	receiptService := application.NewReceiptService(paymentService, artistClient, application.NewPDFReceiptRenderer(), paymentMetrics)

	paymentHandler := interfaces.NewPaymentHandler(paymentService, respondJSON, respondError)
	receiptHandler := interfaces.NewReceiptHandler(receiptService, respondError)

	server := NewServer(paymentHandler, receiptHandler, dbService, promhttp.Handler())
	server.RegisterRoutes()

	scheduler, err := StartHealthCheckScheduler(cfg.HealthCheckSchedule, dbService)
	if err != nil {
		log.Printf("Scheduler didn't start: %v", err)
		return err
	}
	defer scheduler.Stop()

	if cfg.PprofAddr != "" {
		log.Printf("Starting pprof on %s...", cfg.PprofAddr)
		go func() {
			log.Println(http.ListenAndServe(cfg.PprofAddr, nil))
		}()
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s...", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("payments-service: %v", err)
	}
}
