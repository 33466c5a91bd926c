package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"

	"github.com/dividendlab/divstat/internal/api"
	"github.com/dividendlab/divstat/internal/config"
	"github.com/dividendlab/divstat/internal/database"
	"github.com/dividendlab/divstat/internal/export"
	"github.com/dividendlab/divstat/internal/portfolio"
	"github.com/dividendlab/divstat/internal/retirement"
	"github.com/dividendlab/divstat/internal/settings"
	"github.com/dividendlab/divstat/internal/snapshot"
	"github.com/dividendlab/divstat/internal/worker"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func main() {
	app := &cli.App{
		Name:  "divstat",
		Usage: "dividend income projection and comparison service",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API server and snapshot worker",
				Action: runServe,
			},
			{
				Name:  "export",
				Usage: "write the latest stored snapshot to an Excel workbook",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Value: "projection.xlsx",
						Usage: "output workbook path",
					},
				},
				Action: runExport,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runServe(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	pool, snapshotSvc, portfolioSvc, settingsRepo, err := buildServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	// Optional post-snapshot export to a shared Google Sheets document.
	var hook worker.AfterSnapshotHook
	if cfg.SheetsSpreadsheetID != "" && cfg.SheetsCredentialsJSON != "" {
		writer, err := export.NewSheetsWriter(ctx, cfg.SheetsSpreadsheetID, cfg.SheetsCredentialsJSON)
		if err != nil {
			return fmt.Errorf("creating sheets writer: %w", err)
		}
		hook = export.NewService(writer)
	}

	snapshotWorker := worker.NewSnapshotWorker(snapshotSvc, cfg.SnapshotWorkerInterval, hook)
	go snapshotWorker.Run(ctx)

	var simulation api.SimulationClient
	if cfg.SimulationURL != "" {
		simulation = retirement.NewClient(cfg.SimulationURL, cfg.SimulationRetryMax, cfg.SimulationRetryBaseWait)
	}

	if cfg.AdminAPIKey == "" {
		slog.Warn("ADMIN_API_KEY not set, generate endpoint is unprotected")
	}

	handler := api.NewHandler(portfolioSvc, settingsRepo, snapshotSvc, simulation, cfg.ExchangeRate, cfg.AdminAPIKey)
	srv := api.NewServer(cfg.HTTPPort, handler)

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
	return nil
}

func runExport(c *cli.Context) error {
	ctx := c.Context
	cfg := config.Load()

	pool, snapshotSvc, _, _, err := buildServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	projection, err := snapshotSvc.Generate(ctx, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("generating projection: %w", err)
	}

	out := c.String("out")
	writer := export.NewExcelWriter(out)
	if err := writer.Write(ctx, projection); err != nil {
		return err
	}

	log.Printf("Wrote %s", out)
	return nil
}

// buildServices connects to the database, applies migrations and wires
// the service graph shared by the serve and export commands.
func buildServices(ctx context.Context, cfg config.Config) (pool *pgxpool.Pool, snapshotSvc *snapshot.Service, portfolioSvc *portfolio.Service, settingsRepo settings.Repository, err error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, nil, nil, fmt.Errorf("DATABASE_URL is required")
	}

	pool, err = database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("connecting to database: %w", err)
	}

	migrationsSub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		pool.Close()
		return nil, nil, nil, nil, fmt.Errorf("creating migrations sub-fs: %w", err)
	}
	if err := database.RunMigrations(ctx, pool, migrationsSub); err != nil {
		pool.Close()
		return nil, nil, nil, nil, fmt.Errorf("running migrations: %w", err)
	}

	portfolioRepo := portfolio.NewPgRepository(pool)
	portfolioSvc = portfolio.NewService(portfolioRepo)
	settingsRepo = settings.NewPgRepository(pool)

	snapshotRepo := snapshot.NewPgRepository(pool)
	snapshotSvc = snapshot.NewService(portfolioRepo, settingsRepo, snapshotRepo, cfg.ExchangeRate)

	return pool, snapshotSvc, portfolioSvc, settingsRepo, nil
}
