package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	reporthandlers "github.com/sched-tools/ops-atlas/pkg/handlers/report"
	"github.com/sched-tools/ops-atlas/pkg/models/domain"
	"github.com/sched-tools/ops-atlas/pkg/server"
	"github.com/sched-tools/ops-atlas/pkg/services/config"
	"github.com/sched-tools/ops-atlas/pkg/services/export"
	"github.com/sched-tools/ops-atlas/pkg/services/report"
	"github.com/sched-tools/ops-atlas/pkg/services/snapshot"
	"github.com/sched-tools/ops-atlas/pkg/store/kv"
	"github.com/sched-tools/ops-atlas/pkg/store/reports"
	"github.com/sched-tools/ops-atlas/pkg/store/requests"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the scheduling console reporting engine",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the configuration file (defaults apply when omitted)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := kv.NewDB(kv.Settings{
		DbPath: cfg.Storage.DBPath,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	kvStore, err := kv.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create kv store: %w", err)
	}
	reportStore, err := reports.NewStore(kvStore)
	if err != nil {
		return fmt.Errorf("failed to create report store: %w", err)
	}
	requestStore, err := requests.NewStore(kvStore)
	if err != nil {
		return fmt.Errorf("failed to create request store: %w", err)
	}

	snap, err := snapshot.LoadOrEmpty(cfg.Snapshot.Path)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	logger.Info().
		Int("events", len(snap.Events)).
		Int("users", len(snap.Users)).
		Int("teams", len(snap.Teams)).
		Msgf("Snapshot loaded from `%s`.", cfg.Snapshot.Path)

	engine := report.NewEngine(report.NewGenerator(requestStore), reportStore)
	exporter := export.NewExporter()

	handler := reporthandlers.NewHandler(engine, reportStore, exporter,
		func() domain.Snapshot { return snap }, cfg.Export.Dir)

	api := server.NewWebAPI(server.Config{
		Addr:            cfg.Server.Addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Reports: handler,
			Logger:  logger,
		},
	})

	return api.Start()
}
