package main

import (
	"context"
	"fmt"
	"os"
	"os/user"

	"github.com/rs/zerolog"

	"github.com/sched-tools/ops-atlas/pkg/runtime/terminal"
	"github.com/sched-tools/ops-atlas/pkg/services/config"
	"github.com/sched-tools/ops-atlas/pkg/services/export"
	"github.com/sched-tools/ops-atlas/pkg/services/report"
	"github.com/sched-tools/ops-atlas/pkg/services/snapshot"
	"github.com/sched-tools/ops-atlas/pkg/store/kv"
	"github.com/sched-tools/ops-atlas/pkg/store/reports"
	"github.com/sched-tools/ops-atlas/pkg/store/requests"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	cfg, err := config.Load(os.Getenv("OPS_ATLAS_CONFIG"))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	profile, err := currentProfile(ctx)
	if err != nil {
		return err
	}

	db, err := kv.NewDB(kv.Settings{DbPath: cfg.Storage.DBPath})
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

	cli := terminal.NewCLI(terminal.Options{
		Engine:       report.NewEngine(report.NewGenerator(requestStore), reportStore),
		Reports:      reportStore,
		Requests:     requestStore,
		Exporter:     export.NewExporter(),
		Profile:      *profile,
		Snapshot:     snap,
		ExportDir:    cfg.Export.Dir,
		HistoryLimit: cfg.History.ListLimit,
		Output:       os.Stdout,
	})

	return cli.Execute()
}

// currentProfile resolves the operator identity from the profiles file,
// honoring OPS_ATLAS_PROFILE the way the console honors its session.
func currentProfile(ctx context.Context) (*config.Profile, error) {
	usr, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve current user: %w", err)
	}

	path := os.Getenv("OPS_ATLAS_PROFILES")
	if path == "" {
		path = fmt.Sprintf("%s/.ops-atlas/profiles", usr.HomeDir)
	}

	name := os.Getenv("OPS_ATLAS_PROFILE")
	if name == "" {
		name = "default"
	}

	registry, err := config.NewRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles from %s: %w", path, err)
	}

	return registry.GetProfile(ctx, name)
}
