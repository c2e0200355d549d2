package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sched-tools/ops-atlas/pkg/models/domain"
	"github.com/sched-tools/ops-atlas/pkg/store/requests"
)

type seedCmd struct {
	tivPath  string
	accPath  string
	requests requests.Store
	deps     Dependencies
}

// NewSeedCmd loads TIV request and acceleration fixtures into their
// persisted collections, standing in for the console's intake screens.
func NewSeedCmd(deps Dependencies, store requests.Store) *cobra.Command {
	sc := &seedCmd{requests: store, deps: deps}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load request collections from JSON files",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.tivPath, "tiv", "", "Path to a JSON array of TIV requests")
	cmd.Flags().StringVar(&sc.accPath, "accelerations", "", "Path to a JSON array of accelerations")

	return cmd
}

func (sc *seedCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	if sc.tivPath != "" {
		var reqs []domain.TIVRequest
		if err := readJSONFile(sc.tivPath, &reqs); err != nil {
			return err
		}
		for _, req := range reqs {
			if err := sc.requests.AddTIVRequest(ctx, req); err != nil {
				return err
			}
		}
		fmt.Fprintf(sc.deps.Output, "loaded %d tiv requests\n", len(reqs))
	}

	if sc.accPath != "" {
		var accs []domain.Acceleration
		if err := readJSONFile(sc.accPath, &accs); err != nil {
			return err
		}
		for _, acc := range accs {
			if err := sc.requests.AddAcceleration(ctx, acc); err != nil {
				return err
			}
		}
		fmt.Fprintf(sc.deps.Output, "loaded %d accelerations\n", len(accs))
	}

	return nil
}

func readJSONFile(path string, v any) error {
	blob, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(blob, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
