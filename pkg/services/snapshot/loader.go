package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/sched-tools/ops-atlas/pkg/models/domain"
)

// Load reads a domain snapshot from a JSON file. The surrounding
// console owns snapshot production; the engine only ever reads it.
func Load(path string) (domain.Snapshot, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("parse snapshot: %w", err)
	}
	return snap, nil
}

// LoadOrEmpty degrades a missing snapshot file to an empty snapshot;
// any other failure still surfaces.
func LoadOrEmpty(path string) (domain.Snapshot, error) {
	snap, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Snapshot{}, nil
		}
		return domain.Snapshot{}, err
	}
	return snap, nil
}
