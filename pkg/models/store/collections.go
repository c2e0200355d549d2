package store

import (
	"encoding/json"
	"fmt"
)

// Collection names inside the key/value store.
const (
	TemplatesCollection     = "report_templates"
	ExecutionsCollection    = "report_executions"
	TIVRequestsCollection   = "tiv_requests"
	AccelerationsCollection = "accelerations"
)

// CollectionVersion is the current envelope version written on every save.
const CollectionVersion = 1

// Envelope wraps a persisted collection blob. Earlier deployments wrote
// bare JSON arrays; those are accepted on read and rewritten enveloped
// on the next save.
type Envelope struct {
	Version int             `json:"version"`
	Items   json.RawMessage `json:"items"`
}

// DecodeCollection parses a persisted blob into items. A nil blob is an
// empty collection. Unknown envelope versions are rejected so stale or
// foreign writes are never trusted.
func DecodeCollection[T any](blob []byte) ([]T, error) {
	if len(blob) == 0 {
		return nil, nil
	}

	var items []T
	// Legacy layout: the collection is the array itself.
	if blob[0] == '[' {
		if err := json.Unmarshal(blob, &items); err != nil {
			return nil, fmt.Errorf("decode legacy collection: %w", err)
		}
		return items, nil
	}

	var env Envelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return nil, fmt.Errorf("decode collection envelope: %w", err)
	}
	if env.Version != CollectionVersion {
		return nil, fmt.Errorf("unsupported collection version %d", env.Version)
	}
	if len(env.Items) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(env.Items, &items); err != nil {
		return nil, fmt.Errorf("decode collection items: %w", err)
	}
	return items, nil
}

// EncodeCollection serializes items into the current envelope layout.
func EncodeCollection[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode collection items: %w", err)
	}
	return json.Marshal(Envelope{Version: CollectionVersion, Items: raw})
}
