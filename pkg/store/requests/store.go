package requests

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sched-tools/ops-atlas/pkg/models/domain"
	"github.com/sched-tools/ops-atlas/pkg/models/store"
	"github.com/sched-tools/ops-atlas/pkg/store/kv"
)

// Store reads the TIV request and acceleration collections consumed by
// the report generator, and appends records on behalf of the request
// intake screens.
type Store interface {
	ListTIVRequests(ctx context.Context) ([]domain.TIVRequest, error)
	ListAccelerations(ctx context.Context) ([]domain.Acceleration, error)
	AddTIVRequest(ctx context.Context, req domain.TIVRequest) error
	AddAcceleration(ctx context.Context, acc domain.Acceleration) error
}

type requestStore struct {
	kv kv.Store
}

func NewStore(kvStore kv.Store) (Store, error) {
	if kvStore == nil {
		return nil, fmt.Errorf("kv store is nil")
	}
	return &requestStore{kv: kvStore}, nil
}

func (s *requestStore) ListTIVRequests(ctx context.Context) ([]domain.TIVRequest, error) {
	blob, err := s.kv.Get(ctx, store.TIVRequestsCollection)
	if err != nil {
		return nil, fmt.Errorf("load tiv requests: %w", err)
	}
	items, err := store.DecodeCollection[domain.TIVRequest](blob)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("tiv request collection unreadable, starting empty")
		return nil, nil
	}
	return items, nil
}

func (s *requestStore) ListAccelerations(ctx context.Context) ([]domain.Acceleration, error) {
	blob, err := s.kv.Get(ctx, store.AccelerationsCollection)
	if err != nil {
		return nil, fmt.Errorf("load accelerations: %w", err)
	}
	items, err := store.DecodeCollection[domain.Acceleration](blob)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("acceleration collection unreadable, starting empty")
		return nil, nil
	}
	return items, nil
}

func (s *requestStore) AddTIVRequest(ctx context.Context, req domain.TIVRequest) error {
	items, err := s.ListTIVRequests(ctx)
	if err != nil {
		return err
	}
	items = append(items, req)
	blob, err := store.EncodeCollection(items)
	if err != nil {
		return fmt.Errorf("encode tiv requests: %w", err)
	}
	if err := s.kv.Set(ctx, store.TIVRequestsCollection, blob); err != nil {
		return fmt.Errorf("save tiv requests: %w", err)
	}
	return nil
}

func (s *requestStore) AddAcceleration(ctx context.Context, acc domain.Acceleration) error {
	items, err := s.ListAccelerations(ctx)
	if err != nil {
		return err
	}
	items = append(items, acc)
	blob, err := store.EncodeCollection(items)
	if err != nil {
		return fmt.Errorf("encode accelerations: %w", err)
	}
	if err := s.kv.Set(ctx, store.AccelerationsCollection, blob); err != nil {
		return fmt.Errorf("save accelerations: %w", err)
	}
	return nil
}
