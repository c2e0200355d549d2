package reports

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sched-tools/ops-atlas/pkg/models/domain"
	"github.com/sched-tools/ops-atlas/pkg/models/store"
	"github.com/sched-tools/ops-atlas/pkg/store/kv"
)

const (
	// DefaultListLimit bounds ListExecutions when the caller passes no limit.
	DefaultListLimit = 50
	// RetentionLimit caps each user's stored execution history.
	RetentionLimit = 100
)

var (
	// ErrTemplateNotFound is returned when a mutation targets a template
	// that does not exist or is owned by someone else. The two cases are
	// deliberately indistinguishable to the caller.
	ErrTemplateNotFound = errors.New("template not found or unauthorized")
	// ErrNameRequired is returned before any write when a template is
	// saved without a name.
	ErrNameRequired = errors.New("template name is required")
)

// Store persists report templates and execution history. Templates are
// readable by their owner or anyone when public, and mutable only by
// the owner. Executions belong exclusively to one user and are capped
// at RetentionLimit per user.
type Store interface {
	ListTemplates(ctx context.Context, userID string) ([]domain.ReportTemplate, error)
	GetTemplate(ctx context.Context, id string) (*domain.ReportTemplate, error)
	SaveTemplate(ctx context.Context, userID, name, description string, cfg domain.ReportConfiguration) (*domain.ReportTemplate, error)
	UpdateTemplate(ctx context.Context, id, userID string, upd domain.TemplateUpdate) (*domain.ReportTemplate, error)
	DeleteTemplate(ctx context.Context, id, userID string) error

	ListExecutions(ctx context.Context, userID string, limit int) ([]domain.ReportExecution, error)
	SaveExecution(ctx context.Context, exec domain.ReportExecution) (*domain.ReportExecution, error)
	MarkExecutionExported(ctx context.Context, id, userID, format string) error
	DeleteExecution(ctx context.Context, id, userID string) error

	ClearUserData(ctx context.Context, userID string) error
}

type reportStore struct {
	kv    kv.Store
	now   func() time.Time
	newID func() string
}

// Option overrides a reportStore default, used by tests to pin clocks
// and identifiers.
type Option func(*reportStore)

func WithClock(now func() time.Time) Option {
	return func(s *reportStore) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *reportStore) { s.newID = newID }
}

func NewStore(kvStore kv.Store, opts ...Option) (Store, error) {
	if kvStore == nil {
		return nil, fmt.Errorf("kv store is nil")
	}
	s := &reportStore{
		kv:    kvStore,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// loadTemplates reads the full template collection. An unparsable blob
// is logged and treated as empty rather than propagated.
func (s *reportStore) loadTemplates(ctx context.Context) ([]domain.ReportTemplate, error) {
	blob, err := s.kv.Get(ctx, store.TemplatesCollection)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	templates, err := store.DecodeCollection[domain.ReportTemplate](blob)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("template collection unreadable, starting empty")
		return nil, nil
	}
	return templates, nil
}

func (s *reportStore) saveTemplates(ctx context.Context, templates []domain.ReportTemplate) error {
	blob, err := store.EncodeCollection(templates)
	if err != nil {
		return fmt.Errorf("encode templates: %w", err)
	}
	if err := s.kv.Set(ctx, store.TemplatesCollection, blob); err != nil {
		return fmt.Errorf("save templates: %w", err)
	}
	return nil
}

func (s *reportStore) loadExecutions(ctx context.Context) ([]domain.ReportExecution, error) {
	blob, err := s.kv.Get(ctx, store.ExecutionsCollection)
	if err != nil {
		return nil, fmt.Errorf("load executions: %w", err)
	}
	executions, err := store.DecodeCollection[domain.ReportExecution](blob)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("execution collection unreadable, starting empty")
		return nil, nil
	}
	return executions, nil
}

func (s *reportStore) saveExecutions(ctx context.Context, executions []domain.ReportExecution) error {
	blob, err := store.EncodeCollection(executions)
	if err != nil {
		return fmt.Errorf("encode executions: %w", err)
	}
	if err := s.kv.Set(ctx, store.ExecutionsCollection, blob); err != nil {
		return fmt.Errorf("save executions: %w", err)
	}
	return nil
}

func (s *reportStore) ListTemplates(ctx context.Context, userID string) ([]domain.ReportTemplate, error) {
	templates, err := s.loadTemplates(ctx)
	if err != nil {
		return nil, err
	}
	visible := make([]domain.ReportTemplate, 0, len(templates))
	for _, t := range templates {
		if t.UserID == userID || t.IsPublic {
			visible = append(visible, t)
		}
	}
	return visible, nil
}

// GetTemplate is a lookup primitive, not an authorization gate; it
// returns any template by id. Absent templates yield (nil, nil).
func (s *reportStore) GetTemplate(ctx context.Context, id string) (*domain.ReportTemplate, error) {
	templates, err := s.loadTemplates(ctx)
	if err != nil {
		return nil, err
	}
	for i := range templates {
		if templates[i].ID == id {
			return &templates[i], nil
		}
	}
	return nil, nil
}

func (s *reportStore) SaveTemplate(ctx context.Context, userID, name, description string, cfg domain.ReportConfiguration) (*domain.ReportTemplate, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	templates, err := s.loadTemplates(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	tpl := domain.ReportTemplate{
		ID:            s.newID(),
		UserID:        userID,
		Name:          name,
		Description:   description,
		ReportType:    cfg.ReportType,
		Configuration: cfg,
		IsPublic:      false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	templates = append(templates, tpl)
	if err := s.saveTemplates(ctx, templates); err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (s *reportStore) UpdateTemplate(ctx context.Context, id, userID string, upd domain.TemplateUpdate) (*domain.ReportTemplate, error) {
	templates, err := s.loadTemplates(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range templates {
		if templates[i].ID == id && templates[i].UserID == userID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrTemplateNotFound
	}

	tpl := &templates[idx]
	if upd.Name != nil {
		tpl.Name = *upd.Name
	}
	if upd.Description != nil {
		tpl.Description = *upd.Description
	}
	if upd.Configuration != nil {
		tpl.Configuration = *upd.Configuration
		tpl.ReportType = upd.Configuration.ReportType
	}
	if upd.IsPublic != nil {
		tpl.IsPublic = *upd.IsPublic
	}
	tpl.UpdatedAt = s.now()

	if err := s.saveTemplates(ctx, templates); err != nil {
		return nil, err
	}
	return tpl, nil
}

// DeleteTemplate removes the matching owned template. A miss is not an
// error.
func (s *reportStore) DeleteTemplate(ctx context.Context, id, userID string) error {
	templates, err := s.loadTemplates(ctx)
	if err != nil {
		return err
	}
	kept := templates[:0]
	for _, t := range templates {
		if t.ID == id && t.UserID == userID {
			continue
		}
		kept = append(kept, t)
	}
	return s.saveTemplates(ctx, kept)
}

func (s *reportStore) ListExecutions(ctx context.Context, userID string, limit int) ([]domain.ReportExecution, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	executions, err := s.loadExecutions(ctx)
	if err != nil {
		return nil, err
	}
	owned := make([]domain.ReportExecution, 0, len(executions))
	for _, e := range executions {
		if e.UserID == userID {
			owned = append(owned, e)
		}
	}
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].ExecutedAt.After(owned[j].ExecutedAt)
	})
	if len(owned) > limit {
		owned = owned[:limit]
	}
	return owned, nil
}

// SaveExecution assigns id and timestamp, appends, then enforces
// retention: the user's RetentionLimit most recent executions are kept
// and older ones dropped. Other users' history is never touched.
func (s *reportStore) SaveExecution(ctx context.Context, exec domain.ReportExecution) (*domain.ReportExecution, error) {
	executions, err := s.loadExecutions(ctx)
	if err != nil {
		return nil, err
	}

	exec.ID = s.newID()
	exec.ExecutedAt = s.now()
	executions = append(executions, exec)

	owned := make([]domain.ReportExecution, 0, len(executions))
	for _, e := range executions {
		if e.UserID == exec.UserID {
			owned = append(owned, e)
		}
	}
	if len(owned) > RetentionLimit {
		sort.SliceStable(owned, func(i, j int) bool {
			return owned[i].ExecutedAt.After(owned[j].ExecutedAt)
		})
		keep := make(map[string]struct{}, RetentionLimit)
		for _, e := range owned[:RetentionLimit] {
			keep[e.ID] = struct{}{}
		}
		kept := executions[:0]
		for _, e := range executions {
			if e.UserID == exec.UserID {
				if _, ok := keep[e.ID]; !ok {
					continue
				}
			}
			kept = append(kept, e)
		}
		executions = kept
	}

	if err := s.saveExecutions(ctx, executions); err != nil {
		return nil, err
	}
	return &exec, nil
}

// MarkExecutionExported flips the only mutable execution fields. A miss
// is not an error, matching delete semantics.
func (s *reportStore) MarkExecutionExported(ctx context.Context, id, userID, format string) error {
	executions, err := s.loadExecutions(ctx)
	if err != nil {
		return err
	}
	changed := false
	for i := range executions {
		if executions[i].ID == id && executions[i].UserID == userID {
			executions[i].Exported = true
			executions[i].ExportFormat = format
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}
	return s.saveExecutions(ctx, executions)
}

func (s *reportStore) DeleteExecution(ctx context.Context, id, userID string) error {
	executions, err := s.loadExecutions(ctx)
	if err != nil {
		return err
	}
	kept := executions[:0]
	for _, e := range executions {
		if e.ID == id && e.UserID == userID {
			continue
		}
		kept = append(kept, e)
	}
	return s.saveExecutions(ctx, kept)
}

// ClearUserData removes every template and execution owned by userID, a
// full-tenant wipe used on account removal.
func (s *reportStore) ClearUserData(ctx context.Context, userID string) error {
	templates, err := s.loadTemplates(ctx)
	if err != nil {
		return err
	}
	keptTemplates := templates[:0]
	for _, t := range templates {
		if t.UserID != userID {
			keptTemplates = append(keptTemplates, t)
		}
	}
	if err := s.saveTemplates(ctx, keptTemplates); err != nil {
		return err
	}

	executions, err := s.loadExecutions(ctx)
	if err != nil {
		return err
	}
	keptExecutions := executions[:0]
	for _, e := range executions {
		if e.UserID != userID {
			keptExecutions = append(keptExecutions, e)
		}
	}
	return s.saveExecutions(ctx, keptExecutions)
}
