package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Domain describes one reducer-driven state family.
type Domain[S, A any] struct {
	Key          string // storage key
	ExportPrefix string // export filename prefix
	Seed         func(now time.Time) S
	Reduce       func(S, A) S
	Import       func(S) A // action installing an imported document
	Reset        A
	Normalize    func(S) S // optional; applied to documents read from storage

	// Fields are the top-level keys of a document. A document that carries
	// none of them is rejected. Empty disables the check.
	Fields []string
	// Validate is optional; it rejects documents whose entities break the
	// domain invariants.
	Validate func(S) error
}

// Option configures a Store.
type Option func(*storeOptions)

type storeOptions struct {
	now func() time.Time
}

// WithClock overrides the clock used for seeding and export filenames.
func WithClock(now func() time.Time) Option {
	return func(o *storeOptions) { o.now = now }
}

var (
	errNotObject  = errors.New("document is not a JSON object")
	errWrongShape = errors.New("document has none of the expected fields")
)

// Store owns the authoritative in-memory snapshot of one domain and writes
// it through to a Backend after every change. Backend failures are logged,
// never returned: storage is a cache for restart recovery.
type Store[S, A any] struct {
	mu        sync.Mutex
	state     S
	lastSaved string

	backend Backend
	domain  Domain[S, A]
	logger  *zap.Logger
	now     func() time.Time
}

// New loads the persisted snapshot for d.Key, falling back to d.Seed when
// it is missing, unreadable or corrupt.
func New[S, A any](ctx context.Context, backend Backend, d Domain[S, A], logger *zap.Logger, opts ...Option) *Store[S, A] {
	o := storeOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Store[S, A]{
		backend: backend,
		domain:  d,
		logger:  logger.With(zap.String("key", d.Key)),
		now:     o.now,
	}
	s.state = s.load(ctx)
	s.persist(ctx, s.state)
	return s
}

func (s *Store[S, A]) load(ctx context.Context) S {
	raw, ok, err := s.backend.Get(ctx, s.domain.Key)
	if err != nil {
		s.logger.Warn("read persisted state failed, using seed", zap.Error(err))
		return s.domain.Seed(s.now())
	}
	if !ok {
		s.logger.Debug("no persisted state, using seed")
		return s.domain.Seed(s.now())
	}

	st, err := s.parseDocument([]byte(raw))
	if err != nil {
		s.logger.Warn("persisted state is corrupt, using seed", zap.Error(err))
		return s.domain.Seed(s.now())
	}
	if s.domain.Normalize != nil {
		st = s.domain.Normalize(st)
	}
	s.lastSaved = raw
	return st
}

// persist writes st unless it serializes to what was last written.
// Callers hold s.mu or have exclusive access.
func (s *Store[S, A]) persist(ctx context.Context, st S) {
	b, err := json.Marshal(st)
	if err != nil {
		s.logger.Error("marshal state", zap.Error(err))
		return
	}
	if string(b) == s.lastSaved {
		return
	}
	if err := s.backend.Set(ctx, s.domain.Key, string(b)); err != nil {
		s.logger.Error("persist state", zap.Error(err))
		return
	}
	s.lastSaved = string(b)
}

// State returns the current snapshot. Treat it as read-only: the slices
// are shared with the store.
func (s *Store[S, A]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch reduces a into the current state, persists the result and
// returns it.
func (s *Store[S, A]) Dispatch(ctx context.Context, a A) S {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.domain.Reduce(s.state, a)
	s.persist(ctx, s.state)
	return s.state
}

// ResetState dispatches the domain's reset action.
func (s *Store[S, A]) ResetState(ctx context.Context) S {
	return s.Dispatch(ctx, s.domain.Reset)
}

// parseDocument decodes a persisted or imported snapshot and checks that it
// has the domain's shape.
func (s *Store[S, A]) parseDocument(data []byte) (S, error) {
	var st S
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return st, errNotObject
	}

	if len(s.domain.Fields) > 0 {
		var top map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &top); err != nil {
			return st, err
		}
		found := false
		for _, f := range s.domain.Fields {
			if _, ok := top[f]; ok {
				found = true
				break
			}
		}
		if !found {
			return st, fmt.Errorf("%w: want one of %v", errWrongShape, s.domain.Fields)
		}
	}

	if err := json.Unmarshal(trimmed, &st); err != nil {
		return st, err
	}
	if s.domain.Validate != nil {
		if err := s.domain.Validate(st); err != nil {
			return st, err
		}
	}
	return st, nil
}
