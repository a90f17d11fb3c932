package memory

import (
	"context"

	"go.uber.org/zap"

	"github.com/rcliao/agent-console/internal/model"
	"github.com/rcliao/agent-console/internal/store"
)

const (
	// StorageKey is where the memory snapshot is persisted.
	StorageKey = "system_memory_state"
	// ExportPrefix prefixes export filenames.
	ExportPrefix = "system-memory"
)

// Store is the memory store facade.
type Store = store.Store[model.MemoryState, Action]

// Domain wires the memory reducer into the generic state store.
func Domain() store.Domain[model.MemoryState, Action] {
	return store.Domain[model.MemoryState, Action]{
		Key:          StorageKey,
		ExportPrefix: ExportPrefix,
		Seed:         Seed,
		Reduce:       Reduce,
		Import:       func(s model.MemoryState) Action { return Import{State: s} },
		Reset:        Reset{},
		Normalize:    model.MemoryState.Normalized,
		Fields:       model.MemoryFields,
		Validate:     model.MemoryState.Validate,
	}
}

// NewStore opens the memory store on backend.
func NewStore(ctx context.Context, backend store.Backend, logger *zap.Logger, opts ...store.Option) *Store {
	return store.New(ctx, backend, Domain(), logger, opts...)
}
