package integration

import (
	"context"

	"go.uber.org/zap"

	"github.com/rcliao/agent-console/internal/model"
	"github.com/rcliao/agent-console/internal/store"
)

const (
	StorageKey   = "system_integration_state"
	ExportPrefix = "system-integrations"
)

// Store is the integration store facade.
type Store = store.Store[model.IntegrationState, Action]

func Domain() store.Domain[model.IntegrationState, Action] {
	return store.Domain[model.IntegrationState, Action]{
		Key:          StorageKey,
		ExportPrefix: ExportPrefix,
		Seed:         Seed,
		Reduce:       Reduce,
		Import: func(s model.IntegrationState) Action {
			return Import{Integrations: s.Integrations}
		},
		Reset:     Reset{},
		Normalize: model.IntegrationState.Normalized,
		Fields:    model.IntegrationFields,
		Validate:  model.IntegrationState.Validate,
	}
}

// NewStore opens the integration store on backend.
func NewStore(ctx context.Context, backend store.Backend, logger *zap.Logger, opts ...store.Option) *Store {
	return store.New(ctx, backend, Domain(), logger, opts...)
}
