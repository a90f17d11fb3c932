package provider

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rcliao/agent-console/internal/task"
)

// Registry holds the configured providers and models and runs connection
// tests and installs in the background. Failed attempts are reported, not
// retried.
type Registry struct {
	checker   Checker
	installer Installer
	logger    *zap.Logger

	mu        sync.Mutex
	providers []Provider
	models    []Model
}

// NewRegistry returns a registry seeded with the default providers and
// models.
func NewRegistry(checker Checker, installer Installer, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		checker:   checker,
		installer: installer,
		logger:    logger,
		providers: DefaultProviders(),
		models:    DefaultModels(),
	}
}

func (r *Registry) Providers() []Provider {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Provider(nil), r.providers...)
}

func (r *Registry) Models() []Model {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Model(nil), r.models...)
}

// Provider returns the provider with the given id.
func (r *Registry) Provider(id string) (Provider, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.providers {
		if p.ID == id {
			return p, true
		}
	}
	return Provider{}, false
}

// SetAPIKey stores the API key used for subsequent connection tests.
func (r *Registry) SetAPIKey(id, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.providers {
		if r.providers[i].ID == id {
			r.providers[i].APIKey = key
			return nil
		}
	}
	return fmt.Errorf("provider not found: %s", id)
}

// TestConnection starts a connection test for provider id. On success the
// provider is marked connected.
func (r *Registry) TestConnection(ctx context.Context, id string) (*task.Task[Result], error) {
	p, ok := r.Provider(id)
	if !ok {
		return nil, fmt.Errorf("provider not found: %s", id)
	}

	return task.Go(ctx, func(ctx context.Context) (Result, error) {
		res, err := r.checker.TestConnection(ctx, p)
		if err != nil {
			return res, fmt.Errorf("test %s: %w", id, err)
		}
		if res.Success {
			r.setProviderStatus(id, StatusConnected)
		}
		r.logger.Info("connection test finished",
			zap.String("provider", id),
			zap.Bool("success", res.Success),
			zap.String("message", res.Message),
		)
		return res, nil
	}), nil
}

// Install starts installing model id. On success the model is marked
// installed.
func (r *Registry) Install(ctx context.Context, id string) (*task.Task[Result], error) {
	var m Model
	found := false
	r.mu.Lock()
	for i := range r.models {
		if r.models[i].ID == id {
			m = r.models[i]
			found = true
			break
		}
	}
	r.mu.Unlock()
	if !found {
		return nil, fmt.Errorf("model not found: %s", id)
	}

	return task.Go(ctx, func(ctx context.Context) (Result, error) {
		res, err := r.installer.Install(ctx, m)
		if err != nil {
			return res, fmt.Errorf("install %s: %w", id, err)
		}
		if res.Success {
			r.setModelStatus(id, ModelInstalled)
		}
		r.logger.Info("model install finished",
			zap.String("model", id),
			zap.Bool("success", res.Success),
		)
		return res, nil
	}), nil
}

// TestAll tests every provider concurrently and returns results keyed by
// provider id.
func (r *Registry) TestAll(ctx context.Context) (map[string]Result, error) {
	providers := r.Providers()
	results := make([]Result, len(providers))

	g, ctx := errgroup.WithContext(ctx)
	for i, p := range providers {
		i, p := i, p
		g.Go(func() error {
			t, err := r.TestConnection(ctx, p.ID)
			if err != nil {
				return err
			}
			res, err := t.Wait(ctx)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]Result, len(providers))
	for i, p := range providers {
		out[p.ID] = results[i]
	}
	return out, nil
}

func (r *Registry) setProviderStatus(id string, s Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.providers {
		if r.providers[i].ID == id {
			r.providers[i].Status = s
		}
	}
}

func (r *Registry) setModelStatus(id string, s ModelStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.models {
		if r.models[i].ID == id {
			r.models[i].Status = s
		}
	}
}
