package provider

import (
	"context"
	"time"

	"github.com/rcliao/agent-console/internal/task"
)

const (
	DefaultTestDelay    = 1500 * time.Millisecond
	DefaultInstallDelay = 2 * time.Second
)

// Result is the outcome reported to the operator.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Checker tests whether a provider is reachable.
type Checker interface {
	TestConnection(ctx context.Context, p Provider) (Result, error)
}

// Installer installs a local model.
type Installer interface {
	Install(ctx context.Context, m Model) (Result, error)
}

// SimulatedChecker answers after a fixed delay without touching the
// network. Local providers always connect; cloud providers need an API key.
type SimulatedChecker struct {
	Delay time.Duration
}

func (c SimulatedChecker) TestConnection(ctx context.Context, p Provider) (Result, error) {
	if err := task.Sleep(ctx, c.Delay); err != nil {
		return Result{}, err
	}
	switch {
	case p.Type == TypeLocal, p.Type == TypeCloud && p.APIKey != "":
		return Result{Success: true, Message: "Successfully connected to " + p.Name}, nil
	case p.Type == TypeCloud:
		return Result{Message: "API key is required for connection"}, nil
	default:
		return Result{Message: "Failed to connect. Please check endpoint and configuration."}, nil
	}
}

// SimulatedInstaller always succeeds after a fixed delay.
type SimulatedInstaller struct {
	Delay time.Duration
}

func (i SimulatedInstaller) Install(ctx context.Context, m Model) (Result, error) {
	if err := task.Sleep(ctx, i.Delay); err != nil {
		return Result{}, err
	}
	return Result{Success: true, Message: "Successfully installed " + m.Name}, nil
}
