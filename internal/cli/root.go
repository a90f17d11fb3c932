// Package cli implements the agent-console CLI commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/agent-console/internal/config"
	"github.com/rcliao/agent-console/internal/store"
)

var (
	dbPath     string
	driverFlag string
	dsnFlag    string
	configPath string
	debug      bool

	cfg    *config.Config
	logger = zap.NewNop()

	// closers run, newest first, before exit terminates the process.
	closers []func()
	osExit  = os.Exit
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "agent-console",
	Short: "Operator console for agent memory and integrations",
	Long: `Inspect and edit the agent's memory (patterns, knowledge bases, messages,
directives, learning objectives) and its external integrations. State is
persisted after every change and can be exported, imported and encrypted.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(getConfigPath())
		if err != nil {
			return err
		}
		if dbPath != "" {
			c.Storage.Path = dbPath
		}
		if driverFlag != "" {
			c.Storage.Driver = driverFlag
		}
		if dsnFlag != "" {
			c.Storage.DSN = dsnFlag
		}
		cfg = c

		l, err := c.Logger(debug)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "SQLite path (default: $AGENT_CONSOLE_DB or ~/.agent-console/state.db)")
	RootCmd.PersistentFlags().StringVar(&driverFlag, "driver", "", "Storage driver: sqlite, memory, postgres, mongodb (default: $AGENT_CONSOLE_DRIVER or sqlite)")
	RootCmd.PersistentFlags().StringVar(&dsnFlag, "dsn", "", "Postgres DSN or MongoDB URI (default: $AGENT_CONSOLE_DSN)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $AGENT_CONSOLE_CONFIG or ~/.agent-console/config.yaml)")
	RootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

func getConfigPath() string {
	if configPath != "" {
		return configPath
	}
	if env := os.Getenv("AGENT_CONSOLE_CONFIG"); env != "" {
		return env
	}
	return config.DefaultPath()
}

func openBackend(ctx context.Context) (store.Backend, error) {
	return store.Open(ctx, cfg.StoreConfig())
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

// onExit registers fn to run on exit and returns a func that runs it now.
// fn runs at most once either way.
func onExit(fn func()) func() {
	var once sync.Once
	done := func() { once.Do(fn) }
	closers = append(closers, done)
	return done
}

// exit runs the registered closers and terminates with code. Deferred calls
// do not run after os.Exit, so open backends are closed here.
func exit(code int) {
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
	closers = nil
	_ = logger.Sync()
	osExit(code)
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	exit(1)
}

func errNotFound(kind, id string) error {
	return fmt.Errorf("%s not found: %s", kind, id)
}
