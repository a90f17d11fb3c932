package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/agent-console/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	b, err := openBackend(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	defer onExit(func() { b.Close() })()

	sb, ok := b.(*store.SQLiteBackend)
	if !ok {
		keys, err := b.Keys(cmd.Context())
		if err != nil {
			exitErr("stats", err)
		}
		printJSON(map[string]any{"driver": cfg.Storage.Driver, "keys": keys})
		return
	}

	stats, err := sb.Stats(cmd.Context())
	if err != nil {
		exitErr("stats", fmt.Errorf("sqlite: %w", err))
	}
	printJSON(stats)
}
