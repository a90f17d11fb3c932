package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/agent-console/internal/integration"
	"github.com/rcliao/agent-console/internal/model"
)

func openIntegrations(cmd *cobra.Command) (*integration.Store, func()) {
	b, err := openBackend(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	return integration.NewStore(cmd.Context(), b, logger), onExit(func() { b.Close() })
}

func init() {
	cmd := &cobra.Command{
		Use:     "integrations",
		Aliases: []string{"integration"},
		Short:   "Inspect and edit external system integrations",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the integrations snapshot",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s, done := openIntegrations(cmd)
			defer done()
			printJSON(s.State())
		},
	}

	dispatch := &cobra.Command{
		Use:   "dispatch [action-json]",
		Short: "Apply an action document",
		Long: `Apply one action of the form {"type": "...", "payload": ...}.
Reads stdin when no argument is given.`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			data, err := readArgOrStdin(args)
			if err != nil {
				exitErr("read action", err)
			}
			a, err := integration.DecodeAction(data)
			if err != nil {
				exitErr("decode action", err)
			}
			s, done := openIntegrations(cmd)
			defer done()
			printJSON(s.Dispatch(cmd.Context(), a))
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Remove every integration",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s, done := openIntegrations(cmd)
			defer done()
			printJSON(s.ResetState(cmd.Context()))
		},
	}

	health := &cobra.Command{
		Use:   "health",
		Short: "Summarize integration status and metrics",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s, done := openIntegrations(cmd)
			defer done()
			printJSON(integration.ComputeHealth(s.State()))
		},
	}

	cmd.AddCommand(show, dispatch, reset, health,
		newExportCmd[model.IntegrationState, integration.Action](openIntegrations, "integrations"),
		newImportCmd[model.IntegrationState, integration.Action](openIntegrations, "integrations"),
	)
	RootCmd.AddCommand(cmd)
}
