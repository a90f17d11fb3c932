package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/agent-console/internal/provider"
)

func newRegistry() *provider.Registry {
	return provider.NewRegistry(
		provider.SimulatedChecker{Delay: cfg.TestDelay()},
		provider.SimulatedInstaller{Delay: cfg.InstallDelay()},
		logger,
	)
}

func init() {
	providerCmd := &cobra.Command{
		Use:   "provider",
		Short: "List AI providers and test connections",
	}

	providerCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List configured providers",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printJSON(newRegistry().Providers())
		},
	})

	test := &cobra.Command{
		Use:   "test [provider-id]",
		Short: "Test the connection to one provider, or all of them",
		Args:  cobra.MaximumNArgs(1),
		Run:   runProviderTest,
	}
	test.Flags().String("api-key", "", "API key to test with")
	providerCmd.AddCommand(test)

	modelCmd := &cobra.Command{
		Use:   "model",
		Short: "List and install local models",
	}

	modelCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the local model catalog",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printJSON(newRegistry().Models())
		},
	})

	modelCmd.AddCommand(&cobra.Command{
		Use:   "install <model-id>",
		Short: "Install a local model",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			r := newRegistry()
			t, err := r.Install(cmd.Context(), args[0])
			if err != nil {
				exitErr("install", err)
			}
			res, err := t.Wait(cmd.Context())
			if err != nil {
				exitErr("install", err)
			}
			printJSON(res)
		},
	})

	RootCmd.AddCommand(providerCmd, modelCmd)
}

func runProviderTest(cmd *cobra.Command, args []string) {
	apiKey, _ := cmd.Flags().GetString("api-key")
	r := newRegistry()

	if len(args) == 0 {
		results, err := r.TestAll(cmd.Context())
		if err != nil {
			exitErr("test providers", err)
		}
		printJSON(results)
		return
	}

	if apiKey != "" {
		if err := r.SetAPIKey(args[0], apiKey); err != nil {
			exitErr("set api key", err)
		}
	}
	t, err := r.TestConnection(cmd.Context(), args[0])
	if err != nil {
		exitErr("test provider", err)
	}
	res, err := t.Wait(cmd.Context())
	if err != nil {
		exitErr("test provider", err)
	}
	printJSON(res)
}
