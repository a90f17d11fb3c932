package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newImportCmd[S, A any](open opener[S, A], what string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Replace " + what + " with an exported document",
		Long: "Import a document produced by export (file argument or stdin). The whole\n" +
			what + " snapshot is replaced. On a parse failure nothing changes.",
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			passphrase, _ := cmd.Flags().GetString("passphrase")

			var r io.Reader = os.Stdin
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					exitErr("open import file", err)
				}
				defer onExit(func() { f.Close() })()
				r = f
			}

			s, done := open(cmd)
			defer done()

			if passphrase != "" {
				if err := s.ImportEncrypted(cmd.Context(), r, passphrase); err != nil {
					exitErr("import", err)
				}
			} else if !s.ImportState(cmd.Context(), r) {
				printJSON(map[string]any{"ok": false})
				exit(1)
			}
			printJSON(map[string]any{"ok": true})
		},
	}

	cmd.Flags().String("passphrase", "", "Passphrase of an encrypted export")
	return cmd
}
