package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rcliao/agent-console/internal/store"
)

// opener opens a domain store on a fresh backend. The returned func closes
// the backend.
type opener[S, A any] func(cmd *cobra.Command) (*store.Store[S, A], func())

func newExportCmd[S, A any](open opener[S, A], what string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export " + what + " as a timestamped JSON file",
		Long: "Write the current " + what + " snapshot as 2-space-indented JSON into --dir\n" +
			"(default from config). With --stdout the document is printed instead.\n" +
			"With --passphrase the snapshot is encrypted and written as .enc.",
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			dir, _ := cmd.Flags().GetString("dir")
			toStdout, _ := cmd.Flags().GetBool("stdout")
			passphrase, _ := cmd.Flags().GetString("passphrase")
			if dir == "" {
				dir = cfg.Export.Dir
			}

			s, done := open(cmd)
			defer done()

			if toStdout {
				var err error
				if passphrase != "" {
					_, err = s.ExportEncrypted(os.Stdout, passphrase)
				} else {
					_, err = s.ExportState(os.Stdout)
				}
				if err != nil {
					exitErr("export", err)
				}
				return
			}

			path, err := exportToDir(s, dir, passphrase)
			if err != nil {
				exitErr("export", err)
			}
			fmt.Printf(`{"ok":true,"path":%q}`+"\n", path)
		},
	}

	cmd.Flags().String("dir", "", "Directory to write the export into")
	cmd.Flags().Bool("stdout", false, "Print the document instead of writing a file")
	cmd.Flags().String("passphrase", "", "Encrypt the export with this passphrase")
	return cmd
}

func exportToDir[S, A any](s *store.Store[S, A], dir, passphrase string) (string, error) {
	if passphrase == "" {
		return s.ExportFile(dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	f, err := os.CreateTemp(dir, ".export-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(f.Name())

	name, err := s.ExportEncrypted(f, passphrase)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.Rename(f.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}
