package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/agent-console/internal/vault"
)

func init() {
	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Encrypt and decrypt JSON documents",
	}

	encrypt := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a JSON document read from stdin",
		Args:  cobra.NoArgs,
		Run:   runVaultEncrypt,
	}
	decrypt := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt a blob read from stdin",
		Args:  cobra.NoArgs,
		Run:   runVaultDecrypt,
	}
	for _, c := range []*cobra.Command{encrypt, decrypt} {
		c.Flags().StringP("passphrase", "k", "", "Passphrase (default: $AGENT_CONSOLE_PASSPHRASE)")
	}

	cmd.AddCommand(encrypt, decrypt)
	RootCmd.AddCommand(cmd)
}

func getPassphrase(cmd *cobra.Command) string {
	p, _ := cmd.Flags().GetString("passphrase")
	if p == "" {
		p = os.Getenv("AGENT_CONSOLE_PASSPHRASE")
	}
	return p
}

func runVaultEncrypt(cmd *cobra.Command, args []string) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		exitErr("read stdin", err)
	}
	var doc json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		exitErr("parse json", err)
	}

	blob, err := vault.Encrypt(doc, getPassphrase(cmd))
	if err != nil {
		exitErr("encrypt", err)
	}
	fmt.Println(blob)
}

func runVaultDecrypt(cmd *cobra.Command, args []string) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		exitErr("read stdin", err)
	}

	var doc json.RawMessage
	if err := vault.Decrypt(string(data), getPassphrase(cmd), &doc); err != nil {
		exitErr("decrypt", err)
	}
	printJSON(doc)
}
