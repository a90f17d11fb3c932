package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rcliao/agent-console/internal/vault"
)

// MIMEType is the content type of export documents.
const MIMEType = "application/json"

// ExportFilename returns "<prefix>-<timestamp>.json". The timestamp is
// ISO-8601 UTC with millisecond precision; colons become dashes so the
// name is valid on every filesystem.
func ExportFilename(prefix string, t time.Time) string {
	ts := t.UTC().Format("2006-01-02T15:04:05.000Z")
	return prefix + "-" + strings.ReplaceAll(ts, ":", "-") + ".json"
}

// ExportState writes the current snapshot to w as 2-space-indented JSON
// and returns the filename the document should be saved under.
func (s *Store[S, A]) ExportState(w io.Writer) (string, error) {
	b, err := json.MarshalIndent(s.State(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	return ExportFilename(s.domain.ExportPrefix, s.now()), nil
}

// ExportFile writes an export document into dir and returns its path.
func (s *Store[S, A]) ExportFile(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	var buf strings.Builder
	name, err := s.ExportState(&buf)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(buf.String()), 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// Import reads a whole export document from r and dispatches the domain's
// import action. On any error the state is left unchanged.
func (s *Store[S, A]) Import(ctx context.Context, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read import: %w", err)
	}
	st, err := s.parseDocument(data)
	if err != nil {
		return fmt.Errorf("parse import: %w", err)
	}
	s.Dispatch(ctx, s.domain.Import(st))
	return nil
}

// ImportState is Import reporting only success or failure. Failures are
// logged.
func (s *Store[S, A]) ImportState(ctx context.Context, r io.Reader) bool {
	if err := s.Import(ctx, r); err != nil {
		s.logger.Warn("import failed", zap.Error(err))
		return false
	}
	return true
}

// ExportEncrypted writes the snapshot sealed with passphrase and returns the
// filename it should be saved under.
func (s *Store[S, A]) ExportEncrypted(w io.Writer, passphrase string) (string, error) {
	blob, err := vault.Encrypt(s.State(), passphrase)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	if _, err := io.WriteString(w, blob+"\n"); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	return strings.TrimSuffix(ExportFilename(s.domain.ExportPrefix, s.now()), ".json") + ".enc", nil
}

// ImportEncrypted opens a blob produced by ExportEncrypted and imports it.
// A wrong passphrase yields vault.ErrDecrypt.
func (s *Store[S, A]) ImportEncrypted(ctx context.Context, r io.Reader, passphrase string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read import: %w", err)
	}
	var raw json.RawMessage
	if err := vault.Decrypt(string(data), passphrase, &raw); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	st, err := s.parseDocument(raw)
	if err != nil {
		return fmt.Errorf("parse import: %w", err)
	}
	s.Dispatch(ctx, s.domain.Import(st))
	return nil
}
