package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestSQLite(t *testing.T) *SQLiteBackend {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLite(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create backend: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// testBackend exercises the Backend contract shared by every driver.
func testBackend(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := b.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("get missing: ok=%v err=%v", ok, err)
	}

	if err := b.Set(ctx, "b", `{"v":1}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := b.Set(ctx, "a", "first"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := b.Set(ctx, "b", `{"v":2}`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, ok, err := b.Get(ctx, "b")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got != `{"v":2}` {
		t.Errorf("expected overwritten value, got %q", got)
	}

	keys, err := b.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("expected [a b], got %v", keys)
	}

	if err := b.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := b.Delete(ctx, "never-set"); err != nil {
		t.Errorf("delete of absent key should succeed: %v", err)
	}
	if _, ok, _ := b.Get(ctx, "a"); ok {
		t.Error("expected key a to be gone")
	}
}

func TestSQLiteBackend(t *testing.T) {
	testBackend(t, newTestSQLite(t))
}

func TestMemBackend(t *testing.T) {
	testBackend(t, NewMemBackend())
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "state.db")

	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.Close()

	s, err = NewSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || got != "v" {
		t.Fatalf("expected v after reopen, got %q ok=%v err=%v", got, ok, err)
	}
}

func TestSQLiteStats(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)
	s.Set(ctx, "system_memory_state", `{"patterns":[]}`)
	s.Set(ctx, "system_integration_state", `{"integrations":[]}`)

	st, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(st.Keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(st.Keys))
	}
	if st.Keys[0].Key != "system_integration_state" || st.Keys[0].Bytes != len(`{"integrations":[]}`) {
		t.Errorf("unexpected first key stats: %+v", st.Keys[0])
	}
	if st.Keys[1].UpdatedAt == "" {
		t.Error("expected updated_at to be set")
	}
	if st.DBSizeBytes == 0 {
		t.Error("expected non-zero db size")
	}
}

func TestPostgresBackend(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	p, err := NewPostgres(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer p.Close()
	clearBackend(t, p)
	testBackend(t, p)
}

func TestMongoDBBackend(t *testing.T) {
	uri := os.Getenv("TEST_MONGODB_URI")
	if uri == "" {
		t.Skip("TEST_MONGODB_URI not set")
	}
	ctx := context.Background()
	m, err := NewMongoDB(ctx, uri, "agent_console_test")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer m.Close()
	clearBackend(t, m)
	testBackend(t, m)
}

func clearBackend(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()
	keys, err := b.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	for _, k := range keys {
		if err := b.Delete(ctx, k); err != nil {
			t.Fatalf("delete %s: %v", k, err)
		}
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	b, err := Open(ctx, Config{SQLitePath: filepath.Join(t.TempDir(), "x.db")})
	if err != nil {
		t.Fatalf("open default driver: %v", err)
	}
	if _, ok := b.(*SQLiteBackend); !ok {
		t.Errorf("expected sqlite backend by default, got %T", b)
	}
	b.Close()

	b, err = Open(ctx, Config{Driver: "memory"})
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	if _, ok := b.(*MemBackend); !ok {
		t.Errorf("expected memory backend, got %T", b)
	}

	if _, err := Open(ctx, Config{Driver: "sqlite"}); err == nil {
		t.Error("expected error for missing sqlite path")
	}
	if _, err := Open(ctx, Config{Driver: "postgres"}); err == nil {
		t.Error("expected error for missing postgres dsn")
	}
	if _, err := Open(ctx, Config{Driver: "etcd"}); !errors.Is(err, ErrUnknownDriver) {
		t.Errorf("expected ErrUnknownDriver, got %v", err)
	}
}
