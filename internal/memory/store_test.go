package memory

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/rcliao/agent-console/internal/store"
)

func newTestStore(t *testing.T, b store.Backend) *Store {
	t.Helper()
	return NewStore(context.Background(), b, zaptest.NewLogger(t),
		store.WithClock(func() time.Time { return seedTime }))
}

func TestStoreCorruptBlobYieldsSeed(t *testing.T) {
	b := store.NewMemBackend()
	require.NoError(t, b.Set(context.Background(), StorageKey, "}{ not json"))

	s := newTestStore(t, b)
	if diff := cmp.Diff(Seed(seedTime), s.State()); diff != "" {
		t.Fatalf("expected seed (-want +got):\n%s", diff)
	}
}

func TestStoreSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	b := store.NewMemBackend()

	s := newTestStore(t, b)
	s.Dispatch(ctx, AddPattern{Pattern: newPattern("3")})
	s.Dispatch(ctx, RemoveDirective{ID: "2"})

	again := newTestStore(t, b)
	if diff := cmp.Diff(s.State(), again.State()); diff != "" {
		t.Fatalf("state lost across restart (-want +got):\n%s", diff)
	}
}

func TestStoreExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newTestStore(t, store.NewMemBackend())
	src.Dispatch(ctx, AddPattern{Pattern: newPattern("3")})
	src.Dispatch(ctx, AddMessage{Message: NewMessage("2", "status?", seedTime.Add(time.Minute))})
	src.Dispatch(ctx, ToggleObjective(src.State().LearningObjectives[0]))

	var buf bytes.Buffer
	name, err := src.ExportState(&buf)
	require.NoError(t, err)
	assert.Equal(t, "system-memory-2026-10-18T12-00-00.000Z.json", name)

	dst := newTestStore(t, store.NewMemBackend())
	dst.ResetState(ctx)
	require.True(t, dst.ImportState(ctx, &buf))
	if diff := cmp.Diff(src.State(), dst.State(), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreImportPartialDocument(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, store.NewMemBackend())

	ok := s.ImportState(ctx, bytes.NewBufferString(`{"patterns":[{"id":"p","type":"skill","confidence":0.4}]}`))
	require.True(t, ok)
	st := s.State()
	assert.Len(t, st.Patterns, 1)
	assert.NotNil(t, st.Directives)
	assert.Empty(t, st.Directives)
}

func TestStoreImportRejectsOtherDomain(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, store.NewMemBackend())

	for _, doc := range []string{
		`{}`,
		`{"foo":1}`,
		`{"integrations":[{"id":"1","name":"gw","type":"api","status":"active","description":""}]}`,
	} {
		assert.False(t, s.ImportState(ctx, bytes.NewBufferString(doc)), doc)
	}
	if diff := cmp.Diff(Seed(seedTime), s.State()); diff != "" {
		t.Fatalf("failed import changed state (-want +got):\n%s", diff)
	}
}

func TestStoreImportRejectsOutOfRangeValues(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, store.NewMemBackend())

	assert.False(t, s.ImportState(ctx, bytes.NewBufferString(
		`{"patterns":[{"id":"p","type":"skill","confidence":1.5}]}`)))
	assert.False(t, s.ImportState(ctx, bytes.NewBufferString(
		`{"learningObjectives":[{"id":"o","name":"x","status":"pending","priority":"low","progress":140}]}`)))
	assert.Len(t, s.State().Patterns, 2)
	assert.Len(t, s.State().LearningObjectives, 2)
}
