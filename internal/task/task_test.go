package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestGoResolves(t *testing.T) {
	tk := Go(context.Background(), func(ctx context.Context) (int, error) {
		return 42, nil
	})

	v, err := tk.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, StatusDone, tk.Status())

	select {
	case <-tk.Done():
	default:
		t.Fatal("done channel should be closed after Wait returns")
	}
}

func TestGoFails(t *testing.T) {
	boom := errors.New("boom")
	tk := Go(context.Background(), func(ctx context.Context) (string, error) {
		return "", boom
	})

	_, err := tk.Wait(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StatusFailed, tk.Status())
}

func TestCancel(t *testing.T) {
	started := make(chan struct{})
	tk := Go(context.Background(), func(ctx context.Context) (int, error) {
		close(started)
		if err := Sleep(ctx, time.Hour); err != nil {
			return 0, err
		}
		return 1, nil
	})

	<-started
	assert.Equal(t, StatusPending, tk.Status())
	tk.Cancel()

	_, err := tk.Wait(context.Background())
	assert.ErrorIs(t, err, ErrCanceled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StatusCanceled, tk.Status())
}

func TestParentContextCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	tk := Go(ctx, func(ctx context.Context) (int, error) {
		return 0, Sleep(ctx, time.Hour)
	})
	cancel()

	_, err := tk.Wait(context.Background())
	assert.ErrorIs(t, err, ErrCanceled)
}

func TestWaitTimeoutLeavesTaskRunning(t *testing.T) {
	release := make(chan struct{})
	tk := Go(context.Background(), func(ctx context.Context) (int, error) {
		<-release
		return 7, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := tk.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, StatusPending, tk.Status())

	close(release)
	v, err := tk.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestSleep(t *testing.T) {
	assert.NoError(t, Sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Sleep(ctx, time.Hour), context.Canceled)
}
