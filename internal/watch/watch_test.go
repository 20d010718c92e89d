package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

const debounce = 100 * time.Millisecond

func setup(t *testing.T) (string, *Watcher) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zaak.csv")
	require.NoError(t, os.WriteFile(path, []byte("v0"), 0o644))
	w, err := New(path, debounce, zap.NewNop())
	require.NoError(t, err)
	return path, w
}

func start(t *testing.T, w *Watcher, fn func(context.Context) error) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, fn) }()
	return cancel, done
}

func stop(t *testing.T, cancel context.CancelFunc, done <-chan error) {
	t.Helper()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunDebouncesBursts(t *testing.T) {
	defer goleak.VerifyNone(t)

	path, w := setup(t)
	var calls atomic.Int32
	cancel, done := start(t, w, func(context.Context) error {
		calls.Add(1)
		return nil
	})

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte('a' + i)}, 0o644))
	}
	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(3 * debounce)
	assert.Equal(t, int32(1), calls.Load())

	stop(t, cancel, done)
}

func TestRunIgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	path, w := setup(t)
	var calls atomic.Int32
	cancel, done := start(t, w, func(context.Context) error {
		calls.Add(1)
		return nil
	})

	other := filepath.Join(filepath.Dir(path), "zaak_vertical.html")
	require.NoError(t, os.WriteFile(other, []byte("out"), 0o644))
	time.Sleep(3 * debounce)
	assert.Equal(t, int32(0), calls.Load())

	stop(t, cancel, done)
}

func TestRunKeepsWatchingAfterFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	path, w := setup(t)
	var calls atomic.Int32
	cancel, done := start(t, w, func(context.Context) error {
		if calls.Add(1) == 1 {
			return errors.New("missing required columns")
		}
		return nil
	})

	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))
	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))
	require.Eventually(t, func() bool { return calls.Load() == 2 }, 2*time.Second, 10*time.Millisecond)

	stop(t, cancel, done)
}

func TestRunFollowsReplacedFile(t *testing.T) {
	defer goleak.VerifyNone(t)

	path, w := setup(t)
	var calls atomic.Int32
	cancel, done := start(t, w, func(context.Context) error {
		calls.Add(1)
		return nil
	})

	tmp := path + ".swp"
	require.NoError(t, os.WriteFile(tmp, []byte("new"), 0o644))
	require.NoError(t, os.Rename(tmp, path))
	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	stop(t, cancel, done)
}

func TestNewMissingDirectory(t *testing.T) {
	defer goleak.VerifyNone(t)

	_, err := New(filepath.Join(t.TempDir(), "gone", "zaak.csv"), 0, nil)
	assert.Error(t, err)
}
