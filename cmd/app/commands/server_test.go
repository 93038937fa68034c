package commands

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeServer struct {
	startErr  error
	stopped   chan struct{}
	shutdowns atomic.Int32
}

func newFakeServer(startErr error) *fakeServer {
	return &fakeServer{startErr: startErr, stopped: make(chan struct{})}
}

func (f *fakeServer) Start(ctx context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}
	<-f.stopped
	return nil
}

func (f *fakeServer) Shutdown(ctx context.Context) error {
	if f.shutdowns.Add(1) == 1 && f.startErr == nil {
		close(f.stopped)
	}
	return nil
}

func TestServeUntilDone(t *testing.T) {
	t.Run("context cancel stops every server", func(t *testing.T) {
		api, metrics := newFakeServer(nil), newFakeServer(nil)
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() {
			done <- serveUntilDone(ctx, discardLogger(), map[string]runnable{"api server": api, "metrics server": metrics})
		}()

		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("servers did not stop")
		}
		assert.Equal(t, int32(1), api.shutdowns.Load())
		assert.Equal(t, int32(1), metrics.shutdowns.Load())
	})

	t.Run("start failure shuts the others down", func(t *testing.T) {
		api, metrics := newFakeServer(nil), newFakeServer(errors.New("address already in use"))

		err := serveUntilDone(context.Background(), discardLogger(), map[string]runnable{"api server": api, "metrics server": metrics})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "metrics server error: address already in use")
		assert.Equal(t, int32(1), api.shutdowns.Load())
	})
}
