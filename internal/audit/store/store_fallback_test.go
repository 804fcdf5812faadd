package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appr/internal/audit"
	"appr/pkg/platform/circuit"
	"appr/pkg/platform/sentinel"
)

var errBackendDown = errors.New("backend down")

// flakyStore wraps an in-memory store and fails every call while down.
type flakyStore struct {
	*InMemoryStore
	down bool
}

func (f *flakyStore) Append(ctx context.Context, rec audit.Record) error {
	if f.down {
		return errBackendDown
	}
	return f.InMemoryStore.Append(ctx, rec)
}

func (f *flakyStore) FindByRequestID(ctx context.Context, id string) (*audit.Record, error) {
	if f.down {
		return nil, errBackendDown
	}
	return f.InMemoryStore.FindByRequestID(ctx, id)
}

func (f *flakyStore) ListRecent(ctx context.Context, limit int) ([]audit.Record, error) {
	if f.down {
		return nil, errBackendDown
	}
	return f.InMemoryStore.ListRecent(ctx, limit)
}

func newFallback(primary *flakyStore, secondary *InMemoryStore) *FallbackStore {
	breaker := circuit.New("audit-test", circuit.WithFailureThreshold(2), circuit.WithSuccessThreshold(1))
	return NewFallbackStore(primary, secondary, breaker, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func at(id string, minute int) audit.Record {
	return audit.Record{
		RequestID: id,
		Timestamp: time.Date(2024, 3, 15, 20, minute, 0, 0, time.UTC),
	}
}

func TestFallbackStore(t *testing.T) {
	ctx := context.Background()

	t.Run("healthy primary takes every write", func(t *testing.T) {
		primary := &flakyStore{InMemoryStore: NewInMemoryStore()}
		secondary := NewInMemoryStore()
		s := newFallback(primary, secondary)

		require.NoError(t, s.Append(ctx, at("a", 1)))

		_, err := primary.InMemoryStore.FindByRequestID(ctx, "a")
		require.NoError(t, err)
		_, err = secondary.FindByRequestID(ctx, "a")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("failures below the threshold surface", func(t *testing.T) {
		primary := &flakyStore{InMemoryStore: NewInMemoryStore(), down: true}
		s := newFallback(primary, NewInMemoryStore())

		assert.ErrorIs(t, s.Append(ctx, at("a", 1)), errBackendDown)
	})

	t.Run("open circuit diverts writes and reads still find them", func(t *testing.T) {
		primary := &flakyStore{InMemoryStore: NewInMemoryStore(), down: true}
		secondary := NewInMemoryStore()
		s := newFallback(primary, secondary)

		_ = s.Append(ctx, at("a", 1))
		require.NoError(t, s.Append(ctx, at("b", 2)))

		got, err := s.FindByRequestID(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, "b", got.RequestID)

		recent, err := s.ListRecent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, recent, 1)
		assert.Equal(t, "b", recent[0].RequestID)
	})

	t.Run("recent merges both stores newest first", func(t *testing.T) {
		primary := &flakyStore{InMemoryStore: NewInMemoryStore()}
		secondary := NewInMemoryStore()
		s := newFallback(primary, secondary)

		require.NoError(t, primary.InMemoryStore.Append(ctx, at("old", 1)))
		require.NoError(t, secondary.Append(ctx, at("mid", 2)))
		require.NoError(t, primary.InMemoryStore.Append(ctx, at("new", 3)))

		recent, err := s.ListRecent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, "new", recent[0].RequestID)
		assert.Equal(t, "mid", recent[1].RequestID)
	})

	t.Run("closed circuit does not hide primary read errors", func(t *testing.T) {
		primary := &flakyStore{InMemoryStore: NewInMemoryStore(), down: true}
		s := newFallback(primary, NewInMemoryStore())

		_, err := s.ListRecent(ctx, 5)
		assert.ErrorIs(t, err, errBackendDown)

		_, err = s.FindByRequestID(ctx, "missing")
		assert.ErrorIs(t, err, errBackendDown)
	})

	t.Run("recovered primary closes the circuit", func(t *testing.T) {
		primary := &flakyStore{InMemoryStore: NewInMemoryStore(), down: true}
		s := newFallback(primary, NewInMemoryStore())
		_ = s.Append(ctx, at("a", 1))
		_ = s.Append(ctx, at("b", 2))
		require.True(t, s.breaker.IsOpen())

		primary.down = false
		require.NoError(t, s.Append(ctx, at("c", 3)))

		assert.False(t, s.breaker.IsOpen())
	})
}
