package audit

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrPublisherClosed is returned by Emit after Close.
var ErrPublisherClosed = errors.New("audit publisher closed")

// Publisher captures validation records. It is append-only and writes through
// a Store so tests can swap sinks easily. With an async buffer, records are
// queued for a background Worker; a full buffer falls back to a synchronous
// write so no record is dropped. Queued records are served by Find until the
// worker has persisted them.
type Publisher struct {
	store   Store
	logger  *slog.Logger
	pending sync.Map

	mu     sync.RWMutex
	closed bool
	inbox  chan Record
	done   chan struct{}
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithAsyncBuffer enables background persistence with a queue of size n.
func WithAsyncBuffer(n int) Option {
	return func(p *Publisher) {
		if n > 0 {
			p.inbox = make(chan Record, n)
		}
	}
}

// WithLogger sets the logger used by the background worker.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if p.inbox != nil {
		p.done = make(chan struct{})
		worker := NewWorker(&pendingStore{Store: store, pending: &p.pending}, p.inbox, p.logger)
		go func() {
			defer close(p.done)
			_ = worker.Run(context.Background())
		}()
	}
	return p
}

// Emit records rec, stamping it with the current time when unset.
func (p *Publisher) Emit(ctx context.Context, rec Record) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}
	if p.inbox == nil {
		return p.store.Append(ctx, rec)
	}

	p.pending.Store(rec.RequestID, rec)
	select {
	case p.inbox <- rec:
		return nil
	default:
		p.pending.Delete(rec.RequestID)
		return p.store.Append(ctx, rec)
	}
}

// Find returns the stored record for a validation request id.
func (p *Publisher) Find(ctx context.Context, requestID string) (*Record, error) {
	if v, ok := p.pending.Load(requestID); ok {
		rec := v.(Record)
		return &rec, nil
	}
	return p.store.FindByRequestID(ctx, requestID)
}

// Recent lists up to limit records, newest first.
func (p *Publisher) Recent(ctx context.Context, limit int) ([]Record, error) {
	return p.store.ListRecent(ctx, limit)
}

// Close stops accepting records and waits for queued ones to be persisted.
func (p *Publisher) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	if p.inbox != nil {
		close(p.inbox)
	}
	p.mu.Unlock()

	if p.done != nil {
		<-p.done
	}
}

// pendingStore forgets a queued record once the worker has written it.
type pendingStore struct {
	Store
	pending *sync.Map
}

func (s *pendingStore) Append(ctx context.Context, rec Record) error {
	defer s.pending.Delete(rec.RequestID)
	return s.Store.Append(ctx, rec)
}
