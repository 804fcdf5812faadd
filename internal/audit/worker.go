package audit

import (
	"context"
	"log/slog"
)

// Worker consumes audit records from a channel and persists them. It returns
// once the inbox is closed and drained, or when ctx is cancelled.
type Worker struct {
	store  Store
	inbox  <-chan Record
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Record, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{store: store, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case rec, ok := <-w.inbox:
			if !ok {
				return nil
			}
			if err := w.store.Append(ctx, rec); err != nil {
				w.logger.ErrorContext(ctx, "failed to persist audit record",
					"request_id", rec.RequestID,
					"error", err,
				)
			}
		}
	}
}
