package audit

import "context"

// Store persists validation records. Implementations return
// sentinel.ErrNotFound for unknown request ids and ignore duplicate appends.
type Store interface {
	Append(ctx context.Context, rec Record) error
	FindByRequestID(ctx context.Context, requestID string) (*Record, error)
	// ListRecent returns up to limit records, newest first.
	ListRecent(ctx context.Context, limit int) ([]Record, error)
}
