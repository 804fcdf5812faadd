package store

import (
	"context"
	"log/slog"
	"slices"

	"appr/internal/audit"
	"appr/pkg/platform/circuit"
)

// FallbackStore writes to a durable primary and diverts appends to a
// secondary store while the primary's circuit is open. Reads consult both.
type FallbackStore struct {
	primary   audit.Store
	secondary audit.Store
	breaker   *circuit.Breaker
	logger    *slog.Logger
}

func NewFallbackStore(primary, secondary audit.Store, breaker *circuit.Breaker, logger *slog.Logger) *FallbackStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FallbackStore{
		primary:   primary,
		secondary: secondary,
		breaker:   breaker,
		logger:    logger,
	}
}

func (s *FallbackStore) Append(ctx context.Context, rec audit.Record) error {
	err := s.primary.Append(ctx, rec)
	if err == nil {
		if _, change := s.breaker.RecordSuccess(); change.Closed {
			s.logger.InfoContext(ctx, "audit circuit closed", "breaker", s.breaker.Name())
		}
		return nil
	}

	useFallback, change := s.breaker.RecordFailure()
	if change.Opened {
		s.logger.WarnContext(ctx, "audit circuit opened, diverting records",
			"breaker", s.breaker.Name(),
			"error", err,
		)
	}
	if !useFallback {
		return err
	}
	return s.secondary.Append(ctx, rec)
}

func (s *FallbackStore) FindByRequestID(ctx context.Context, requestID string) (*audit.Record, error) {
	rec, err := s.primary.FindByRequestID(ctx, requestID)
	if err == nil {
		return rec, nil
	}
	if fb, fbErr := s.secondary.FindByRequestID(ctx, requestID); fbErr == nil {
		return fb, nil
	}
	return nil, err
}

// ListRecent merges both stores newest first. A failing primary is tolerated
// only while the circuit is open.
func (s *FallbackStore) ListRecent(ctx context.Context, limit int) ([]audit.Record, error) {
	primary, err := s.primary.ListRecent(ctx, limit)
	if err != nil && !s.breaker.IsOpen() {
		return nil, err
	}
	secondary, fbErr := s.secondary.ListRecent(ctx, limit)
	if fbErr != nil {
		return nil, fbErr
	}

	seen := make(map[string]struct{}, len(primary)+len(secondary))
	merged := make([]audit.Record, 0, len(primary)+len(secondary))
	for _, rec := range slices.Concat(primary, secondary) {
		if _, dup := seen[rec.RequestID]; dup {
			continue
		}
		seen[rec.RequestID] = struct{}{}
		merged = append(merged, rec)
	}
	slices.SortStableFunc(merged, func(a, b audit.Record) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}
