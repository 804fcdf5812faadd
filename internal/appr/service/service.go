package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"appr/internal/appr"
	"appr/internal/appr/metrics"
	"appr/internal/audit"
	dErrors "appr/pkg/domain-errors"
	"appr/pkg/platform/sentinel"
	"appr/pkg/requestcontext"
)

const (
	DefaultMaxBatchSize     = 100
	DefaultBatchConcurrency = 8
	DefaultRecentLimit      = 20
	MaxRecentLimit          = 100
)

// Validator evaluates a single request.
type Validator interface {
	Validate(ctx context.Context, req appr.Request) (*appr.ValidationResult, error)
}

// AuditLog records completed validations and serves them back.
type AuditLog interface {
	Emit(ctx context.Context, rec audit.Record) error
	Find(ctx context.Context, requestID string) (*audit.Record, error)
	Recent(ctx context.Context, limit int) ([]audit.Record, error)
}

// Service runs validations with metrics, tracing and an audit trail around
// the rule engine.
type Service struct {
	validator        Validator
	auditor          AuditLog
	metrics          *metrics.Metrics
	logger           *slog.Logger
	tracer           trace.Tracer
	maxBatchSize     int
	batchConcurrency int
}

// Option configures a Service.
type Option func(*Service)

func WithAuditLog(auditor AuditLog) Option {
	return func(s *Service) { s.auditor = auditor }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMaxBatchSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBatchSize = n
		}
	}
}

func WithBatchConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchConcurrency = n
		}
	}
}

func New(validator Validator, opts ...Option) *Service {
	s := &Service{
		validator:        validator,
		logger:           slog.Default(),
		tracer:           otel.Tracer("appr/service"),
		maxBatchSize:     DefaultMaxBatchSize,
		batchConcurrency: DefaultBatchConcurrency,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Validate evaluates one request and records it in the audit trail.
func (s *Service) Validate(ctx context.Context, req appr.Request) (*appr.ValidationResult, error) {
	req.Normalize()
	ctx, span := s.tracer.Start(ctx, "appr.Validate", trace.WithAttributes(
		attribute.String("appr.flight_number", req.Flight.FlightNumber),
		attribute.String("appr.departure_airport", req.Flight.DepartureAirport),
		attribute.String("appr.disruption_type", string(req.Disruption.Type)),
	))
	defer span.End()

	res, err := s.evaluate(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return nil, err
	}
	span.SetAttributes(
		attribute.String("appr.request_id", res.RequestID),
		attribute.Bool("appr.applicable", res.IsApplicable),
		attribute.String("appr.compensation_amount", res.CompensationResult.CompensationAmount.String()),
	)

	s.record(ctx, req, res)
	return res, nil
}

// ValidateBatch evaluates requests concurrently and returns results in input
// order. Any invalid item fails the whole batch and nothing is recorded.
func (s *Service) ValidateBatch(ctx context.Context, reqs []appr.Request) ([]*appr.ValidationResult, error) {
	if len(reqs) == 0 {
		return nil, dErrors.Field("requests", "must contain at least one request")
	}
	if len(reqs) > s.maxBatchSize {
		return nil, dErrors.Field("requests", fmt.Sprintf("must contain at most %d requests", s.maxBatchSize))
	}

	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "appr.ValidateBatch", trace.WithAttributes(
		attribute.Int("appr.batch_size", len(reqs)),
	))
	defer span.End()

	items := slices.Clone(reqs)
	results := make([]*appr.ValidationResult, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)
	for i := range items {
		items[i].Normalize()
		req := items[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := s.evaluate(gctx, req)
			if err != nil {
				return itemError(i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if _, ok := dErrors.As(err); !ok {
			err = dErrors.Wrap(err, dErrors.CodeTimeout, "batch validation cancelled")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "batch validation failed")
		return nil, err
	}

	for i, res := range results {
		s.record(ctx, items[i], res)
	}
	s.metrics.ObserveBatch(len(items), time.Since(start))
	return results, nil
}

// Get returns a previously recorded result.
func (s *Service) Get(ctx context.Context, requestID string) (*appr.ValidationResult, error) {
	if s.auditor == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "validation not found")
	}
	rec, err := s.auditor.Find(ctx, requestID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "validation not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load validation")
	}
	if rec.Result == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "stored validation has no result")
	}
	return rec.Result, nil
}

// Recent lists recorded validations, newest first. The limit is clamped to
// [1, MaxRecentLimit]; zero selects DefaultRecentLimit.
func (s *Service) Recent(ctx context.Context, limit int) ([]audit.Record, error) {
	switch {
	case limit <= 0:
		limit = DefaultRecentLimit
	case limit > MaxRecentLimit:
		limit = MaxRecentLimit
	}
	if s.auditor == nil {
		return []audit.Record{}, nil
	}
	records, err := s.auditor.Recent(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list validations")
	}
	return records, nil
}

func (s *Service) evaluate(ctx context.Context, req appr.Request) (*appr.ValidationResult, error) {
	start := time.Now()
	res, err := s.validator.Validate(ctx, req)
	if err != nil {
		code := dErrors.CodeInternal
		if de, ok := dErrors.As(err); ok {
			code = de.Code
		}
		s.metrics.IncrementRejection(string(code))
		return nil, err
	}

	s.metrics.ObserveValidateLatency(time.Since(start))
	s.metrics.IncrementOutcome(res.IsApplicable, string(req.Disruption.Type), res.CompensationResult.Eligible)
	s.metrics.ObserveAmount(string(res.CarrierSize), res.CompensationResult.CompensationAmount.InexactFloat64())
	return res, nil
}

// record writes the audit entry. A failed write is logged, not returned: the
// caller already has a correct result.
func (s *Service) record(ctx context.Context, req appr.Request, res *appr.ValidationResult) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, audit.NewRecord(req, res)); err != nil {
		s.logger.WarnContext(ctx, "failed to record validation",
			"request_id", requestcontext.RequestID(ctx),
			"validation_id", res.RequestID,
			"error", err,
		)
	}
}

// itemError prefixes the failing field with the item's batch index.
func itemError(i int, err error) error {
	de, ok := dErrors.As(err)
	if !ok {
		return err
	}
	if de.Field == "" {
		return dErrors.New(de.Code, fmt.Sprintf("requests[%d]: %s", i, de.Message))
	}
	field := fmt.Sprintf("requests[%d].%s", i, de.Field)
	return dErrors.Field(field, strings.TrimPrefix(de.Message, de.Field+": "))
}
