package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"appr/internal/airport"
	"appr/internal/appr"
	"appr/internal/audit"
	"appr/pkg/platform/httputil"
	"appr/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/service-mocks.go -package=mocks

// Service defines the validation operations the handler exposes.
type Service interface {
	Validate(ctx context.Context, req appr.Request) (*appr.ValidationResult, error)
	ValidateBatch(ctx context.Context, reqs []appr.Request) ([]*appr.ValidationResult, error)
	Get(ctx context.Context, requestID string) (*appr.ValidationResult, error)
	Recent(ctx context.Context, limit int) ([]audit.Record, error)
}

// AirportDirectory answers airport lookups.
type AirportDirectory interface {
	Name(code string) (string, bool)
	Entries() []airport.Entry
	Len() int
}

// Handler wires APPR endpoints to the validation service.
type Handler struct {
	service     Service
	airports    AirportDirectory
	logger      *slog.Logger
	carrierSize appr.CarrierSize
}

// New constructs a handler. carrierSize is reported by the info endpoint.
func New(service Service, airports AirportDirectory, logger *slog.Logger, carrierSize appr.CarrierSize) *Handler {
	return &Handler{
		service:     service,
		airports:    airports,
		logger:      logger,
		carrierSize: carrierSize,
	}
}

// Register mounts the endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.HandleHealth)
	r.Route("/appr", func(r chi.Router) {
		r.Post("/validate", h.HandleValidate)
		r.Post("/validate/batch", h.HandleValidateBatch)
		r.Get("/validations", h.HandleListValidations)
		r.Get("/validations/{requestID}", h.HandleGetValidation)
		r.Get("/airports", h.HandleListAirports)
		r.Get("/airports/{code}", h.HandleGetAirport)
		r.Get("/info", h.HandleInfo)
	})
}

// HandleValidate handles POST /appr/validate.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[appr.Request](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Validate(ctx, *req)
	if err != nil {
		h.logger.ErrorContext(ctx, "appr validation failed",
			"request_id", requestID,
			"flight_number", req.Flight.FlightNumber,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "appr validation completed",
		"request_id", requestID,
		"validation_id", result.RequestID,
		"flight_number", req.Flight.FlightNumber,
		"applicable", result.IsApplicable,
		"eligible", result.CompensationResult.Eligible,
		"amount", result.CompensationResult.CompensationAmount.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleValidateBatch handles POST /appr/validate/batch.
func (h *Handler) HandleValidateBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[BatchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	results, err := h.service.ValidateBatch(ctx, req.Requests)
	if err != nil {
		h.logger.ErrorContext(ctx, "appr batch validation failed",
			"request_id", requestID,
			"batch_size", len(req.Requests),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "appr batch validation completed",
		"request_id", requestID,
		"batch_size", len(results),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, BatchResponse{Results: results, Count: len(results)})
}

// HandleGetValidation handles GET /appr/validations/{requestID}.
func (h *Handler) HandleGetValidation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	validationID := chi.URLParam(r, "requestID")

	result, err := h.service.Get(ctx, validationID)
	if err != nil {
		h.logger.WarnContext(ctx, "validation lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"validation_id", validationID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleListValidations handles GET /appr/validations?limit=n.
func (h *Handler) HandleListValidations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	records, err := h.service.Recent(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list validations",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRecords(records))
}

// HandleListAirports handles GET /appr/airports.
func (h *Handler) HandleListAirports(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, AirportListResponse{
		Airports:   h.airports.Entries(),
		TotalCount: h.airports.Len(),
		Note:       noteDeparturesOnly,
	})
}

// HandleGetAirport handles GET /appr/airports/{code}.
func (h *Handler) HandleGetAirport(w http.ResponseWriter, r *http.Request) {
	code, err := parseAirportCode(chi.URLParam(r, "code"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	name, canadian := h.airports.Name(code)
	if !canadian {
		name = "Not a Canadian airport"
	}
	httputil.WriteJSON(w, http.StatusOK, AirportResponse{
		AirportCode:  code,
		IsCanadian:   canadian,
		AirportName:  name,
		ApprEligible: canadian,
		Note:         noteDeparturesOnly,
	})
}

// HandleInfo handles GET /appr/info.
func (h *Handler) HandleInfo(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, newInfoResponse(h.carrierSize, h.airports.Len()))
}

// HandleHealth handles GET /health.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   serviceName,
		Timestamp: requestcontext.Now(r.Context()).UTC(),
	})
}
