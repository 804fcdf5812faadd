package httptransport_test

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appr/internal/airport"
	"appr/internal/appr"
	"appr/internal/appr/handler"
	apprmetrics "appr/internal/appr/metrics"
	"appr/internal/appr/service"
	"appr/internal/audit"
	auditstore "appr/internal/audit/store"
	"appr/internal/platform/metrics"
	"appr/internal/platform/middleware"
	httptransport "appr/internal/transport/http"
	"appr/pkg/testutil"
)

type validateBody struct {
	Flight     map[string]any `json:"flightInfo"`
	Passenger  map[string]any `json:"passengerInfo"`
	Disruption map[string]any `json:"disruptionEvent"`
}

func delayBody(departure string, hours float64) validateBody {
	return validateBody{
		Flight: map[string]any{
			"flightNumber":       "AC101",
			"departureAirport":   departure,
			"arrivalAirport":     "YVR",
			"scheduledDeparture": "2024-03-15T08:00:00Z",
			"scheduledArrival":   "2024-03-15T11:00:00Z",
		},
		Passenger: map[string]any{
			"passengerType": "regular",
			"ticketPrice":   450,
			"bookingClass":  "Economy",
		},
		Disruption: map[string]any{
			"disruptionType":     "delay",
			"disruptionCategory": "within_carrier_control",
			"delayDurationHours": hours,
		},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	publisher := audit.NewPublisher(auditstore.NewInMemoryStore(), audit.WithLogger(logger))
	t.Cleanup(publisher.Close)

	airports := airport.Default()
	svc := service.New(appr.NewValidator(airports),
		service.WithAuditLog(publisher),
		service.WithMetrics(apprmetrics.NewWith(reg)),
		service.WithLogger(logger),
	)
	h := handler.New(svc, airports, logger, appr.CarrierLarge)

	return httptransport.NewRouter(httptransport.RouterConfig{
		Logger:         logger,
		Metrics:        metrics.NewWith(reg),
		Gatherer:       reg,
		RequestTimeout: 5 * time.Second,
	}, h)
}

func TestRouter(t *testing.T) {
	testutil.Given(t, "the assembled router", func(t *testing.T) {
		router := newTestRouter(t)

		testutil.When(t, "a Canadian departure delayed four hours is validated", func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/appr/validate", delayBody("YYZ", 4))
			req.Header.Set(middleware.HeaderRequestID, "corr-1")
			rec := testutil.DoRequest(router, req)

			testutil.Then(t, "it is compensated and the correlation id is echoed", func(t *testing.T) {
				require.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, "corr-1", rec.Header().Get(middleware.HeaderRequestID))

				res := testutil.DecodeJSON[appr.ValidationResult](t, rec)
				assert.True(t, res.IsApplicable)
				assert.True(t, res.CompensationResult.Eligible)
				assert.Equal(t, "400", res.CompensationResult.CompensationAmount.String())

				testutil.Then(t, "the stored record can be fetched by its id", func(t *testing.T) {
					get := testutil.NewJSONRequest(t, http.MethodGet, "/appr/validations/"+res.RequestID, nil)
					got := testutil.DoRequest(router, get)
					require.Equal(t, http.StatusOK, got.Code)
					assert.Equal(t, res.RequestID, testutil.DecodeJSON[appr.ValidationResult](t, got).RequestID)
				})
			})
		})

		testutil.When(t, "a foreign departure is validated", func(t *testing.T) {
			rec := testutil.DoRequest(router,
				testutil.NewJSONRequest(t, http.MethodPost, "/appr/validate", delayBody("JFK", 4)))

			testutil.Then(t, "it succeeds as not applicable", func(t *testing.T) {
				require.Equal(t, http.StatusOK, rec.Code)
				res := testutil.DecodeJSON[appr.ValidationResult](t, rec)
				assert.False(t, res.IsApplicable)
				assert.True(t, res.CompensationResult.CompensationAmount.IsZero())
			})
		})

		testutil.When(t, "the departure code is malformed", func(t *testing.T) {
			rec := testutil.DoRequest(router,
				testutil.NewJSONRequest(t, http.MethodPost, "/appr/validate", delayBody("Y1Z", 4)))

			testutil.Then(t, "the field is reported", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rec, http.StatusBadRequest, "validation_error")
				testutil.AssertErrorField(t, rec, "flightInfo.departureAirport")
			})
		})

		testutil.When(t, "the body is not declared as JSON", func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/appr/validate", "flight=AC101")
			req.Header.Set("Content-Type", "text/plain")
			rec := testutil.DoRequest(router, req)

			testutil.Then(t, "it is rejected as unsupported media", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rec, http.StatusUnsupportedMediaType, "unsupported_media_type")
			})
		})

		testutil.When(t, "an unknown validation id is fetched", func(t *testing.T) {
			rec := testutil.DoRequest(router,
				testutil.NewJSONRequest(t, http.MethodGet, "/appr/validations/missing", nil))

			testutil.Then(t, "it is not found", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rec, http.StatusNotFound, "not_found")
			})
		})

		testutil.When(t, "metrics are scraped", func(t *testing.T) {
			rec := testutil.DoRequest(router,
				testutil.NewJSONRequest(t, http.MethodGet, "/metrics", nil))

			testutil.Then(t, "request latency and outcomes are exported", func(t *testing.T) {
				require.Equal(t, http.StatusOK, rec.Code)
				body := rec.Body.String()
				assert.True(t, strings.Contains(body, "appr_http_request_duration_seconds"))
				assert.True(t, strings.Contains(body, "appr_validation_outcomes_total"))
			})
		})
	})
}
