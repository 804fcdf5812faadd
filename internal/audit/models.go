package audit

import (
	"time"

	"github.com/shopspring/decimal"

	"appr/internal/appr"
)

// Record captures one completed validation. Keep it transport-agnostic so
// stores and sinks can fan out.
type Record struct {
	RequestID        string                 `json:"requestId"`
	Timestamp        time.Time              `json:"timestamp"`
	FlightNumber     string                 `json:"flightNumber"`
	DepartureAirport string                 `json:"departureAirport"`
	DisruptionType   appr.DisruptionType    `json:"disruptionType"`
	Applicable       bool                   `json:"applicable"`
	Eligible         bool                   `json:"eligible"`
	Amount           decimal.Decimal        `json:"amount"`
	Result           *appr.ValidationResult `json:"result"`
}

// NewRecord summarises a request and its result for the audit trail.
func NewRecord(req appr.Request, res *appr.ValidationResult) Record {
	rec := Record{
		FlightNumber:     req.Flight.FlightNumber,
		DepartureAirport: req.Flight.DepartureAirport,
		DisruptionType:   req.Disruption.Type,
		Amount:           decimal.Zero,
		Result:           res,
	}
	if res != nil {
		rec.RequestID = res.RequestID
		rec.Timestamp = res.ProcessedAt
		rec.Applicable = res.IsApplicable
		rec.Eligible = res.CompensationResult.Eligible
		rec.Amount = res.CompensationResult.CompensationAmount
	}
	return rec
}
