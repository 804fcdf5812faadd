package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"appr/internal/airport"
	"appr/internal/appr"
	"appr/internal/audit"
)

const (
	serviceName        = "APPR Validation Engine"
	noteDeparturesOnly = "APPR applies only to flights departing from Canadian airports"
)

// BatchResponse is the HTTP response for POST /appr/validate/batch.
type BatchResponse struct {
	Results []*appr.ValidationResult `json:"results"`
	Count   int                      `json:"count"`
}

// ValidationSummary is one row of GET /appr/validations.
type ValidationSummary struct {
	RequestID        string              `json:"requestId"`
	Timestamp        time.Time           `json:"timestamp"`
	FlightNumber     string              `json:"flightNumber"`
	DepartureAirport string              `json:"departureAirport"`
	DisruptionType   appr.DisruptionType `json:"disruptionType"`
	Applicable       bool                `json:"applicable"`
	Eligible         bool                `json:"eligible"`
	Amount           decimal.Decimal     `json:"amount"`
}

// ValidationListResponse is the HTTP response for GET /appr/validations.
type ValidationListResponse struct {
	Validations []ValidationSummary `json:"validations"`
	Count       int                 `json:"count"`
}

// FromRecords converts audit records to the list response.
func FromRecords(records []audit.Record) *ValidationListResponse {
	out := make([]ValidationSummary, 0, len(records))
	for _, rec := range records {
		out = append(out, ValidationSummary{
			RequestID:        rec.RequestID,
			Timestamp:        rec.Timestamp,
			FlightNumber:     rec.FlightNumber,
			DepartureAirport: rec.DepartureAirport,
			DisruptionType:   rec.DisruptionType,
			Applicable:       rec.Applicable,
			Eligible:         rec.Eligible,
			Amount:           rec.Amount,
		})
	}
	return &ValidationListResponse{Validations: out, Count: len(out)}
}

// AirportListResponse is the HTTP response for GET /appr/airports.
type AirportListResponse struct {
	Airports   []airport.Entry `json:"airports"`
	TotalCount int             `json:"totalCount"`
	Note       string          `json:"note"`
}

// AirportResponse is the HTTP response for GET /appr/airports/{code}.
type AirportResponse struct {
	AirportCode  string `json:"airportCode"`
	IsCanadian   bool   `json:"isCanadian"`
	AirportName  string `json:"airportName"`
	ApprEligible bool   `json:"apprEligible"`
	Note         string `json:"note"`
}

// InfoResponse is the HTTP response for GET /appr/info.
type InfoResponse struct {
	Coverage                  CoverageInfo        `json:"coverage"`
	DelaySchedule             []appr.ScheduleStep `json:"delaySchedule"`
	DeniedBoardingSchedule    []appr.ScheduleStep `json:"deniedBoardingSchedule"`
	CareSchedule              []appr.CareStep     `json:"careSchedule"`
	DisruptionCategories      map[string]string   `json:"disruptionCategories"`
	AdequateNoticeDays        int                 `json:"adequateNoticeDays"`
	TarmacDisembarkationHours float64             `json:"tarmacDisembarkationHours"`
	CanadianAirportsCount     int                 `json:"canadianAirportsCount"`
}

// CoverageInfo summarises what the engine evaluates.
type CoverageInfo struct {
	AppliesTo       string                `json:"appliesTo"`
	CarrierSize     appr.CarrierSize      `json:"carrierSize"`
	DisruptionTypes []appr.DisruptionType `json:"disruptionTypes"`
}

func newInfoResponse(carrierSize appr.CarrierSize, airportCount int) *InfoResponse {
	return &InfoResponse{
		Coverage: CoverageInfo{
			AppliesTo:       "Flights departing from Canada",
			CarrierSize:     carrierSize,
			DisruptionTypes: append([]appr.DisruptionType(nil), appr.DisruptionTypes...),
		},
		DelaySchedule:          appr.DelaySchedule(),
		DeniedBoardingSchedule: appr.DeniedBoardingSchedule(),
		CareSchedule:           appr.CareSchedule(),
		DisruptionCategories: map[string]string{
			string(appr.WithinCarrierControl):       "Full compensation required",
			string(appr.WithinCarrierControlSafety): "No monetary compensation, care obligations apply",
			string(appr.OutsideCarrierControl):      "No compensation, limited care obligations",
		},
		AdequateNoticeDays:        appr.AdequateNoticeDays,
		TarmacDisembarkationHours: appr.TarmacDisembarkationHours,
		CanadianAirportsCount:     airportCount,
	}
}

// HealthResponse is the HTTP response for GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
}
