package appr

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	dErrors "appr/pkg/domain-errors"
)

// DisruptionType enumerates the disruptions the rule set knows about.
type DisruptionType string

const (
	DisruptionDelay          DisruptionType = "delay"
	DisruptionCancellation   DisruptionType = "cancellation"
	DisruptionDeniedBoarding DisruptionType = "denied_boarding"
	DisruptionTarmacDelay    DisruptionType = "tarmac_delay"
	DisruptionDowngrade      DisruptionType = "downgrade"
	DisruptionBaggageIssue   DisruptionType = "baggage_issue"
)

// DisruptionTypes lists every supported disruption type in declaration order.
var DisruptionTypes = []DisruptionType{
	DisruptionDelay,
	DisruptionCancellation,
	DisruptionDeniedBoarding,
	DisruptionTarmacDelay,
	DisruptionDowngrade,
	DisruptionBaggageIssue,
}

// ParseDisruptionType validates s against the known disruption types.
func ParseDisruptionType(s string) (DisruptionType, error) {
	t := DisruptionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, "unsupported disruption type: "+s)
	}
	return t, nil
}

func (t DisruptionType) IsValid() bool {
	switch t {
	case DisruptionDelay, DisruptionCancellation, DisruptionDeniedBoarding,
		DisruptionTarmacDelay, DisruptionDowngrade, DisruptionBaggageIssue:
		return true
	}
	return false
}

// requiresDuration reports whether the type cannot be evaluated without a realized delay.
func (t DisruptionType) requiresDuration() bool {
	switch t {
	case DisruptionDelay, DisruptionCancellation, DisruptionDeniedBoarding, DisruptionTarmacDelay:
		return true
	}
	return false
}

// ControlCategory attributes the cause of a disruption.
type ControlCategory string

const (
	WithinCarrierControl       ControlCategory = "within_carrier_control"
	WithinCarrierControlSafety ControlCategory = "within_carrier_control_safety"
	OutsideCarrierControl      ControlCategory = "outside_carrier_control"
)

// ParseControlCategory validates s against the known control categories.
func ParseControlCategory(s string) (ControlCategory, error) {
	c := ControlCategory(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, "unsupported disruption category: "+s)
	}
	return c, nil
}

func (c ControlCategory) IsValid() bool {
	switch c {
	case WithinCarrierControl, WithinCarrierControlSafety, OutsideCarrierControl:
		return true
	}
	return false
}

// PassengerType selects special-passenger handling.
type PassengerType string

const (
	PassengerRegular    PassengerType = "regular"
	PassengerMinor      PassengerType = "minor"
	PassengerDisability PassengerType = "disability"
)

// ParsePassengerType validates s. An empty value means a regular passenger.
func ParsePassengerType(s string) (PassengerType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PassengerRegular, nil
	}
	p := PassengerType(s)
	if !p.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, "unsupported passenger type: "+s)
	}
	return p, nil
}

func (p PassengerType) IsValid() bool {
	switch p {
	case PassengerRegular, PassengerMinor, PassengerDisability:
		return true
	}
	return false
}

// CarrierSize selects the compensation ladder.
type CarrierSize string

const (
	CarrierLarge CarrierSize = "large"
	CarrierSmall CarrierSize = "small"
)

// ParseCarrierSize validates s.
func ParseCarrierSize(s string) (CarrierSize, error) {
	c := CarrierSize(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, "unsupported carrier size: "+s)
	}
	return c, nil
}

func (c CarrierSize) IsValid() bool {
	return c == CarrierLarge || c == CarrierSmall
}

// FlightInfo describes the scheduled and realized flight.
// Actual times may precede scheduled ones; derived delays are clamped at zero.
type FlightInfo struct {
	FlightNumber       string     `json:"flightNumber"`
	DepartureAirport   string     `json:"departureAirport"`
	ArrivalAirport     string     `json:"arrivalAirport"`
	ScheduledDeparture time.Time  `json:"scheduledDeparture"`
	ActualDeparture    *time.Time `json:"actualDeparture,omitempty"`
	ScheduledArrival   time.Time  `json:"scheduledArrival"`
	ActualArrival      *time.Time `json:"actualArrival,omitempty"`
}

// PassengerInfo carries the passenger attributes the rules look at.
type PassengerInfo struct {
	PassengerType PassengerType       `json:"passengerType"`
	MinorAge      *int                `json:"minorAge,omitempty"`
	HasDisability bool                `json:"hasDisability"`
	TicketPrice   decimal.NullDecimal `json:"ticketPrice"`
	BookingClass  string              `json:"bookingClass"`
}

// needsDisabilityAssistance is true for the disability type or the explicit flag.
func (p PassengerInfo) needsDisabilityAssistance() bool {
	return p.PassengerType == PassengerDisability || p.HasDisability
}

// DisruptionEvent is what happened to the flight and why.
type DisruptionEvent struct {
	Type                   DisruptionType  `json:"disruptionType"`
	Category               ControlCategory `json:"disruptionCategory"`
	DelayDurationHours     *float64        `json:"delayDurationHours,omitempty"`
	CancellationNoticeDays *int            `json:"cancellationNoticeDays,omitempty"`
	TarmacDelayHours       *float64        `json:"tarmacDelayHours,omitempty"`
	Reason                 string          `json:"reason"`
	WeatherRelated         bool            `json:"weatherRelated"`
}

// Request is one validation input. CarrierSize is optional; the Validator's
// default applies when it is empty.
type Request struct {
	Flight      FlightInfo      `json:"flightInfo"`
	Passenger   PassengerInfo   `json:"passengerInfo"`
	Disruption  DisruptionEvent `json:"disruptionEvent"`
	CarrierSize CarrierSize     `json:"carrierSize,omitempty"`
}

// CompensationResult is the rule outcome for an applicable request.
// Lists are never nil once returned.
type CompensationResult struct {
	Eligible                bool            `json:"eligible"`
	CompensationAmount      decimal.Decimal `json:"compensationAmount"`
	CareObligations         []string        `json:"careObligations"`
	RebookingRights         []string        `json:"rebookingRights"`
	RefundRights            []string        `json:"refundRights"`
	ComplianceNotes         []string        `json:"complianceNotes"`
	AlternativeArrangements []string        `json:"alternativeArrangements"`
}

// ValidationResult is the aggregate answer for one request.
type ValidationResult struct {
	RequestID           string             `json:"requestId"`
	IsApplicable        bool               `json:"isApplicable"`
	ApplicabilityReason string             `json:"applicabilityReason"`
	CarrierSize         CarrierSize        `json:"carrierSize"`
	CompensationResult  CompensationResult `json:"compensationResult"`
	ProcessedAt         time.Time          `json:"processedAt"`
}

func emptyCompensationResult() CompensationResult {
	return CompensationResult{
		CompensationAmount:      decimal.Zero,
		CareObligations:         []string{},
		RebookingRights:         []string{},
		RefundRights:            []string{},
		ComplianceNotes:         []string{},
		AlternativeArrangements: []string{},
	}
}
