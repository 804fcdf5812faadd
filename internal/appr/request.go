package appr

import (
	"math"
	"strings"
	"time"

	dErrors "appr/pkg/domain-errors"
)

const (
	maxFlightNumberLength = 16
	maxBookingClassLength = 32
	maxReasonLength       = 500
	maxMinorAge           = 17
)

// Normalize trims free text, upper-cases airport codes and defaults the
// passenger type.
func (r *Request) Normalize() {
	if r == nil {
		return
	}
	r.Flight.FlightNumber = strings.ToUpper(strings.TrimSpace(r.Flight.FlightNumber))
	r.Flight.DepartureAirport = strings.ToUpper(strings.TrimSpace(r.Flight.DepartureAirport))
	r.Flight.ArrivalAirport = strings.ToUpper(strings.TrimSpace(r.Flight.ArrivalAirport))
	r.Passenger.BookingClass = strings.TrimSpace(r.Passenger.BookingClass)
	if r.Passenger.PassengerType == "" {
		r.Passenger.PassengerType = PassengerRegular
	}
	r.Disruption.Reason = strings.TrimSpace(r.Disruption.Reason)
}

// Validate rejects malformed input with an error naming the offending field.
// Follows validation order: Size -> Required -> Syntax -> Semantic.
func (r *Request) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}

	if len(r.Flight.FlightNumber) > maxFlightNumberLength {
		return dErrors.Field("flightInfo.flightNumber", "must be 16 characters or less")
	}
	if len(r.Passenger.BookingClass) > maxBookingClassLength {
		return dErrors.Field("passengerInfo.bookingClass", "must be 32 characters or less")
	}
	if len(r.Disruption.Reason) > maxReasonLength {
		return dErrors.Field("disruptionEvent.reason", "must be 500 characters or less")
	}

	if r.Flight.FlightNumber == "" {
		return dErrors.Field("flightInfo.flightNumber", "is required")
	}
	if r.Flight.ScheduledDeparture.IsZero() {
		return dErrors.Field("flightInfo.scheduledDeparture", "is required")
	}
	if r.Flight.ScheduledArrival.IsZero() {
		return dErrors.Field("flightInfo.scheduledArrival", "is required")
	}
	if r.Passenger.BookingClass == "" {
		return dErrors.Field("passengerInfo.bookingClass", "is required")
	}

	if !isAirportCode(r.Flight.DepartureAirport) {
		return dErrors.Field("flightInfo.departureAirport", "must be a 3-letter IATA code")
	}
	if !isAirportCode(r.Flight.ArrivalAirport) {
		return dErrors.Field("flightInfo.arrivalAirport", "must be a 3-letter IATA code")
	}
	if !r.Passenger.PassengerType.IsValid() {
		return dErrors.Field("passengerInfo.passengerType", "must be one of regular, minor, disability")
	}
	if !r.Disruption.Type.IsValid() {
		return dErrors.Field("disruptionEvent.disruptionType", "unsupported disruption type")
	}
	if !r.Disruption.Category.IsValid() {
		return dErrors.Field("disruptionEvent.disruptionCategory", "unsupported disruption category")
	}
	if r.CarrierSize != "" && !r.CarrierSize.IsValid() {
		return dErrors.Field("carrierSize", "must be large or small")
	}

	if !r.Passenger.TicketPrice.Valid {
		return dErrors.Field("passengerInfo.ticketPrice", "is required")
	}
	if r.Passenger.TicketPrice.Decimal.IsNegative() {
		return dErrors.Field("passengerInfo.ticketPrice", "must not be negative")
	}
	if age := r.Passenger.MinorAge; age != nil && (*age < 0 || *age > maxMinorAge) {
		return dErrors.Field("passengerInfo.minorAge", "must be between 0 and 17")
	}
	if err := checkHours("disruptionEvent.delayDurationHours", r.Disruption.DelayDurationHours); err != nil {
		return err
	}
	if err := checkHours("disruptionEvent.tarmacDelayHours", r.Disruption.TarmacDelayHours); err != nil {
		return err
	}
	if days := r.Disruption.CancellationNoticeDays; days != nil && *days < 0 {
		return dErrors.Field("disruptionEvent.cancellationNoticeDays", "must not be negative")
	}
	if r.Disruption.Type == DisruptionCancellation && r.Disruption.CancellationNoticeDays == nil {
		return dErrors.Field("disruptionEvent.cancellationNoticeDays", "is required for cancellation")
	}
	if r.durationRequired() {
		if _, ok := r.realizedDelayHours(); !ok {
			return dErrors.Field("disruptionEvent.delayDurationHours",
				"is required for "+string(r.Disruption.Type)+" when actual times are not provided")
		}
	}

	return nil
}

// realizedDelayHours resolves the duration the rules run on: nothing for an
// adequately noticed cancellation, else the explicit delay, else the arrival slip, else the departure slip. Tarmac delays fall
// back to the tarmac time. Derived slips are clamped at zero.
func (r *Request) realizedDelayHours() (float64, bool) {
	if r.adequateNotice() {
		return 0, false
	}
	if d := r.Disruption.DelayDurationHours; d != nil {
		return *d, true
	}
	if a := r.Flight.ActualArrival; a != nil {
		return slipHours(r.Flight.ScheduledArrival, *a), true
	}
	if a := r.Flight.ActualDeparture; a != nil {
		return slipHours(r.Flight.ScheduledDeparture, *a), true
	}
	if r.Disruption.Type == DisruptionTarmacDelay && r.Disruption.TarmacDelayHours != nil {
		return *r.Disruption.TarmacDelayHours, true
	}
	return 0, false
}

// adequateNotice is true for a cancellation announced at least
// AdequateNoticeDays ahead. No duration is read for it.
func (r *Request) adequateNotice() bool {
	days := r.Disruption.CancellationNoticeDays
	return r.Disruption.Type == DisruptionCancellation && days != nil && *days >= AdequateNoticeDays
}

// durationRequired reports whether the request cannot be evaluated without a
// realized delay.
func (r *Request) durationRequired() bool {
	return r.Disruption.Type.requiresDuration() && !r.adequateNotice()
}

// tarmacHours is the on-ground time used for the disembarkation rule.
func (r *Request) tarmacHours(realized float64) float64 {
	if t := r.Disruption.TarmacDelayHours; t != nil {
		return *t
	}
	return realized
}

func slipHours(scheduled, actual time.Time) float64 {
	d := actual.Sub(scheduled)
	if d < 0 {
		return 0
	}
	return d.Hours()
}

func checkHours(field string, v *float64) error {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return dErrors.Field(field, "must be a finite number")
	}
	if *v < 0 {
		return dErrors.Field(field, "must not be negative")
	}
	return nil
}

func isAirportCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}
