package appr

import "fmt"

// DepartureRegistry answers whether a departure airport brings a flight under APPR.
type DepartureRegistry interface {
	IsEligibleDeparture(code string) bool
}

// EligibilityEvaluator is the single gate in front of the compensation rules.
type EligibilityEvaluator struct {
	registry DepartureRegistry
}

func NewEligibilityEvaluator(registry DepartureRegistry) *EligibilityEvaluator {
	return &EligibilityEvaluator{registry: registry}
}

// Evaluate applies the regime iff the flight departs from a registered airport.
func (e *EligibilityEvaluator) Evaluate(flight FlightInfo) (bool, string) {
	code := flight.DepartureAirport
	if e.registry.IsEligibleDeparture(code) {
		return true, fmt.Sprintf("APPR applies — flight departs from Canadian airport %s", code)
	}
	return false, fmt.Sprintf("APPR does not apply — departure airport %s is not in Canada", code)
}
