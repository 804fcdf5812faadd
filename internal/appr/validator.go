package appr

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"appr/pkg/requestcontext"
)

// disruptionLabels name each disruption type in summary notes.
var disruptionLabels = map[DisruptionType]string{
	DisruptionDelay:          "Delay",
	DisruptionCancellation:   "Cancellation",
	DisruptionDeniedBoarding: "Denied boarding",
	DisruptionTarmacDelay:    "Tarmac delay",
	DisruptionDowngrade:      "Downgrade",
	DisruptionBaggageIssue:   "Baggage issue",
}

// Validator composes the eligibility gate and the rule tables into one
// result per request. It keeps no per-request state and is safe for
// concurrent use.
type Validator struct {
	eligibility *EligibilityEvaluator
	calculator  *CompensationCalculator
	carrierSize CarrierSize
	newID       func() string
}

// Option configures a Validator.
type Option func(*Validator)

// WithCarrierSize sets the ladder used when a request does not name one.
func WithCarrierSize(size CarrierSize) Option {
	return func(v *Validator) {
		if size.IsValid() {
			v.carrierSize = size
		}
	}
}

// WithIDGenerator replaces the request id source (tests use deterministic ids).
func WithIDGenerator(fn func() string) Option {
	return func(v *Validator) {
		if fn != nil {
			v.newID = fn
		}
	}
}

// NewValidator builds a Validator over the given departure registry.
func NewValidator(registry DepartureRegistry, opts ...Option) *Validator {
	v := &Validator{
		eligibility: NewEligibilityEvaluator(registry),
		calculator:  NewCompensationCalculator(),
		carrierSize: CarrierLarge,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// DefaultCarrierSize returns the ladder applied when a request names none.
func (v *Validator) DefaultCarrierSize() CarrierSize {
	return v.carrierSize
}

// Validate evaluates one request. Business outcomes (not applicable, zero
// compensation) are successful results; only malformed input and rule gaps
// are errors.
func (v *Validator) Validate(ctx context.Context, req Request) (*ValidationResult, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	carrier := req.CarrierSize
	if carrier == "" {
		carrier = v.carrierSize
	}

	result := &ValidationResult{
		RequestID:          v.newID(),
		CarrierSize:        carrier,
		CompensationResult: emptyCompensationResult(),
		ProcessedAt:        requestcontext.Now(ctx).UTC(),
	}

	applicable, reason := v.eligibility.Evaluate(req.Flight)
	result.IsApplicable = applicable
	result.ApplicabilityReason = reason
	if !applicable {
		return result, nil
	}

	res, err := v.evaluate(req, carrier)
	if err != nil {
		return nil, err
	}
	result.CompensationResult = res
	return result, nil
}

// evaluate runs the rule tables for an applicable request.
func (v *Validator) evaluate(req Request, carrier CarrierSize) (CompensationResult, error) {
	res := emptyCompensationResult()
	hours, hasDuration := req.realizedDelayHours()
	if !req.durationRequired() && req.Disruption.DelayDurationHours == nil {
		hasDuration = false
	}

	comp, err := v.calculator.Calculate(CompensationInput{
		Type:          req.Disruption.Type,
		Category:      req.Disruption.Category,
		DurationHours: hours,
		TarmacHours:   req.tarmacHours(hours),
		NoticeDays:    req.Disruption.CancellationNoticeDays,
		CarrierSize:   carrier,
	})
	if err != nil {
		return CompensationResult{}, err
	}

	res.CompensationAmount = comp.Amount
	res.Eligible = comp.Amount.IsPositive()
	res.ComplianceNotes = append(res.ComplianceNotes, comp.Notes...)
	res.AlternativeArrangements = append(res.AlternativeArrangements, comp.Arrangements...)
	res.CareObligations = append(res.CareObligations, ResolveCareObligations(hours)...)
	res.RebookingRights, res.RefundRights = ResolveRights(true, req.Disruption.Category)

	ApplySpecialPassengerPolicy(req.Passenger, &res)

	res.ComplianceNotes = append(res.ComplianceNotes,
		summaryNote(req.Disruption, hours, hasDuration, res.Eligible))
	return res, nil
}

func summaryNote(d DisruptionEvent, hours float64, hasDuration, eligible bool) string {
	label := disruptionLabels[d.Type]
	if hasDuration {
		label = fmt.Sprintf("%s of %s hours", label, formatHours(hours))
	}
	switch {
	case eligible && d.Category == WithinCarrierControl:
		return label + " within carrier control — compensation required"
	case eligible:
		return label + " — compensation required"
	default:
		return label + " — no compensation required"
	}
}
