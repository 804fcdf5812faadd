package appr

import (
	"fmt"

	"github.com/shopspring/decimal"

	dErrors "appr/pkg/domain-errors"
)

const (
	// AdequateNoticeDays is the advance notice that excuses a cancellation.
	AdequateNoticeDays = 14
	// TarmacDisembarkationHours is the on-ground limit before passengers must be let off.
	TarmacDisembarkationHours = 4.0
)

const (
	noteTarmacDisembarkation   = "Tarmac delay: mandatory disembarkation is required once tarmac time exceeds 4 hours"
	noteAdequateNotice         = "Cancellation with 14+ days notice - no compensation required"
	noteSmallCarrier           = "No compensation schedule defined for small carriers"
	noteBaggageInterimExpenses = "Baggage issue - carrier must reimburse reasonable interim expenses"

	arrangementDisembarkation = "Passenger disembarkation required after 4 hours on tarmac"
	arrangementBaggage        = "Reimbursement for essential items while baggage is delayed"
)

// tier is one rung of a step table: amount applies from minHours upward.
type tier struct {
	minHours float64
	amount   decimal.Decimal
}

// Large-carrier schedules in CAD. Tiers are ascending by minHours.
var (
	largeCarrierDelayTiers = []tier{
		{minHours: 3, amount: decimal.NewFromInt(400)},
		{minHours: 6, amount: decimal.NewFromInt(700)},
		{minHours: 9, amount: decimal.NewFromInt(1000)},
	}
	largeCarrierDeniedBoardingTiers = []tier{
		{minHours: 0, amount: decimal.NewFromInt(900)},
		{minHours: 6, amount: decimal.NewFromInt(1800)},
		{minHours: 9, amount: decimal.NewFromInt(2400)},
	}
)

// stepAmount returns the amount of the highest tier reached, or zero.
func stepAmount(tiers []tier, hours float64) decimal.Decimal {
	amount := decimal.Zero
	for _, t := range tiers {
		if hours < t.minHours {
			break
		}
		amount = t.amount
	}
	return amount
}

// CompensationInput is the set of disruption facts the calculator reads.
type CompensationInput struct {
	Type          DisruptionType
	Category      ControlCategory
	DurationHours float64
	TarmacHours   float64
	NoticeDays    *int
	CarrierSize   CarrierSize
}

// Compensation is the calculator's answer: an amount plus the notes and
// arrangements that explain it.
type Compensation struct {
	Amount       decimal.Decimal
	Notes        []string
	Arrangements []string
}

func (c *Compensation) note(format string, args ...any) {
	c.Notes = append(c.Notes, fmt.Sprintf(format, args...))
}

// CompensationCalculator maps disruption facts to a monetary amount.
// It holds no state and is safe for concurrent use.
type CompensationCalculator struct{}

func NewCompensationCalculator() *CompensationCalculator {
	return &CompensationCalculator{}
}

// Calculate applies the compensation schedule. Unspecified schedules resolve
// to zero with an explanatory note; a combination no rule covers is an
// internal error.
func (c *CompensationCalculator) Calculate(in CompensationInput) (Compensation, error) {
	out := Compensation{Amount: decimal.Zero}
	if in.CarrierSize == "" {
		in.CarrierSize = CarrierLarge
	}

	var err error
	switch in.Type {
	case DisruptionDelay:
		err = c.delayed(in, "Delay", &out)
	case DisruptionCancellation:
		err = c.cancelled(in, &out)
	case DisruptionDeniedBoarding:
		c.deniedBoarding(in, &out)
	case DisruptionTarmacDelay:
		out.Notes = append(out.Notes, noteTarmacDisembarkation)
		if in.TarmacHours >= TarmacDisembarkationHours {
			out.Arrangements = append(out.Arrangements, arrangementDisembarkation)
		}
		err = c.delayed(in, "Tarmac delay", &out)
	case DisruptionDowngrade:
		out.note("No compensation schedule defined for this disruption type: %s", in.Type)
	case DisruptionBaggageIssue:
		out.note("No compensation schedule defined for this disruption type: %s", in.Type)
		out.Notes = append(out.Notes, noteBaggageInterimExpenses)
		out.Arrangements = append(out.Arrangements, arrangementBaggage)
	default:
		return Compensation{}, dErrors.New(dErrors.CodeInternal,
			fmt.Sprintf("no compensation rule for disruption type %q", in.Type))
	}
	if err != nil {
		return Compensation{}, err
	}
	return out, nil
}

// delayed applies the delay step table for within-carrier-control disruptions.
func (c *CompensationCalculator) delayed(in CompensationInput, label string, out *Compensation) error {
	hours := formatHours(in.DurationHours)

	switch in.Category {
	case OutsideCarrierControl:
		out.note("%s outside carrier control - no monetary compensation required", label)
		return nil
	case WithinCarrierControlSafety:
		out.note("%s within carrier control but required for safety - no monetary compensation required", label)
		return nil
	case WithinCarrierControl:
	default:
		return dErrors.New(dErrors.CodeInternal,
			fmt.Sprintf("no compensation rule for category %q", in.Category))
	}

	if in.CarrierSize != CarrierLarge {
		out.Notes = append(out.Notes, noteSmallCarrier)
		return nil
	}

	out.Amount = stepAmount(largeCarrierDelayTiers, in.DurationHours)
	if out.Amount.IsZero() {
		out.note("%s of %s hours is under 3-hour threshold - no compensation required", label, hours)
	}
	return nil
}

func (c *CompensationCalculator) cancelled(in CompensationInput, out *Compensation) error {
	if in.NoticeDays != nil && *in.NoticeDays >= AdequateNoticeDays {
		out.Notes = append(out.Notes, noteAdequateNotice)
		return nil
	}
	if err := c.delayed(in, "Cancellation", out); err != nil {
		return err
	}
	if in.Category == WithinCarrierControl && in.CarrierSize == CarrierLarge {
		out.note("Cancellation within carrier control - compensation based on %s hour delay to alternative flight",
			formatHours(in.DurationHours))
	}
	return nil
}

// deniedBoarding uses its own ladder regardless of control category.
func (c *CompensationCalculator) deniedBoarding(in CompensationInput, out *Compensation) {
	if in.CarrierSize != CarrierLarge {
		out.Notes = append(out.Notes, noteSmallCarrier)
		return
	}
	out.Amount = stepAmount(largeCarrierDeniedBoardingTiers, in.DurationHours)
	out.note("Denied boarding - compensation based on %s hour delay to alternative arrival",
		formatHours(in.DurationHours))
}
