package appr

import "github.com/shopspring/decimal"

// ScheduleStep is one rung of a published compensation table: Amount applies
// from FromHours up to the next rung.
type ScheduleStep struct {
	FromHours float64         `json:"fromHours"`
	Amount    decimal.Decimal `json:"amount"`
}

// CareStep lists the obligations added once a delay reaches FromHours.
type CareStep struct {
	FromHours   float64  `json:"fromHours"`
	Obligations []string `json:"obligations"`
}

// DelaySchedule returns the large-carrier delay and cancellation table.
func DelaySchedule() []ScheduleStep {
	return publish(largeCarrierDelayTiers)
}

// DeniedBoardingSchedule returns the large-carrier denied boarding table.
func DeniedBoardingSchedule() []ScheduleStep {
	return publish(largeCarrierDeniedBoardingTiers)
}

// CareSchedule returns the care thresholds in ascending order.
func CareSchedule() []CareStep {
	out := make([]CareStep, 0, len(careThresholds))
	for _, t := range careThresholds {
		out = append(out, CareStep{
			FromHours:   t.minHours,
			Obligations: append([]string(nil), t.obligations...),
		})
	}
	return out
}

func publish(tiers []tier) []ScheduleStep {
	out := make([]ScheduleStep, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, ScheduleStep{FromHours: t.minHours, Amount: t.amount})
	}
	return out
}
