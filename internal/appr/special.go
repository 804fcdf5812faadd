package appr

import "slices"

const (
	CareMinorAssistance      = "Special assistance for unaccompanied minors"
	CareDisabilityAssistance = "Assistance appropriate to passenger's disability"

	noteMinor                    = "Minor passenger - enhanced care obligations apply"
	noteDisability               = "Passenger with disability - enhanced protections apply"
	arrangementPriorityRebooking = "Priority rebooking for passengers with disabilities"
)

// ApplySpecialPassengerPolicy appends enhanced care for minors and passengers
// with disabilities. It never touches the amount, and re-applying it to the
// same result adds nothing.
func ApplySpecialPassengerPolicy(p PassengerInfo, res *CompensationResult) {
	if p.PassengerType == PassengerMinor {
		res.CareObligations = appendOnce(res.CareObligations, CareMinorAssistance)
		res.ComplianceNotes = appendOnce(res.ComplianceNotes, noteMinor)
	}
	if p.needsDisabilityAssistance() {
		res.CareObligations = appendOnce(res.CareObligations, CareDisabilityAssistance)
		res.ComplianceNotes = appendOnce(res.ComplianceNotes, noteDisability)
		res.AlternativeArrangements = appendOnce(res.AlternativeArrangements, arrangementPriorityRebooking)
	}
}

func appendOnce(list []string, item string) []string {
	if slices.Contains(list, item) {
		return list
	}
	return append(list, item)
}
