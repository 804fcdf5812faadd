package appr

import "strconv"

// Care obligation texts, in ascending threshold order.
const (
	CareCommunication  = "Communication: Provide updates on delay status and passenger rights"
	CareFoodAndDrink   = "Food and drink: Provide meals and refreshments"
	CareAccommodation  = "Accommodation: Provide overnight accommodation if required"
	CareTransportation = "Transportation: Provide transport between airport and accommodation"
)

type careThreshold struct {
	minHours    float64
	obligations []string
}

var careThresholds = []careThreshold{
	{minHours: 2, obligations: []string{CareCommunication}},
	{minHours: 3, obligations: []string{CareFoodAndDrink}},
	{minHours: 8, obligations: []string{CareAccommodation, CareTransportation}},
}

// ResolveCareObligations returns every obligation whose threshold the
// duration reaches. Thresholds are independent and cumulative.
func ResolveCareObligations(durationHours float64) []string {
	out := []string{}
	for _, t := range careThresholds {
		if durationHours >= t.minHours {
			out = append(out, t.obligations...)
		}
	}
	return out
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
