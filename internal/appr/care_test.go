package appr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCareObligations(t *testing.T) {
	assert.Empty(t, ResolveCareObligations(0))
	assert.Empty(t, ResolveCareObligations(1.99))
	assert.Equal(t, []string{CareCommunication}, ResolveCareObligations(2))
	assert.Equal(t, []string{CareCommunication, CareFoodAndDrink}, ResolveCareObligations(3))
	assert.Equal(t, []string{CareCommunication, CareFoodAndDrink}, ResolveCareObligations(7.99))
	assert.Equal(t,
		[]string{CareCommunication, CareFoodAndDrink, CareAccommodation, CareTransportation},
		ResolveCareObligations(8))
}

func TestCareThresholdProperties(t *testing.T) {
	for h := 0.0; h <= 12; h += 0.1 {
		got := ResolveCareObligations(h)
		assert.Equal(t, h >= 3, contains(got, CareFoodAndDrink), "food at %v hours", h)
		assert.Equal(t, h >= 8, contains(got, CareAccommodation), "accommodation at %v hours", h)
	}
}

func TestResolveRights(t *testing.T) {
	for _, category := range []ControlCategory{WithinCarrierControl, WithinCarrierControlSafety, OutsideCarrierControl} {
		rebooking, refund := ResolveRights(true, category)
		assert.Equal(t, []string{RightRebooking}, rebooking)
		assert.Equal(t, []string{RightRefund}, refund)
	}

	rebooking, refund := ResolveRights(false, WithinCarrierControl)
	assert.NotNil(t, rebooking)
	assert.Empty(t, rebooking)
	assert.Empty(t, refund)
}

func TestApplySpecialPassengerPolicy(t *testing.T) {
	t.Run("minor gets enhanced care", func(t *testing.T) {
		res := emptyCompensationResult()
		res.CareObligations = []string{CareCommunication}

		ApplySpecialPassengerPolicy(PassengerInfo{PassengerType: PassengerMinor}, &res)

		assert.Equal(t, []string{CareCommunication, CareMinorAssistance}, res.CareObligations)
		assert.Equal(t, []string{noteMinor}, res.ComplianceNotes)
	})

	t.Run("disability flag counts for any passenger type", func(t *testing.T) {
		res := emptyCompensationResult()

		ApplySpecialPassengerPolicy(PassengerInfo{PassengerType: PassengerRegular, HasDisability: true}, &res)

		assert.Equal(t, []string{CareDisabilityAssistance}, res.CareObligations)
		assert.Equal(t, []string{arrangementPriorityRebooking}, res.AlternativeArrangements)
	})

	t.Run("regular passenger is untouched", func(t *testing.T) {
		res := emptyCompensationResult()
		ApplySpecialPassengerPolicy(PassengerInfo{PassengerType: PassengerRegular}, &res)
		assert.Empty(t, res.CareObligations)
		assert.Empty(t, res.ComplianceNotes)
	})

	t.Run("re-applying adds nothing", func(t *testing.T) {
		res := emptyCompensationResult()
		p := PassengerInfo{PassengerType: PassengerMinor, HasDisability: true}

		ApplySpecialPassengerPolicy(p, &res)
		once := append([]string(nil), res.CareObligations...)
		ApplySpecialPassengerPolicy(p, &res)

		assert.Equal(t, once, res.CareObligations)
	})
}

func contains(list []string, item string) bool {
	for _, v := range list {
		if v == item {
			return true
		}
	}
	return false
}
