package appr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishedSchedulesMatchRules(t *testing.T) {
	calc := NewCompensationCalculator()

	for _, step := range DelaySchedule() {
		out, err := calc.Calculate(CompensationInput{
			Type:          DisruptionDelay,
			Category:      WithinCarrierControl,
			DurationHours: step.FromHours,
		})
		require.NoError(t, err)
		assert.True(t, step.Amount.Equal(out.Amount), "delay from %v hours", step.FromHours)
	}

	for _, step := range DeniedBoardingSchedule() {
		out, err := calc.Calculate(CompensationInput{
			Type:          DisruptionDeniedBoarding,
			Category:      OutsideCarrierControl,
			DurationHours: step.FromHours,
		})
		require.NoError(t, err)
		assert.True(t, step.Amount.Equal(out.Amount), "denied boarding from %v hours", step.FromHours)
	}

	var cumulative []string
	for _, step := range CareSchedule() {
		cumulative = append(cumulative, step.Obligations...)
		assert.Equal(t, cumulative, ResolveCareObligations(step.FromHours))
	}
}

func TestCareScheduleIsACopy(t *testing.T) {
	steps := CareSchedule()
	steps[0].Obligations[0] = "changed"
	assert.Equal(t, CareCommunication, CareSchedule()[0].Obligations[0])
}
