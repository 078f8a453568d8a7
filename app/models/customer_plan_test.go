package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedPlanAPIStatusValuesIsClosed(t *testing.T) {
	// The seven externally settable statuses, nothing more.
	assert.Len(t, AllowedPlanAPIStatusValues, 7)

	for _, s := range AllowedPlanAPIStatusValues {
		assert.True(t, IsAllowedPlanAPIStatus(s), "status %d should be allowed", s)
	}

	assert.False(t, IsAllowedPlanAPIStatus(PlanStatusNeverStarted))
	assert.False(t, IsAllowedPlanAPIStatus(0))
	assert.False(t, IsAllowedPlanAPIStatus(99))
}

func TestCustomerPlanIsLive(t *testing.T) {
	live := []int{
		PlanStatusActive,
		PlanStatusDowngradeAtEndOfCycle,
		PlanStatusSwitchToAnnualAtEndOfCycle,
		PlanStatusSwitchToMonthlyAtEndOfCycle,
		PlanStatusFreeTrial,
		PlanStatusDowngradeAtEndOfFreeTrial,
	}
	for _, s := range live {
		plan := CustomerPlan{Status: s}
		assert.True(t, plan.IsLive(), "status %d should be live", s)
	}

	assert.False(t, (&CustomerPlan{Status: PlanStatusEnded}).IsLive())
	assert.False(t, (&CustomerPlan{Status: PlanStatusNeverStarted}).IsLive())
}

func TestPlanStatusName(t *testing.T) {
	assert.Equal(t, "active", PlanStatusName(PlanStatusActive))
	assert.Equal(t, "ended", PlanStatusName(PlanStatusEnded))
	assert.Equal(t, "never_started", PlanStatusName(PlanStatusNeverStarted))
	assert.Equal(t, "unknown", PlanStatusName(42))
}

func TestBillingScheduleName(t *testing.T) {
	assert.Equal(t, "annual", BillingScheduleName(BillingScheduleAnnual))
	assert.Equal(t, "monthly", BillingScheduleName(BillingScheduleMonthly))
	assert.Equal(t, "unknown", BillingScheduleName(0))
}
