package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchat/corvid/app/models"
)

func activePlanSession() *fakeSession {
	return &fakeSession{
		customer: &models.Customer{ID: 1},
		plan: &models.CustomerPlan{
			ID:              7,
			CustomerID:      1,
			Status:          models.PlanStatusActive,
			Licenses:        10,
			BillingSchedule: models.BillingScheduleAnnual,
		},
		licenses: 5,
	}
}

func TestApplyUpdateWithoutCustomer(t *testing.T) {
	s := &fakeSession{}

	err := ApplyUpdate(s, &UpdatePlanRequest{Status: intPtr(models.PlanStatusActive)})
	assert.ErrorIs(t, err, ErrNoActivePlan)
}

func TestApplyUpdateWithoutLivePlan(t *testing.T) {
	s := &fakeSession{customer: &models.Customer{ID: 1}}

	err := ApplyUpdate(s, &UpdatePlanRequest{Status: intPtr(models.PlanStatusActive)})
	assert.ErrorIs(t, err, ErrNoActivePlan)
}

func TestApplyUpdateScheduleCombinedWithOtherFields(t *testing.T) {
	s := activePlanSession()

	err := ApplyUpdate(s, &UpdatePlanRequest{
		Schedule: intPtr(models.BillingScheduleMonthly),
		Licenses: intPtr(20),
	})
	assert.ErrorIs(t, err, ErrConflictingUpdate)
	assert.Nil(t, s.persistedUpdates)
}

func TestApplyUpdateScheduleCombinedWithStatus(t *testing.T) {
	s := activePlanSession()

	err := ApplyUpdate(s, &UpdatePlanRequest{
		Schedule: intPtr(models.BillingScheduleMonthly),
		Status:   intPtr(models.PlanStatusDowngradeAtEndOfCycle),
	})
	assert.ErrorIs(t, err, ErrConflictingUpdate)
	assert.Nil(t, s.persistedUpdates)
}

func TestApplyUpdateRejectsEndingViaStatus(t *testing.T) {
	// ENDED is only reachable through the cancellation path.
	s := activePlanSession()
	s.plan.Status = models.PlanStatusFreeTrial

	err := ApplyUpdate(s, &UpdatePlanRequest{Status: intPtr(models.PlanStatusEnded)})
	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.Nil(t, s.persistedUpdates)
}

func TestApplyUpdateRejectsInternalStatus(t *testing.T) {
	s := activePlanSession()

	err := ApplyUpdate(s, &UpdatePlanRequest{Status: intPtr(models.PlanStatusNeverStarted)})
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestApplyUpdateRejectsUnreachableStatus(t *testing.T) {
	s := activePlanSession()

	// An active plan cannot jump straight into a free trial.
	err := ApplyUpdate(s, &UpdatePlanRequest{Status: intPtr(models.PlanStatusFreeTrial)})
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestApplyUpdateScheduledDowngrade(t *testing.T) {
	s := activePlanSession()

	err := ApplyUpdate(s, &UpdatePlanRequest{Status: intPtr(models.PlanStatusDowngradeAtEndOfCycle)})
	require.NoError(t, err)

	assert.Equal(t, models.PlanStatusDowngradeAtEndOfCycle, s.persistedUpdates["status"])
	require.NotNil(t, s.persistedAudit)
	assert.Equal(t, models.AuditEventPlanPropertiesChanged, s.persistedAudit.EventType)
	assert.True(t, s.persistedAudit.AttributionDegraded)
}

func TestApplyUpdateRevertScheduledDowngrade(t *testing.T) {
	s := activePlanSession()
	s.plan.Status = models.PlanStatusDowngradeAtEndOfCycle

	err := ApplyUpdate(s, &UpdatePlanRequest{Status: intPtr(models.PlanStatusActive)})
	require.NoError(t, err)
	assert.Equal(t, models.PlanStatusActive, s.persistedUpdates["status"])
}

func TestApplyUpdateSameStatusIsNoOp(t *testing.T) {
	s := activePlanSession()

	err := ApplyUpdate(s, &UpdatePlanRequest{Status: intPtr(models.PlanStatusActive)})
	require.NoError(t, err)
	assert.Nil(t, s.persistedUpdates)
	assert.Nil(t, s.persistedAudit)
}

func TestApplyUpdateLicensesBelowSeatsInUse(t *testing.T) {
	s := activePlanSession()
	s.licenses = 5

	err := ApplyUpdate(s, &UpdatePlanRequest{Licenses: intPtr(3)})
	assert.ErrorIs(t, err, ErrInvalidLicenseCount)
	assert.Nil(t, s.persistedUpdates)
}

func TestApplyUpdateLicensesAtNextRenewalBelowSeatsInUse(t *testing.T) {
	s := activePlanSession()
	s.licenses = 5

	err := ApplyUpdate(s, &UpdatePlanRequest{LicensesAtNextRenewal: intPtr(4)})
	assert.ErrorIs(t, err, ErrInvalidLicenseCount)
}

func TestApplyUpdateLicenses(t *testing.T) {
	s := activePlanSession()

	err := ApplyUpdate(s, &UpdatePlanRequest{
		Licenses:              intPtr(25),
		LicensesAtNextRenewal: intPtr(30),
	})
	require.NoError(t, err)
	assert.Equal(t, 25, s.persistedUpdates["licenses"])
	assert.Equal(t, 30, s.persistedUpdates["licenses_at_next_renewal"])
}

func TestApplyUpdateIdenticalLicensesIsNoOp(t *testing.T) {
	s := activePlanSession()
	s.plan.Licenses = 25
	s.plan.LicensesAtNextRenewal = intPtr(30)

	err := ApplyUpdate(s, &UpdatePlanRequest{
		Licenses:              intPtr(25),
		LicensesAtNextRenewal: intPtr(30),
	})
	require.NoError(t, err)
	assert.Nil(t, s.persistedUpdates)
}

func TestApplyUpdateScheduleRequiresActivePlan(t *testing.T) {
	s := activePlanSession()
	s.plan.Status = models.PlanStatusFreeTrial

	err := ApplyUpdate(s, &UpdatePlanRequest{Schedule: intPtr(models.BillingScheduleMonthly)})
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestApplyUpdateScheduleChange(t *testing.T) {
	s := activePlanSession()

	err := ApplyUpdate(s, &UpdatePlanRequest{Schedule: intPtr(models.BillingScheduleMonthly)})
	require.NoError(t, err)
	assert.Equal(t, models.BillingScheduleMonthly, s.persistedUpdates["billing_schedule"])
}

func TestApplyUpdateEmptyRequestIsNoOp(t *testing.T) {
	s := activePlanSession()

	err := ApplyUpdate(s, &UpdatePlanRequest{})
	require.NoError(t, err)
	assert.Nil(t, s.persistedUpdates)
}

func TestApplyUpdateWrapsPersistFailure(t *testing.T) {
	s := activePlanSession()
	s.persistErr = assert.AnError

	err := ApplyUpdate(s, &UpdatePlanRequest{Licenses: intPtr(25)})
	require.Error(t, err)

	var pe *PersistenceError
	assert.ErrorAs(t, err, &pe)
}

func TestApplyUpdateCarriesActingUser(t *testing.T) {
	s := activePlanSession()
	s.principal = &models.User{ID: 42}

	err := ApplyUpdate(s, &UpdatePlanRequest{Licenses: intPtr(25)})
	require.NoError(t, err)
	require.NotNil(t, s.persistedAudit)
	require.NotNil(t, s.persistedAudit.ActingUserID)
	assert.Equal(t, uint(42), *s.persistedAudit.ActingUserID)
	assert.False(t, s.persistedAudit.AttributionDegraded)
}

func TestCancelPlanEndsActivePlan(t *testing.T) {
	s := activePlanSession()

	err := cancelPlan(s)
	require.NoError(t, err)
	assert.Equal(t, models.PlanStatusEnded, s.persistedUpdates["status"])
	require.NotNil(t, s.persistedAudit)
	assert.Equal(t, models.AuditEventPlanEnded, s.persistedAudit.EventType)
}

func TestCancelPlanWithoutPlan(t *testing.T) {
	s := &fakeSession{customer: &models.Customer{ID: 1}}

	err := cancelPlan(s)
	assert.ErrorIs(t, err, ErrNoActivePlan)
}

func TestCancelPlanAlreadyEnded(t *testing.T) {
	// An ended plan is historical, so a second cancel finds no live plan.
	s := activePlanSession()
	s.plan.Status = models.PlanStatusEnded

	err := cancelPlan(s)
	assert.ErrorIs(t, err, ErrNoActivePlan)
	assert.Nil(t, s.persistedUpdates)
}
