package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func TestValidateUpdatePlanParamsAcceptsSettableStatuses(t *testing.T) {
	for status := 1; status <= 7; status++ {
		params := &updatePlanParams{Status: intPtr(status)}
		assert.NoError(t, validateUpdatePlanParams(params), "status %d should pass", status)
	}
}

func TestValidateUpdatePlanParamsRejectsInternalStatus(t *testing.T) {
	// 8 (never started) is internal bookkeeping, not an API value.
	params := &updatePlanParams{Status: intPtr(8)}
	assert.Error(t, validateUpdatePlanParams(params))

	params = &updatePlanParams{Status: intPtr(0)}
	assert.Error(t, validateUpdatePlanParams(params))
}

func TestValidateUpdatePlanParamsRejectsNegativeLicenses(t *testing.T) {
	params := &updatePlanParams{Licenses: intPtr(-1)}
	assert.Error(t, validateUpdatePlanParams(params))

	params = &updatePlanParams{LicensesAtNextRenewal: intPtr(-5)}
	assert.Error(t, validateUpdatePlanParams(params))
}

func TestValidateUpdatePlanParamsSchedule(t *testing.T) {
	assert.NoError(t, validateUpdatePlanParams(&updatePlanParams{Schedule: intPtr(1)}))
	assert.NoError(t, validateUpdatePlanParams(&updatePlanParams{Schedule: intPtr(2)}))
	assert.Error(t, validateUpdatePlanParams(&updatePlanParams{Schedule: intPtr(3)}))
}

func TestValidateUpdatePlanParamsEmptyRequest(t *testing.T) {
	assert.NoError(t, validateUpdatePlanParams(&updatePlanParams{}))
}
