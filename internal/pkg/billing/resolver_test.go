package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchat/corvid/app/models"
)

func TestResolveNoAccessWinsOverEverything(t *testing.T) {
	s := &fakeSession{
		noAccess:    true,
		sponsorTier: true,
		plansTier:   true,
		customer:    &models.Customer{SponsorshipPending: true},
	}

	state, err := Resolve(s)
	require.NoError(t, err)
	assert.Equal(t, StateNoAccess, state.Kind)
	assert.Empty(t, state.RedirectURL)
}

func TestResolveSponsorshipTierRedirect(t *testing.T) {
	s := &fakeSession{sponsorTier: true}

	state, err := Resolve(s)
	require.NoError(t, err)
	assert.Equal(t, StateRedirectSponsorship, state.Kind)
	assert.Equal(t, "/sponsorship", state.RedirectURL)
}

func TestResolveSponsorshipPendingRedirectsUnpaidAccounts(t *testing.T) {
	// Pending sponsorship beats the plans-page tier check.
	s := &fakeSession{
		plansTier: true,
		customer:  &models.Customer{ID: 1, SponsorshipPending: true},
	}

	state, err := Resolve(s)
	require.NoError(t, err)
	assert.Equal(t, StateRedirectSponsorship, state.Kind)
	assert.Equal(t, "/sponsorship", state.RedirectURL)
}

func TestResolveSponsorshipPendingOnPaidPlanShowsBillingPage(t *testing.T) {
	s := &fakeSession{
		paidTier:   true,
		customer:   &models.Customer{ID: 1, SponsorshipPending: true},
		plan:       &models.CustomerPlan{ID: 7, Status: models.PlanStatusActive},
		hasHistory: true,
	}

	state, err := Resolve(s)
	require.NoError(t, err)
	assert.Equal(t, StateShowBillingPage, state.Kind)
	assert.True(t, state.SponsorshipPending)
	assert.Equal(t, "acme", state.Context["org_name"])
}

func TestResolvePlansPageTierRedirect(t *testing.T) {
	s := &fakeSession{plansTier: true}

	state, err := Resolve(s)
	require.NoError(t, err)
	assert.Equal(t, StateRedirectPlans, state.Kind)
	assert.Equal(t, "/plans", state.RedirectURL)
}

func TestResolveNoCustomerRedirectsToUpgrade(t *testing.T) {
	s := &fakeSession{}

	state, err := Resolve(s)
	require.NoError(t, err)
	assert.Equal(t, StateRedirectUpgrade, state.Kind)
	assert.Equal(t, "/upgrade", state.RedirectURL)
}

func TestResolveCustomerWithoutPlansRedirectsToUpgrade(t *testing.T) {
	s := &fakeSession{
		customer:   &models.Customer{ID: 1},
		hasHistory: false,
	}

	state, err := Resolve(s)
	require.NoError(t, err)
	assert.Equal(t, StateRedirectUpgrade, state.Kind)
}

func TestResolveShowsBillingPage(t *testing.T) {
	s := &fakeSession{
		customer:   &models.Customer{ID: 1},
		hasHistory: true,
	}

	state, err := Resolve(s)
	require.NoError(t, err)
	assert.Equal(t, StateShowBillingPage, state.Kind)
	assert.False(t, state.SponsorshipPending)
	assert.Equal(t, "acme", state.Context["org_name"])
}

func TestResolveWrapsCustomerLookupFailure(t *testing.T) {
	s := &fakeSession{customerErr: assert.AnError}

	_, err := Resolve(s)
	require.Error(t, err)

	var pe *PersistenceError
	assert.ErrorAs(t, err, &pe)
	assert.ErrorIs(t, err, assert.AnError)
}
