package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func uintPtr(n uint) *uint { return &n }

func TestCustomerAccountKind(t *testing.T) {
	org := Customer{OrganizationID: uintPtr(1)}
	assert.Equal(t, AccountKindOrganization, org.AccountKind())
	assert.Equal(t, uint(1), org.AccountID())

	realm := Customer{RemoteRealmID: uintPtr(2)}
	assert.Equal(t, AccountKindRemoteRealm, realm.AccountKind())
	assert.Equal(t, uint(2), realm.AccountID())

	server := Customer{RemoteServerID: uintPtr(3)}
	assert.Equal(t, AccountKindRemoteServer, server.AccountKind())
	assert.Equal(t, uint(3), server.AccountID())

	orphan := Customer{}
	assert.Equal(t, "", orphan.AccountKind())
	assert.Equal(t, uint(0), orphan.AccountID())
}

func TestCustomerBeforeSaveEnforcesSingleOwner(t *testing.T) {
	valid := Customer{OrganizationID: uintPtr(1)}
	assert.NoError(t, valid.BeforeSave(nil))

	none := Customer{}
	assert.ErrorIs(t, none.BeforeSave(nil), ErrCustomerOwnership)

	two := Customer{OrganizationID: uintPtr(1), RemoteServerID: uintPtr(2)}
	assert.ErrorIs(t, two.BeforeSave(nil), ErrCustomerOwnership)
}

func TestUserHasBillingAccess(t *testing.T) {
	assert.True(t, (&User{Role: ROLE_ADMIN}).HasBillingAccess())
	assert.True(t, (&User{Role: ROLE_BILLING_MANAGER}).HasBillingAccess())
	assert.False(t, (&User{Role: ROLE_USER}).HasBillingAccess())
}
