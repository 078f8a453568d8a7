package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Account kinds a customer can belong to. Stored in audit rows and used
// by the billing session polymorphism.
const (
	AccountKindOrganization = "organization"
	AccountKindRemoteRealm  = "remote_realm"
	AccountKindRemoteServer = "remote_server"
)

var ErrCustomerOwnership = errors.New("customer must belong to exactly one of organization, remote realm or remote server")

// Customer is the provider-linked billing identity for exactly one
// billable account (organization, remote realm or remote server).
// Created lazily when an account first engages billing (checkout or
// sponsorship request); never deleted.
type Customer struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	OrganizationID     *uint     `gorm:"uniqueIndex;default:null" json:"organization_id,omitempty"`
	RemoteRealmID      *uint     `gorm:"uniqueIndex;default:null" json:"remote_realm_id,omitempty"`
	RemoteServerID     *uint     `gorm:"uniqueIndex;default:null" json:"remote_server_id,omitempty"`
	ProviderCustomerID string    `gorm:"type:varchar(191);index;default:null" json:"-"`
	SponsorshipPending bool      `gorm:"not null;default:false" json:"sponsorship_pending"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// AccountKind returns which kind of account owns this customer.
func (c *Customer) AccountKind() string {
	switch {
	case c.OrganizationID != nil:
		return AccountKindOrganization
	case c.RemoteRealmID != nil:
		return AccountKindRemoteRealm
	case c.RemoteServerID != nil:
		return AccountKindRemoteServer
	default:
		return ""
	}
}

// AccountID returns the id of the owning account.
func (c *Customer) AccountID() uint {
	switch {
	case c.OrganizationID != nil:
		return *c.OrganizationID
	case c.RemoteRealmID != nil:
		return *c.RemoteRealmID
	case c.RemoteServerID != nil:
		return *c.RemoteServerID
	default:
		return 0
	}
}

// BeforeSave enforces mutually exclusive ownership.
func (c *Customer) BeforeSave(tx *gorm.DB) error {
	owners := 0
	if c.OrganizationID != nil {
		owners++
	}
	if c.RemoteRealmID != nil {
		owners++
	}
	if c.RemoteServerID != nil {
		owners++
	}
	if owners != 1 {
		return ErrCustomerOwnership
	}
	return nil
}
