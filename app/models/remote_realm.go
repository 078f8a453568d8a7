package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Plan types for realms on self-hosted servers that registered for
// per-realm billing with the cloud plane.
const (
	RemoteRealmPlanTypeCommunity  = 1
	RemoteRealmPlanTypeSelfHosted = 2
	RemoteRealmPlanTypeBasic      = 3
	RemoteRealmPlanTypeBusiness   = 4
)

// RemoteRealm is a single realm on a self-hosted installation, known to
// the billing plane through the server's registration pushes.
type RemoteRealm struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UUID     string `gorm:"type:char(36);uniqueIndex;not null" json:"uuid"`
	ServerID uint   `gorm:"not null;index" json:"server_id"`
	Name     string `gorm:"type:varchar(150);not null" json:"name"`
	Host     string `gorm:"type:varchar(255);not null" json:"host"`
	PlanType int    `gorm:"type:smallint;not null;default:2" json:"plan_type"`
	// Seats in use as of the last audit-log push from the server.
	LastAuditedLicenseCount int       `gorm:"not null;default:0" json:"last_audited_license_count"`
	CreatedAt               time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *RemoteRealm) BeforeCreate(tx *gorm.DB) error {
	if r.UUID == "" {
		r.UUID = uuid.NewString()
	}
	return nil
}

// RemoteRealmPlanTypeName returns the display name for a remote realm plan type.
func RemoteRealmPlanTypeName(planType int) string {
	switch planType {
	case RemoteRealmPlanTypeCommunity:
		return "community"
	case RemoteRealmPlanTypeSelfHosted:
		return "self_hosted"
	case RemoteRealmPlanTypeBasic:
		return "basic"
	case RemoteRealmPlanTypeBusiness:
		return "business"
	default:
		return "unknown"
	}
}
