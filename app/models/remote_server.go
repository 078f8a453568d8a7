package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Plan types for whole self-hosted servers billed as a single unit
// (legacy billing; newer installations bill per remote realm).
const (
	RemoteServerPlanTypeCommunity  = 1
	RemoteServerPlanTypeSelfHosted = 2
	RemoteServerPlanTypeBasic      = 3
	RemoteServerPlanTypeBusiness   = 4
)

// RemoteServer is a registered self-hosted installation.
type RemoteServer struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	UUID         string `gorm:"type:char(36);uniqueIndex;not null" json:"uuid"`
	Hostname     string `gorm:"type:varchar(255);not null" json:"hostname"`
	ContactEmail string `gorm:"type:varchar(200);not null" json:"contact_email"`
	PlanType     int    `gorm:"type:smallint;not null;default:2" json:"plan_type"`
	// Seats in use as of the last audit-log push from the server.
	LastAuditedLicenseCount int       `gorm:"not null;default:0" json:"last_audited_license_count"`
	LastRequestAt           *time.Time `gorm:"type:timestamp;default:null" json:"last_request_at,omitempty"`
	CreatedAt               time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *RemoteServer) BeforeCreate(tx *gorm.DB) error {
	if s.UUID == "" {
		s.UUID = uuid.NewString()
	}
	return nil
}

// RemoteServerPlanTypeName returns the display name for a remote server plan type.
func RemoteServerPlanTypeName(planType int) string {
	switch planType {
	case RemoteServerPlanTypeCommunity:
		return "community"
	case RemoteServerPlanTypeSelfHosted:
		return "self_hosted"
	case RemoteServerPlanTypeBasic:
		return "basic"
	case RemoteServerPlanTypeBusiness:
		return "business"
	default:
		return "unknown"
	}
}
