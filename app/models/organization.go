package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Plan types for locally hosted organizations. Numeric values are
// persisted; do not renumber.
const (
	OrgPlanTypeSelfHosted   = 1
	OrgPlanTypeLimited      = 2
	OrgPlanTypeStandard     = 3
	OrgPlanTypeStandardFree = 4
	OrgPlanTypePlus         = 10
)

// Organization is a cloud-hosted workspace. Its PlanType classifies the
// tier for billing routing; the actual subscription lives on the
// Customer/CustomerPlan rows.
type Organization struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	Subdomain string         `gorm:"type:varchar(100);uniqueIndex" json:"subdomain" validate:"required,min=2,max=100"`
	PlanType  int            `gorm:"type:smallint;not null;default:2" json:"plan_type"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (o *Organization) Validate() error {
	v := validator.New()

	return v.Struct(o)
}

// OrgPlanTypeName returns the display name for an organization plan type.
func OrgPlanTypeName(planType int) string {
	switch planType {
	case OrgPlanTypeSelfHosted:
		return "self_hosted"
	case OrgPlanTypeLimited:
		return "limited"
	case OrgPlanTypeStandard:
		return "standard"
	case OrgPlanTypeStandardFree:
		return "standard_free"
	case OrgPlanTypePlus:
		return "plus"
	default:
		return "unknown"
	}
}
