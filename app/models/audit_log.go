package models

import "time"

// Billing audit event types.
const (
	AuditEventPlanPropertiesChanged = "customer_plan.properties_changed"
	AuditEventPlanEnded             = "customer_plan.ended"
	AuditEventSponsorshipRequested  = "customer.sponsorship_requested"
)

// BillingAuditLog records every billing-relevant mutation, attributed to
// the acting user where one is available. When no principal reached the
// mutation site the row is still written with AttributionDegraded set,
// so the gap is visible in the trail instead of silently dropped.
type BillingAuditLog struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	EventType           string    `gorm:"type:varchar(100);not null;index" json:"event_type"`
	AccountKind         string    `gorm:"type:varchar(20);not null;index:idx_billing_audit_account,priority:1" json:"account_kind"`
	AccountID           uint      `gorm:"not null;index:idx_billing_audit_account,priority:2" json:"account_id"`
	ActingUserID        *uint     `gorm:"index;default:null" json:"acting_user_id,omitempty"`
	AttributionDegraded bool      `gorm:"not null;default:false" json:"attribution_degraded"`
	ExtraData           string    `gorm:"type:longtext" json:"extra_data"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
}
