package models

import "time"

// Plan lifecycle statuses. The numeric values are part of the public
// billing API (the update-plan endpoint takes them verbatim) and of the
// database rows, so they must never be renumbered.
const (
	PlanStatusActive                      = 1
	PlanStatusDowngradeAtEndOfCycle       = 2
	PlanStatusSwitchToAnnualAtEndOfCycle  = 3
	PlanStatusSwitchToMonthlyAtEndOfCycle = 4
	PlanStatusFreeTrial                   = 5
	PlanStatusDowngradeAtEndOfFreeTrial   = 6
	PlanStatusEnded                       = 7
	// PlanStatusNeverStarted is internal bookkeeping for plans created
	// during an unfinished checkout. It is intentionally absent from
	// AllowedPlanAPIStatusValues.
	PlanStatusNeverStarted = 8
)

const (
	BillingScheduleAnnual  = 1
	BillingScheduleMonthly = 2
)

// AllowedPlanAPIStatusValues is the closed set of statuses a client may
// request through the update-plan API. Anything else is rejected at the
// boundary before the billing engine runs.
var AllowedPlanAPIStatusValues = []int{
	PlanStatusActive,
	PlanStatusDowngradeAtEndOfCycle,
	PlanStatusSwitchToAnnualAtEndOfCycle,
	PlanStatusSwitchToMonthlyAtEndOfCycle,
	PlanStatusFreeTrial,
	PlanStatusDowngradeAtEndOfFreeTrial,
	PlanStatusEnded,
}

// IsAllowedPlanAPIStatus reports whether status may be requested via the API.
func IsAllowedPlanAPIStatus(status int) bool {
	for _, s := range AllowedPlanAPIStatusValues {
		if s == status {
			return true
		}
	}
	return false
}

// CustomerPlan is one subscription plan row for a customer. A customer
// keeps historical rows; at most one row is "current" (see
// CustomerPlanRepository.GetCurrentPlan).
type CustomerPlan struct {
	ID                    uint       `gorm:"primaryKey" json:"id"`
	CustomerID            uint       `gorm:"not null;index" json:"customer_id"`
	Status                int        `gorm:"type:smallint;not null;default:1;index" json:"status"`
	Licenses              int        `gorm:"not null;default:0" json:"licenses" validate:"min=0"`
	LicensesAtNextRenewal *int       `gorm:"default:null" json:"licenses_at_next_renewal,omitempty"`
	BillingSchedule       int        `gorm:"type:smallint;not null;default:1" json:"billing_schedule"`
	CurrentPeriodEnd      *time.Time `gorm:"type:timestamp;default:null" json:"current_period_end,omitempty"`
	CreatedAt             time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsLive reports whether the plan is still in effect (neither ended nor
// a checkout leftover).
func (p *CustomerPlan) IsLive() bool {
	return p.Status != PlanStatusEnded && p.Status != PlanStatusNeverStarted
}

// PlanStatusName returns the wire/display name for a plan status.
func PlanStatusName(status int) string {
	switch status {
	case PlanStatusActive:
		return "active"
	case PlanStatusDowngradeAtEndOfCycle:
		return "downgrade_at_end_of_cycle"
	case PlanStatusSwitchToAnnualAtEndOfCycle:
		return "switch_to_annual_at_end_of_cycle"
	case PlanStatusSwitchToMonthlyAtEndOfCycle:
		return "switch_to_monthly_at_end_of_cycle"
	case PlanStatusFreeTrial:
		return "free_trial"
	case PlanStatusDowngradeAtEndOfFreeTrial:
		return "downgrade_at_end_of_free_trial"
	case PlanStatusEnded:
		return "ended"
	case PlanStatusNeverStarted:
		return "never_started"
	default:
		return "unknown"
	}
}

// BillingScheduleName returns the display name for a billing schedule.
func BillingScheduleName(schedule int) string {
	switch schedule {
	case BillingScheduleAnnual:
		return "annual"
	case BillingScheduleMonthly:
		return "monthly"
	default:
		return "unknown"
	}
}
