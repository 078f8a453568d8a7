package billing

import (
	"fmt"

	"github.com/corvidchat/corvid/app/models"
)

// UpdatePlanRequest is the transient, already-boundary-validated input
// of a plan update. Nil fields were not requested. Status, when set, is
// one of the seven externally settable plan statuses; the HTTP boundary
// guarantees that, and the engine treats violations as caller bugs.
type UpdatePlanRequest struct {
	Status                *int
	Licenses              *int
	LicensesAtNextRenewal *int
	Schedule              *int
}

// planStatusTransitions is the closed transition table of the plan
// state machine: current status -> statuses reachable via the
// update-plan API. Requesting the current status again is always a
// no-op and handled before this table is consulted. ENDED appears in
// no target set on purpose: ending a plan goes through the dedicated
// cancellation path (DoCancel) only.
var planStatusTransitions = map[int][]int{
	models.PlanStatusActive: {
		models.PlanStatusDowngradeAtEndOfCycle,
		models.PlanStatusSwitchToAnnualAtEndOfCycle,
		models.PlanStatusSwitchToMonthlyAtEndOfCycle,
	},
	// Scheduled changes may be reverted while the cycle is running.
	models.PlanStatusDowngradeAtEndOfCycle: {
		models.PlanStatusActive,
	},
	models.PlanStatusSwitchToAnnualAtEndOfCycle: {
		models.PlanStatusActive,
	},
	models.PlanStatusSwitchToMonthlyAtEndOfCycle: {
		models.PlanStatusActive,
	},
	models.PlanStatusFreeTrial: {
		models.PlanStatusDowngradeAtEndOfFreeTrial,
	},
	models.PlanStatusDowngradeAtEndOfFreeTrial: {
		models.PlanStatusFreeTrial,
	},
	models.PlanStatusEnded:        {},
	models.PlanStatusNeverStarted: {},
}

func legalTransition(from, to int) bool {
	for _, t := range planStatusTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// ApplyUpdate validates the requested plan update against the account's
// current plan and applies it atomically. Statuses that schedule a
// change for the next renewal boundary (the *_AT_END_OF_* values) defer
// by their own meaning; there is no separate deferral flag. A request
// that changes nothing succeeds without touching the row, so identical
// retries are idempotent.
func ApplyUpdate(s Session, req *UpdatePlanRequest) error {
	customer, err := s.GetCustomer()
	if err != nil {
		return wrapPersistence("look up customer", err)
	}
	if customer == nil {
		return ErrNoActivePlan
	}
	plan, err := s.CurrentPlan(customer)
	if err != nil {
		return wrapPersistence("look up current plan", err)
	}
	if plan == nil {
		return ErrNoActivePlan
	}

	if req.Schedule != nil &&
		(req.Status != nil || req.Licenses != nil || req.LicensesAtNextRenewal != nil) {
		return ErrConflictingUpdate
	}

	updates := map[string]interface{}{}
	extra := map[string]interface{}{"plan_id": plan.ID}

	if req.Status != nil {
		target := *req.Status
		if !models.IsAllowedPlanAPIStatus(target) {
			// Boundary contract violation, not a user error.
			return fmt.Errorf("%w: status %d is not settable via the API", ErrIllegalTransition, target)
		}
		if target != plan.Status {
			if !legalTransition(plan.Status, target) {
				return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition,
					models.PlanStatusName(plan.Status), models.PlanStatusName(target))
			}
			updates["status"] = target
			extra["old_status"] = plan.Status
			extra["new_status"] = target
		}
	}

	if req.Licenses != nil || req.LicensesAtNextRenewal != nil {
		inUse, err := s.CurrentLicenseCount()
		if err != nil {
			return wrapPersistence("count licenses in use", err)
		}
		if req.Licenses != nil {
			n := *req.Licenses
			if n < 0 || n < inUse {
				return fmt.Errorf("%w: %d licenses requested, %d in use", ErrInvalidLicenseCount, n, inUse)
			}
			if n != plan.Licenses {
				updates["licenses"] = n
				extra["licenses"] = n
			}
		}
		if req.LicensesAtNextRenewal != nil {
			n := *req.LicensesAtNextRenewal
			if n < 0 || n < inUse {
				return fmt.Errorf("%w: %d licenses at next renewal requested, %d in use", ErrInvalidLicenseCount, n, inUse)
			}
			if plan.LicensesAtNextRenewal == nil || *plan.LicensesAtNextRenewal != n {
				updates["licenses_at_next_renewal"] = n
				extra["licenses_at_next_renewal"] = n
			}
		}
	}

	if req.Schedule != nil {
		if plan.Status != models.PlanStatusActive {
			return fmt.Errorf("%w: schedule changes require an active plan", ErrIllegalTransition)
		}
		if *req.Schedule != plan.BillingSchedule {
			updates["billing_schedule"] = *req.Schedule
			extra["billing_schedule"] = models.BillingScheduleName(*req.Schedule)
		}
	}

	if len(updates) == 0 {
		return nil
	}

	audit := newSessionAuditLog(s, models.AuditEventPlanPropertiesChanged, extra)
	if err := s.PersistPlanChanges(plan, updates, audit); err != nil {
		return wrapPersistence("apply plan update", err)
	}
	return nil
}

// cancelPlan is the dedicated cancellation path and the only way a plan
// reaches ENDED. Ended plans are historical and no longer surface as the
// current plan, so cancelling again reports ErrNoActivePlan.
func cancelPlan(s Session) error {
	customer, err := s.GetCustomer()
	if err != nil {
		return wrapPersistence("look up customer", err)
	}
	if customer == nil {
		return ErrNoActivePlan
	}
	plan, err := s.CurrentPlan(customer)
	if err != nil {
		return wrapPersistence("look up current plan", err)
	}
	if plan == nil {
		return ErrNoActivePlan
	}

	updates := map[string]interface{}{"status": models.PlanStatusEnded}
	audit := newSessionAuditLog(s, models.AuditEventPlanEnded, map[string]interface{}{
		"plan_id":    plan.ID,
		"old_status": plan.Status,
	})
	if err := s.PersistPlanChanges(plan, updates, audit); err != nil {
		return wrapPersistence("end plan", err)
	}
	return nil
}

func newSessionAuditLog(s Session, eventType string, extra map[string]interface{}) *models.BillingAuditLog {
	return buildAuditLog(s.AccountKind(), s.AccountID(), s.Principal(), eventType, extra)
}
