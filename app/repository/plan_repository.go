package repository

import (
	"errors"

	"github.com/corvidchat/corvid/app/models"
	"gorm.io/gorm"
)

// ErrPlanConcurrentlyModified is returned when the optimistic status
// check of ApplyPlanUpdate fails because another request changed the
// plan row between read and write.
var ErrPlanConcurrentlyModified = errors.New("customer plan was modified concurrently")

// customerPlanRepository implements the CustomerPlanRepository interface
type customerPlanRepository struct {
	db *gorm.DB
}

// NewCustomerPlanRepository creates a new customer plan repository instance
func NewCustomerPlanRepository(db *gorm.DB) CustomerPlanRepository {
	return &customerPlanRepository{db: db}
}

func (r *customerPlanRepository) Create(plan *models.CustomerPlan) error {
	return r.db.Create(plan).Error
}

// ExistsForCustomer reports whether any plan row exists for the
// customer, current or historical.
func (r *customerPlanRepository) ExistsForCustomer(customerID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.CustomerPlan{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error
	return count > 0, err
}

// GetCurrentPlan returns the newest live plan row for the customer.
// Ended plans and never-started checkout leftovers are historical.
func (r *customerPlanRepository) GetCurrentPlan(customerID uint) (*models.CustomerPlan, error) {
	var plan models.CustomerPlan
	err := r.db.
		Where("customer_id = ? AND status NOT IN ?", customerID,
			[]int{models.PlanStatusEnded, models.PlanStatusNeverStarted}).
		Order("id DESC").
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// ApplyPlanUpdate performs the guarded read-modify-write for a plan
// update. The row is only touched if its status still matches what the
// caller read, and the audit entry is committed in the same transaction
// so a failed write never leaves a stray audit row (and vice versa).
func (r *customerPlanRepository) ApplyPlanUpdate(planID uint, expectedStatus int, updates map[string]interface{}, audit *models.BillingAuditLog) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CustomerPlan{}).
			Where("id = ? AND status = ?", planID, expectedStatus).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPlanConcurrentlyModified
		}
		if audit != nil {
			if err := tx.Create(audit).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
