package repository

import (
	"github.com/corvidchat/corvid/app/models"
	"gorm.io/gorm"
)

// billingAuditLogRepository implements the BillingAuditLogRepository interface
type billingAuditLogRepository struct {
	db *gorm.DB
}

// NewBillingAuditLogRepository creates a new audit log repository instance
func NewBillingAuditLogRepository(db *gorm.DB) BillingAuditLogRepository {
	return &billingAuditLogRepository{db: db}
}

func (r *billingAuditLogRepository) Create(entry *models.BillingAuditLog) error {
	return r.db.Create(entry).Error
}

// ListForAccount returns the newest audit entries for one account.
func (r *billingAuditLogRepository) ListForAccount(accountKind string, accountID uint, limit int) ([]models.BillingAuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []models.BillingAuditLog
	err := r.db.
		Where("account_kind = ? AND account_id = ?", accountKind, accountID).
		Order("id DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
