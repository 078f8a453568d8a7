package repository

import (
	"github.com/corvidchat/corvid/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	CountActiveByOrganization(orgID uint) (int64, error)
}

// OrganizationRepository defines the interface for organization lookups
type OrganizationRepository interface {
	Create(org *models.Organization) error
	GetByID(id uint) (*models.Organization, error)
	GetBySubdomain(subdomain string) (*models.Organization, error)
	Update(org *models.Organization) error
}

// RemoteRealmRepository defines the interface for remote realm lookups
type RemoteRealmRepository interface {
	Create(realm *models.RemoteRealm) error
	GetByUUID(uuid string) (*models.RemoteRealm, error)
	Update(realm *models.RemoteRealm) error
}

// RemoteServerRepository defines the interface for remote server lookups
type RemoteServerRepository interface {
	Create(server *models.RemoteServer) error
	GetByUUID(uuid string) (*models.RemoteServer, error)
	Update(server *models.RemoteServer) error
}

// CustomerRepository defines the interface for customer records. Lookups
// return gorm.ErrRecordNotFound when the account never engaged billing.
type CustomerRepository interface {
	GetByAccount(accountKind string, accountID uint) (*models.Customer, error)
	GetOrCreateByAccount(accountKind string, accountID uint) (*models.Customer, error)
	Save(customer *models.Customer) error
}

// CustomerPlanRepository defines the interface for plan rows, including
// the transactional read-modify-write used by plan updates.
type CustomerPlanRepository interface {
	Create(plan *models.CustomerPlan) error
	// ExistsForCustomer reports whether any plan row (current or
	// historical) exists for the customer.
	ExistsForCustomer(customerID uint) (bool, error)
	// GetCurrentPlan returns the newest live plan row, or
	// gorm.ErrRecordNotFound when the customer has none.
	GetCurrentPlan(customerID uint) (*models.CustomerPlan, error)
	// ApplyPlanUpdate applies updates to the plan row and writes the
	// audit entry in one transaction. The update is guarded by the
	// status the caller read; a concurrent status change fails the
	// whole transaction with ErrPlanConcurrentlyModified.
	ApplyPlanUpdate(planID uint, expectedStatus int, updates map[string]interface{}, audit *models.BillingAuditLog) error
}

// BillingAuditLogRepository defines the interface for the billing audit trail
type BillingAuditLogRepository interface {
	Create(entry *models.BillingAuditLog) error
	ListForAccount(accountKind string, accountID uint, limit int) ([]models.BillingAuditLog, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User         UserRepository
	Organization OrganizationRepository
	RemoteRealm  RemoteRealmRepository
	RemoteServer RemoteServerRepository
	Customer     CustomerRepository
	CustomerPlan CustomerPlanRepository
	AuditLog     BillingAuditLogRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Organization: NewOrganizationRepository(db),
		RemoteRealm:  NewRemoteRealmRepository(db),
		RemoteServer: NewRemoteServerRepository(db),
		Customer:     NewCustomerRepository(db),
		CustomerPlan: NewCustomerPlanRepository(db),
		AuditLog:     NewBillingAuditLogRepository(db),
	}
}
