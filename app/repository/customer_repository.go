package repository

import (
	"fmt"

	"github.com/corvidchat/corvid/app/models"
	"gorm.io/gorm"
)

// customerRepository implements the CustomerRepository interface
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository instance
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func ownerColumn(accountKind string) (string, error) {
	switch accountKind {
	case models.AccountKindOrganization:
		return "organization_id", nil
	case models.AccountKindRemoteRealm:
		return "remote_realm_id", nil
	case models.AccountKindRemoteServer:
		return "remote_server_id", nil
	default:
		return "", fmt.Errorf("unknown account kind %q", accountKind)
	}
}

// GetByAccount looks up the customer owned by the given account.
func (r *customerRepository) GetByAccount(accountKind string, accountID uint) (*models.Customer, error) {
	column, err := ownerColumn(accountKind)
	if err != nil {
		return nil, err
	}
	var customer models.Customer
	if err := r.db.Where(column+" = ?", accountID).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetOrCreateByAccount returns the account's customer, creating the row
// on first billing engagement.
func (r *customerRepository) GetOrCreateByAccount(accountKind string, accountID uint) (*models.Customer, error) {
	column, err := ownerColumn(accountKind)
	if err != nil {
		return nil, err
	}

	customer := &models.Customer{}
	switch accountKind {
	case models.AccountKindOrganization:
		customer.OrganizationID = &accountID
	case models.AccountKindRemoteRealm:
		customer.RemoteRealmID = &accountID
	case models.AccountKindRemoteServer:
		customer.RemoteServerID = &accountID
	}

	err = r.db.Where(column+" = ?", accountID).FirstOrCreate(customer).Error
	if err != nil {
		return nil, err
	}
	return customer, nil
}

func (r *customerRepository) Save(customer *models.Customer) error {
	return r.db.Save(customer).Error
}
