package repository

import (
	"github.com/corvidchat/corvid/app/models"
	"gorm.io/gorm"
)

// organizationRepository implements the OrganizationRepository interface
type organizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new organization repository instance
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) Create(org *models.Organization) error {
	return r.db.Create(org).Error
}

func (r *organizationRepository) GetByID(id uint) (*models.Organization, error) {
	var org models.Organization
	err := r.db.First(&org, id).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) GetBySubdomain(subdomain string) (*models.Organization, error) {
	var org models.Organization
	err := r.db.Where("subdomain = ?", subdomain).First(&org).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) Update(org *models.Organization) error {
	return r.db.Save(org).Error
}

// remoteRealmRepository implements the RemoteRealmRepository interface
type remoteRealmRepository struct {
	db *gorm.DB
}

// NewRemoteRealmRepository creates a new remote realm repository instance
func NewRemoteRealmRepository(db *gorm.DB) RemoteRealmRepository {
	return &remoteRealmRepository{db: db}
}

func (r *remoteRealmRepository) Create(realm *models.RemoteRealm) error {
	return r.db.Create(realm).Error
}

func (r *remoteRealmRepository) GetByUUID(uuid string) (*models.RemoteRealm, error) {
	var realm models.RemoteRealm
	err := r.db.Where("uuid = ?", uuid).First(&realm).Error
	if err != nil {
		return nil, err
	}
	return &realm, nil
}

func (r *remoteRealmRepository) Update(realm *models.RemoteRealm) error {
	return r.db.Save(realm).Error
}

// remoteServerRepository implements the RemoteServerRepository interface
type remoteServerRepository struct {
	db *gorm.DB
}

// NewRemoteServerRepository creates a new remote server repository instance
func NewRemoteServerRepository(db *gorm.DB) RemoteServerRepository {
	return &remoteServerRepository{db: db}
}

func (r *remoteServerRepository) Create(server *models.RemoteServer) error {
	return r.db.Create(server).Error
}

func (r *remoteServerRepository) GetByUUID(uuid string) (*models.RemoteServer, error) {
	var server models.RemoteServer
	err := r.db.Where("uuid = ?", uuid).First(&server).Error
	if err != nil {
		return nil, err
	}
	return &server, nil
}

func (r *remoteServerRepository) Update(server *models.RemoteServer) error {
	return r.db.Save(server).Error
}
