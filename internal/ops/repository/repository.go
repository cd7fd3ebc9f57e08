package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories groups every repository over one gorm connection.
type Repositories struct {
	Profile     *ProfileRepository
	Client      *ClientRepository
	ServiceType *ServiceTypeRepository
	Service     *ServiceRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Profile:     NewProfileRepository(db),
		Client:      NewClientRepository(db),
		ServiceType: NewServiceTypeRepository(db),
		Service:     NewServiceRepository(db),
	}
}
