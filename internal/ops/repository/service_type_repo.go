package repository

import (
	"context"
	"errors"

	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/entity"
	"gorm.io/gorm"
)

// ServiceTypeRepository persists the systemwide service type catalog.
type ServiceTypeRepository struct {
	db *gorm.DB
}

func NewServiceTypeRepository(db *gorm.DB) *ServiceTypeRepository {
	return &ServiceTypeRepository{db: db}
}

func (r *ServiceTypeRepository) FindAll(ctx context.Context) ([]entity.ServiceType, error) {
	var types []entity.ServiceType
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&types).Error
	return types, err
}

func (r *ServiceTypeRepository) FindByID(ctx context.Context, id string) (*entity.ServiceType, error) {
	var st entity.ServiceType
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&st).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &st, nil
}

// FindZoning returns the service type flagged requires_zoning. Its absence is
// a systemwide misconfiguration, reported as ErrNotFound.
func (r *ServiceTypeRepository) FindZoning(ctx context.Context) (*entity.ServiceType, error) {
	var st entity.ServiceType
	err := r.db.WithContext(ctx).
		Where("requires_zoning = ? AND active = ?", true, true).
		First(&st).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &st, nil
}

func (r *ServiceTypeRepository) Create(ctx context.Context, st *entity.ServiceType) error {
	return r.db.WithContext(ctx).Create(st).Error
}
