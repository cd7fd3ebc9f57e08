package repository

import (
	"context"
	"errors"

	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/entity"
	"gorm.io/gorm"
)

// ClientRepository persists tenants and their enabled service types.
type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Client, int64, error) {
	var items []entity.Client
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Client{})

	if search := filters["search"]; search != "" {
		query = query.Where("business_name ILIKE ? OR nit ILIKE ? OR contact_name ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}
	if active := filters["active"]; active != "" {
		query = query.Where("active = ?", active == "true")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("ServiceTypes.ServiceType").
		Order("business_name ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*entity.Client, error) {
	var client entity.Client
	err := r.db.WithContext(ctx).
		Preload("ServiceTypes.ServiceType").
		Where("id = ?", id).
		First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepository) Create(ctx context.Context, client *entity.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *ClientRepository) Update(ctx context.Context, client *entity.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Client{}).Error
}

// ReplaceServiceTypes swaps a client's enabled service types: delete all join
// rows, then insert the new set.
func (r *ClientRepository) ReplaceServiceTypes(ctx context.Context, clientID string, joins []entity.ClientServiceType) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", clientID).Delete(&entity.ClientServiceType{}).Error; err != nil {
			return err
		}
		if len(joins) == 0 {
			return nil
		}
		return tx.Create(&joins).Error
	})
}

// HasServiceTypeEnabled checks the enabled flag of the (client, service type)
// join row. A missing row counts as not enabled.
func (r *ClientRepository) HasServiceTypeEnabled(ctx context.Context, clientID, serviceTypeID string) (bool, error) {
	var join entity.ClientServiceType
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND service_type_id = ?", clientID, serviceTypeID).
		First(&join).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return join.Enabled, nil
}
