package repository

import (
	"context"
	"errors"

	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/auth"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/entity"
	"gorm.io/gorm"
)

// ProfileRepository persists platform users.
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*entity.Profile, error) {
	var profile entity.Profile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) FindByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	var profile entity.Profile
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// FindDrivers returns active conductor profiles ordered by name.
func (r *ProfileRepository) FindDrivers(ctx context.Context) ([]entity.Profile, error) {
	var drivers []entity.Profile
	err := r.db.WithContext(ctx).
		Where("role = ? AND active = ?", string(auth.RoleConductor), true).
		Order("full_name ASC").
		Find(&drivers).Error
	return drivers, err
}

// FindNamesByIDs resolves display names for a set of profile ids in one
// query. Missing ids are simply absent from the result.
func (r *ProfileRepository) FindNamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var rows []entity.Profile
	err := r.db.WithContext(ctx).
		Select("id", "full_name").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, p := range rows {
		names[p.ID] = p.FullName
	}
	return names, nil
}

func (r *ProfileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *ProfileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
