package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/entity"
	"gorm.io/gorm"
)

// ServiceRepository persists delivery services.
type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// FindAll lists services with optional filters. Row visibility for cliente
// and conductor callers is applied by the service layer through the
// client_id / driver_id filters.
func (r *ServiceRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Service, int64, error) {
	var items []entity.Service
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Service{})

	if clientID := filters["client_id"]; clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}
	if driverID := filters["driver_id"]; driverID != "" {
		query = query.Where("driver_id = ?", driverID)
	}
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if zone := filters["zone_label"]; zone != "" {
		query = query.Where("zone_label = ?", zone)
	}
	if search := filters["search"]; search != "" {
		query = query.Where("delivery_contact_name ILIKE ? OR delivery_address ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Client").
		Preload("Driver").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *ServiceRepository) FindByID(ctx context.Context, id string) (*entity.Service, error) {
	var service entity.Service
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Driver").
		Where("id = ?", id).
		First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &service, nil
}

func (r *ServiceRepository) Create(ctx context.Context, service *entity.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

// CreateBatch inserts one batch of services in a single statement. Callers
// chunk their input; each call succeeds or fails as a whole.
func (r *ServiceRepository) CreateBatch(ctx context.Context, services []entity.Service) error {
	if len(services) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&services).Error
}

func (r *ServiceRepository) Update(ctx context.Context, service *entity.Service) error {
	return r.db.WithContext(ctx).Save(service).Error
}

// UpdateFields applies a partial update to one service.
func (r *ServiceRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&entity.Service{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// NextServiceNumber draws the next value from the guide number sequence.
func (r *ServiceRepository) NextServiceNumber(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Raw("SELECT nextval('service_number_seq')").Scan(&n).Error
	return n, err
}

// NextServiceNumbers draws count consecutive values from the guide number
// sequence in one query.
func (r *ServiceRepository) NextServiceNumbers(ctx context.Context, count int) ([]int64, error) {
	var ns []int64
	err := r.db.WithContext(ctx).
		Raw("SELECT nextval('service_number_seq') FROM generate_series(1, ?)", count).
		Scan(&ns).Error
	return ns, err
}

// FindForZoneView returns the rows the zone aggregation runs over: services
// with a zone label that are either still in flight or were created today.
// Same-day services show up even when already delivered.
func (r *ServiceRepository) FindForZoneView(ctx context.Context, startOfDay time.Time) ([]entity.Service, error) {
	var items []entity.Service
	err := r.db.WithContext(ctx).
		Where("zone_label IS NOT NULL").
		Where("status IN ? OR created_at >= ?", entity.NonTerminalStatuses, startOfDay).
		Find(&items).Error
	return items, err
}

// FindByZone returns a zone's in-flight services ordered by guide number,
// the order manifests print in.
func (r *ServiceRepository) FindByZone(ctx context.Context, zone string) ([]entity.Service, error) {
	var items []entity.Service
	err := r.db.WithContext(ctx).
		Preload("Client").
		Where("zone_label = ?", zone).
		Where("status IN ?", entity.NonTerminalStatuses).
		Order("service_number ASC").
		Find(&items).Error
	return items, err
}

// AssignZone sets driver and status=asignado on every pending service of a
// zone. Returns the number of rows actually updated; zero means nothing was
// pending and is not an error.
func (r *ServiceRepository) AssignZone(ctx context.Context, zone, driverID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Service{}).
		Where("zone_label = ? AND status = ?", zone, entity.StatusSolicitado).
		Updates(map[string]interface{}{
			"driver_id": driverID,
			"status":    entity.StatusAsignado,
		})
	return result.RowsAffected, result.Error
}

// CountByStatus tallies services per status, optionally scoped to one client
// or driver.
func (r *ServiceRepository) CountByStatus(ctx context.Context, clientID, driverID string) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row

	query := r.db.WithContext(ctx).
		Model(&entity.Service{}).
		Select("status, COUNT(*) AS count").
		Group("status")
	if clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}
	if driverID != "" {
		query = query.Where("driver_id = ?", driverID)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// CountCreatedSince counts services created at or after t, with the same
// optional scoping as CountByStatus.
func (r *ServiceRepository) CountCreatedSince(ctx context.Context, t time.Time, clientID, driverID string) (int64, error) {
	var n int64
	query := r.db.WithContext(ctx).
		Model(&entity.Service{}).
		Where("created_at >= ?", t)
	if clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}
	if driverID != "" {
		query = query.Where("driver_id = ?", driverID)
	}
	err := query.Count(&n).Error
	return n, err
}
