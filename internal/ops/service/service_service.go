package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/auth"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/entity"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/repository"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/storage"
)

// ServiceService handles the service lifecycle outside of bulk import:
// creation, listing with row visibility, status transitions, driver
// assignment and evidence upload.
type ServiceService struct {
	repos    *repository.Repositories
	evidence *storage.EvidenceStore
}

func NewServiceService(repos *repository.Repositories, evidence *storage.EvidenceStore) *ServiceService {
	return &ServiceService{repos: repos, evidence: evidence}
}

// CreateServiceRequest creates one service by hand (not via import).
type CreateServiceRequest struct {
	ClientID            string     `json:"client_id"`
	ServiceTypeID       string     `json:"service_type_id" binding:"required"`
	PickupAddress       string     `json:"pickup_address"`
	PickupContactName   string     `json:"pickup_contact_name"`
	PickupPhone         string     `json:"pickup_phone"`
	DeliveryAddress     string     `json:"delivery_address" binding:"required"`
	DeliveryContactName string     `json:"delivery_contact_name"`
	DeliveryPhone       string     `json:"delivery_phone"`
	Observations        string     `json:"observations"`
	ScheduledDate       *time.Time `json:"scheduled_date"`
}

// UpdateServiceRequest edits addresses and contacts. Nil fields are left
// untouched; status and zone never change through this path.
type UpdateServiceRequest struct {
	PickupAddress       *string    `json:"pickup_address"`
	PickupContactName   *string    `json:"pickup_contact_name"`
	PickupPhone         *string    `json:"pickup_phone"`
	DeliveryAddress     *string    `json:"delivery_address"`
	DeliveryContactName *string    `json:"delivery_contact_name"`
	DeliveryPhone       *string    `json:"delivery_phone"`
	Observations        *string    `json:"observations"`
	ScheduledDate       *time.Time `json:"scheduled_date"`
}

// UpdateStatusRequest moves a service along its status progression.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// List returns services visible to the actor. Clientes see their tenant's
// services, conductores their own assignments, admins everything.
func (s *ServiceService) List(ctx context.Context, actor auth.Actor, page, pageSize int, filters map[string]string) ([]entity.Service, int64, error) {
	scoped := make(map[string]string, len(filters)+1)
	for k, v := range filters {
		scoped[k] = v
	}
	switch actor.Role {
	case auth.RoleCliente:
		scoped["client_id"] = actor.ClientID
	case auth.RoleConductor:
		scoped["driver_id"] = actor.UserID
	}
	return s.repos.Service.FindAll(ctx, page, pageSize, scoped)
}

// Get returns one service if the actor may see it.
func (s *ServiceService) Get(ctx context.Context, actor auth.Actor, id string) (*entity.Service, error) {
	svc, err := s.repos.Service.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.visible(actor, svc) {
		return nil, repository.ErrNotFound
	}
	return svc, nil
}

// Create registers a single service with status solicitado.
func (s *ServiceService) Create(ctx context.Context, actor auth.Actor, req *CreateServiceRequest) (*entity.Service, error) {
	if !actor.Can(auth.CapCreateService) {
		return nil, auth.Denied("no tienes permisos para crear servicios")
	}

	clientID := actor.ClientID
	if actor.Role.IsAdmin() {
		clientID = req.ClientID
	}
	if clientID == "" {
		return nil, Invalid("no se pudo determinar el cliente del servicio")
	}

	number, err := s.repos.Service.NextServiceNumber(ctx)
	if err != nil {
		return nil, err
	}

	svc := &entity.Service{
		ID:                  uuid.New().String()[:32],
		ServiceNumber:       number,
		ClientID:            clientID,
		ServiceTypeID:       req.ServiceTypeID,
		Status:              entity.StatusSolicitado,
		PickupAddress:       req.PickupAddress,
		PickupContactName:   req.PickupContactName,
		PickupPhone:         req.PickupPhone,
		DeliveryAddress:     req.DeliveryAddress,
		DeliveryContactName: req.DeliveryContactName,
		DeliveryPhone:       req.DeliveryPhone,
		Observations:        req.Observations,
		ScheduledDate:       req.ScheduledDate,
	}
	if err := s.repos.Service.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// UpdateStatus moves one service to the next status. Conductores may only
// touch their own assignments.
func (s *ServiceService) UpdateStatus(ctx context.Context, actor auth.Actor, id string, req *UpdateStatusRequest) (*entity.Service, error) {
	if !actor.Can(auth.CapUpdateStatus) {
		return nil, auth.Denied("no tienes permisos para actualizar el estado")
	}
	if !entity.ValidStatus(req.Status) {
		return nil, Invalid("estado inválido: %s", req.Status)
	}

	svc, err := s.repos.Service.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == auth.RoleConductor && (svc.DriverID == nil || *svc.DriverID != actor.UserID) {
		return nil, repository.ErrNotFound
	}
	if !entity.CanTransition(svc.Status, req.Status) {
		return nil, Invalid("transición de estado no permitida: %s a %s", svc.Status, req.Status)
	}

	fields := map[string]interface{}{"status": req.Status}
	if req.Status == entity.StatusEntregado {
		fields["delivered_at"] = time.Now()
	}
	if err := s.repos.Service.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.repos.Service.FindByID(ctx, id)
}

// Update edits addresses and contacts on a service the actor can see.
func (s *ServiceService) Update(ctx context.Context, actor auth.Actor, id string, req *UpdateServiceRequest) (*entity.Service, error) {
	if !actor.Can(auth.CapCreateService) {
		return nil, auth.Denied("no tienes permisos para editar servicios")
	}

	svc, err := s.repos.Service.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.visible(actor, svc) {
		return nil, repository.ErrNotFound
	}

	fields := map[string]interface{}{}
	if req.PickupAddress != nil {
		fields["pickup_address"] = *req.PickupAddress
	}
	if req.PickupContactName != nil {
		fields["pickup_contact_name"] = *req.PickupContactName
	}
	if req.PickupPhone != nil {
		fields["pickup_phone"] = *req.PickupPhone
	}
	if req.DeliveryAddress != nil {
		if *req.DeliveryAddress == "" {
			return nil, Invalid("la dirección de entrega no puede quedar vacía")
		}
		fields["delivery_address"] = *req.DeliveryAddress
	}
	if req.DeliveryContactName != nil {
		fields["delivery_contact_name"] = *req.DeliveryContactName
	}
	if req.DeliveryPhone != nil {
		fields["delivery_phone"] = *req.DeliveryPhone
	}
	if req.Observations != nil {
		fields["observations"] = *req.Observations
	}
	if req.ScheduledDate != nil {
		fields["scheduled_date"] = *req.ScheduledDate
	}
	if len(fields) == 0 {
		return svc, nil
	}

	if err := s.repos.Service.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.repos.Service.FindByID(ctx, id)
}

// AssignDriver sets one service's driver and moves it to asignado.
func (s *ServiceService) AssignDriver(ctx context.Context, actor auth.Actor, id, driverID string) (*entity.Service, error) {
	if !actor.Can(auth.CapAssignZone) {
		return nil, auth.Denied("no tienes permisos para asignar conductores")
	}

	driver, err := s.repos.Profile.FindByID(ctx, driverID)
	if err != nil {
		return nil, Invalid("conductor no encontrado")
	}
	if auth.Role(driver.Role) != auth.RoleConductor || !driver.Active {
		return nil, Invalid("el usuario seleccionado no es un conductor activo")
	}

	svc, err := s.repos.Service.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc.Status != entity.StatusSolicitado {
		return nil, Invalid("el servicio ya fue asignado")
	}

	fields := map[string]interface{}{
		"driver_id": driverID,
		"status":    entity.StatusAsignado,
	}
	if err := s.repos.Service.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.repos.Service.FindByID(ctx, id)
}

// UploadEvidence stores a delivery photo and marks the service entregado.
func (s *ServiceService) UploadEvidence(ctx context.Context, actor auth.Actor, id string, file io.Reader, size int64, contentType string) (*entity.Service, error) {
	if !actor.Can(auth.CapUploadEvidence) {
		return nil, auth.Denied("no tienes permisos para subir evidencias")
	}

	ext, err := storage.ValidateEvidence(contentType, size)
	if err != nil {
		return nil, err
	}

	svc, err := s.repos.Service.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == auth.RoleConductor && (svc.DriverID == nil || *svc.DriverID != actor.UserID) {
		return nil, repository.ErrNotFound
	}

	key := fmt.Sprintf("service-%s-%d%s", svc.ID, time.Now().Unix(), ext)
	url, err := s.evidence.Upload(ctx, key, file, size, contentType)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"evidence_url": url,
		"status":       entity.StatusEntregado,
		"delivered_at": time.Now(),
	}
	if err := s.repos.Service.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.repos.Service.FindByID(ctx, id)
}

func (s *ServiceService) visible(actor auth.Actor, svc *entity.Service) bool {
	switch actor.Role {
	case auth.RoleCliente:
		return svc.ClientID == actor.ClientID
	case auth.RoleConductor:
		return svc.DriverID != nil && *svc.DriverID == actor.UserID
	}
	return true
}
