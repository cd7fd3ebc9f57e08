package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/auth"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/entity"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/repository"
)

// ClientService manages tenants and their enabled service types.
type ClientService struct {
	clients *repository.ClientRepository
	types   *repository.ServiceTypeRepository
}

func NewClientService(clients *repository.ClientRepository, types *repository.ServiceTypeRepository) *ClientService {
	return &ClientService{clients: clients, types: types}
}

// CreateClientRequest registers a tenant with its enabled service types.
type CreateClientRequest struct {
	BusinessName   string   `json:"business_name" binding:"required"`
	NIT            string   `json:"nit" binding:"required"`
	ContactName    string   `json:"contact_name"`
	ContactPhone   string   `json:"contact_phone"`
	ContactEmail   string   `json:"contact_email"`
	Address        string   `json:"address"`
	ServiceTypeIDs []string `json:"service_type_ids"`
}

// UpdateClientRequest partially updates a tenant. ServiceTypeIDs, when
// present, replaces the whole enabled set.
type UpdateClientRequest struct {
	BusinessName   *string   `json:"business_name"`
	ContactName    *string   `json:"contact_name"`
	ContactPhone   *string   `json:"contact_phone"`
	ContactEmail   *string   `json:"contact_email"`
	Address        *string   `json:"address"`
	Active         *bool     `json:"active"`
	ServiceTypeIDs *[]string `json:"service_type_ids"`
}

func (s *ClientService) List(ctx context.Context, actor auth.Actor, page, pageSize int, filters map[string]string) ([]entity.Client, int64, error) {
	if !actor.Can(auth.CapManageClients) {
		return nil, 0, auth.Denied("no tienes permisos para ver los clientes")
	}
	return s.clients.FindAll(ctx, page, pageSize, filters)
}

func (s *ClientService) Get(ctx context.Context, actor auth.Actor, id string) (*entity.Client, error) {
	// A cliente may read its own tenant record.
	if !actor.Can(auth.CapManageClients) && actor.ClientID != id {
		return nil, repository.ErrNotFound
	}
	return s.clients.FindByID(ctx, id)
}

func (s *ClientService) Create(ctx context.Context, actor auth.Actor, req *CreateClientRequest) (*entity.Client, error) {
	if !actor.Can(auth.CapManageClients) {
		return nil, auth.Denied("no tienes permisos para crear clientes")
	}

	client := &entity.Client{
		ID:           uuid.New().String()[:32],
		BusinessName: req.BusinessName,
		NIT:          req.NIT,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		Address:      req.Address,
		Active:       true,
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}

	if len(req.ServiceTypeIDs) > 0 {
		if err := s.replaceServiceTypes(ctx, client.ID, req.ServiceTypeIDs); err != nil {
			return nil, err
		}
	}
	return s.clients.FindByID(ctx, client.ID)
}

func (s *ClientService) Update(ctx context.Context, actor auth.Actor, id string, req *UpdateClientRequest) (*entity.Client, error) {
	if !actor.Can(auth.CapManageClients) {
		return nil, auth.Denied("no tienes permisos para editar clientes")
	}

	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.BusinessName != nil {
		client.BusinessName = *req.BusinessName
	}
	if req.ContactName != nil {
		client.ContactName = *req.ContactName
	}
	if req.ContactPhone != nil {
		client.ContactPhone = *req.ContactPhone
	}
	if req.ContactEmail != nil {
		client.ContactEmail = *req.ContactEmail
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.Active != nil {
		client.Active = *req.Active
	}

	client.ServiceTypes = nil
	if err := s.clients.Update(ctx, client); err != nil {
		return nil, err
	}

	if req.ServiceTypeIDs != nil {
		if err := s.replaceServiceTypes(ctx, id, *req.ServiceTypeIDs); err != nil {
			return nil, err
		}
	}
	return s.clients.FindByID(ctx, id)
}

// ServiceTypes lists the systemwide catalog.
func (s *ClientService) ServiceTypes(ctx context.Context) ([]entity.ServiceType, error) {
	return s.types.FindAll(ctx)
}

// replaceServiceTypes validates the ids and swaps the join rows.
func (s *ClientService) replaceServiceTypes(ctx context.Context, clientID string, typeIDs []string) error {
	joins := make([]entity.ClientServiceType, 0, len(typeIDs))
	for _, typeID := range typeIDs {
		if _, err := s.types.FindByID(ctx, typeID); err != nil {
			return Invalid("tipo de servicio no encontrado: %s", typeID)
		}
		joins = append(joins, entity.ClientServiceType{
			ID:            uuid.New().String()[:32],
			ClientID:      clientID,
			ServiceTypeID: typeID,
			Enabled:       true,
		})
	}
	return s.clients.ReplaceServiceTypes(ctx, clientID, joins)
}
