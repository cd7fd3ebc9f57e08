package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/service"
)

// ClientHandler serves tenant management.
type ClientHandler struct {
	svc *service.ClientService
}

func NewClientHandler(svc *service.ClientService) *ClientHandler {
	return &ClientHandler{svc: svc}
}

// List tenants.
// GET /api/v1/clients?search=xxx&active=true&page=1&page_size=20
func (h *ClientHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"search": c.Query("search"),
		"active": c.Query("active"),
	}

	items, total, err := h.svc.List(c.Request.Context(), GetActor(c), page, pageSize, filters)
	if err != nil {
		HandleError(c, err, "no se pudieron obtener los clientes")
		return
	}
	Success(c, listResponse(items, page, pageSize, total))
}

// Get one tenant.
// GET /api/v1/clients/:id
func (h *ClientHandler) Get(c *gin.Context) {
	client, err := h.svc.Get(c.Request.Context(), GetActor(c), c.Param("id"))
	if err != nil {
		HandleError(c, err, "no se pudo obtener el cliente")
		return
	}
	Success(c, client)
}

// Create registers a tenant.
// POST /api/v1/clients
func (h *ClientHandler) Create(c *gin.Context) {
	var req service.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "parámetros inválidos: "+err.Error())
		return
	}

	client, err := h.svc.Create(c.Request.Context(), GetActor(c), &req)
	if err != nil {
		HandleError(c, err, "no se pudo crear el cliente")
		return
	}
	Created(c, client)
}

// Update edits a tenant; service_type_ids replaces the enabled set.
// PUT /api/v1/clients/:id
func (h *ClientHandler) Update(c *gin.Context) {
	var req service.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "parámetros inválidos: "+err.Error())
		return
	}

	client, err := h.svc.Update(c.Request.Context(), GetActor(c), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err, "no se pudo actualizar el cliente")
		return
	}
	Success(c, client)
}

// ServiceTypes lists the systemwide catalog.
// GET /api/v1/service-types
func (h *ClientHandler) ServiceTypes(c *gin.Context) {
	types, err := h.svc.ServiceTypes(c.Request.Context())
	if err != nil {
		HandleError(c, err, "no se pudieron obtener los tipos de servicio")
		return
	}
	Success(c, types)
}
