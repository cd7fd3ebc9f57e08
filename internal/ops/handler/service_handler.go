package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/entity"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/manifest"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/service"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/storage"
)

// ServiceHandler serves the service lifecycle endpoints.
type ServiceHandler struct {
	svc *service.ServiceService
}

func NewServiceHandler(svc *service.ServiceService) *ServiceHandler {
	return &ServiceHandler{svc: svc}
}

// List services visible to the caller.
// GET /api/v1/services?status=xxx&zone_label=xxx&search=xxx&page=1&page_size=20
func (h *ServiceHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"status":     c.Query("status"),
		"zone_label": c.Query("zone_label"),
		"search":     c.Query("search"),
		"client_id":  c.Query("client_id"),
	}

	items, total, err := h.svc.List(c.Request.Context(), GetActor(c), page, pageSize, filters)
	if err != nil {
		HandleError(c, err, "no se pudieron obtener los servicios")
		return
	}
	Success(c, listResponse(items, page, pageSize, total))
}

// Get one service.
// GET /api/v1/services/:id
func (h *ServiceHandler) Get(c *gin.Context) {
	svc, err := h.svc.Get(c.Request.Context(), GetActor(c), c.Param("id"))
	if err != nil {
		HandleError(c, err, "no se pudo obtener el servicio")
		return
	}
	Success(c, svc)
}

// Create registers a single service.
// POST /api/v1/services
func (h *ServiceHandler) Create(c *gin.Context) {
	var req service.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "parámetros inválidos: "+err.Error())
		return
	}

	svc, err := h.svc.Create(c.Request.Context(), GetActor(c), &req)
	if err != nil {
		HandleError(c, err, "no se pudo crear el servicio")
		return
	}
	Created(c, svc)
}

// Update edits addresses and contacts.
// PUT /api/v1/services/:id
func (h *ServiceHandler) Update(c *gin.Context) {
	var req service.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "parámetros inválidos: "+err.Error())
		return
	}

	svc, err := h.svc.Update(c.Request.Context(), GetActor(c), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err, "no se pudo actualizar el servicio")
		return
	}
	Success(c, svc)
}

// UpdateStatus moves a service along its progression.
// PATCH /api/v1/services/:id/status
func (h *ServiceHandler) UpdateStatus(c *gin.Context) {
	var req service.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "parámetros inválidos: "+err.Error())
		return
	}

	svc, err := h.svc.UpdateStatus(c.Request.Context(), GetActor(c), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err, "no se pudo actualizar el estado")
		return
	}
	Success(c, svc)
}

// AssignDriver sets one service's driver.
// POST /api/v1/services/:id/assign
func (h *ServiceHandler) AssignDriver(c *gin.Context) {
	var req struct {
		DriverID string `json:"driver_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "parámetros inválidos: "+err.Error())
		return
	}

	svc, err := h.svc.AssignDriver(c.Request.Context(), GetActor(c), c.Param("id"), req.DriverID)
	if err != nil {
		HandleError(c, err, "no se pudo asignar el conductor")
		return
	}
	Success(c, svc)
}

// UploadEvidence stores a delivery photo (multipart field "file") and marks
// the service entregado.
// POST /api/v1/services/:id/evidence
func (h *ServiceHandler) UploadEvidence(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "archivo no recibido: "+err.Error())
		return
	}
	if fileHeader.Size > storage.MaxEvidenceSize {
		BadRequest(c, "la imagen supera el tamaño máximo de 6MB")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		BadRequest(c, "no se pudo leer el archivo: "+err.Error())
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	svc, err := h.svc.UploadEvidence(c.Request.Context(), GetActor(c), c.Param("id"), file, fileHeader.Size, contentType)
	if err != nil {
		HandleError(c, err, "no se pudo subir la evidencia")
		return
	}
	Success(c, svc)
}

// DeliveryNote renders the NOTA DE ENTREGA PDF.
// GET /api/v1/services/:id/delivery-note
func (h *ServiceHandler) DeliveryNote(c *gin.Context) {
	h.document(c, "nota-entrega", manifest.DeliveryNote)
}

// TransportGuide renders the GUÍA DE TRANSPORTE PDF.
// GET /api/v1/services/:id/transport-guide
func (h *ServiceHandler) TransportGuide(c *gin.Context) {
	h.document(c, "guia-transporte", manifest.TransportGuide)
}

func (h *ServiceHandler) document(c *gin.Context, prefix string, render func(*entity.Service) ([]byte, error)) {
	svc, err := h.svc.Get(c.Request.Context(), GetActor(c), c.Param("id"))
	if err != nil {
		HandleError(c, err, "no se pudo obtener el servicio")
		return
	}

	data, err := render(svc)
	if err != nil {
		InternalError(c, "no se pudo generar el documento: "+err.Error())
		return
	}

	filename := fmt.Sprintf("%s-%d.pdf", prefix, svc.ServiceNumber)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "application/pdf", data)
}
