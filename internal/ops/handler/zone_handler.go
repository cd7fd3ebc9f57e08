package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/manifest"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/service"
)

// ZoneHandler serves the zone board, zone services, bulk assignment and the
// zone manifest.
type ZoneHandler struct {
	svc *service.ZoneService
}

func NewZoneHandler(svc *service.ZoneService) *ZoneHandler {
	return &ZoneHandler{svc: svc}
}

// Summary returns the per-zone board. Always 200; query failures degrade to
// an empty list.
// GET /api/v1/zones
func (h *ZoneHandler) Summary(c *gin.Context) {
	Success(c, h.svc.Summary(c.Request.Context()))
}

// Services lists one zone's in-flight services in guide number order.
// GET /api/v1/zones/:zone/services
func (h *ZoneHandler) Services(c *gin.Context) {
	services, err := h.svc.Services(c.Request.Context(), GetActor(c), c.Param("zone"))
	if err != nil {
		HandleError(c, err, "no se pudieron obtener los servicios de la zona")
		return
	}
	Success(c, services)
}

// Assign applies one driver to every pending service of a zone.
// POST /api/v1/zones/:zone/assign
func (h *ZoneHandler) Assign(c *gin.Context) {
	var req struct {
		DriverID string `json:"driver_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "parámetros inválidos: "+err.Error())
		return
	}

	updated, err := h.svc.AssignDriver(c.Request.Context(), GetActor(c), c.Param("zone"), req.DriverID)
	if err != nil {
		HandleError(c, err, "no se pudo asignar la zona")
		return
	}
	Success(c, gin.H{"updated": updated})
}

// Manifest renders the zone's MANIFIESTO DE CARGA as a PDF download.
// GET /api/v1/zones/:zone/manifest
func (h *ZoneHandler) Manifest(c *gin.Context) {
	zone := c.Param("zone")
	services, err := h.svc.Services(c.Request.Context(), GetActor(c), zone)
	if err != nil {
		HandleError(c, err, "no se pudo generar el manifiesto")
		return
	}

	// Attribute the driver in the header only when the zone has exactly one.
	driverName := ""
	for _, svc := range services {
		if svc.Driver == nil {
			driverName = ""
			break
		}
		if driverName != "" && driverName != svc.Driver.FullName {
			driverName = ""
			break
		}
		driverName = svc.Driver.FullName
	}

	data, err := manifest.ZoneManifest(zone, driverName, services)
	if err != nil {
		InternalError(c, "no se pudo generar el manifiesto: "+err.Error())
		return
	}

	filename := fmt.Sprintf("manifiesto-%s.pdf", zone)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "application/pdf", data)
}
