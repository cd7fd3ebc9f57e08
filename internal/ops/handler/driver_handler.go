package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/service"
)

// DriverHandler serves the conductor roster and per-driver workload.
type DriverHandler struct {
	svc *service.DriverService
}

func NewDriverHandler(svc *service.DriverService) *DriverHandler {
	return &DriverHandler{svc: svc}
}

// Roster lists active conductores.
// GET /api/v1/drivers
func (h *DriverHandler) Roster(c *gin.Context) {
	drivers, err := h.svc.Roster(c.Request.Context(), GetActor(c))
	if err != nil {
		HandleError(c, err, "no se pudieron obtener los conductores")
		return
	}
	Success(c, drivers)
}

// Services lists one driver's assignments.
// GET /api/v1/drivers/:id/services?page=1&page_size=20
func (h *DriverHandler) Services(c *gin.Context) {
	page, pageSize := GetPagination(c)
	items, total, err := h.svc.Services(c.Request.Context(), GetActor(c), c.Param("id"), page, pageSize)
	if err != nil {
		HandleError(c, err, "no se pudieron obtener los servicios del conductor")
		return
	}
	Success(c, listResponse(items, page, pageSize, total))
}
