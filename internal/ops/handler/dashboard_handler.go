package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/service"
)

// DashboardHandler serves the stats widget.
type DashboardHandler struct {
	svc *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Stats tallies the caller's visible services. Always 200; failures degrade
// to zeroed stats.
// GET /api/v1/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	Success(c, h.svc.Stats(c.Request.Context(), GetActor(c)))
}
