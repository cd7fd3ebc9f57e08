package service

import (
	"context"
	"time"

	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/auth"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/entity"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/repository"
	"go.uber.org/zap"
)

// DashboardStats is the landing page widget data.
type DashboardStats struct {
	TotalServices      int64            `json:"total_services"`
	PendingServices    int64            `json:"pending_services"`
	InProgressServices int64            `json:"in_progress_services"`
	DeliveredServices  int64            `json:"delivered_services"`
	NovedadServices    int64            `json:"novedad_services"`
	CreatedToday       int64            `json:"created_today"`
	ByStatus           map[string]int64 `json:"by_status"`
}

// DashboardService computes the stats widget. Query failures degrade to
// zeroed stats; the page never fails because of this widget.
type DashboardService struct {
	services *repository.ServiceRepository
	logger   *zap.Logger
}

func NewDashboardService(services *repository.ServiceRepository, logger *zap.Logger) *DashboardService {
	return &DashboardService{services: services, logger: logger}
}

// Stats tallies the actor's visible services per status.
func (s *DashboardService) Stats(ctx context.Context, actor auth.Actor) *DashboardStats {
	var clientID, driverID string
	switch actor.Role {
	case auth.RoleCliente:
		clientID = actor.ClientID
	case auth.RoleConductor:
		driverID = actor.UserID
	}

	stats := &DashboardStats{ByStatus: map[string]int64{}}

	counts, err := s.services.CountByStatus(ctx, clientID, driverID)
	if err != nil {
		s.logger.Error("dashboard status counts failed", zap.Error(err))
		return stats
	}
	stats.ByStatus = counts

	for status, n := range counts {
		stats.TotalServices += n
		switch status {
		case entity.StatusSolicitado:
			stats.PendingServices += n
		case entity.StatusAsignado, entity.StatusEnCursoRecogida,
			entity.StatusRecogido, entity.StatusEnCursoEntrega:
			stats.InProgressServices += n
		case entity.StatusEntregado:
			stats.DeliveredServices += n
		case entity.StatusNovedad:
			stats.NovedadServices += n
		}
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	createdToday, err := s.services.CountCreatedSince(ctx, startOfDay, clientID, driverID)
	if err != nil {
		s.logger.Warn("dashboard created-today count failed", zap.Error(err))
	} else {
		stats.CreatedToday = createdToday
	}

	return stats
}
