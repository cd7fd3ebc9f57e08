package service

import (
	"context"
	"sort"
	"time"

	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/auth"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/entity"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/repository"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/zoning"
	"go.uber.org/zap"
)

// ZoneService derives the per-zone board and runs zone bulk assignment.
type ZoneService struct {
	services *repository.ServiceRepository
	profiles *repository.ProfileRepository
	logger   *zap.Logger
}

func NewZoneService(services *repository.ServiceRepository, profiles *repository.ProfileRepository, logger *zap.Logger) *ZoneService {
	return &ZoneService{services: services, profiles: profiles, logger: logger}
}

// Summary computes the zone board from current service rows. Query errors
// degrade to an empty board; the dashboard stays up even if this widget is
// empty.
func (s *ZoneService) Summary(ctx context.Context) []entity.ZoneSummary {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	rows, err := s.services.FindForZoneView(ctx, startOfDay)
	if err != nil {
		s.logger.Error("zone summary query failed", zap.Error(err))
		return []entity.ZoneSummary{}
	}

	driverIDs := make([]string, 0)
	seen := make(map[string]bool)
	for _, svc := range rows {
		if svc.DriverID != nil && !seen[*svc.DriverID] {
			seen[*svc.DriverID] = true
			driverIDs = append(driverIDs, *svc.DriverID)
		}
	}

	names, err := s.profiles.FindNamesByIDs(ctx, driverIDs)
	if err != nil {
		s.logger.Warn("driver name lookup failed", zap.Error(err))
		names = map[string]string{}
	}

	return AggregateZones(rows, names)
}

// AggregateZones groups services by zone label and derives each zone's
// counts, status and single-driver attribution. A driver is attributed only
// when every service in the zone carries the same driver id; a single
// unassigned row leaves the zone unattributed.
func AggregateZones(services []entity.Service, driverNames map[string]string) []entity.ZoneSummary {
	type group struct {
		total      int
		pending    int
		unassigned int
		drivers    map[string]bool
	}
	groups := make(map[string]*group)

	for _, svc := range services {
		zone := zoning.UnassignedZone
		if svc.ZoneLabel != nil && *svc.ZoneLabel != "" {
			zone = *svc.ZoneLabel
		}
		g := groups[zone]
		if g == nil {
			g = &group{drivers: make(map[string]bool)}
			groups[zone] = g
		}
		g.total++
		if svc.Status == entity.StatusSolicitado {
			g.pending++
		}
		if svc.DriverID != nil {
			g.drivers[*svc.DriverID] = true
		} else {
			g.unassigned++
		}
	}

	summaries := make([]entity.ZoneSummary, 0, len(groups))
	for zone, g := range groups {
		summary := entity.ZoneSummary{
			ZoneLabel:     zone,
			TotalCount:    g.total,
			PendingCount:  g.pending,
			AssignedCount: g.total - g.pending,
		}
		switch {
		case g.pending == 0 && g.total > 0:
			summary.Status = entity.ZoneStatusAssigned
		case g.pending > 0 && g.total > g.pending:
			summary.Status = entity.ZoneStatusPartial
		default:
			summary.Status = entity.ZoneStatusPending
		}
		if len(g.drivers) == 1 && g.unassigned == 0 {
			for id := range g.drivers {
				driverID := id
				summary.DriverID = &driverID
				if name, ok := driverNames[id]; ok {
					driverName := name
					summary.DriverName = &driverName
				}
			}
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ZoneLabel < summaries[j].ZoneLabel
	})
	return summaries
}

// Services lists a zone's in-flight services in guide number order.
func (s *ZoneService) Services(ctx context.Context, actor auth.Actor, zone string) ([]entity.Service, error) {
	if !actor.Can(auth.CapViewZones) {
		return nil, auth.Denied("no tienes permisos para ver las zonas")
	}
	return s.services.FindByZone(ctx, zone)
}

// AssignDriver applies one driver to every pending service of a zone. Zero
// updated rows is a valid outcome, and re-invocation is a no-op.
func (s *ZoneService) AssignDriver(ctx context.Context, actor auth.Actor, zone, driverID string) (int64, error) {
	if !actor.Can(auth.CapAssignZone) {
		return 0, auth.Denied("no tienes permisos para asignar zonas")
	}

	driver, err := s.profiles.FindByID(ctx, driverID)
	if err != nil {
		return 0, Invalid("conductor no encontrado")
	}
	if auth.Role(driver.Role) != auth.RoleConductor || !driver.Active {
		return 0, Invalid("el usuario seleccionado no es un conductor activo")
	}

	updated, err := s.services.AssignZone(ctx, zone, driverID)
	if err != nil {
		return 0, err
	}
	s.logger.Info("zone assigned",
		zap.String("zone", zone),
		zap.String("driver_id", driverID),
		zap.Int64("updated", updated))
	return updated, nil
}
