package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/auth"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/entity"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/repository"
	"github.com/redis/go-redis/v9"
)

const driverRosterCacheKey = "cache:drivers:roster"

// DriverService exposes the conductor roster and per-driver workload.
type DriverService struct {
	profiles *repository.ProfileRepository
	services *repository.ServiceRepository
	rdb      *redis.Client
}

func NewDriverService(profiles *repository.ProfileRepository, services *repository.ServiceRepository, rdb *redis.Client) *DriverService {
	return &DriverService{profiles: profiles, services: services, rdb: rdb}
}

// Roster lists active conductores. The list changes rarely, so it is cached
// briefly in redis.
func (s *DriverService) Roster(ctx context.Context, actor auth.Actor) ([]entity.Profile, error) {
	if !actor.Can(auth.CapManageDrivers) {
		return nil, auth.Denied("no tienes permisos para ver los conductores")
	}

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, driverRosterCacheKey).Result(); err == nil {
			var drivers []entity.Profile
			if err := json.Unmarshal([]byte(cached), &drivers); err == nil {
				return drivers, nil
			}
		}
	}

	drivers, err := s.profiles.FindDrivers(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(drivers); err == nil {
			s.rdb.Set(ctx, driverRosterCacheKey, data, 2*time.Minute)
		}
	}
	return drivers, nil
}

// Services lists one driver's current assignments. An empty or "me" id
// resolves to the caller for conductores; admins must name a driver so an
// empty filter never leaks every service.
func (s *DriverService) Services(ctx context.Context, actor auth.Actor, driverID string, page, pageSize int) ([]entity.Service, int64, error) {
	if driverID == "" || driverID == "me" {
		if actor.Role != auth.RoleConductor {
			return nil, 0, Invalid("conductor no especificado")
		}
		driverID = actor.UserID
	}
	if actor.Role == auth.RoleConductor && driverID != actor.UserID {
		return nil, 0, auth.Denied("no tienes permisos para ver servicios de otros conductores")
	}
	if actor.Role == auth.RoleCliente {
		return nil, 0, auth.Denied("no tienes permisos para ver los conductores")
	}
	return s.services.FindAll(ctx, page, pageSize, map[string]string{"driver_id": driverID})
}
