package service

import (
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/config"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/repository"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/storage"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Services groups every application service.
type Services struct {
	Auth      *AuthService
	Import    *ImportService
	Zone      *ZoneService
	Service   *ServiceService
	Client    *ClientService
	Driver    *DriverService
	Dashboard *DashboardService
}

// NewServices wires repositories, redis, object storage and config into the
// service set.
func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config, logger *zap.Logger) *Services {
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		var err error
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			logger.Warn("MinIO unavailable, evidence uploads disabled", zap.Error(err))
			minioClient = nil
		}
	}
	evidence := storage.NewEvidenceStore(minioClient, cfg.MinIO.Bucket, cfg.MinIO.PublicURL)

	return &Services{
		Auth:      NewAuthService(repos.Profile, rdb, cfg),
		Import:    NewImportService(repos, rdb, logger),
		Zone:      NewZoneService(repos.Service, repos.Profile, logger),
		Service:   NewServiceService(repos, evidence),
		Client:    NewClientService(repos.Client, repos.ServiceType),
		Driver:    NewDriverService(repos.Profile, repos.Service, rdb),
		Dashboard: NewDashboardService(repos.Service, logger),
	}
}
