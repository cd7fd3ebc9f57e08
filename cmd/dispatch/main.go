package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/config"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/middleware"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/auth"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/entity"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/handler"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/repository"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/service"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting dispatch service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&entity.Profile{},
		&entity.Client{},
		&entity.ServiceType{},
		&entity.ClientServiceType{},
		&entity.Service{},
	); err != nil {
		zapLogger.Warn("AutoMigrate warning", zap.Error(err))
	}

	// Sequence backing consecutive service numbers plus lookup indexes the
	// zone board and the driver app hit constantly.
	migrationSQL := []string{
		"CREATE SEQUENCE IF NOT EXISTS service_number_seq START 1000",
		"CREATE INDEX IF NOT EXISTS idx_services_zone_label ON services(zone_label)",
		"CREATE INDEX IF NOT EXISTS idx_services_status ON services(status)",
		"CREATE INDEX IF NOT EXISTS idx_services_client_id ON services(client_id)",
		"CREATE INDEX IF NOT EXISTS idx_services_driver_id ON services(driver_id)",
		"CREATE INDEX IF NOT EXISTS idx_services_created_at ON services(created_at)",
	}
	for _, sql := range migrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			zapLogger.Warn("Migration SQL warning (may already exist)", zap.String("sql", sql), zap.Error(err))
		}
	}
	zapLogger.Info("Database migration completed")

	seedZoningServiceType(db, zapLogger)
	seedAdminProfile(db, zapLogger)

	rdb := initRedis(cfg.Redis)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		zapLogger.Warn("Redis unavailable, caching disabled", zap.Error(err))
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, cfg, zapLogger)
	handlers := handler.NewHandlers(services)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

// seedZoningServiceType makes sure the zone import pipeline has a service
// type to hang services from. Idempotent across restarts.
func seedZoningServiceType(db *gorm.DB, zapLogger *zap.Logger) {
	var count int64
	if err := db.Model(&entity.ServiceType{}).Where("requires_zoning = ?", true).Count(&count).Error; err != nil {
		zapLogger.Warn("Zoning service type check failed", zap.Error(err))
		return
	}
	if count > 0 {
		return
	}
	st := &entity.ServiceType{
		ID:             uuid.New().String()[:32],
		Name:           "Servicio por Zonas",
		Description:    "Distribución masiva con clasificación por zonas de Bogotá",
		RequiresZoning: true,
		Active:         true,
	}
	if err := db.Create(st).Error; err != nil {
		zapLogger.Warn("Zoning service type seed failed", zap.Error(err))
		return
	}
	zapLogger.Info("Seeded zoning service type", zap.String("id", st.ID))
}

// seedAdminProfile bootstraps a super admin on an empty database so the
// platform is reachable after first deploy. Credentials come from env and
// the seed is skipped when they are absent.
func seedAdminProfile(db *gorm.DB, zapLogger *zap.Logger) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var count int64
	if err := db.Model(&entity.Profile{}).Where("role = ?", auth.RoleSuperAdmin).Count(&count).Error; err != nil {
		zapLogger.Warn("Admin profile check failed", zap.Error(err))
		return
	}
	if count > 0 {
		return
	}

	hash, err := service.HashPassword(password)
	if err != nil {
		zapLogger.Warn("Admin password hash failed", zap.Error(err))
		return
	}
	admin := &entity.Profile{
		ID:           uuid.New().String()[:32],
		Email:        email,
		FullName:     "Administrador",
		Role:         string(auth.RoleSuperAdmin),
		Active:       true,
		PasswordHash: hash,
	}
	if err := db.Create(admin).Error; err != nil {
		zapLogger.Warn("Admin profile seed failed", zap.Error(err))
		return
	}
	zapLogger.Info("Seeded super admin profile", zap.String("email", email))
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	v1 := r.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", h.Auth.Login)
			authGroup.POST("/refresh", h.Auth.Refresh)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
		{
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/logout", h.Auth.Logout)

			imports := authorized.Group("/imports")
			{
				imports.GET("/zone-access", h.Import.ZoneAccess)
				imports.POST("/services", h.Import.Import)
			}

			zones := authorized.Group("/zones")
			{
				zones.GET("/summary", h.Zone.Summary)
				zones.GET("/:zone/services", h.Zone.Services)
				zones.POST("/:zone/assign", h.Zone.Assign)
				zones.GET("/:zone/manifest", h.Zone.Manifest)
			}

			servicesGroup := authorized.Group("/services")
			{
				servicesGroup.GET("", h.Service.List)
				servicesGroup.POST("", h.Service.Create)
				servicesGroup.GET("/:id", h.Service.Get)
				servicesGroup.PUT("/:id", h.Service.Update)
				servicesGroup.PATCH("/:id/status", h.Service.UpdateStatus)
				servicesGroup.POST("/:id/assign", h.Service.AssignDriver)
				servicesGroup.POST("/:id/evidence", h.Service.UploadEvidence)
				servicesGroup.GET("/:id/delivery-note", h.Service.DeliveryNote)
				servicesGroup.GET("/:id/transport-guide", h.Service.TransportGuide)
			}

			clients := authorized.Group("/clients")
			clients.Use(middleware.RequireCapability(auth.CapManageClients))
			{
				clients.GET("", h.Client.List)
				clients.POST("", h.Client.Create)
				clients.GET("/:id", h.Client.Get)
				clients.PUT("/:id", h.Client.Update)
			}

			authorized.GET("/service-types", h.Client.ServiceTypes)

			drivers := authorized.Group("/drivers")
			{
				drivers.GET("", middleware.RequireCapability(auth.CapManageDrivers), h.Driver.Roster)
				drivers.GET("/:id/services", h.Driver.Services)
			}

			authorized.GET("/dashboard/stats", h.Dashboard.Stats)
		}
	}
}
