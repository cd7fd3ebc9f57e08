package handler

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/config"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/middleware"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/auth"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/repository"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/service"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// setupDispatchTest wires the full stack against a throwaway schema, with
// redis and minio absent. Shared by the handler tests in this package.
func setupDispatchTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	cfg := &config.Config{}
	cfg.JWT.Secret = testutil.JWTSecret
	cfg.JWT.Issuer = "dispatch"
	cfg.JWT.AccessTokenExpire = 2 * time.Hour
	cfg.JWT.RefreshTokenExpire = 7 * 24 * time.Hour

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, nil, cfg, zap.NewNop())
	handlers := NewHandlers(services)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")

	api.GET("/auth/me", handlers.Auth.Me)

	api.GET("/imports/zone-access", handlers.Import.ZoneAccess)
	api.POST("/imports/services", handlers.Import.Import)

	api.GET("/zones/summary", handlers.Zone.Summary)
	api.GET("/zones/:zone/services", handlers.Zone.Services)
	api.POST("/zones/:zone/assign", handlers.Zone.Assign)
	api.GET("/zones/:zone/manifest", handlers.Zone.Manifest)

	api.GET("/services", handlers.Service.List)
	api.POST("/services", handlers.Service.Create)
	api.GET("/services/:id", handlers.Service.Get)
	api.PUT("/services/:id", handlers.Service.Update)
	api.PATCH("/services/:id/status", handlers.Service.UpdateStatus)
	api.POST("/services/:id/assign", handlers.Service.AssignDriver)
	api.GET("/services/:id/delivery-note", handlers.Service.DeliveryNote)

	clients := api.Group("/clients", middleware.RequireCapability(auth.CapManageClients))
	clients.GET("", handlers.Client.List)
	clients.POST("", handlers.Client.Create)

	api.GET("/drivers", middleware.RequireCapability(auth.CapManageDrivers), handlers.Driver.Roster)
	api.GET("/drivers/:id/services", handlers.Driver.Services)

	api.GET("/dashboard/stats", handlers.Dashboard.Stats)

	return db, router
}

func TestZoneSummaryAndBulkAssign(t *testing.T) {
	db, router := setupDispatchTest(t)
	token := testutil.OperatorToken()

	client := testutil.SeedClient(t, db, "cli-zone-001", "Acme Logística")
	driver := testutil.SeedProfile(t, db, "drv-zone-001", "Carlos Conductor", auth.RoleConductor, nil)

	zone := "ZONA 3 - CHAPINERO"
	for i := 0; i < 3; i++ {
		testutil.SeedService(t, db, client.ID, zone, "solicitado", nil)
	}

	w := testutil.DoRequest(router, http.MethodGet, "/api/v1/zones/summary", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := testutil.ParseResponse(w)
	items := resp["data"].([]interface{})
	require.Len(t, items, 1)

	summary := items[0].(map[string]interface{})
	assert.Equal(t, zone, summary["zone_label"])
	assert.Equal(t, float64(3), summary["total_count"])
	assert.Equal(t, float64(3), summary["pending_count"])
	assert.Equal(t, "pending", summary["status"])

	// Bulk assign moves every pending service to the driver.
	body := map[string]interface{}{"driver_id": driver.ID}
	w = testutil.DoRequest(router, http.MethodPost, "/api/v1/zones/"+url.PathEscape(zone)+"/assign", body, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp = testutil.ParseResponse(w)
	assert.Equal(t, float64(3), resp["data"].(map[string]interface{})["updated"])

	// A second assign finds nothing pending.
	w = testutil.DoRequest(router, http.MethodPost, "/api/v1/zones/"+url.PathEscape(zone)+"/assign", body, token)
	require.Equal(t, http.StatusOK, w.Code)
	resp = testutil.ParseResponse(w)
	assert.Equal(t, float64(0), resp["data"].(map[string]interface{})["updated"])

	// The board now shows the zone fully assigned with the driver attributed.
	w = testutil.DoRequest(router, http.MethodGet, "/api/v1/zones/summary", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	resp = testutil.ParseResponse(w)
	items = resp["data"].([]interface{})
	require.Len(t, items, 1)
	summary = items[0].(map[string]interface{})
	assert.Equal(t, "assigned", summary["status"])
	assert.Equal(t, driver.ID, summary["driver_id"])
}

func TestZoneAssignRejectsNonDriver(t *testing.T) {
	db, router := setupDispatchTest(t)
	token := testutil.OperatorToken()

	client := testutil.SeedClient(t, db, "cli-zone-002", "Beta Cargo")
	operator := testutil.SeedProfile(t, db, "op-zone-002", "Olga Operadora", auth.RoleOperador, nil)
	testutil.SeedService(t, db, client.ID, "ZONA 1 - SUBA", "solicitado", nil)

	body := map[string]interface{}{"driver_id": operator.ID}
	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/zones/"+url.PathEscape("ZONA 1 - SUBA")+"/assign", body, token)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	resp := testutil.ParseResponse(w)
	assert.Contains(t, resp["message"], "conductor")
}

func TestZoneAssignDeniedForCliente(t *testing.T) {
	db, router := setupDispatchTest(t)

	client := testutil.SeedClient(t, db, "cli-zone-003", "Gamma Express")
	driver := testutil.SeedProfile(t, db, "drv-zone-003", "Diana Conductora", auth.RoleConductor, nil)
	testutil.SeedService(t, db, client.ID, "ZONA 5 - BOSA", "solicitado", nil)

	token := testutil.GenerateTestToken("usr-cliente-003", "Cliente Tres", auth.RoleCliente, client.ID)
	body := map[string]interface{}{"driver_id": driver.ID}
	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/zones/"+url.PathEscape("ZONA 5 - BOSA")+"/assign", body, token)
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
}

func TestZoneManifestDownload(t *testing.T) {
	db, router := setupDispatchTest(t)
	token := testutil.OperatorToken()

	client := testutil.SeedClient(t, db, "cli-zone-004", "Delta Envíos")
	driver := testutil.SeedProfile(t, db, "drv-zone-004", "Mario Mensajero", auth.RoleConductor, nil)
	testutil.SeedService(t, db, client.ID, "ZONA 2 - USAQUÉN", "asignado", &driver.ID)
	testutil.SeedService(t, db, client.ID, "ZONA 2 - USAQUÉN", "asignado", &driver.ID)

	w := testutil.DoRequest(router, http.MethodGet, "/api/v1/zones/"+url.PathEscape("ZONA 2 - USAQUÉN")+"/manifest", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "manifiesto")
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"), "body should be a PDF document")
}

func TestZoneRoutesRequireAuth(t *testing.T) {
	_, router := setupDispatchTest(t)

	w := testutil.DoRequest(router, http.MethodGet, "/api/v1/zones/summary", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
