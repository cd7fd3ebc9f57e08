// Package testutil provides an isolated Postgres schema, a test router and
// seed helpers for handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/middleware"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/auth"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/entity"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	TestSchema = "test_dispatch"
	JWTSecret  = "dispatch-test-jwt-secret"
)

// projectRoot returns the project root directory by looking for go.mod.
func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func loadEnv() {
	root := projectRoot()
	if root != "" {
		godotenv.Load(filepath.Join(root, ".env"))
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// SetupTestDB connects to Postgres and gives the test its own schema,
// dropped on cleanup. Tests skip when no database is reachable.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	loadEnv()

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "dispatch")
	password := getEnv("DB_PASSWORD", "dispatch123")
	dbname := getEnv("DB_NAME", "dispatch")

	baseDSN := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	schemaName := fmt.Sprintf("%s_%d", TestSchema, time.Now().UnixNano()%1000000)

	setupDB, err := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Skipf("database not reachable, skipping: %v", err)
	}
	setupDB.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schemaName))
	sqlSetup, _ := setupDB.DB()
	sqlSetup.Close()

	// search_path in the DSN so every pooled connection lands in the schema.
	testDSN := fmt.Sprintf("%s search_path=%s", baseDSN, schemaName)
	db, err := gorm.Open(postgres.Open(testDSN), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&entity.Profile{},
		&entity.Client{},
		&entity.ServiceType{},
		&entity.ClientServiceType{},
		&entity.Service{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}
	db.Exec("CREATE SEQUENCE IF NOT EXISTS service_number_seq START 1000")

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		cleanDB, cleanErr := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if cleanErr == nil {
			cleanDB.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schemaName))
			sqlClean, _ := cleanDB.DB()
			if sqlClean != nil {
				sqlClean.Close()
			}
		}
	})

	return db
}

// SetupRouter creates a gin test router.
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// AuthGroup creates an API group guarded by the JWT middleware.
func AuthGroup(r *gin.Engine, path string) *gin.RouterGroup {
	return r.Group(path, middleware.JWTAuth(JWTSecret))
}

// GenerateTestToken mints a valid access token for the given identity.
func GenerateTestToken(userID, name string, role auth.Role, clientID string) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       userID,
		"uid":       userID,
		"name":      name,
		"email":     userID + "@test.com",
		"role":      string(role),
		"client_id": clientID,
		"iss":       "dispatch",
		"iat":       now.Unix(),
		"exp":       now.Add(24 * time.Hour).Unix(),
		"jti":       fmt.Sprintf("test-jti-%d", now.UnixNano()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(JWTSecret))
	return tokenString
}

// OperatorToken returns a token for an operador test user.
func OperatorToken() string {
	return GenerateTestToken("test-operator-001", "Test Operator", auth.RoleOperador, "")
}

// DoRequest executes an HTTP request against the test router.
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response envelope.
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedProfile creates a user profile.
func SeedProfile(t *testing.T, db *gorm.DB, id, name string, role auth.Role, clientID *string) *entity.Profile {
	t.Helper()
	profile := &entity.Profile{
		ID:       id,
		Email:    id + "@test.com",
		FullName: name,
		Role:     string(role),
		ClientID: clientID,
		Active:   true,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("Failed to seed profile: %v", err)
	}
	return profile
}

// SeedClient creates a tenant.
func SeedClient(t *testing.T, db *gorm.DB, id, name string) *entity.Client {
	t.Helper()
	client := &entity.Client{
		ID:           id,
		BusinessName: name,
		NIT:          "900" + id,
		Active:       true,
	}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("Failed to seed client: %v", err)
	}
	return client
}

// SeedZoningType creates the zoning service type, optionally enabled for a
// client.
func SeedZoningType(t *testing.T, db *gorm.DB, enabledFor ...string) *entity.ServiceType {
	t.Helper()
	st := &entity.ServiceType{
		ID:             uuid.New().String()[:32],
		Name:           "Servicio por Zonas",
		RequiresZoning: true,
		Active:         true,
	}
	if err := db.Create(st).Error; err != nil {
		t.Fatalf("Failed to seed zoning type: %v", err)
	}
	for _, clientID := range enabledFor {
		join := &entity.ClientServiceType{
			ID:            uuid.New().String()[:32],
			ClientID:      clientID,
			ServiceTypeID: st.ID,
			Enabled:       true,
		}
		if err := db.Create(join).Error; err != nil {
			t.Fatalf("Failed to seed client service type: %v", err)
		}
	}
	return st
}

// SeedService creates a service row.
func SeedService(t *testing.T, db *gorm.DB, clientID, zone, status string, driverID *string) *entity.Service {
	t.Helper()
	var number int64
	db.Raw("SELECT nextval('service_number_seq')").Scan(&number)
	svc := &entity.Service{
		ID:                  uuid.New().String()[:32],
		ServiceNumber:       number,
		ClientID:            clientID,
		Status:              status,
		DeliveryAddress:     "Cl 1 # 2-3",
		DeliveryContactName: "Destinatario Test",
		ZoneLabel:           &zone,
		DriverID:            driverID,
	}
	if err := db.Create(svc).Error; err != nil {
		t.Fatalf("Failed to seed service: %v", err)
	}
	return svc
}
