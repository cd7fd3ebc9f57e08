package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/auth"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/entity"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildImportWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, cell := range row {
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, name, cell))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func doImportRequest(t *testing.T, router *gin.Engine, path string, file []byte, token string) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "servicios.xlsx")
	require.NoError(t, err)
	_, err = part.Write(file)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestImportRoundTrip(t *testing.T) {
	db, router := setupDispatchTest(t)
	token := testutil.OperatorToken()

	client := testutil.SeedClient(t, db, "cli-imp-001", "Importadora Uno")
	testutil.SeedZoningType(t, db, client.ID)

	file := buildImportWorkbook(t, [][]string{
		{"Destinatario", "Dirección", "Teléfono", "Localidad", "Observaciones"},
		{"Ana Pérez", "Cl 45 # 13-20", "3001234567", "Chapinero", "Portería"},
		{"Luis Gómez", "Cr 91 # 140-15", "3019876543", "Suba", ""},
		{"Marta Ruiz", "Cl 12 # 4-56", "", "La Candelaria", "Llamar antes"},
	})

	w := doImportRequest(t, router, "/api/v1/imports/services?client_id="+client.ID, file, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, true, data["success"])
	assert.Equal(t, float64(3), data["count"])
	assert.Equal(t, float64(3), data["total"])

	var services []entity.Service
	require.NoError(t, db.Order("service_number").Find(&services).Error)
	require.Len(t, services, 3)

	for _, svc := range services {
		assert.Equal(t, client.ID, svc.ClientID)
		assert.Equal(t, entity.StatusSolicitado, svc.Status)
		require.NotNil(t, svc.ZoneLabel)
	}
	assert.Equal(t, "ZONA 3 - CHAPINERO", *services[0].ZoneLabel)
	assert.Equal(t, "ZONA 1 - SUBA", *services[1].ZoneLabel)
	assert.Equal(t, "ZONA SIN ASIGNAR", *services[2].ZoneLabel)

	// Numbers are consecutive within the import.
	assert.Equal(t, services[0].ServiceNumber+1, services[1].ServiceNumber)
	assert.Equal(t, services[1].ServiceNumber+1, services[2].ServiceNumber)
}

func TestImportMissingColumnsRejected(t *testing.T) {
	db, router := setupDispatchTest(t)
	token := testutil.OperatorToken()

	client := testutil.SeedClient(t, db, "cli-imp-002", "Importadora Dos")
	testutil.SeedZoningType(t, db, client.ID)

	file := buildImportWorkbook(t, [][]string{
		{"Teléfono", "Localidad"},
		{"3001234567", "Suba"},
	})

	w := doImportRequest(t, router, "/api/v1/imports/services?client_id="+client.ID, file, token)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	resp := testutil.ParseResponse(w)
	assert.Contains(t, resp["message"], "faltan columnas requeridas")

	var count int64
	db.Model(&entity.Service{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestImportClienteWithoutZoningDenied(t *testing.T) {
	db, router := setupDispatchTest(t)

	client := testutil.SeedClient(t, db, "cli-imp-003", "Importadora Tres")
	testutil.SeedZoningType(t, db) // exists, but not enabled for the client
	token := testutil.GenerateTestToken("usr-imp-003", "Cliente Tres", auth.RoleCliente, client.ID)

	// The access probe answers false instead of an error.
	w := testutil.DoRequest(router, http.MethodGet, "/api/v1/imports/zone-access", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := testutil.ParseResponse(w)
	assert.Equal(t, false, resp["data"].(map[string]interface{})["enabled"])

	file := buildImportWorkbook(t, [][]string{
		{"Destinatario", "Dirección"},
		{"Ana Pérez", "Cl 45 # 13-20"},
	})
	w = doImportRequest(t, router, "/api/v1/imports/services", file, token)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	resp = testutil.ParseResponse(w)
	assert.Contains(t, resp["message"], "no tiene habilitado")
}

func TestImportNonExcelRejected(t *testing.T) {
	db, router := setupDispatchTest(t)
	token := testutil.OperatorToken()

	client := testutil.SeedClient(t, db, "cli-imp-005", "Importadora Cinco")
	testutil.SeedZoningType(t, db, client.ID)

	w := doImportRequest(t, router, "/api/v1/imports/services?client_id="+client.ID,
		[]byte("no soy un xlsx"), token)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	resp := testutil.ParseResponse(w)
	assert.Contains(t, resp["message"], "Excel válido")
}

func TestImportAdminFallsBackToFirstTenant(t *testing.T) {
	db, router := setupDispatchTest(t)
	token := testutil.OperatorToken()

	// Alphabetically first tenant receives untargeted admin imports.
	testutil.SeedClient(t, db, "cli-imp-006b", "Zeta Cargo")
	first := testutil.SeedClient(t, db, "cli-imp-006a", "Alfa Cargo")
	testutil.SeedZoningType(t, db, first.ID)

	file := buildImportWorkbook(t, [][]string{
		{"Destinatario", "Dirección"},
		{"Ana Pérez", "Cl 45 # 13-20"},
	})
	w := doImportRequest(t, router, "/api/v1/imports/services", file, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var svc entity.Service
	require.NoError(t, db.First(&svc).Error)
	assert.Equal(t, first.ID, svc.ClientID)
}

func TestImportAdminWithoutTenantsRejected(t *testing.T) {
	db, router := setupDispatchTest(t)
	token := testutil.OperatorToken()
	testutil.SeedZoningType(t, db)

	file := buildImportWorkbook(t, [][]string{
		{"Destinatario", "Dirección"},
		{"Ana Pérez", "Cl 45 # 13-20"},
	})
	w := doImportRequest(t, router, "/api/v1/imports/services", file, token)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	resp := testutil.ParseResponse(w)
	assert.Contains(t, resp["message"], "no se pudo determinar el cliente")
}

func TestImportConductorForbidden(t *testing.T) {
	db, router := setupDispatchTest(t)

	client := testutil.SeedClient(t, db, "cli-imp-004", "Importadora Cuatro")
	testutil.SeedZoningType(t, db, client.ID)
	token := testutil.GenerateTestToken("drv-imp-004", "Conductor Cuatro", auth.RoleConductor, "")

	file := buildImportWorkbook(t, [][]string{
		{"Destinatario", "Dirección"},
		{"Ana Pérez", "Cl 45 # 13-20"},
	})
	w := doImportRequest(t, router, "/api/v1/imports/services?client_id="+client.ID, file, token)
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
}
