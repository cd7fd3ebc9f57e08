package manifest

import (
	"testing"
	"time"

	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleService() *entity.Service {
	driver := "d1"
	return &entity.Service{
		ID:                  "svc1",
		ServiceNumber:       1042,
		Status:              entity.StatusAsignado,
		PickupAddress:       "Cra 7 # 12-34",
		DeliveryAddress:     "Cl 80 # 10-20",
		DeliveryContactName: "María Pérez",
		DeliveryPhone:       "3001234567",
		Observations:        "dejar en portería",
		DriverID:            &driver,
		CreatedAt:           time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		Client: &entity.Client{
			BusinessName: "Comercial Andina SAS",
			NIT:          "900123456-7",
			Address:      "Av 68 # 1-2",
		},
		Driver: &entity.Profile{FullName: "Carlos Rojas", Phone: "3110001122"},
	}
}

func TestFormatServiceNumber(t *testing.T) {
	assert.Equal(t, "#1042", FormatServiceNumber(1042))
	assert.Equal(t, "—", FormatServiceNumber(0))
}

func TestZoneManifest(t *testing.T) {
	services := []entity.Service{*sampleService(), *sampleService()}
	data, err := ZoneManifest("ZONA 1 - NORTE", "Carlos Rojas", services)
	require.NoError(t, err)
	assert.True(t, len(data) > 0)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestZoneManifestEmptyZone(t *testing.T) {
	data, err := ZoneManifest("ZONA 2 - SUR", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestDeliveryNote(t *testing.T) {
	data, err := DeliveryNote(sampleService())
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestDeliveryNoteWithoutClient(t *testing.T) {
	svc := sampleService()
	svc.Client = nil
	svc.Observations = ""
	data, err := DeliveryNote(svc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestTransportGuide(t *testing.T) {
	data, err := TransportGuide(sampleService())
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestTransportGuideUnassignedDriver(t *testing.T) {
	svc := sampleService()
	svc.Driver = nil
	svc.DriverID = nil
	data, err := TransportGuide(svc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}
