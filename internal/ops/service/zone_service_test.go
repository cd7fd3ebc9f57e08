package service

import (
	"testing"

	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/entity"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/zoning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func zoneSvc(zone, status string, driverID *string) entity.Service {
	return entity.Service{ZoneLabel: &zone, Status: status, DriverID: driverID}
}

func TestAggregateZones(t *testing.T) {
	driverX := strptr("driver-x")
	driverY := strptr("driver-y")

	services := []entity.Service{
		// Zone A: three pending, two assigned to X.
		zoneSvc("ZONA 1 - NORTE", entity.StatusSolicitado, nil),
		zoneSvc("ZONA 1 - NORTE", entity.StatusSolicitado, nil),
		zoneSvc("ZONA 1 - NORTE", entity.StatusSolicitado, nil),
		zoneSvc("ZONA 1 - NORTE", entity.StatusAsignado, driverX),
		zoneSvc("ZONA 1 - NORTE", entity.StatusAsignado, driverX),
		// Zone B: everything with Y.
		zoneSvc("ZONA 5 - SUR", entity.StatusEnCursoEntrega, driverY),
	}
	names := map[string]string{"driver-x": "Carlos X", "driver-y": "Yolanda Y"}

	summaries := AggregateZones(services, names)
	require.Len(t, summaries, 2)

	zoneA := summaries[0]
	assert.Equal(t, "ZONA 1 - NORTE", zoneA.ZoneLabel)
	assert.Equal(t, 5, zoneA.TotalCount)
	assert.Equal(t, 3, zoneA.PendingCount)
	assert.Equal(t, 2, zoneA.AssignedCount)
	assert.Equal(t, entity.ZoneStatusPartial, zoneA.Status)
	// Pending rows have no driver, so the zone gets no single attribution.
	assert.Nil(t, zoneA.DriverID)
	assert.Nil(t, zoneA.DriverName)

	zoneB := summaries[1]
	assert.Equal(t, "ZONA 5 - SUR", zoneB.ZoneLabel)
	assert.Equal(t, entity.ZoneStatusAssigned, zoneB.Status)
	require.NotNil(t, zoneB.DriverID)
	assert.Equal(t, "driver-y", *zoneB.DriverID)
	require.NotNil(t, zoneB.DriverName)
	assert.Equal(t, "Yolanda Y", *zoneB.DriverName)
}

func TestAggregateZonesMultipleDriversUnattributed(t *testing.T) {
	summaries := AggregateZones([]entity.Service{
		zoneSvc("ZONA 2 - SUR", entity.StatusAsignado, strptr("d1")),
		zoneSvc("ZONA 2 - SUR", entity.StatusAsignado, strptr("d2")),
	}, nil)
	require.Len(t, summaries, 1)
	assert.Equal(t, entity.ZoneStatusAssigned, summaries[0].Status)
	assert.Nil(t, summaries[0].DriverID)
}

func TestAggregateZonesAllPending(t *testing.T) {
	summaries := AggregateZones([]entity.Service{
		zoneSvc("ZONA 3", entity.StatusSolicitado, nil),
	}, nil)
	require.Len(t, summaries, 1)
	assert.Equal(t, entity.ZoneStatusPending, summaries[0].Status)
}

// Services created today stay in the view even when already delivered; they
// count as assigned, which can flip a zone to assigned on its own.
func TestAggregateZonesSameDayDeliveredCountsAsAssigned(t *testing.T) {
	summaries := AggregateZones([]entity.Service{
		zoneSvc("ZONA 4", entity.StatusEntregado, strptr("d1")),
	}, nil)
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].AssignedCount)
	assert.Equal(t, entity.ZoneStatusAssigned, summaries[0].Status)
}

func TestAggregateZonesEmptyLabelFallsBack(t *testing.T) {
	empty := ""
	summaries := AggregateZones([]entity.Service{
		{ZoneLabel: &empty, Status: entity.StatusSolicitado},
	}, nil)
	require.Len(t, summaries, 1)
	assert.Equal(t, zoning.UnassignedZone, summaries[0].ZoneLabel)
}

func TestAggregateZonesSortedByLabel(t *testing.T) {
	summaries := AggregateZones([]entity.Service{
		zoneSvc("ZONA 9", entity.StatusSolicitado, nil),
		zoneSvc("ZONA 1", entity.StatusSolicitado, nil),
		zoneSvc("ZONA 5", entity.StatusSolicitado, nil),
	}, nil)
	require.Len(t, summaries, 3)
	assert.Equal(t, "ZONA 1", summaries[0].ZoneLabel)
	assert.Equal(t, "ZONA 5", summaries[1].ZoneLabel)
	assert.Equal(t, "ZONA 9", summaries[2].ZoneLabel)
}
