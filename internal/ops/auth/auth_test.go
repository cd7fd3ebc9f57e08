package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleSuperAdmin, RoleOperador, RoleCliente, RoleConductor} {
		assert.True(t, r.Valid(), string(r))
	}
	assert.False(t, Role("gerente").Valid())
	assert.False(t, Role("").Valid())
}

func TestAdminRolesBypassTenantChecks(t *testing.T) {
	assert.True(t, RoleSuperAdmin.IsAdmin())
	assert.True(t, RoleOperador.IsAdmin())
	assert.False(t, RoleCliente.IsAdmin())
	assert.False(t, RoleConductor.IsAdmin())
}

func TestCapabilityTable(t *testing.T) {
	// Clientes import and create but never assign zones or manage anything.
	assert.True(t, Can(RoleCliente, CapImportServices))
	assert.True(t, Can(RoleCliente, CapCreateService))
	assert.False(t, Can(RoleCliente, CapAssignZone))
	assert.False(t, Can(RoleCliente, CapManageClients))
	assert.False(t, Can(RoleCliente, CapViewAllServices))

	// Conductores only move their own services forward.
	assert.True(t, Can(RoleConductor, CapUpdateStatus))
	assert.True(t, Can(RoleConductor, CapUploadEvidence))
	assert.False(t, Can(RoleConductor, CapImportServices))
	assert.False(t, Can(RoleConductor, CapAssignZone))

	// Operators run the zone workflow.
	assert.True(t, Can(RoleOperador, CapAssignZone))
	assert.True(t, Can(RoleOperador, CapViewZones))
	assert.True(t, Can(RoleOperador, CapManageDrivers))

	// Unknown role grants nothing.
	assert.False(t, Can(Role("ghost"), CapViewDashboard))
}

func TestIsDenied(t *testing.T) {
	err := Denied("no tienes permisos")
	assert.True(t, IsDenied(err))
	assert.Equal(t, "no tienes permisos", err.Error())
	assert.False(t, IsDenied(assert.AnError))
	assert.False(t, IsDenied(nil))
}

func TestActorCan(t *testing.T) {
	op := Actor{UserID: "u1", Role: RoleOperador, FullName: "Op"}
	assert.True(t, op.Can(CapAssignZone))

	cli := Actor{UserID: "u2", Role: RoleCliente, ClientID: "c1"}
	assert.False(t, cli.Can(CapAssignZone))
	assert.True(t, cli.Can(CapImportServices))
}
