// Package auth defines the closed set of roles, the capabilities each role
// grants, and the Actor carried through every operation.
package auth

import "errors"

// Role is the closed set of user roles. Persisted in profiles.role and in the
// JWT "role" claim, so values must stay stable.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleOperador   Role = "operador"
	RoleCliente    Role = "cliente"
	RoleConductor  Role = "conductor"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleOperador, RoleCliente, RoleConductor:
		return true
	}
	return false
}

// IsAdmin reports whether r bypasses per-tenant checks.
func (r Role) IsAdmin() bool {
	return r == RoleSuperAdmin || r == RoleOperador
}

// Capability is a named operation a role may perform.
type Capability string

const (
	CapViewAllServices   Capability = "view_all_services"
	CapCreateService     Capability = "create_service"
	CapImportServices    Capability = "import_services"
	CapViewZones         Capability = "view_zones"
	CapAssignZone        Capability = "assign_zone"
	CapUpdateStatus      Capability = "update_status"
	CapUploadEvidence    Capability = "upload_evidence"
	CapManageClients     Capability = "manage_clients"
	CapManageDrivers     Capability = "manage_drivers"
	CapViewDashboard     Capability = "view_dashboard"
	CapGenerateDocuments Capability = "generate_documents"
)

// capabilities is the single source of truth for role permissions. Row
// visibility (a cliente sees only its own services, a conductor only its
// assignments) is enforced by the repositories on top of this table.
var capabilities = map[Role]map[Capability]bool{
	RoleSuperAdmin: {
		CapViewAllServices:   true,
		CapCreateService:     true,
		CapImportServices:    true,
		CapViewZones:         true,
		CapAssignZone:        true,
		CapUpdateStatus:      true,
		CapUploadEvidence:    true,
		CapManageClients:     true,
		CapManageDrivers:     true,
		CapViewDashboard:     true,
		CapGenerateDocuments: true,
	},
	RoleOperador: {
		CapViewAllServices:   true,
		CapCreateService:     true,
		CapImportServices:    true,
		CapViewZones:         true,
		CapAssignZone:        true,
		CapUpdateStatus:      true,
		CapManageClients:     true,
		CapManageDrivers:     true,
		CapViewDashboard:     true,
		CapGenerateDocuments: true,
	},
	RoleCliente: {
		CapCreateService:     true,
		CapImportServices:    true,
		CapViewDashboard:     true,
		CapGenerateDocuments: true,
	},
	RoleConductor: {
		CapUpdateStatus:      true,
		CapUploadEvidence:    true,
		CapViewDashboard:     true,
		CapGenerateDocuments: true,
	},
}

// Can reports whether role grants c. Unknown roles grant nothing.
func Can(role Role, c Capability) bool {
	return capabilities[role][c]
}

// PermissionError marks a capability denial so handlers can answer 403
// instead of 500.
type PermissionError struct {
	msg string
}

func (e *PermissionError) Error() string { return e.msg }

// Denied builds a PermissionError with a user-facing message.
func Denied(msg string) error {
	return &PermissionError{msg: msg}
}

// IsDenied reports whether err is a capability denial.
func IsDenied(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

// Actor is the resolved identity of the caller, built once by the auth
// middleware and passed explicitly into services. ClientID is empty for
// non-cliente roles.
type Actor struct {
	UserID   string
	Role     Role
	ClientID string
	FullName string
}

// Can reports whether the actor's role grants c.
func (a Actor) Can(c Capability) bool {
	return Can(a.Role, c)
}
