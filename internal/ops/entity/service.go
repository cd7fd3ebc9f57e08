package entity

import "time"

// Service estados. Fixed progression with one alternate terminal branch:
// solicitado -> asignado -> en_curso_recogida -> recogido ->
// en_curso_entrega -> entregado | novedad.
const (
	StatusSolicitado      = "solicitado"
	StatusAsignado        = "asignado"
	StatusEnCursoRecogida = "en_curso_recogida"
	StatusRecogido        = "recogido"
	StatusEnCursoEntrega  = "en_curso_entrega"
	StatusEntregado       = "entregado"
	StatusNovedad         = "novedad"
)

// NonTerminalStatuses are the statuses of services still in flight. Used by
// the zone aggregation filter and manifest queries.
var NonTerminalStatuses = []string{
	StatusSolicitado,
	StatusAsignado,
	StatusEnCursoRecogida,
	StatusRecogido,
	StatusEnCursoEntrega,
}

// statusTransitions lists the statuses reachable from each status.
var statusTransitions = map[string][]string{
	StatusSolicitado:      {StatusAsignado, StatusNovedad},
	StatusAsignado:        {StatusEnCursoRecogida, StatusNovedad},
	StatusEnCursoRecogida: {StatusRecogido, StatusNovedad},
	StatusRecogido:        {StatusEnCursoEntrega, StatusNovedad},
	StatusEnCursoEntrega:  {StatusEntregado, StatusNovedad},
}

// ValidStatus reports whether s is part of the status vocabulary.
func ValidStatus(s string) bool {
	switch s {
	case StatusSolicitado, StatusAsignado, StatusEnCursoRecogida,
		StatusRecogido, StatusEnCursoEntrega, StatusEntregado, StatusNovedad:
		return true
	}
	return false
}

// CanTransition reports whether a service may move from one status to the
// next. Terminal statuses have no outgoing transitions.
func CanTransition(from, to string) bool {
	for _, s := range statusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Service is a delivery request. ZoneLabel is set once by the import
// classifier and never re-derived.
type Service struct {
	ID            string  `json:"id" gorm:"primaryKey;size:32"`
	ServiceNumber int64   `json:"service_number" gorm:"autoIncrement:false;uniqueIndex"`
	ClientID      string  `json:"client_id" gorm:"size:32;index;not null"`
	DriverID      *string `json:"driver_id" gorm:"size:32;index"`
	ServiceTypeID string  `json:"service_type_id" gorm:"size:32;index"`

	Status string `json:"status" gorm:"size:30;not null;default:solicitado;index"`

	PickupAddress   string `json:"pickup_address" gorm:"size:500"`
	DeliveryAddress string `json:"delivery_address" gorm:"size:500;not null"`

	PickupContactName   string `json:"pickup_contact_name" gorm:"size:200"`
	PickupPhone         string `json:"pickup_phone" gorm:"size:30"`
	DeliveryContactName string `json:"delivery_contact_name" gorm:"size:200"`
	DeliveryPhone       string `json:"delivery_phone" gorm:"size:30"`

	Locality  string  `json:"locality" gorm:"size:100"`
	ZoneLabel *string `json:"zone_label" gorm:"size:50;index"`

	Observations string  `json:"observations" gorm:"type:text"`
	EvidenceURL  *string `json:"evidence_url" gorm:"size:500"`

	ScheduledDate *time.Time `json:"scheduled_date"`
	DeliveredAt   *time.Time `json:"delivered_at"`
	CreatedAt     time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Client *Client  `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Driver *Profile `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
}

func (Service) TableName() string {
	return "services"
}

// ZoneSummary is the derived per-zone view. Never persisted; always computed
// fresh from current service rows.
type ZoneSummary struct {
	ZoneLabel     string  `json:"zone_label"`
	TotalCount    int     `json:"total_count"`
	PendingCount  int     `json:"pending_count"`
	AssignedCount int     `json:"assigned_count"`
	Status        string  `json:"status"`
	DriverID      *string `json:"driver_id"`
	DriverName    *string `json:"driver_name"`
}

// Zone summary statuses.
const (
	ZoneStatusPending  = "pending"
	ZoneStatusPartial  = "partial"
	ZoneStatusAssigned = "assigned"
)
