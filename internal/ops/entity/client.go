package entity

import "time"

// Client is a tenant that requests deliveries. The enabled service types
// (ClientService join rows) decide which workflows the tenant can use.
type Client struct {
	ID           string `json:"id" gorm:"primaryKey;size:32"`
	BusinessName string `json:"business_name" gorm:"size:200;not null"`
	NIT          string `json:"nit" gorm:"size:30;uniqueIndex;not null"`
	ContactName  string `json:"contact_name" gorm:"size:200"`
	ContactPhone string `json:"contact_phone" gorm:"size:30"`
	ContactEmail string `json:"contact_email" gorm:"size:200"`
	Address      string `json:"address" gorm:"size:500"`
	Active       bool   `json:"active" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ServiceTypes []ClientServiceType `json:"service_types,omitempty" gorm:"foreignKey:ClientID"`
}

func (Client) TableName() string {
	return "clients"
}

// ServiceType is a systemwide catalog entry. RequiresZoning marks the one
// type whose services go through zone classification and bulk import.
type ServiceType struct {
	ID             string `json:"id" gorm:"primaryKey;size:32"`
	Name           string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Description    string `json:"description" gorm:"type:text"`
	RequiresZoning bool   `json:"requires_zoning" gorm:"default:false"`
	Active         bool   `json:"active" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ServiceType) TableName() string {
	return "service_types"
}

// ClientServiceType enables a service type for one client. Enablement is the
// Enabled flag, not the existence of the row.
type ClientServiceType struct {
	ID            string `json:"id" gorm:"primaryKey;size:32"`
	ClientID      string `json:"client_id" gorm:"size:32;index;not null;uniqueIndex:idx_client_service_type"`
	ServiceTypeID string `json:"service_type_id" gorm:"size:32;not null;uniqueIndex:idx_client_service_type"`
	Enabled       bool   `json:"enabled" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at"`

	ServiceType *ServiceType `json:"service_type,omitempty" gorm:"foreignKey:ServiceTypeID"`
}

func (ClientServiceType) TableName() string {
	return "client_services"
}
