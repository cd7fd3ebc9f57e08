package entity

import "time"

// Profile is an authenticated user of the platform. Role decides the
// capability set; ClientID links cliente users to their tenant.
type Profile struct {
	ID       string  `json:"id" gorm:"primaryKey;size:32"`
	Email    string  `json:"email" gorm:"size:200;uniqueIndex;not null"`
	FullName string  `json:"full_name" gorm:"size:200"`
	Phone    string  `json:"phone" gorm:"size:30"`
	Role     string  `json:"role" gorm:"size:20;not null;default:cliente"`
	ClientID *string `json:"client_id" gorm:"size:32;index"`
	Active   bool    `json:"active" gorm:"default:true"`

	// Only meaningful for conductores.
	VehiclePlate string `json:"vehicle_plate" gorm:"size:10"`

	PasswordHash string `json:"-" gorm:"size:100"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
