package models

import "time"

// Attendant is a staff member serving one attention profile. Module access
// grants live in module_attendant_accesses.
type Attendant struct {
	ID                 uint              `gorm:"primaryKey" json:"id"`
	Name               string            `gorm:"size:255;not null" json:"name"`
	Email              string            `gorm:"size:255;uniqueIndex;not null" json:"email"`
	DNI                string            `gorm:"column:dni;size:16;uniqueIndex;not null" json:"dni"`
	Enabled            bool              `gorm:"not null" json:"enabled"`
	AttentionProfileID uint              `gorm:"index;not null" json:"attention_profile_id"`
	AttentionProfile   *AttentionProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"attention_profile"`
	Modules            []Module          `gorm:"many2many:module_attendant_accesses;constraint:OnDelete:CASCADE" json:"modules,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// Module is a counter terminal located in a room.
type Module struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Name         string      `gorm:"size:255;not null" json:"name"`
	IPAddress    string      `gorm:"column:ip_address;size:45;not null" json:"ip_address"`
	RoomID       uint        `gorm:"index;not null" json:"room_id"`
	Room         *Room       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"room,omitempty"`
	ModuleTypeID uint        `gorm:"index;not null" json:"module_type_id"`
	ModuleType   *ModuleType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"module_type,omitempty"`
	Attendants   []Attendant `gorm:"many2many:module_attendant_accesses;constraint:OnDelete:CASCADE" json:"attendants,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type Client struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Name         string      `gorm:"size:255;not null" json:"name"`
	DNI          string      `gorm:"column:dni;size:16;uniqueIndex;not null" json:"dni"`
	ClientTypeID *uint       `gorm:"index" json:"client_type_id"`
	ClientType   *ClientType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"client_type,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// User is a back-office account allowed to call the API when auth is enabled.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
