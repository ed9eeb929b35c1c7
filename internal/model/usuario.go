package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RolAdministrador = "administrador"
	RolCajero        = "cajero"
	RolTaller        = "taller"
)

// Rol is the lookup table of user roles, keyed by name.
type Rol struct {
	Nombre string `gorm:"type:varchar(20);primaryKey"`
}

func (Rol) TableName() string { return "roles" }

// Usuario stores system users with role-based access.
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	Rol          string `gorm:"type:varchar(20);not null"`
	Activo       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	RolRef *Rol `gorm:"foreignKey:Rol;references:Nombre"`
}
