package model

import "time"

// Titular is the vehicle owner / client.
type Titular struct {
	ID        uint    `gorm:"primaryKey"`
	Nombre    string  `gorm:"type:varchar(80);not null"`
	Apellido  string  `gorm:"type:varchar(80);not null"`
	Documento *string `gorm:"type:varchar(20);uniqueIndex"`
	Telefono  *string `gorm:"type:varchar(40)"`
	Email     *string `gorm:"type:varchar(120)"`
	Direccion *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Titular) TableName() string { return "titulares" }

// NombreCompleto returns "Apellido, Nombre".
func (t Titular) NombreCompleto() string {
	return t.Apellido + ", " + t.Nombre
}

// TitularVehiculo links an owner with a vehicle; orders reference the pair.
type TitularVehiculo struct {
	ID         uint `gorm:"primaryKey"`
	TitularID  uint `gorm:"not null;uniqueIndex:idx_titular_vehiculo"`
	VehiculoID uint `gorm:"not null;uniqueIndex:idx_titular_vehiculo"`
	CreatedAt  time.Time

	Titular  *Titular  `gorm:"foreignKey:TitularID"`
	Vehiculo *Vehiculo `gorm:"foreignKey:VehiculoID"`
}

func (TitularVehiculo) TableName() string { return "titular_vehiculo" }
