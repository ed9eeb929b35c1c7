package model

import "time"

// CompaniaSeguro is an insurance company that may cover a work order.
type CompaniaSeguro struct {
	ID        uint    `gorm:"primaryKey"`
	Nombre    string  `gorm:"type:varchar(100);uniqueIndex;not null"`
	CUIT      *string `gorm:"type:varchar(20);column:cuit"`
	Telefono  *string `gorm:"type:varchar(40)"`
	Activo    bool    `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CompaniaSeguro) TableName() string { return "companias_seguro" }
