package model

import "time"

// Marca is a vehicle brand.
type Marca struct {
	ID     uint   `gorm:"primaryKey"`
	Nombre string `gorm:"type:varchar(60);uniqueIndex;not null"`

	Modelos []Modelo `gorm:"foreignKey:MarcaID"`
}

func (Marca) TableName() string { return "marcas" }

// Modelo belongs to a Marca; names are unique per brand.
type Modelo struct {
	ID      uint   `gorm:"primaryKey"`
	MarcaID uint   `gorm:"not null;uniqueIndex:idx_modelo_marca_nombre"`
	Nombre  string `gorm:"type:varchar(60);not null;uniqueIndex:idx_modelo_marca_nombre"`

	Marca *Marca `gorm:"foreignKey:MarcaID"`
}

func (Modelo) TableName() string { return "modelos" }

// Vehiculo is identified by its patente (license plate).
type Vehiculo struct {
	ID        uint    `gorm:"primaryKey"`
	ModeloID  uint    `gorm:"not null;index"`
	Patente   string  `gorm:"type:varchar(10);uniqueIndex;not null"`
	Anio      *int    `gorm:"column:anio"`
	Color     *string `gorm:"type:varchar(30)"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Modelo *Modelo `gorm:"foreignKey:ModeloID"`
}

func (Vehiculo) TableName() string { return "vehiculos" }
