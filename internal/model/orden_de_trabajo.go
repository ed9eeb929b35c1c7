package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrdenDeTrabajo is a glass replacement/repair job for a titular/vehiculo pair.
// Orders are soft deleted only.
type OrdenDeTrabajo struct {
	ID                   uint        `gorm:"primaryKey"`
	Numero               string      `gorm:"type:varchar(20);uniqueIndex;not null"`
	Fecha                time.Time   `gorm:"type:date;not null;index"`
	TitularVehiculoID    uint        `gorm:"not null;index"`
	EstadoID             EstadoOrden `gorm:"not null;index"`
	CompaniaSeguroID     *uint
	ConFactura           bool `gorm:"not null;default:false"`
	ConGarantia          bool `gorm:"not null;default:false"`
	Observacion          *string
	FechaEntregaEstimada *time.Time `gorm:"type:date"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            gorm.DeletedAt `gorm:"index"`

	TitularVehiculo *TitularVehiculo        `gorm:"foreignKey:TitularVehiculoID"`
	Estado          *Estado                 `gorm:"foreignKey:EstadoID"`
	CompaniaSeguro  *CompaniaSeguro         `gorm:"foreignKey:CompaniaSeguroID"`
	Detalles        []DetalleOrdenDeTrabajo `gorm:"foreignKey:OrdenID"`
	Precios         []Precio                `gorm:"foreignKey:OrdenID"`
}

func (OrdenDeTrabajo) TableName() string { return "ordenes_de_trabajo" }

// DetalleOrdenDeTrabajo is one piece of work inside an order (e.g. "Parabrisas").
type DetalleOrdenDeTrabajo struct {
	ID          uint   `gorm:"primaryKey"`
	OrdenID     uint   `gorm:"not null;index"`
	Descripcion string `gorm:"not null"`
	Cantidad    int    `gorm:"not null;default:1"`
	Observacion *string
}

func (DetalleOrdenDeTrabajo) TableName() string { return "detalles_orden_de_trabajo" }

// Precio is a charged/paid pair for an order. Several rows allow split payments.
type Precio struct {
	ID            uint            `gorm:"primaryKey"`
	OrdenID       uint            `gorm:"not null;index"`
	MedioDePagoID uint            `gorm:"not null"`
	Valor         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Pagado        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt     time.Time
}

func (Precio) TableName() string { return "precios" }
