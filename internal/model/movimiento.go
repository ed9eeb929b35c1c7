package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipo of conceptos and movimientos.
const (
	TipoIngreso = "ingreso"
	TipoEgreso  = "egreso"
)

// Movimiento is an income or expense ledger row.
// MedioDePagoID is a soft reference: deleting a medio de pago leaves it dangling.
type Movimiento struct {
	ID            uint            `gorm:"primaryKey"`
	Fecha         time.Time       `gorm:"type:date;not null;index"`
	Monto         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ConceptoID    uint            `gorm:"not null;index"`
	MedioDePagoID uint            `gorm:"not null;index"`
	Tipo          string          `gorm:"type:varchar(10);not null"`
	Comprobante   *string         `gorm:"type:varchar(60)"`
	// OrdenID is set when the income is the collection of a work order.
	OrdenID   *uint      `gorm:"index"`
	UsuarioID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time

	Concepto *Concepto `gorm:"foreignKey:ConceptoID;constraint:OnDelete:RESTRICT"`
}

func (Movimiento) TableName() string { return "movimientos" }
