package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EstadoCaja is derived from the caja row of a date, it is never stored.
type EstadoCaja string

const (
	CajaNoAbierta EstadoCaja = "NOT_OPENED"
	CajaAbierta   EstadoCaja = "OPEN"
	CajaCerrada   EstadoCaja = "CLOSED"
)

// Caja is the cash register session of one calendar day.
// At most one row per fecha (unique index uni_cajas_fecha).
type Caja struct {
	ID                uint            `gorm:"primaryKey"`
	Fecha             time.Time       `gorm:"type:date;not null;uniqueIndex:uni_cajas_fecha"`
	SaldoInicial      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	AbiertaEn         time.Time       `gorm:"not null"`
	CerradaEn         *time.Time
	NotasApertura     *string
	NotasCierre       *string
	UsuarioAperturaID *uuid.UUID `gorm:"type:uuid"`
	UsuarioCierreID   *uuid.UUID `gorm:"type:uuid"`
}

func (Caja) TableName() string { return "cajas" }

// EstadoDe returns the status of the caja row for a date; nil means no row.
func EstadoDe(c *Caja) EstadoCaja {
	switch {
	case c == nil:
		return CajaNoAbierta
	case c.CerradaEn == nil:
		return CajaAbierta
	default:
		return CajaCerrada
	}
}
