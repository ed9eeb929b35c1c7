package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// AbrirCajaRequest opens today's caja. Date, when sent, must be today.
type AbrirCajaRequest struct {
	OpeningBalance *decimal.Decimal `json:"opening_balance" validate:"required"`
	Notes          *string          `json:"notes"           validate:"omitempty,max=500"`
	Date           *string          `json:"date"            validate:"omitempty,datetime=2006-01-02"`
}

type CerrarCajaRequest struct {
	Notes *string `json:"notes" validate:"omitempty,max=500"`
	Date  *string `json:"date"  validate:"omitempty,datetime=2006-01-02"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EstadoCajaResponse struct {
	Fecha         string           `json:"fecha"`
	Estado        string           `json:"estado"` // NOT_OPENED | OPEN | CLOSED
	SaldoInicial  *decimal.Decimal `json:"saldo_inicial"`
	AbiertaEn     *string          `json:"abierta_en"`
	CerradaEn     *string          `json:"cerrada_en"`
	NotasApertura *string          `json:"notas_apertura"`
	NotasCierre   *string          `json:"notas_cierre"`
	EsHoy         bool             `json:"es_hoy"`
	PuedeAbrir    bool             `json:"puede_abrir"`
	PuedeCerrar   bool             `json:"puede_cerrar"`
}
