package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearMovimientoRequest struct {
	// Fecha defaults to today when empty.
	Fecha         string          `json:"fecha"            validate:"omitempty,datetime=2006-01-02"`
	Monto         decimal.Decimal `json:"monto"            validate:"required,gt=0"`
	ConceptoID    uint            `json:"concepto_id"      validate:"required"`
	MedioDePagoID uint            `json:"medio_de_pago_id" validate:"required"`
	Tipo          string          `json:"tipo"             validate:"required,oneof=ingreso egreso"`
	Comprobante   *string         `json:"comprobante"      validate:"omitempty,max=60"`
	OrdenID       *uint           `json:"orden_id"`
}

// MovimientoFilter holds query params for GET /v1/movimientos.
type MovimientoFilter struct {
	Fecha string `form:"fecha"`
	Desde string `form:"desde"`
	Hasta string `form:"hasta"`
	Tipo  string `form:"tipo"`
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovimientoResponse struct {
	ID            uint            `json:"id"`
	Fecha         string          `json:"fecha"`
	Monto         decimal.Decimal `json:"monto"`
	Tipo          string          `json:"tipo"`
	ConceptoID    uint            `json:"concepto_id"`
	Concepto      string          `json:"concepto"`
	MedioDePagoID uint            `json:"medio_de_pago_id"`
	MedioDePago   string          `json:"medio_de_pago"`
	Comprobante   *string         `json:"comprobante"`
	OrdenID       *uint           `json:"orden_id"`
}

type MovimientoListResponse struct {
	Data  []MovimientoResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
