package dto

import "github.com/shopspring/decimal"

type KPIs struct {
	Ingresos decimal.Decimal `json:"ingresos"`
	Egresos  decimal.Decimal `json:"egresos"`
	Neto     decimal.Decimal `json:"neto"`
}

// TotalPorMedio is one payment-method row of the daily breakdown.
type TotalPorMedio struct {
	MedioDePagoID uint            `json:"medio_de_pago_id"`
	MedioDePago   string          `json:"medio_de_pago"`
	Cantidad      int64           `json:"cantidad"`
	Total         decimal.Decimal `json:"total"`
	Porcentaje    decimal.Decimal `json:"porcentaje"`
}

type ResumenDiaResponse struct {
	Fecha            string             `json:"fecha"`
	KPIs             KPIs               `json:"kpis"`
	IngresosPorMedio []TotalPorMedio    `json:"ingresos_por_medio"`
	EgresosPorMedio  []TotalPorMedio    `json:"egresos_por_medio"`
	Caja             EstadoCajaResponse `json:"caja"`
}
