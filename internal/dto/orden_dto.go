package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type DetalleOrdenRequest struct {
	Descripcion string  `json:"descripcion" validate:"required,min=2,max=200"`
	Cantidad    int     `json:"cantidad"    validate:"omitempty,min=1"`
	Observacion *string `json:"observacion"`
}

type CrearOrdenRequest struct {
	Fecha                *string               `json:"fecha"                  validate:"omitempty,datetime=2006-01-02"`
	TitularVehiculoID    uint                  `json:"titular_vehiculo_id"    validate:"required"`
	CompaniaSeguroID     *uint                 `json:"compania_seguro_id"`
	ConFactura           bool                  `json:"con_factura"`
	ConGarantia          bool                  `json:"con_garantia"`
	Observacion          *string               `json:"observacion"            validate:"omitempty,max=1000"`
	FechaEntregaEstimada *string               `json:"fecha_entrega_estimada" validate:"omitempty,datetime=2006-01-02"`
	Detalles             []DetalleOrdenRequest `json:"detalles"               validate:"omitempty,dive"`
}

// ActualizarOrdenRequest only touches the fields that are present.
// Estado is changed through CambiarEstadoRequest.
type ActualizarOrdenRequest struct {
	CompaniaSeguroID     *uint                 `json:"compania_seguro_id"`
	QuitarCompania       bool                  `json:"quitar_compania"`
	ConFactura           *bool                 `json:"con_factura"`
	ConGarantia          *bool                 `json:"con_garantia"`
	Observacion          *string               `json:"observacion"            validate:"omitempty,max=1000"`
	FechaEntregaEstimada *string               `json:"fecha_entrega_estimada" validate:"omitempty,datetime=2006-01-02"`
	Detalles             []DetalleOrdenRequest `json:"detalles"               validate:"omitempty,dive"`
}

type CambiarEstadoRequest struct {
	EstadoID uint `json:"estado_id" validate:"required"`
}

// RegistrarPagoRequest adds a precio row. With ConceptoID and Pagado > 0 the
// collected amount is also booked as an ingreso movimiento.
type RegistrarPagoRequest struct {
	MedioDePagoID uint            `json:"medio_de_pago_id" validate:"required"`
	Valor         decimal.Decimal `json:"valor"            validate:"min=0"`
	Pagado        decimal.Decimal `json:"pagado"           validate:"min=0"`
	ConceptoID    *uint           `json:"concepto_id"`
}

// OrdenFilter holds query params for GET /v1/ordenes.
type OrdenFilter struct {
	EstadoID uint   `form:"estado_id"`
	Desde    string `form:"desde"`
	Hasta    string `form:"hasta"`
	Buscar   string `form:"q"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EstadoResponse struct {
	ID     uint   `json:"id"`
	Nombre string `json:"nombre"`
}

type DetalleOrdenResponse struct {
	ID          uint    `json:"id"`
	Descripcion string  `json:"descripcion"`
	Cantidad    int     `json:"cantidad"`
	Observacion *string `json:"observacion"`
}

type PrecioResponse struct {
	ID            uint            `json:"id"`
	MedioDePagoID uint            `json:"medio_de_pago_id"`
	Valor         decimal.Decimal `json:"valor"`
	Pagado        decimal.Decimal `json:"pagado"`
}

type OrdenResponse struct {
	ID                   uint                   `json:"id"`
	Numero               string                 `json:"numero"`
	Fecha                string                 `json:"fecha"`
	Estado               EstadoResponse         `json:"estado"`
	TitularVehiculoID    uint                   `json:"titular_vehiculo_id"`
	Titular              string                 `json:"titular"`
	Patente              string                 `json:"patente"`
	Vehiculo             string                 `json:"vehiculo"`
	CompaniaSeguroID     *uint                  `json:"compania_seguro_id"`
	CompaniaSeguro       *string                `json:"compania_seguro"`
	ConFactura           bool                   `json:"con_factura"`
	ConGarantia          bool                   `json:"con_garantia"`
	Observacion          *string                `json:"observacion"`
	FechaEntregaEstimada *string                `json:"fecha_entrega_estimada"`
	Detalles             []DetalleOrdenResponse `json:"detalles"`
	Precios              []PrecioResponse       `json:"precios"`
	Total                decimal.Decimal        `json:"total"`
	Pagado               decimal.Decimal        `json:"pagado"`
	Saldo                decimal.Decimal        `json:"saldo"`
}

type OrdenListResponse struct {
	Data  []OrdenResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// OrdenEstadoEvento is published after an order changes estado.
type OrdenEstadoEvento struct {
	OrdenID        uint   `json:"orden_id"`
	Numero         string `json:"numero"`
	EstadoAnterior uint   `json:"estado_anterior"`
	EstadoNuevo    uint   `json:"estado_nuevo"`
	UsuarioID      string `json:"usuario_id,omitempty"`
}
