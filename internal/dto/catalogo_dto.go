package dto

// ── Conceptos ────────────────────────────────────────────────────────────────

type ConceptoRequest struct {
	Nombre string `json:"nombre" validate:"required,min=2,max=100"`
	Tipo   string `json:"tipo"   validate:"required,oneof=ingreso egreso"`
}

type ConceptoResponse struct {
	ID               uint   `json:"id"`
	Nombre           string `json:"nombre"`
	Tipo             string `json:"tipo"`
	MovimientosCount int64  `json:"movimientos_count"`
	PuedeEliminar    bool   `json:"puede_eliminar"`
}

// ── Medios de pago ───────────────────────────────────────────────────────────

type MedioDePagoRequest struct {
	Nombre string `json:"nombre" validate:"required,min=2,max=60"`
}

type MedioDePagoResponse struct {
	ID     uint   `json:"id"`
	Nombre string `json:"nombre"`
}

// ── Compañías de seguro ──────────────────────────────────────────────────────

type CrearCompaniaRequest struct {
	Nombre   string  `json:"nombre"   validate:"required,min=2,max=100"`
	CUIT     *string `json:"cuit"     validate:"omitempty,max=20"`
	Telefono *string `json:"telefono" validate:"omitempty,max=40"`
}

type ActualizarCompaniaRequest struct {
	Nombre   *string `json:"nombre"   validate:"omitempty,min=2,max=100"`
	CUIT     *string `json:"cuit"     validate:"omitempty,max=20"`
	Telefono *string `json:"telefono" validate:"omitempty,max=40"`
	Activo   *bool   `json:"activo"`
}

type CompaniaResponse struct {
	ID       uint    `json:"id"`
	Nombre   string  `json:"nombre"`
	CUIT     *string `json:"cuit,omitempty"`
	Telefono *string `json:"telefono,omitempty"`
	Activo   bool    `json:"activo"`
}

// ── Marcas y modelos ─────────────────────────────────────────────────────────

type MarcaRequest struct {
	Nombre string `json:"nombre" validate:"required,min=1,max=60"`
}

type MarcaResponse struct {
	ID     uint   `json:"id"`
	Nombre string `json:"nombre"`
}

type ModeloRequest struct {
	MarcaID uint   `json:"marca_id" validate:"required"`
	Nombre  string `json:"nombre"   validate:"required,min=1,max=60"`
}

type ModeloResponse struct {
	ID      uint   `json:"id"`
	MarcaID uint   `json:"marca_id"`
	Marca   string `json:"marca"`
	Nombre  string `json:"nombre"`
}
