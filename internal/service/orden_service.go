package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/apierror"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/dto"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/infra"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/model"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrdenObserver is told about every saved estado change. It must not block;
// *worker.Dispatcher queues a job and returns.
type OrdenObserver interface {
	EstadoCambiado(ctx context.Context, ev dto.OrdenEstadoEvento)
}

type OrdenService interface {
	Crear(ctx context.Context, req dto.CrearOrdenRequest) (*dto.OrdenResponse, error)
	Obtener(ctx context.Context, id uint) (*dto.OrdenResponse, error)
	Listar(ctx context.Context, filter dto.OrdenFilter) (*dto.OrdenListResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarOrdenRequest) (*dto.OrdenResponse, error)
	Eliminar(ctx context.Context, id uint) error
	CambiarEstado(ctx context.Context, id uint, estadoID uint, usuarioID uuid.UUID) (*dto.OrdenResponse, error)
	RegistrarPago(ctx context.Context, id uint, usuarioID uuid.UUID, req dto.RegistrarPagoRequest) (*dto.OrdenResponse, error)
	Imprimir(ctx context.Context, id uint) ([]byte, string, error)
}

// OrdenDeps groups the collaborators of the order service.
type OrdenDeps struct {
	Ordenes     repository.OrdenRepository
	Estados     repository.EstadoRepository
	Titulares   repository.TitularRepository
	Companias   repository.CompaniaRepository
	Medios      repository.MedioDePagoRepository
	Conceptos   repository.ConceptoRepository
	Movimientos repository.MovimientoRepository
	Resumen     Invalidador
	Observer    OrdenObserver
	Reloj       Reloj
	Comercio    string
}

type ordenService struct {
	OrdenDeps
}

func NewOrdenService(deps OrdenDeps) OrdenService {
	return &ordenService{OrdenDeps: deps}
}

// ── Crear ─────────────────────────────────────────────────────────────────────

func (s *ordenService) Crear(ctx context.Context, req dto.CrearOrdenRequest) (*dto.OrdenResponse, error) {
	fecha := s.Reloj.Hoy()
	if req.Fecha != nil && *req.Fecha != "" {
		fecha = *req.Fecha
	}
	fechaT, err := parseFecha(fecha)
	if err != nil {
		return nil, err
	}

	if _, err := s.Titulares.ObtenerVinculo(ctx, req.TitularVehiculoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: el vínculo titular/vehículo %d no existe", apierror.ErrValidacion, req.TitularVehiculoID)
		}
		return nil, err
	}
	if err := s.validarCompania(ctx, req.CompaniaSeguroID); err != nil {
		return nil, err
	}

	orden := &model.OrdenDeTrabajo{
		Fecha:             fechaT,
		TitularVehiculoID: req.TitularVehiculoID,
		EstadoID:          model.EstadoIniciado,
		CompaniaSeguroID:  req.CompaniaSeguroID,
		ConFactura:        req.ConFactura,
		ConGarantia:       req.ConGarantia,
		Observacion:       limpiar(req.Observacion),
		Detalles:          mapDetallesRequest(req.Detalles),
	}
	if req.FechaEntregaEstimada != nil && *req.FechaEntregaEstimada != "" {
		entrega, err := parseFecha(*req.FechaEntregaEstimada)
		if err != nil {
			return nil, err
		}
		orden.FechaEntregaEstimada = &entrega
	}

	err = runTx(ctx, s.Ordenes.DB(), func(tx *gorm.DB) error {
		numero, err := s.Ordenes.NextNumero(ctx, tx, fechaT)
		if err != nil {
			return err
		}
		orden.Numero = numero
		return s.Ordenes.Create(ctx, tx, orden)
	})
	if err != nil {
		return nil, traducir(err, "orden")
	}

	log.Info().Uint("orden_id", orden.ID).Str("numero", orden.Numero).Msg("orden creada")
	return s.Obtener(ctx, orden.ID)
}

// ── Consultas ─────────────────────────────────────────────────────────────────

func (s *ordenService) Obtener(ctx context.Context, id uint) (*dto.OrdenResponse, error) {
	orden, err := s.Ordenes.FindByID(ctx, id)
	if err != nil {
		return nil, traducir(err, "orden")
	}
	resp := mapOrden(*orden)
	return &resp, nil
}

func (s *ordenService) Listar(ctx context.Context, filter dto.OrdenFilter) (*dto.OrdenListResponse, error) {
	if filter.EstadoID != 0 && !model.EstadoOrden(filter.EstadoID).Valido() {
		return nil, fmt.Errorf("%w: estado %d inexistente", apierror.ErrValidacion, filter.EstadoID)
	}
	for _, f := range []string{filter.Desde, filter.Hasta} {
		if f == "" {
			continue
		}
		if _, err := parseFecha(f); err != nil {
			return nil, err
		}
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}

	ordenes, total, err := s.Ordenes.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.OrdenResponse, 0, len(ordenes))
	for _, o := range ordenes {
		data = append(data, mapOrden(o))
	}
	return &dto.OrdenListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// ── Actualizar / Eliminar ─────────────────────────────────────────────────────

func (s *ordenService) Actualizar(ctx context.Context, id uint, req dto.ActualizarOrdenRequest) (*dto.OrdenResponse, error) {
	orden, err := s.Ordenes.FindByID(ctx, id)
	if err != nil {
		return nil, traducir(err, "orden")
	}

	switch {
	case req.QuitarCompania:
		orden.CompaniaSeguroID = nil
	case req.CompaniaSeguroID != nil:
		if err := s.validarCompania(ctx, req.CompaniaSeguroID); err != nil {
			return nil, err
		}
		orden.CompaniaSeguroID = req.CompaniaSeguroID
	}
	if req.ConFactura != nil {
		orden.ConFactura = *req.ConFactura
	}
	if req.ConGarantia != nil {
		orden.ConGarantia = *req.ConGarantia
	}
	if req.Observacion != nil {
		orden.Observacion = limpiar(req.Observacion)
	}
	if req.FechaEntregaEstimada != nil {
		if *req.FechaEntregaEstimada == "" {
			orden.FechaEntregaEstimada = nil
		} else {
			entrega, err := parseFecha(*req.FechaEntregaEstimada)
			if err != nil {
				return nil, err
			}
			orden.FechaEntregaEstimada = &entrega
		}
	}

	err = runTx(ctx, s.Ordenes.DB(), func(tx *gorm.DB) error {
		if err := s.Ordenes.Update(ctx, tx, orden); err != nil {
			return err
		}
		if req.Detalles != nil {
			return s.Ordenes.ReplaceDetalles(ctx, tx, orden.ID, mapDetallesRequest(req.Detalles))
		}
		return nil
	})
	if err != nil {
		return nil, traducir(err, "orden")
	}
	return s.Obtener(ctx, id)
}

func (s *ordenService) Eliminar(ctx context.Context, id uint) error {
	if err := s.Ordenes.Delete(ctx, id); err != nil {
		return traducir(err, "orden")
	}
	log.Info().Uint("orden_id", id).Msg("orden eliminada")
	return nil
}

// ── CambiarEstado ─────────────────────────────────────────────────────────────
// Any estado may follow any other; the only rule is that the target exists.

func (s *ordenService) CambiarEstado(ctx context.Context, id uint, estadoID uint, usuarioID uuid.UUID) (*dto.OrdenResponse, error) {
	nuevo := model.EstadoOrden(estadoID)
	existe, err := s.Estados.Existe(ctx, nuevo)
	if err != nil {
		return nil, err
	}
	if !existe {
		return nil, fmt.Errorf("%w: el estado %d no existe", apierror.ErrValidacion, estadoID)
	}

	orden, err := s.Ordenes.FindByID(ctx, id)
	if err != nil {
		return nil, traducir(err, "orden")
	}
	anterior := orden.EstadoID

	if err := s.Ordenes.UpdateEstado(ctx, id, nuevo); err != nil {
		return nil, traducir(err, "orden")
	}
	orden.EstadoID = nuevo
	orden.Estado = &model.Estado{ID: nuevo, Nombre: nuevo.String()}

	log.Info().
		Uint("orden_id", id).
		Str("numero", orden.Numero).
		Str("de", anterior.String()).
		Str("a", nuevo.String()).
		Msg("estado de orden cambiado")

	if s.Observer != nil {
		ev := dto.OrdenEstadoEvento{
			OrdenID:        id,
			Numero:         orden.Numero,
			EstadoAnterior: uint(anterior),
			EstadoNuevo:    uint(nuevo),
		}
		if usuarioID != uuid.Nil {
			ev.UsuarioID = usuarioID.String()
		}
		s.Observer.EstadoCambiado(ctx, ev)
	}

	resp := mapOrden(*orden)
	return &resp, nil
}

// ── RegistrarPago ─────────────────────────────────────────────────────────────

func (s *ordenService) RegistrarPago(ctx context.Context, id uint, usuarioID uuid.UUID, req dto.RegistrarPagoRequest) (*dto.OrdenResponse, error) {
	// Checks run on the stored (2-decimal) amounts.
	valor, pagado := req.Valor.Round(2), req.Pagado.Round(2)
	if valor.IsNegative() || pagado.IsNegative() {
		return nil, fmt.Errorf("%w: valor y pagado no pueden ser negativos", apierror.ErrValidacion)
	}
	if valor.IsZero() && pagado.IsZero() {
		return nil, fmt.Errorf("%w: valor o pagado debe ser mayor a cero", apierror.ErrValidacion)
	}

	orden, err := s.Ordenes.FindByID(ctx, id)
	if err != nil {
		return nil, traducir(err, "orden")
	}
	if _, err := s.Medios.ObtenerPorID(ctx, req.MedioDePagoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: el medio de pago %d no existe", apierror.ErrValidacion, req.MedioDePagoID)
		}
		return nil, err
	}

	registrarIngreso := req.ConceptoID != nil && pagado.IsPositive()
	if registrarIngreso {
		concepto, err := s.Conceptos.ObtenerPorID(ctx, *req.ConceptoID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: el concepto %d no existe", apierror.ErrValidacion, *req.ConceptoID)
		}
		if err != nil {
			return nil, err
		}
		if concepto.Tipo != model.TipoIngreso {
			return nil, fmt.Errorf("%w: el concepto %q no es de ingreso", apierror.ErrValidacion, concepto.Nombre)
		}
	}

	hoy := s.Reloj.Hoy()
	err = runTx(ctx, s.Ordenes.DB(), func(tx *gorm.DB) error {
		precio := &model.Precio{
			OrdenID:       orden.ID,
			MedioDePagoID: req.MedioDePagoID,
			Valor:         valor,
			Pagado:        pagado,
		}
		if err := s.Ordenes.CreatePrecio(ctx, tx, precio); err != nil {
			return err
		}
		if !registrarIngreso {
			return nil
		}
		fecha, _ := parseFecha(hoy)
		numero := orden.Numero
		ordenID := orden.ID
		mov := &model.Movimiento{
			Fecha:         fecha,
			Monto:         precio.Pagado,
			ConceptoID:    *req.ConceptoID,
			MedioDePagoID: req.MedioDePagoID,
			Tipo:          model.TipoIngreso,
			Comprobante:   &numero,
			OrdenID:       &ordenID,
		}
		if usuarioID != uuid.Nil {
			mov.UsuarioID = &usuarioID
		}
		return s.Movimientos.Create(ctx, tx, mov)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Uint("orden_id", orden.ID).
		Str("valor", valor.StringFixed(2)).
		Str("pagado", pagado.StringFixed(2)).
		Bool("movimiento", registrarIngreso).
		Msg("pago registrado")

	if registrarIngreso {
		s.Resumen.Invalidar(ctx, hoy)
	}
	return s.Obtener(ctx, id)
}

// ── Imprimir ──────────────────────────────────────────────────────────────────

// Imprimir returns the PDF receipt and its file name.
func (s *ordenService) Imprimir(ctx context.Context, id uint) ([]byte, string, error) {
	orden, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdf, err := infra.OrdenPDF(s.Comercio, orden)
	if err != nil {
		return nil, "", err
	}
	return pdf, "orden_" + orden.Numero + ".pdf", nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (s *ordenService) validarCompania(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}
	c, err := s.Companias.ObtenerPorID(ctx, *id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: la compañía de seguro %d no existe", apierror.ErrValidacion, *id)
	}
	if err != nil {
		return err
	}
	if !c.Activo {
		return fmt.Errorf("%w: la compañía de seguro %q está inactiva", apierror.ErrValidacion, c.Nombre)
	}
	return nil
}

func mapDetallesRequest(in []dto.DetalleOrdenRequest) []model.DetalleOrdenDeTrabajo {
	out := make([]model.DetalleOrdenDeTrabajo, 0, len(in))
	for _, d := range in {
		cantidad := d.Cantidad
		if cantidad < 1 {
			cantidad = 1
		}
		out = append(out, model.DetalleOrdenDeTrabajo{
			Descripcion: d.Descripcion,
			Cantidad:    cantidad,
			Observacion: limpiar(d.Observacion),
		})
	}
	return out
}

func mapOrden(o model.OrdenDeTrabajo) dto.OrdenResponse {
	resp := dto.OrdenResponse{
		ID:                   o.ID,
		Numero:               o.Numero,
		Fecha:                formatFecha(o.Fecha),
		Estado:               dto.EstadoResponse{ID: uint(o.EstadoID), Nombre: o.EstadoID.String()},
		TitularVehiculoID:    o.TitularVehiculoID,
		CompaniaSeguroID:     o.CompaniaSeguroID,
		ConFactura:           o.ConFactura,
		ConGarantia:          o.ConGarantia,
		Observacion:          o.Observacion,
		FechaEntregaEstimada: formatFechaPtr(o.FechaEntregaEstimada),
		Detalles:             make([]dto.DetalleOrdenResponse, 0, len(o.Detalles)),
		Precios:              make([]dto.PrecioResponse, 0, len(o.Precios)),
		Total:                decimal.Zero,
		Pagado:               decimal.Zero,
	}
	if o.Estado != nil {
		resp.Estado.Nombre = o.Estado.Nombre
	}
	if tv := o.TitularVehiculo; tv != nil {
		if tv.Titular != nil {
			resp.Titular = tv.Titular.NombreCompleto()
		}
		if v := tv.Vehiculo; v != nil {
			resp.Patente = v.Patente
			resp.Vehiculo = descripcionVehiculo(v)
		}
	}
	if o.CompaniaSeguro != nil {
		nombre := o.CompaniaSeguro.Nombre
		resp.CompaniaSeguro = &nombre
	}
	for _, d := range o.Detalles {
		resp.Detalles = append(resp.Detalles, dto.DetalleOrdenResponse{
			ID: d.ID, Descripcion: d.Descripcion, Cantidad: d.Cantidad, Observacion: d.Observacion,
		})
	}
	for _, p := range o.Precios {
		resp.Precios = append(resp.Precios, dto.PrecioResponse{
			ID: p.ID, MedioDePagoID: p.MedioDePagoID, Valor: p.Valor, Pagado: p.Pagado,
		})
		resp.Total = resp.Total.Add(p.Valor)
		resp.Pagado = resp.Pagado.Add(p.Pagado)
	}
	resp.Saldo = resp.Total.Sub(resp.Pagado)
	return resp
}

func descripcionVehiculo(v *model.Vehiculo) string {
	if v.Modelo == nil {
		return ""
	}
	if v.Modelo.Marca == nil {
		return v.Modelo.Nombre
	}
	return v.Modelo.Marca.Nombre + " " + v.Modelo.Nombre
}
