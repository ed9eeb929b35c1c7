package handler

import (
	"net/http"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/dto"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/middleware"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type OrdenesHandler struct{ svc service.OrdenService }

func NewOrdenesHandler(svc service.OrdenService) *OrdenesHandler {
	return &OrdenesHandler{svc: svc}
}

// Crear godoc
// @Summary Crea una orden de trabajo
// @Tags ordenes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearOrdenRequest true "Orden"
// @Success 201 {object} dto.OrdenResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/ordenes [post]
func (h *OrdenesHandler) Crear(c *gin.Context) {
	var req dto.CrearOrdenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista órdenes con filtros y paginación
// @Tags ordenes
// @Produce json
// @Security BearerAuth
// @Param estado_id query int false "Estado"
// @Param desde query string false "Desde YYYY-MM-DD"
// @Param hasta query string false "Hasta YYYY-MM-DD"
// @Param q query string false "Búsqueda por número, patente o titular"
// @Success 200 {object} dto.OrdenListResponse
// @Router /v1/ordenes [get]
func (h *OrdenesHandler) Listar(c *gin.Context) {
	var filter dto.OrdenFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdenesHandler) Obtener(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdenesHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarOrdenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdenesHandler) Eliminar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CambiarEstado godoc
// @Summary El taller cambia el estado de una orden
// @Tags taller
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de la orden"
// @Param body body dto.CambiarEstadoRequest true "Nuevo estado"
// @Success 200 {object} dto.OrdenResponse
// @Failure 404 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/taller/ordenes/{id}/estado [patch]
func (h *OrdenesHandler) CambiarEstado(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.CambiarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiarEstado(c.Request.Context(), id, req.EstadoID, middleware.UsuarioID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarPago godoc
// @Summary Registra un pago de la orden y opcionalmente su ingreso en caja
// @Tags ordenes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de la orden"
// @Param body body dto.RegistrarPagoRequest true "Pago"
// @Success 201 {object} dto.OrdenResponse
// @Router /v1/ordenes/{id}/pagos [post]
func (h *OrdenesHandler) RegistrarPago(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.RegistrarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarPago(c.Request.Context(), id, middleware.UsuarioID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrdenesHandler) Imprimir(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	data, nombre, err := h.svc.Imprimir(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	pdfInline(c, nombre, data)
}

// ── Estados ──────────────────────────────────────────────────────────────────

type EstadosHandler struct{ svc service.EstadoService }

func NewEstadosHandler(svc service.EstadoService) *EstadosHandler {
	return &EstadosHandler{svc: svc}
}

func (h *EstadosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
