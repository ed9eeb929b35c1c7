package handler

import (
	"net/http"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/dto"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/middleware"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type MovimientosHandler struct{ svc service.MovimientoService }

func NewMovimientosHandler(svc service.MovimientoService) *MovimientosHandler {
	return &MovimientosHandler{svc: svc}
}

// Crear godoc
// @Summary Registra un ingreso o egreso
// @Tags movimientos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearMovimientoRequest true "Movimiento"
// @Success 201 {object} dto.MovimientoResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/movimientos [post]
func (h *MovimientosHandler) Crear(c *gin.Context) {
	var req dto.CrearMovimientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), middleware.UsuarioID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MovimientosHandler) Listar(c *gin.Context) {
	var filter dto.MovimientoFilter
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

func (h *MovimientosHandler) Obtener(c *gin.Context) {
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

func (h *MovimientosHandler) Eliminar(c *gin.Context) {
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
