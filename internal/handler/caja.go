package handler

import (
	"net/http"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/dto"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/middleware"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// Estado godoc
// @Summary Estado de la caja de un día
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Param date query string false "Fecha YYYY-MM-DD (default hoy)"
// @Success 200 {object} dto.EstadoCajaResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/caja/estado [get]
func (h *CajaHandler) Estado(c *gin.Context) {
	resp, err := h.svc.Estado(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Abrir godoc
// @Summary Abre la caja del día con el saldo inicial
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirCajaRequest true "Datos de apertura"
// @Success 201 {object} dto.EstadoCajaResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/caja/abrir [post]
func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Abrir(c.Request.Context(), middleware.UsuarioID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Cerrar godoc
// @Summary Cierra la caja del día
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CerrarCajaRequest false "Notas de cierre"
// @Success 200 {object} dto.EstadoCajaResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/caja/cerrar [post]
func (h *CajaHandler) Cerrar(c *gin.Context) {
	var req dto.CerrarCajaRequest
	// The body is optional: closing today needs no data.
	if c.Request.ContentLength != 0 {
		if !bindAndValidate(c, &req) {
			return
		}
	}
	resp, err := h.svc.Cerrar(c.Request.Context(), middleware.UsuarioID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
