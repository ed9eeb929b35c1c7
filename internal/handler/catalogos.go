package handler

import (
	"net/http"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/dto"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// ── Conceptos ────────────────────────────────────────────────────────────────

type ConceptosHandler struct{ svc service.ConceptoService }

func NewConceptosHandler(svc service.ConceptoService) *ConceptosHandler {
	return &ConceptosHandler{svc: svc}
}

func (h *ConceptosHandler) Crear(c *gin.Context) {
	var req dto.ConceptoRequest
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

func (h *ConceptosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), c.Query("tipo"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConceptosHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ConceptoRequest
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

// Eliminar godoc
// @Summary Elimina un concepto sin movimientos asociados
// @Tags conceptos
// @Security BearerAuth
// @Param id path int true "ID del concepto"
// @Success 204
// @Failure 409 {object} apierror.APIError
// @Router /v1/conceptos/{id} [delete]
func (h *ConceptosHandler) Eliminar(c *gin.Context) {
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

// ── Medios de pago ───────────────────────────────────────────────────────────

type MediosDePagoHandler struct{ svc service.MedioDePagoService }

func NewMediosDePagoHandler(svc service.MedioDePagoService) *MediosDePagoHandler {
	return &MediosDePagoHandler{svc: svc}
}

func (h *MediosDePagoHandler) Crear(c *gin.Context) {
	var req dto.MedioDePagoRequest
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

func (h *MediosDePagoHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MediosDePagoHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.MedioDePagoRequest
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

func (h *MediosDePagoHandler) Eliminar(c *gin.Context) {
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

// ── Compañías de seguro ──────────────────────────────────────────────────────

type CompaniasHandler struct{ svc service.CompaniaService }

func NewCompaniasHandler(svc service.CompaniaService) *CompaniasHandler {
	return &CompaniasHandler{svc: svc}
}

func (h *CompaniasHandler) Crear(c *gin.Context) {
	var req dto.CrearCompaniaRequest
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

func (h *CompaniasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), queryBool(c, "inactivas"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CompaniasHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarCompaniaRequest
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

func (h *CompaniasHandler) Desactivar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
