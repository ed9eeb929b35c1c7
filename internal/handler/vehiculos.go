package handler

import (
	"net/http"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/dto"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type VehiculosHandler struct{ svc service.VehiculoService }

func NewVehiculosHandler(svc service.VehiculoService) *VehiculosHandler {
	return &VehiculosHandler{svc: svc}
}

// ── Marcas ───────────────────────────────────────────────────────────────────

func (h *VehiculosHandler) CrearMarca(c *gin.Context) {
	var req dto.MarcaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearMarca(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *VehiculosHandler) ListarMarcas(c *gin.Context) {
	resp, err := h.svc.ListarMarcas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VehiculosHandler) ActualizarMarca(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.MarcaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarMarca(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VehiculosHandler) EliminarMarca(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.EliminarMarca(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Modelos ──────────────────────────────────────────────────────────────────

func (h *VehiculosHandler) CrearModelo(c *gin.Context) {
	var req dto.ModeloRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearModelo(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ModelosDeMarca serves GET /marcas/:id/modelos.
func (h *VehiculosHandler) ModelosDeMarca(c *gin.Context) {
	marcaID, ok := paramID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarModelos(c.Request.Context(), marcaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VehiculosHandler) ActualizarModelo(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ModeloRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarModelo(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VehiculosHandler) EliminarModelo(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.EliminarModelo(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Vehículos ────────────────────────────────────────────────────────────────

func (h *VehiculosHandler) Crear(c *gin.Context) {
	var req dto.VehiculoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearVehiculo(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *VehiculosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.ListarVehiculos(c.Request.Context(), c.Query("patente"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VehiculosHandler) Obtener(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerVehiculo(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VehiculosHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.VehiculoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarVehiculo(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VehiculosHandler) Eliminar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.EliminarVehiculo(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
