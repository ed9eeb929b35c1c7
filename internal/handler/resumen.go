package handler

import (
	"net/http"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type ResumenHandler struct{ svc service.ResumenService }

func NewResumenHandler(svc service.ResumenService) *ResumenHandler {
	return &ResumenHandler{svc: svc}
}

// Obtener godoc
// @Summary Resumen del día: KPIs, totales por medio de pago y estado de caja
// @Tags resumen
// @Produce json
// @Security BearerAuth
// @Param date query string false "Fecha YYYY-MM-DD (default hoy)"
// @Success 200 {object} dto.ResumenDiaResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/resumen-del-dia [get]
func (h *ResumenHandler) Obtener(c *gin.Context) {
	resp, err := h.svc.Obtener(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Imprimir godoc
// @Summary Resumen del día en PDF
// @Tags resumen
// @Produce application/pdf
// @Security BearerAuth
// @Param date query string false "Fecha YYYY-MM-DD (default hoy)"
// @Success 200 {file} binary
// @Router /v1/resumen-del-dia/imprimir [get]
func (h *ResumenHandler) Imprimir(c *gin.Context) {
	fecha := c.Query("date")
	data, err := h.svc.Imprimir(c.Request.Context(), fecha)
	if err != nil {
		respondError(c, err)
		return
	}
	nombre := "resumen.pdf"
	if fecha != "" {
		nombre = "resumen-" + fecha + ".pdf"
	}
	pdfInline(c, nombre, data)
}
