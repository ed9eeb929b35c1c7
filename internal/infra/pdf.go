package infra

// pdf.go: printable documents rendered with go-pdf/fpdf:
//   - ResumenPDF: daily cash summary (KPIs, breakdown by medio de pago, caja status)
//   - OrdenPDF:   work order receipt handed to the customer at intake
//
// Core fonts are cp1252, text goes through the UTF-8 translator.

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/dto"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

var estadoCajaLabel = map[string]string{
	"NOT_OPENED": "Sin abrir",
	"OPEN":       "Abierta",
	"CLOSED":     "Cerrada",
}

func moneda(d decimal.Decimal) string { return "$ " + d.StringFixed(2) }

func nuevoA4() (*fpdf.Fpdf, func(string) string) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	return pdf, pdf.UnicodeTranslatorFromDescriptor("")
}

func salida(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: output: %w", err)
	}
	return buf.Bytes(), nil
}

// ResumenPDF renders the daily summary.
func ResumenPDF(comercio string, r *dto.ResumenDiaResponse) ([]byte, error) {
	pdf, tr := nuevoA4()
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, tr(comercio), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, tr("Resumen del día "+r.Fecha), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Caja ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, tr("Caja: "+estadoCajaLabel[r.Caja.Estado]), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if r.Caja.SaldoInicial != nil {
		pdf.CellFormat(contentW, 5, tr("Saldo inicial: "+moneda(*r.Caja.SaldoInicial)), "", 1, "L", false, 0, "")
	}
	if r.Caja.AbiertaEn != nil {
		pdf.CellFormat(contentW, 5, tr("Apertura: "+*r.Caja.AbiertaEn), "", 1, "L", false, 0, "")
	}
	if r.Caja.CerradaEn != nil {
		pdf.CellFormat(contentW, 5, tr("Cierre: "+*r.Caja.CerradaEn), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// ── KPIs ─────────────────────────────────────────────────────────────────
	third := contentW / 3
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(third, 7, "Ingresos", "1", 0, "C", true, 0, "")
	pdf.CellFormat(third, 7, "Egresos", "1", 0, "C", true, 0, "")
	pdf.CellFormat(third, 7, "Neto", "1", 1, "C", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(third, 8, tr(moneda(r.KPIs.Ingresos)), "1", 0, "C", false, 0, "")
	pdf.CellFormat(third, 8, tr(moneda(r.KPIs.Egresos)), "1", 0, "C", false, 0, "")
	pdf.CellFormat(third, 8, tr(moneda(r.KPIs.Neto)), "1", 1, "C", false, 0, "")
	pdf.Ln(5)

	tablaMedios(pdf, tr, contentW, "Ingresos por medio de pago", r.IngresosPorMedio)
	pdf.Ln(4)
	tablaMedios(pdf, tr, contentW, "Egresos por medio de pago", r.EgresosPorMedio)

	return salida(pdf)
}

func tablaMedios(pdf *fpdf.Fpdf, tr func(string) string, w float64, titulo string, filas []dto.TotalPorMedio) {
	col1, col2, col3, col4 := w*0.45, w*0.15, w*0.22, w*0.18

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(w, 6, tr(titulo), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 6, "Medio", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Cant.", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Total", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "%", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	if len(filas) == 0 {
		pdf.CellFormat(w, 6, "Sin movimientos", "", 1, "L", false, 0, "")
		return
	}
	for _, f := range filas {
		pdf.CellFormat(col1, 5, tr(f.MedioDePago), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("%d", f.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, tr(moneda(f.Total)), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 5, f.Porcentaje.StringFixed(2)+" %", "", 1, "R", false, 0, "")
	}
}

// OrdenPDF renders the receipt of a work order.
func OrdenPDF(comercio string, o *dto.OrdenResponse) ([]byte, error) {
	pdf, tr := nuevoA4()
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, tr(comercio), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, tr("Orden de trabajo "+o.Numero), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Datos ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	linea := func(label, valor string) {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(45, 5, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW-45, 5, tr(valor), "", 1, "L", false, 0, "")
	}
	linea("Fecha:", o.Fecha)
	linea("Estado:", o.Estado.Nombre)
	linea("Titular:", o.Titular)
	linea("Vehículo:", o.Vehiculo+" ("+o.Patente+")")
	if o.CompaniaSeguro != nil {
		linea("Compañía de seguro:", *o.CompaniaSeguro)
	}
	if o.FechaEntregaEstimada != nil {
		linea("Entrega estimada:", *o.FechaEntregaEstimada)
	}
	flags := "No"
	if o.ConFactura {
		flags = "Sí"
	}
	linea("Con factura:", flags)
	flags = "No"
	if o.ConGarantia {
		flags = "Sí"
	}
	linea("Con garantía:", flags)
	pdf.Ln(3)

	// ── Detalles ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW*0.15, 6, "Cant.", "B", 0, "C", false, 0, "")
	pdf.CellFormat(contentW*0.85, 6, tr("Descripción"), "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	for _, d := range o.Detalles {
		pdf.CellFormat(contentW*0.15, 5, fmt.Sprintf("%d", d.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(contentW*0.85, 5, tr(d.Descripcion), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// ── Totales ──────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW*0.7, 6, "Total:", "", 0, "R", false, 0, "")
	pdf.CellFormat(contentW*0.3, 6, tr(moneda(o.Total)), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW*0.7, 5, "Pagado:", "", 0, "R", false, 0, "")
	pdf.CellFormat(contentW*0.3, 5, tr(moneda(o.Pagado)), "", 1, "R", false, 0, "")
	pdf.CellFormat(contentW*0.7, 5, "Saldo:", "", 0, "R", false, 0, "")
	pdf.CellFormat(contentW*0.3, 5, tr(moneda(o.Saldo)), "", 1, "R", false, 0, "")

	if o.Observacion != nil && *o.Observacion != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.MultiCell(contentW, 4, tr("Observaciones: "+*o.Observacion), "", "L", false)
	}

	return salida(pdf)
}

// GuardarPDF writes data to dir/nombre, creating dir if needed, and returns the path.
func GuardarPDF(dir, nombre string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	path := filepath.Join(dir, nombre)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return path, nil
}
