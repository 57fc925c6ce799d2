package http

import (
	"bytes"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/youssefyouyoudev/GestionStock/internal/application/report"
	"github.com/youssefyouyoudev/GestionStock/internal/infrastructure/export"
)

// ReportHandler maneja las vistas de reporte y los exportes descargables
// (protegido).
type ReportHandler struct {
	reportUC *report.UseCase
	exportUC *report.ExportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(reportUC *report.UseCase, exportUC *report.ExportUseCase) *ReportHandler {
	return &ReportHandler{reportUC: reportUC, exportUC: exportUC}
}

// Metrics devuelve los KPIs del dashboard.
func (h *ReportHandler) Metrics(c *fiber.Ctx) error {
	out, err := h.reportUC.Metrics(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LowStock devuelve los productos en o bajo su umbral de reposición.
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.reportUC.LowStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DailyTotals devuelve la serie diaria. ?kind=sales|purchases, ?days=N.
func (h *ReportHandler) DailyTotals(c *fiber.Ctx) error {
	kind := c.Query("kind", "sales")
	days, _ := strconv.Atoi(c.Query("days"))
	out, err := h.reportUC.DailyTotals(c.Context(), kind, days)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportProductsCSV descarga el inventario completo como CSV.
func (h *ReportHandler) ExportProductsCSV(c *fiber.Ctx) error {
	products, err := h.exportUC.Products(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	var buf bytes.Buffer
	if err := export.WriteProductsCSV(&buf, products); err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="productos.csv"`)
	return c.Send(buf.Bytes())
}

// ExportSalesCSV descarga el listado de ventas como CSV.
func (h *ReportHandler) ExportSalesCSV(c *fiber.Ctx) error {
	rows, err := h.exportUC.Sales(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	var buf bytes.Buffer
	if err := export.WriteSalesCSV(&buf, rows); err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ventas.csv"`)
	return c.Send(buf.Bytes())
}

// InventoryPDF descarga el reporte de inventario en PDF.
func (h *ReportHandler) InventoryPDF(c *fiber.Ctx) error {
	doc, err := h.exportUC.InventoryPDF(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventario.pdf"`)
	return c.Send(doc)
}
