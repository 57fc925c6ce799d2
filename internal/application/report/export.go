package report

import (
	"context"
	"fmt"

	"github.com/youssefyouyoudev/GestionStock/internal/domain/entity"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/repository"
)

// InventoryPDFGenerator genera el PDF del estado de inventario.
// Implementado en infrastructure/pdf con Maroto.
type InventoryPDFGenerator interface {
	Generate(metrics *repository.MetricsResult, products []*entity.Product) ([]byte, error)
}

// ExportUseCase arma las proyecciones para los exportes descargables.
type ExportUseCase struct {
	products  repository.ProductRepository
	analytics repository.AnalyticsRepository
	pdfGen    InventoryPDFGenerator
}

// NewExportUseCase construye el caso de uso de exportes.
func NewExportUseCase(
	products repository.ProductRepository,
	analytics repository.AnalyticsRepository,
	pdfGen InventoryPDFGenerator,
) *ExportUseCase {
	return &ExportUseCase{products: products, analytics: analytics, pdfGen: pdfGen}
}

// Products devuelve el inventario completo con nombre de categoría.
func (uc *ExportUseCase) Products(ctx context.Context) ([]*entity.Product, error) {
	list, err := uc.products.Search("")
	if err != nil {
		return nil, fmt.Errorf("export: productos: %w", err)
	}
	return list, nil
}

// Sales devuelve las ventas con nombre de cliente, la más reciente primero.
func (uc *ExportUseCase) Sales(ctx context.Context) ([]repository.SaleExportRow, error) {
	rows, err := uc.analytics.SalesForExport(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: ventas: %w", err)
	}
	return rows, nil
}

// InventoryPDF genera el reporte PDF: KPIs + listado completo de productos.
func (uc *ExportUseCase) InventoryPDF(ctx context.Context) ([]byte, error) {
	metrics, err := uc.analytics.Metrics(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: métricas: %w", err)
	}
	products, err := uc.products.Search("")
	if err != nil {
		return nil, fmt.Errorf("export: productos: %w", err)
	}
	return uc.pdfGen.Generate(metrics, products)
}
