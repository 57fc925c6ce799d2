// Package pdf implementa el reporte de inventario descargable usando
// Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: productos / proveedores / clientes / ventas / compras │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | SKU | Categoría | Exist. | Mín. | Precio  │
//	│  (los productos bajo umbral van resaltados)                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/youssefyouyoudev/GestionStock/internal/application/report"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/entity"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/repository"
)

// Ensure InventoryReportGenerator implements report.InventoryPDFGenerator.
var _ report.InventoryPDFGenerator = (*InventoryReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// InventoryReportGenerator genera el reporte de estado de inventario.
type InventoryReportGenerator struct{}

// NewInventoryReportGenerator construye el generador.
func NewInventoryReportGenerator() *InventoryReportGenerator { return &InventoryReportGenerator{} }

// Generate genera el PDF y devuelve sus bytes. products debe venir con el
// nombre de categoría poblado.
func (g *InventoryReportGenerator) Generate(
	metrics *repository.MetricsResult,
	products []*entity.Product,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(metricsRow(metrics))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, p := range products {
		m.AddRows(productRow(p))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow() core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Reporte de Inventario", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Top: 5, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func metricsRow(m *repository.MetricsResult) core.Row {
	kpi := func(label, value string) core.Col {
		return col.New(2).Add(
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 1}),
			text.New(label, props.Text{Size: 7, Align: align.Center, Top: 7, Color: colorGray}),
		)
	}
	return row.New(13).Add(
		kpi("Productos", fmt.Sprintf("%d", m.Products)),
		kpi("Proveedores", fmt.Sprintf("%d", m.Suppliers)),
		kpi("Clientes", fmt.Sprintf("%d", m.Customers)),
		col.New(3).Add(
			text.New(m.Revenue.StringFixed(2), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 1}),
			text.New("Ventas acumuladas", props.Text{Size: 7, Align: align.Center, Top: 7, Color: colorGray}),
		),
		col.New(3).Add(
			text.New(m.Purchases.StringFixed(2), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 1}),
			text.New("Compras acumuladas", props.Text{Size: 7, Align: align.Center, Top: 7, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}
	hRight := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Align: align.Right}
	return row.New(7).Add(
		col.New(4).Add(text.New("Producto", h)),
		col.New(2).Add(text.New("SKU", h)),
		col.New(2).Add(text.New("Categoría", h)),
		col.New(1).Add(text.New("Exist.", hRight)),
		col.New(1).Add(text.New("Mín.", hRight)),
		col.New(2).Add(text.New("Precio", hRight)),
	)
}

func productRow(p *entity.Product) core.Row {
	cell := props.Text{Size: 8, Top: 1}
	cellRight := props.Text{Size: 8, Top: 1, Align: align.Right}
	if p.Quantity <= p.MinQuantity {
		cell.Color = colorAlert
		cellRight.Color = colorAlert
	}
	return row.New(6).Add(
		col.New(4).Add(text.New(p.Name, cell)),
		col.New(2).Add(text.New(p.SKU, cell)),
		col.New(2).Add(text.New(p.CategoryName, cell)),
		col.New(1).Add(text.New(fmt.Sprintf("%d", p.Quantity), cellRight)),
		col.New(1).Add(text.New(fmt.Sprintf("%d", p.MinQuantity), cellRight)),
		col.New(2).Add(text.New(p.SellingPrice.StringFixed(2), cellRight)),
	)
}
