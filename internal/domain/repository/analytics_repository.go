package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/entity"
)

// Tipos de serie diaria.
const (
	DailyKindSales     = "sales"
	DailyKindPurchases = "purchases"
)

// MetricsResult es la foto puntual del dashboard: conteos independientes y
// sumas de por vida. No requiere consistencia entre filas.
type MetricsResult struct {
	Products  int64
	Suppliers int64
	Customers int64
	Revenue   decimal.Decimal // suma de totales de venta
	Purchases decimal.Decimal // suma de totales de compra
}

// DailyTotal es un punto de la serie por fecha calendario. Las fechas sin
// transacciones no aparecen; el caller rellena huecos si los necesita.
type DailyTotal struct {
	Date  time.Time // fecha calendario, hora en cero
	Total decimal.Decimal
}

// SaleExportRow es la proyección de ventas para el export CSV.
type SaleExportRow struct {
	ID            int64
	Date          time.Time
	TotalAmount   decimal.Decimal
	PaymentMethod string
	CustomerName  string // vacío si la venta no tiene cliente
}

// AnalyticsRepository define las consultas de solo lectura sobre el ledger
// y el catálogo. Lee el último estado confirmado; puede ejecutarse en
// paralelo con las mutaciones.
type AnalyticsRepository interface {
	Metrics(ctx context.Context) (*MetricsResult, error)
	// LowStock devuelve los productos con quantity <= min_quantity,
	// ordenados por existencia ascendente (los más agotados primero).
	LowStock(ctx context.Context) ([]*entity.Product, error)
	// DailyTotals agrupa totales de cabecera por fecha calendario dentro de
	// los últimos days días. kind es DailyKindSales o DailyKindPurchases.
	DailyTotals(ctx context.Context, kind string, days int) ([]DailyTotal, error)
	SalesForExport(ctx context.Context) ([]SaleExportRow, error)
}
