// Package report contiene las vistas derivadas de solo lectura sobre el
// ledger y el catálogo: métricas, stock bajo, series diarias e historial
// de movimientos.
package report

import (
	"context"
	"fmt"

	"github.com/youssefyouyoudev/GestionStock/internal/application/dto"
	"github.com/youssefyouyoudev/GestionStock/internal/domain"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/repository"
)

const (
	defaultDays          = 14  // ventana por defecto de la serie diaria
	maxDays              = 365
	defaultMovementLimit = 200 // como el historial de la pantalla de movimientos
	maxMovementLimit     = 1000
)

// UseCase agrega consultas de reporte. Lecturas puras: consistentes al
// momento de la lectura, sin garantía transaccional entre consultas.
type UseCase struct {
	analytics repository.AnalyticsRepository
	movements repository.StockMovementRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(analytics repository.AnalyticsRepository, movements repository.StockMovementRepository) *UseCase {
	return &UseCase{analytics: analytics, movements: movements}
}

// Metrics devuelve los KPIs del dashboard.
func (uc *UseCase) Metrics(ctx context.Context) (*dto.MetricsResponse, error) {
	m, err := uc.analytics.Metrics(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: métricas: %w", err)
	}
	return &dto.MetricsResponse{
		Products:  m.Products,
		Suppliers: m.Suppliers,
		Customers: m.Customers,
		Revenue:   m.Revenue,
		Purchases: m.Purchases,
	}, nil
}

// LowStock devuelve los productos en o bajo su umbral de reposición,
// ordenados por existencia ascendente.
func (uc *UseCase) LowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.analytics.LowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: stock bajo: %w", err)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ProductResponse{
			ID:            p.ID,
			Name:          p.Name,
			SKU:           p.SKU,
			CategoryID:    p.CategoryID,
			Description:   p.Description,
			PurchasePrice: p.PurchasePrice,
			SellingPrice:  p.SellingPrice,
			Quantity:      p.Quantity,
			MinQuantity:   p.MinQuantity,
			CreatedAt:     p.CreatedAt,
		})
	}
	return items, nil
}

// DailyTotals devuelve la serie (fecha, total) de los últimos days días.
// Serie dispersa: las fechas sin transacciones no aparecen. kind es
// "sales" o "purchases"; days fuera de rango cae al valor por defecto.
func (uc *UseCase) DailyTotals(ctx context.Context, kind string, days int) ([]dto.DailyTotalDTO, error) {
	if kind != repository.DailyKindSales && kind != repository.DailyKindPurchases {
		return nil, fmt.Errorf("%w: kind debe ser sales o purchases", domain.ErrInvalidInput)
	}
	if days <= 0 {
		days = defaultDays
	}
	if days > maxDays {
		days = maxDays
	}
	rows, err := uc.analytics.DailyTotals(ctx, kind, days)
	if err != nil {
		return nil, fmt.Errorf("report: totales diarios: %w", err)
	}
	items := make([]dto.DailyTotalDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.DailyTotalDTO{
			Date:  r.Date.Format("2006-01-02"),
			Total: r.Total,
		})
	}
	return items, nil
}

// MovementHistory devuelve los últimos limit movimientos, el más reciente
// primero, anotados con el nombre del producto.
func (uc *UseCase) MovementHistory(ctx context.Context, limit int) ([]dto.MovementDTO, error) {
	if limit <= 0 {
		limit = defaultMovementLimit
	}
	if limit > maxMovementLimit {
		limit = maxMovementLimit
	}
	list, err := uc.movements.ListRecent(limit)
	if err != nil {
		return nil, fmt.Errorf("report: historial de movimientos: %w", err)
	}
	items := make([]dto.MovementDTO, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MovementDTO{
			ID:          m.ID,
			ProductID:   m.ProductID,
			ProductName: m.ProductName,
			Quantity:    m.Quantity,
			Type:        m.Type,
			Note:        m.Note,
			CreatedAt:   m.CreatedAt,
		})
	}
	return items, nil
}
