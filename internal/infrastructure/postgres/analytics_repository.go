package postgres

import (
	"context"
	"fmt"

	"github.com/youssefyouyoudev/GestionStock/internal/domain/entity"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepository)(nil)

// AnalyticsRepository consultas de solo lectura para dashboard, reportes y
// exportes. Lee el último estado confirmado fuera de toda transacción.
type AnalyticsRepository struct {
	q Querier
}

func NewAnalyticsRepository(q Querier) *AnalyticsRepository {
	return &AnalyticsRepository{q: q}
}

// Metrics calcula los contadores del dashboard en una sola consulta. Cada
// subconsulta es independiente; no se exige consistencia entre ellas.
func (r *AnalyticsRepository) Metrics(ctx context.Context) (*repository.MetricsResult, error) {
	var m repository.MetricsResult
	err := r.q.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM suppliers),
			(SELECT COUNT(*) FROM customers),
			(SELECT COALESCE(SUM(total_amount), 0) FROM sales),
			(SELECT COALESCE(SUM(total_amount), 0) FROM purchases)`).
		Scan(&m.Products, &m.Suppliers, &m.Customers, &m.Revenue, &m.Purchases)
	if err != nil {
		return nil, fmt.Errorf("error al calcular métricas: %w", err)
	}
	return &m, nil
}

// LowStock devuelve los productos en o por debajo de su umbral de
// reposición, los más agotados primero.
func (r *AnalyticsRepository) LowStock(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.name, COALESCE(p.sku, ''), COALESCE(p.category_id::text, ''),
			COALESCE(p.description, ''), p.purchase_price, p.selling_price,
			p.quantity, p.min_quantity, p.created_at, COALESCE(c.name, '')
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.quantity <= p.min_quantity
		ORDER BY p.quantity, p.name`)
	if err != nil {
		return nil, fmt.Errorf("error al consultar stock bajo: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.CategoryID, &p.Description,
			&p.PurchasePrice, &p.SellingPrice, &p.Quantity, &p.MinQuantity,
			&p.CreatedAt, &p.CategoryName); err != nil {
			return nil, fmt.Errorf("error al escanear producto: %w", err)
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}

// DailyTotals agrupa totales de cabecera por fecha calendario dentro de los
// últimos days días. Las fechas sin transacciones no producen fila.
func (r *AnalyticsRepository) DailyTotals(ctx context.Context, kind string, days int) ([]repository.DailyTotal, error) {
	var table string
	switch kind {
	case repository.DailyKindSales:
		table = "sales"
	case repository.DailyKindPurchases:
		table = "purchases"
	default:
		return nil, fmt.Errorf("tipo de serie desconocido: %q", kind)
	}

	query := fmt.Sprintf(`
		SELECT date::date AS day, SUM(total_amount)
		FROM %s
		WHERE date >= NOW() - make_interval(days => $1)
		GROUP BY day
		ORDER BY day`, table)

	rows, err := r.q.Query(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("error al consultar totales diarios: %w", err)
	}
	defer rows.Close()

	var totals []repository.DailyTotal
	for rows.Next() {
		var t repository.DailyTotal
		if err := rows.Scan(&t.Date, &t.Total); err != nil {
			return nil, fmt.Errorf("error al escanear total diario: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// SalesForExport proyecta las ventas con nombre de cliente para el CSV.
func (r *AnalyticsRepository) SalesForExport(ctx context.Context) ([]repository.SaleExportRow, error) {
	rows, err := r.q.Query(ctx, `
		SELECT s.id, s.date, s.total_amount, s.payment_method, COALESCE(c.name, '')
		FROM sales s
		LEFT JOIN customers c ON c.id = s.customer_id
		ORDER BY s.date DESC, s.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("error al exportar ventas: %w", err)
	}
	defer rows.Close()

	var result []repository.SaleExportRow
	for rows.Next() {
		var row repository.SaleExportRow
		if err := rows.Scan(&row.ID, &row.Date, &row.TotalAmount, &row.PaymentMethod,
			&row.CustomerName); err != nil {
			return nil, fmt.Errorf("error al escanear venta: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
