package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/entity"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepository)(nil)

// SaleRepository implementación PostgreSQL del repositorio de ventas.
// Solo lo usa el motor de transacciones dentro de su transacción.
type SaleRepository struct {
	q Querier
}

func NewSaleRepository(q Querier) *SaleRepository {
	return &SaleRepository{q: q}
}

// InsertHeader persiste la cabecera; el ID y la fecha los asigna la base.
func (r *SaleRepository) InsertHeader(sale *entity.Sale) error {
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO sales (customer_id, date, total_amount, payment_method)
		VALUES (NULLIF($1, '')::uuid, NOW(), 0, $2)
		RETURNING id, date`,
		sale.CustomerID, sale.PaymentMethod).Scan(&sale.ID, &sale.Date)
	if err != nil {
		return fmt.Errorf("error al insertar cabecera de venta: %w", err)
	}
	return nil
}

func (r *SaleRepository) InsertLine(line *entity.SaleLine) error {
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO sale_lines (sale_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		line.SaleID, line.ProductID, line.Quantity, line.Price).Scan(&line.ID)
	if err != nil {
		return fmt.Errorf("error al insertar línea de venta: %w", err)
	}
	return nil
}

func (r *SaleRepository) SetTotal(saleID int64, total decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sales SET total_amount = $2 WHERE id = $1`, saleID, total)
	if err != nil {
		return fmt.Errorf("error al fijar total de venta: %w", err)
	}
	return nil
}
