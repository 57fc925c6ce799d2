package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/entity"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepository)(nil)

// PurchaseRepository implementación PostgreSQL del repositorio de compras.
// Solo lo usa el motor de transacciones dentro de su transacción.
type PurchaseRepository struct {
	q Querier
}

func NewPurchaseRepository(q Querier) *PurchaseRepository {
	return &PurchaseRepository{q: q}
}

// InsertHeader persiste la cabecera; el ID y la fecha los asigna la base.
func (r *PurchaseRepository) InsertHeader(purchase *entity.Purchase) error {
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO purchases (supplier_id, date, total_amount)
		VALUES (NULLIF($1, '')::uuid, NOW(), 0)
		RETURNING id, date`,
		purchase.SupplierID).Scan(&purchase.ID, &purchase.Date)
	if err != nil {
		return fmt.Errorf("error al insertar cabecera de compra: %w", err)
	}
	return nil
}

func (r *PurchaseRepository) InsertLine(line *entity.PurchaseLine) error {
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO purchase_lines (purchase_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		line.PurchaseID, line.ProductID, line.Quantity, line.Price).Scan(&line.ID)
	if err != nil {
		return fmt.Errorf("error al insertar línea de compra: %w", err)
	}
	return nil
}

func (r *PurchaseRepository) SetTotal(purchaseID int64, total decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchases SET total_amount = $2 WHERE id = $1`, purchaseID, total)
	if err != nil {
		return fmt.Errorf("error al fijar total de compra: %w", err)
	}
	return nil
}
