package postgres

import (
	"context"
	"fmt"

	"github.com/youssefyouyoudev/GestionStock/internal/domain/entity"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepository)(nil)

// StockMovementRepository implementación PostgreSQL del registro de
// movimientos. Append-only: no hay UPDATE ni DELETE sobre la tabla.
type StockMovementRepository struct {
	q Querier
}

func NewStockMovementRepository(q Querier) *StockMovementRepository {
	return &StockMovementRepository{q: q}
}

// Append inserta un movimiento; el ID y el timestamp los asigna la base.
func (r *StockMovementRepository) Append(movement *entity.StockMovement) error {
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO stock_movements (product_id, quantity, type, note, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NOW())
		RETURNING id, created_at`,
		movement.ProductID, movement.Quantity, movement.Type, movement.Note).
		Scan(&movement.ID, &movement.CreatedAt)
	if err != nil {
		return fmt.Errorf("error al registrar movimiento: %w", err)
	}
	return nil
}

// ListRecent devuelve los movimientos más recientes primero. El id DESC
// desempata movimientos con el mismo timestamp: los BIGSERIAL crecen en
// orden de inserción.
func (r *StockMovementRepository) ListRecent(limit int) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT m.id, m.product_id, m.quantity, m.type, COALESCE(m.note, ''),
			m.created_at, p.name
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("error al listar movimientos: %w", err)
	}
	defer rows.Close()

	var movements []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Quantity, &m.Type, &m.Note,
			&m.CreatedAt, &m.ProductName); err != nil {
			return nil, fmt.Errorf("error al escanear movimiento: %w", err)
		}
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}
