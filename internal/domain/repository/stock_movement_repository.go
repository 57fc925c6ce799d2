package repository

import "github.com/youssefyouyoudev/GestionStock/internal/domain/entity"

// StockMovementRepository define el puerto de persistencia para movimientos.
// Append-only: no existe Update ni Delete, el historial es inmutable.
type StockMovementRepository interface {
	Append(movement *entity.StockMovement) error
	// ListRecent devuelve los movimientos más recientes (created_at DESC,
	// id DESC) con el nombre del producto.
	ListRecent(limit int) ([]*entity.StockMovement, error)
}
