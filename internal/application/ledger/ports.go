package ledger

import (
	"context"

	"github.com/youssefyouyoudev/GestionStock/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa transacción. Si fn devuelve error se hace
// Rollback completo; si no, Commit. Es la única garantía de atomicidad que
// el motor necesita: o se aplican cabecera, líneas, existencias y
// movimientos, o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		movements repository.StockMovementRepository,
		purchases repository.PurchaseRepository,
		sales repository.SaleRepository,
	) error) error
}
