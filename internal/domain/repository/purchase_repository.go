package repository

import (
	"github.com/shopspring/decimal"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para compras.
// Escrito únicamente por el motor de transacciones, dentro de su transacción.
type PurchaseRepository interface {
	// InsertHeader persiste la cabecera y asigna purchase.ID y purchase.Date.
	InsertHeader(purchase *entity.Purchase) error
	InsertLine(line *entity.PurchaseLine) error
	SetTotal(purchaseID int64, total decimal.Decimal) error
}
