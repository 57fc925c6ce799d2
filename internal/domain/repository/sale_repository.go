package repository

import (
	"github.com/shopspring/decimal"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas.
// Escrito únicamente por el motor de transacciones, dentro de su transacción.
type SaleRepository interface {
	// InsertHeader persiste la cabecera y asigna sale.ID y sale.Date.
	InsertHeader(sale *entity.Sale) error
	InsertLine(line *entity.SaleLine) error
	SetTotal(saleID int64, total decimal.Decimal) error
}
