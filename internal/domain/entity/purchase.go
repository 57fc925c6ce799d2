package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase es la cabecera de una compra a proveedor.
// TotalAmount siempre es la suma de quantity × price de sus líneas,
// calculada al confirmar la transacción.
type Purchase struct {
	ID          int64
	SupplierID  string // vacío = compra sin proveedor
	Date        time.Time
	TotalAmount decimal.Decimal
}

// PurchaseLine es una línea de compra. No sobrevive a su cabecera
// (ON DELETE CASCADE), pero los movimientos asociados sí.
type PurchaseLine struct {
	ID         int64
	PurchaseID int64
	ProductID  string
	Quantity   int64
	Price      decimal.Decimal // costo unitario
}
