package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale es la cabecera de una venta a cliente.
type Sale struct {
	ID            int64
	CustomerID    string // vacío = venta sin cliente
	Date          time.Time
	TotalAmount   decimal.Decimal
	PaymentMethod string
}

// SaleLine es una línea de venta.
type SaleLine struct {
	ID        int64
	SaleID    int64
	ProductID string
	Quantity  int64
	Price     decimal.Decimal // precio unitario de venta
}
