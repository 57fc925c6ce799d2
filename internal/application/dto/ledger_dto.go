package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseLineRequest línea de una compra.
type PurchaseLineRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int64           `json:"quantity" validate:"gt=0"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// PurchaseRequest body para POST /api/purchases.
type PurchaseRequest struct {
	SupplierID string                `json:"supplier_id,omitempty"`
	Lines      []PurchaseLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// SaleLineRequest línea de una venta.
type SaleLineRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int64           `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SaleRequest body para POST /api/sales.
type SaleRequest struct {
	CustomerID    string            `json:"customer_id,omitempty"`
	PaymentMethod string            `json:"payment_method" validate:"required"`
	Lines         []SaleLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// TransactionResponse respuesta de compra/venta confirmada.
type TransactionResponse struct {
	ID int64 `json:"id"`
}

// AdjustStockRequest body para POST /api/stock/adjust. Delta puede ser
// negativo y puede dejar la existencia bajo cero (corrección manual).
type AdjustStockRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Delta     int64  `json:"delta"`
	Note      string `json:"note,omitempty"`
}

// MovementDTO un movimiento del historial, con nombre de producto.
type MovementDTO struct {
	ID          int64     `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int64     `json:"quantity"` // delta con signo
	Type        string    `json:"type"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
