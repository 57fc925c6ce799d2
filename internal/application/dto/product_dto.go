package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// Quantity es la existencia inicial; si es mayor que cero se registra un
// movimiento IN "Stock inicial" junto con la creación.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required"`
	SKU           string          `json:"sku,omitempty"`
	CategoryID    string          `json:"category_id,omitempty"`
	Description   string          `json:"description,omitempty"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	Quantity      int64           `json:"quantity" validate:"min=0"`
	MinQuantity   int64           `json:"min_quantity" validate:"min=0"`
}

// UpdateProductRequest body para PUT /api/products/:id. Campos nil no se
// tocan. No permite modificar existencia ni costo (propiedad del motor).
type UpdateProductRequest struct {
	Name         *string          `json:"name,omitempty"`
	SKU          *string          `json:"sku,omitempty"`
	CategoryID   *string          `json:"category_id,omitempty"`
	Description  *string          `json:"description,omitempty"`
	SellingPrice *decimal.Decimal `json:"selling_price,omitempty"`
	MinQuantity  *int64           `json:"min_quantity,omitempty" validate:"omitempty,min=0"`
}

// ProductResponse representación HTTP de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku,omitempty"`
	CategoryID    string          `json:"category_id,omitempty"`
	CategoryName  string          `json:"category_name,omitempty"`
	Description   string          `json:"description,omitempty"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	Quantity      int64           `json:"quantity"`
	MinQuantity   int64           `json:"min_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
}
