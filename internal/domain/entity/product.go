package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Quantity y PurchasePrice son propiedad del motor de transacciones: se
// actualizan únicamente vía compras, ventas y ajustes (nunca por el CRUD).
type Product struct {
	ID            string
	Name          string
	SKU           string // código único opcional; vacío = sin SKU
	CategoryID    string // vacío = sin categoría
	Description   string
	PurchasePrice decimal.Decimal // último costo de compra (no promedio)
	SellingPrice  decimal.Decimal
	Quantity      int64 // existencia actual
	MinQuantity   int64 // umbral de reposición
	CreatedAt     time.Time

	CategoryName string // solo lectura, poblado por el JOIN en listados
}
