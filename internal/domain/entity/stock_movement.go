package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIN     = "IN"     // entrada (compra, stock inicial)
	MovementTypeOUT    = "OUT"    // salida (venta)
	MovementTypeADJUST = "ADJUST" // ajuste manual
)

// StockMovement es el registro inmutable de un cambio de existencia.
// Quantity es el delta con signo: positivo entrada, negativo salida.
// Nunca se actualiza ni se borra; la suma de deltas de un producto es igual a
// su existencia actual menos la existencia con la que fue creado.
type StockMovement struct {
	ID        int64
	ProductID string
	Quantity  int64 // delta con signo
	Type      string
	Note      string
	CreatedAt time.Time

	ProductName string // solo lectura, poblado por el JOIN en el historial
}
