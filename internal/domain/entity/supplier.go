package entity

// Supplier representa un proveedor (referenciado por las compras).
type Supplier struct {
	ID      string
	Name    string
	Phone   string
	Email   string
	Address string
	Company string
}
