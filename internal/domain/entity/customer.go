package entity

// Customer representa un cliente (referenciado por las ventas).
type Customer struct {
	ID      string
	Name    string
	Phone   string
	Email   string
	Address string
}
