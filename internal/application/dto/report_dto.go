package dto

import "github.com/shopspring/decimal"

// MetricsResponse KPIs del dashboard.
type MetricsResponse struct {
	Products  int64           `json:"products"`
	Suppliers int64           `json:"suppliers"`
	Customers int64           `json:"customers"`
	Revenue   decimal.Decimal `json:"revenue"`   // ingresos de por vida
	Purchases decimal.Decimal `json:"purchases"` // costo de compras de por vida
}

// DailyTotalDTO un punto de la serie diaria (fecha AAAA-MM-DD, total).
type DailyTotalDTO struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}
