package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youssefyouyoudev/GestionStock/internal/domain/entity"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/repository"
	"github.com/youssefyouyoudev/GestionStock/internal/infrastructure/export"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestWriteProductsCSV(t *testing.T) {
	products := []*entity.Product{
		{
			ID: "p-1", Name: "Arroz, integral", SKU: "ARR-01", CategoryName: "Granos",
			Quantity: 25, MinQuantity: 5,
			PurchasePrice: dec("2.5"), SellingPrice: dec("4"),
		},
		{ID: "p-2", Name: "Frijol", Quantity: 0, MinQuantity: 3,
			PurchasePrice: dec("0"), SellingPrice: dec("6.75")},
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteProductsCSV(&buf, products))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // cabecera + 2 filas

	assert.Equal(t, "nombre", records[0][1])
	// Los valores con coma quedan bien escapados y los montos con 2 decimales.
	assert.Equal(t, "Arroz, integral", records[1][1])
	assert.Equal(t, "Granos", records[1][3])
	assert.Equal(t, "25", records[1][4])
	assert.Equal(t, "2.50", records[1][6])
	assert.Equal(t, "4.00", records[1][7])
	assert.Equal(t, "", records[2][2]) // sin SKU
}

func TestWriteSalesCSV(t *testing.T) {
	rows := []repository.SaleExportRow{
		{
			ID:            7,
			Date:          time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC),
			TotalAmount:   dec("42.5"),
			PaymentMethod: "efectivo",
			CustomerName:  "María López",
		},
		{ID: 6, Date: time.Date(2026, 8, 19, 9, 0, 0, 0, time.UTC),
			TotalAmount: dec("10"), PaymentMethod: "tarjeta"},
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteSalesCSV(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "7", records[1][0])
	assert.Equal(t, "2026-08-20 14:30:00", records[1][1])
	assert.Equal(t, "María López", records[1][2])
	assert.Equal(t, "42.50", records[1][4])
	assert.Equal(t, "", records[2][2]) // venta sin cliente
}
