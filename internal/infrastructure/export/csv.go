// Package export genera los archivos CSV descargables (inventario y
// ventas). Usa encoding/csv del estándar: el formato es trivial y no
// amerita dependencia.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/youssefyouyoudev/GestionStock/internal/domain/entity"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/repository"
)

// WriteProductsCSV escribe el inventario completo como CSV.
func WriteProductsCSV(w io.Writer, products []*entity.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"id", "nombre", "sku", "categoria", "existencia", "minimo",
		"costo_compra", "precio_venta",
	}); err != nil {
		return fmt.Errorf("export: cabecera de productos: %w", err)
	}
	for _, p := range products {
		record := []string{
			p.ID,
			p.Name,
			p.SKU,
			p.CategoryName,
			strconv.FormatInt(p.Quantity, 10),
			strconv.FormatInt(p.MinQuantity, 10),
			p.PurchasePrice.StringFixed(2),
			p.SellingPrice.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("export: fila de producto %s: %w", p.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSalesCSV escribe el listado de ventas como CSV, la más reciente
// primero.
func WriteSalesCSV(w io.Writer, rows []repository.SaleExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"id", "fecha", "cliente", "metodo_pago", "total",
	}); err != nil {
		return fmt.Errorf("export: cabecera de ventas: %w", err)
	}
	for _, s := range rows {
		record := []string{
			strconv.FormatInt(s.ID, 10),
			s.Date.Format("2006-01-02 15:04:05"),
			s.CustomerName,
			s.PaymentMethod,
			s.TotalAmount.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("export: fila de venta %d: %w", s.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
