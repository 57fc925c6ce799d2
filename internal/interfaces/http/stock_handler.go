package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/youssefyouyoudev/GestionStock/internal/application/dto"
	"github.com/youssefyouyoudev/GestionStock/internal/application/ledger"
	"github.com/youssefyouyoudev/GestionStock/internal/application/report"
)

// StockHandler maneja las operaciones del motor de transacciones: compras,
// ventas, ajustes y el historial de movimientos (protegido).
type StockHandler struct {
	ledgerUC *ledger.UseCase
	reportUC *report.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(ledgerUC *ledger.UseCase, reportUC *report.UseCase) *StockHandler {
	return &StockHandler{ledgerUC: ledgerUC, reportUC: reportUC}
}

// CreatePurchase registra una compra multi-línea como unidad atómica.
func (h *StockHandler) CreatePurchase(c *fiber.Ctx) error {
	var in dto.PurchaseRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	lines := make([]ledger.PurchaseLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, ledger.PurchaseLineInput{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitCost:  l.UnitCost,
		})
	}
	id, err := h.ledgerUC.ApplyPurchase(c.Context(), ledger.PurchaseInput{
		SupplierID: in.SupplierID,
		Lines:      lines,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransactionResponse{ID: id})
}

// CreateSale registra una venta multi-línea. Si alguna línea excede la
// existencia disponible, ninguna se aplica (409 INSUFFICIENT_STOCK).
func (h *StockHandler) CreateSale(c *fiber.Ctx) error {
	var in dto.SaleRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	lines := make([]ledger.SaleLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, ledger.SaleLineInput{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	id, err := h.ledgerUC.ApplySale(c.Context(), ledger.SaleInput{
		CustomerID:    in.CustomerID,
		PaymentMethod: in.PaymentMethod,
		Lines:         lines,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransactionResponse{ID: id})
}

// AdjustStock aplica un ajuste manual de existencia (delta con signo; puede
// dejar la existencia en negativo).
func (h *StockHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if err := h.ledgerUC.AdjustStock(c.Context(), in.ProductID, in.Delta, in.Note); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListMovements devuelve el historial de movimientos, el más reciente
// primero. ?limit= acota el tamaño.
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	out, err := h.reportUC.MovementHistory(c.Context(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
