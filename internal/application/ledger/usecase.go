package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/youssefyouyoudev/GestionStock/internal/domain"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/entity"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/repository"
)

// UseCase es el motor de transacciones de inventario: aplica compras y
// ventas multi-línea como unidades atómicas y registra cada cambio de
// existencia como un movimiento inmutable.
//
// Contrato de concurrencia: cada operación bloquea las filas de los
// productos tocados (SELECT FOR UPDATE) en orden ascendente de ID, de modo
// que dos transacciones concurrentes sobre productos solapados se
// serializan y no pueden sobrevender con una existencia obsoleta.
type UseCase struct {
	txRunner TxRunner
}

// NewUseCase construye el motor.
func NewUseCase(txRunner TxRunner) *UseCase {
	return &UseCase{txRunner: txRunner}
}

// PurchaseLineInput es una línea de compra: producto, cantidad y costo unitario.
type PurchaseLineInput struct {
	ProductID string
	Quantity  int64
	UnitCost  decimal.Decimal
}

// PurchaseInput entrada de ApplyPurchase.
type PurchaseInput struct {
	SupplierID string // vacío = compra sin proveedor
	Lines      []PurchaseLineInput
}

// SaleLineInput es una línea de venta: producto, cantidad y precio unitario.
type SaleLineInput struct {
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// SaleInput entrada de ApplySale.
type SaleInput struct {
	CustomerID    string // vacío = venta sin cliente
	PaymentMethod string
	Lines         []SaleLineInput
}

// ApplyPurchase aplica una compra como unidad atómica: cabecera, líneas en
// orden de entrada, existencia += cantidad, costo de compra = costo de la
// línea (last-write-wins, sin promediar) y un movimiento IN por línea.
// El total de la cabecera se calcula como Σ cantidad × costo y se escribe al
// final. Devuelve el ID de la cabecera.
func (uc *UseCase) ApplyPurchase(ctx context.Context, in PurchaseInput) (int64, error) {
	if len(in.Lines) == 0 {
		return 0, fmt.Errorf("%w: la compra no tiene líneas", domain.ErrInvalidInput)
	}
	for _, line := range in.Lines {
		if line.Quantity <= 0 {
			return 0, fmt.Errorf("%w: cantidad no positiva para el producto %s", domain.ErrInvalidInput, line.ProductID)
		}
		if line.UnitCost.IsNegative() {
			return 0, fmt.Errorf("%w: costo negativo para el producto %s", domain.ErrInvalidInput, line.ProductID)
		}
	}

	ids := make([]string, 0, len(in.Lines))
	for _, line := range in.Lines {
		ids = append(ids, line.ProductID)
	}

	var headerID int64
	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		movements repository.StockMovementRepository,
		purchases repository.PurchaseRepository,
		_ repository.SaleRepository,
	) error {
		locked, err := lockProducts(products, ids)
		if err != nil {
			return err
		}

		header := &entity.Purchase{SupplierID: in.SupplierID}
		if err := purchases.InsertHeader(header); err != nil {
			return err
		}
		headerID = header.ID

		now := time.Now()
		total := decimal.Zero
		for _, line := range in.Lines {
			product := locked[line.ProductID]
			if err := purchases.InsertLine(&entity.PurchaseLine{
				PurchaseID: header.ID,
				ProductID:  line.ProductID,
				Quantity:   line.Quantity,
				Price:      line.UnitCost,
			}); err != nil {
				return err
			}
			product.Quantity += line.Quantity
			product.PurchasePrice = line.UnitCost
			if err := products.SetQuantityAndPrice(product.ID, product.Quantity, product.PurchasePrice); err != nil {
				return err
			}
			if err := movements.Append(&entity.StockMovement{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Type:      entity.MovementTypeIN,
				Note:      fmt.Sprintf("Compra #%d", header.ID),
				CreatedAt: now,
			}); err != nil {
				return err
			}
			total = total.Add(line.UnitCost.Mul(decimal.NewFromInt(line.Quantity)))
		}
		return purchases.SetTotal(header.ID, total)
	})
	if err != nil {
		return 0, err
	}
	return headerID, nil
}

// ApplySale aplica una venta como unidad atómica. Primero valida TODAS las
// líneas contra la existencia bloqueada — la cantidad pedida se acumula por
// producto, así una venta con el mismo producto en varias líneas tampoco
// puede dejar existencia negativa — y solo después muta: cabecera, líneas,
// existencia -= cantidad (el costo de compra no se toca) y un movimiento OUT
// por línea. Si alguna línea no tiene stock, toda la venta se rechaza con
// InsufficientStockError y ninguna línea queda aplicada.
func (uc *UseCase) ApplySale(ctx context.Context, in SaleInput) (int64, error) {
	if len(in.Lines) == 0 {
		return 0, fmt.Errorf("%w: la venta no tiene líneas", domain.ErrInvalidInput)
	}
	if in.PaymentMethod == "" {
		return 0, fmt.Errorf("%w: método de pago requerido", domain.ErrInvalidInput)
	}
	for _, line := range in.Lines {
		if line.Quantity <= 0 {
			return 0, fmt.Errorf("%w: cantidad no positiva para el producto %s", domain.ErrInvalidInput, line.ProductID)
		}
		if line.UnitPrice.IsNegative() {
			return 0, fmt.Errorf("%w: precio negativo para el producto %s", domain.ErrInvalidInput, line.ProductID)
		}
	}

	ids := make([]string, 0, len(in.Lines))
	for _, line := range in.Lines {
		ids = append(ids, line.ProductID)
	}

	var headerID int64
	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		movements repository.StockMovementRepository,
		_ repository.PurchaseRepository,
		sales repository.SaleRepository,
	) error {
		locked, err := lockProducts(products, ids)
		if err != nil {
			return err
		}

		// Fase de validación: completa antes de cualquier mutación.
		requested := make(map[string]int64, len(locked))
		for _, line := range in.Lines {
			product := locked[line.ProductID]
			requested[line.ProductID] += line.Quantity
			if requested[line.ProductID] > product.Quantity {
				return &domain.InsufficientStockError{
					ProductID: product.ID,
					Name:      product.Name,
					Requested: requested[line.ProductID],
					Available: product.Quantity,
				}
			}
		}

		// Fase de aplicación.
		header := &entity.Sale{CustomerID: in.CustomerID, PaymentMethod: in.PaymentMethod}
		if err := sales.InsertHeader(header); err != nil {
			return err
		}
		headerID = header.ID

		now := time.Now()
		total := decimal.Zero
		for _, line := range in.Lines {
			product := locked[line.ProductID]
			if err := sales.InsertLine(&entity.SaleLine{
				SaleID:    header.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     line.UnitPrice,
			}); err != nil {
				return err
			}
			product.Quantity -= line.Quantity
			if err := products.SetQuantity(product.ID, product.Quantity); err != nil {
				return err
			}
			if err := movements.Append(&entity.StockMovement{
				ProductID: line.ProductID,
				Quantity:  -line.Quantity,
				Type:      entity.MovementTypeOUT,
				Note:      fmt.Sprintf("Venta #%d", header.ID),
				CreatedAt: now,
			}); err != nil {
				return err
			}
			total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity)))
		}
		return sales.SetTotal(header.ID, total)
	})
	if err != nil {
		return 0, err
	}
	return headerID, nil
}

// AdjustStock suma delta a la existencia del producto y registra un
// movimiento ADJUST. A diferencia de la venta, el ajuste puede dejar la
// existencia en negativo: la corrección manual (conteo físico, merma) es
// confiable, el punto de venta no.
func (uc *UseCase) AdjustStock(ctx context.Context, productID string, delta int64, note string) error {
	if productID == "" || delta == 0 {
		return fmt.Errorf("%w: producto y delta distinto de cero requeridos", domain.ErrInvalidInput)
	}
	if note == "" {
		note = "Ajuste manual"
	}
	return uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		movements repository.StockMovementRepository,
		_ repository.PurchaseRepository,
		_ repository.SaleRepository,
	) error {
		product, err := products.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if err := products.SetQuantity(product.ID, product.Quantity+delta); err != nil {
			return err
		}
		return movements.Append(&entity.StockMovement{
			ProductID: productID,
			Quantity:  delta,
			Type:      entity.MovementTypeADJUST,
			Note:      note,
			CreatedAt: time.Now(),
		})
	})
}

// lockProducts bloquea las filas de los productos referenciados en orden
// ascendente de ID para evitar interbloqueos entre transacciones
// concurrentes que tocan conjuntos solapados. Producto inexistente =
// ErrNotFound y rollback de toda la operación.
func lockProducts(products repository.ProductRepository, ids []string) (map[string]*entity.Product, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" {
			return nil, fmt.Errorf("%w: línea sin producto", domain.ErrInvalidInput)
		}
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	sort.Strings(unique)

	locked := make(map[string]*entity.Product, len(unique))
	for _, id := range unique {
		product, err := products.GetForUpdate(id)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		locked[id] = product
	}
	return locked, nil
}
