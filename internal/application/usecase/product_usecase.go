package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/youssefyouyoudev/GestionStock/internal/application/dto"
	"github.com/youssefyouyoudev/GestionStock/internal/application/ledger"
	"github.com/youssefyouyoudev/GestionStock/internal/domain"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/entity"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. La existencia y el costo
// de compra se manejan vía el motor de transacciones, no por aquí.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner ledger.TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner ledger.TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner}
}

// Create crea un producto. Si trae existencia inicial, el alta y su
// movimiento IN "Stock inicial" se confirman en la misma transacción, para
// que la suma de movimientos nunca pierda un cambio de existencia.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Quantity < 0 || in.MinQuantity < 0 ||
		in.PurchasePrice.IsNegative() || in.SellingPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          in.Name,
		SKU:           in.SKU,
		CategoryID:    in.CategoryID,
		Description:   in.Description,
		PurchasePrice: in.PurchasePrice,
		SellingPrice:  in.SellingPrice,
		Quantity:      in.Quantity,
		MinQuantity:   in.MinQuantity,
		CreatedAt:     time.Now(),
	}
	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		movements repository.StockMovementRepository,
		_ repository.PurchaseRepository,
		_ repository.SaleRepository,
	) error {
		if err := products.Create(product); err != nil {
			return err
		}
		if product.Quantity == 0 {
			return nil
		}
		return movements.Append(&entity.StockMovement{
			ProductID: product.ID,
			Quantity:  product.Quantity,
			Type:      entity.MovementTypeIN,
			Note:      "Stock inicial",
			CreatedAt: product.CreatedAt,
		})
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List lista productos; search filtra por nombre o SKU.
func (uc *ProductUseCase) List(search string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.Search(search)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Update actualiza los campos maestros de un producto. No permite modificar
// existencia ni costo de compra.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.SKU != nil {
		product.SKU = *in.SKU
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.SellingPrice != nil {
		if in.SellingPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.SellingPrice = *in.SellingPrice
	}
	if in.MinQuantity != nil {
		if *in.MinQuantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinQuantity = *in.MinQuantity
	}
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto. Falla si el producto tiene líneas o
// movimientos asociados (restricción referencial), por diseño: el historial
// no se retracta.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		CategoryID:    p.CategoryID,
		CategoryName:  p.CategoryName,
		Description:   p.Description,
		PurchasePrice: p.PurchasePrice,
		SellingPrice:  p.SellingPrice,
		Quantity:      p.Quantity,
		MinQuantity:   p.MinQuantity,
		CreatedAt:     p.CreatedAt,
	}
}
