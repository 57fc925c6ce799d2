package repository

import (
	"github.com/shopspring/decimal"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
// SetQuantity y SetQuantityAndPrice son de uso exclusivo del motor de
// transacciones; el CRUD no toca existencia ni costo.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción del TxRunner.
	GetForUpdate(id string) (*entity.Product, error)
	// Search lista productos con nombre de categoría; search vacío lista todos.
	Search(search string) ([]*entity.Product, error)
	Update(product *entity.Product) error
	SetQuantity(id string, quantity int64) error
	SetQuantityAndPrice(id string, quantity int64, purchasePrice decimal.Decimal) error
	Delete(id string) error
}
