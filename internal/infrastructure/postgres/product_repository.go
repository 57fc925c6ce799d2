package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/youssefyouyoudev/GestionStock/internal/domain"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/entity"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/repository"
)

// Ensure ProductRepository implements repository.ProductRepository.
var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository implementación PostgreSQL del repositorio de productos.
// Funciona sobre el pool o dentro de una transacción según el Querier.
type ProductRepository struct {
	q Querier
}

// NewProductRepository crea el repositorio con el Querier dado.
func NewProductRepository(q Querier) *ProductRepository {
	return &ProductRepository{q: q}
}

const productColumns = `id, name, COALESCE(sku, ''), COALESCE(category_id::text, ''),
	COALESCE(description, ''), purchase_price, selling_price, quantity, min_quantity, created_at`

// Create inserta un producto nuevo.
func (r *ProductRepository) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, sku, category_id, description,
			purchase_price, selling_price, quantity, min_quantity, created_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, '')::uuid, NULLIF($5, ''),
			$6, $7, $8, $9, NOW())
		RETURNING created_at`

	err := r.q.QueryRow(context.Background(), query,
		product.ID, product.Name, product.SKU, product.CategoryID, product.Description,
		product.PurchasePrice, product.SellingPrice, product.Quantity, product.MinQuantity,
	).Scan(&product.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("error al crear producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (r *ProductRepository) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene un producto bloqueando la fila hasta el fin de la
// transacción. Devuelve (nil, nil) si no existe.
func (r *ProductRepository) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Search lista productos con el nombre de su categoría. Con search vacío
// devuelve todos; si no, filtra por nombre o SKU (case-insensitive).
func (r *ProductRepository) Search(search string) ([]*entity.Product, error) {
	query := `
		SELECT p.id, p.name, COALESCE(p.sku, ''), COALESCE(p.category_id::text, ''),
			COALESCE(p.description, ''), p.purchase_price, p.selling_price,
			p.quantity, p.min_quantity, p.created_at, COALESCE(c.name, '')
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE $1 = '' OR p.name ILIKE '%' || $1 || '%' OR p.sku ILIKE '%' || $1 || '%'
		ORDER BY p.name`

	rows, err := r.q.Query(context.Background(), query, search)
	if err != nil {
		return nil, fmt.Errorf("error al buscar productos: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.CategoryID, &p.Description,
			&p.PurchasePrice, &p.SellingPrice, &p.Quantity, &p.MinQuantity,
			&p.CreatedAt, &p.CategoryName); err != nil {
			return nil, fmt.Errorf("error al escanear producto: %w", err)
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}

// Update actualiza los datos maestros del producto. No toca quantity ni
// purchase_price: esos pertenecen al motor de transacciones.
func (r *ProductRepository) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, sku = NULLIF($3, ''), category_id = NULLIF($4, '')::uuid,
			description = NULLIF($5, ''), selling_price = $6, min_quantity = $7
		WHERE id = $1`

	tag, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.SKU, product.CategoryID,
		product.Description, product.SellingPrice, product.MinQuantity)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("error al actualizar producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetQuantity fija la existencia del producto (uso del motor de
// transacciones, con la fila ya bloqueada).
func (r *ProductRepository) SetQuantity(id string, quantity int64) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE products SET quantity = $2 WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("error al actualizar existencia: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetQuantityAndPrice fija existencia y último costo de compra en una sola
// sentencia (uso del motor de transacciones).
func (r *ProductRepository) SetQuantityAndPrice(id string, quantity int64, purchasePrice decimal.Decimal) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE products SET quantity = $2, purchase_price = $3 WHERE id = $1`,
		id, quantity, purchasePrice)
	if err != nil {
		return fmt.Errorf("error al actualizar existencia y costo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto.
func (r *ProductRepository) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error al eliminar producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.CategoryID, &p.Description,
		&p.PurchasePrice, &p.SellingPrice, &p.Quantity, &p.MinQuantity, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error al obtener producto: %w", err)
	}
	return &p, nil
}
