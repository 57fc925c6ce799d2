package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/entity"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepository)(nil)

// SupplierRepository implementación PostgreSQL del repositorio de proveedores.
type SupplierRepository struct {
	q Querier
}

func NewSupplierRepository(q Querier) *SupplierRepository {
	return &SupplierRepository{q: q}
}

const supplierColumns = `id, name, COALESCE(phone, ''), COALESCE(email, ''),
	COALESCE(address, ''), COALESCE(company, '')`

func (r *SupplierRepository) Create(supplier *entity.Supplier) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO suppliers (id, name, phone, email, address, company)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''))`,
		supplier.ID, supplier.Name, supplier.Phone, supplier.Email,
		supplier.Address, supplier.Company)
	if err != nil {
		return fmt.Errorf("error al crear proveedor: %w", err)
	}
	return nil
}

func (r *SupplierRepository) GetByID(id string) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(context.Background(),
		`SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Phone, &s.Email, &s.Address, &s.Company)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error al obtener proveedor: %w", err)
	}
	return &s, nil
}

func (r *SupplierRepository) List() ([]*entity.Supplier, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+supplierColumns+` FROM suppliers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error al listar proveedores: %w", err)
	}
	defer rows.Close()

	var suppliers []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Phone, &s.Email, &s.Address, &s.Company); err != nil {
			return nil, fmt.Errorf("error al escanear proveedor: %w", err)
		}
		suppliers = append(suppliers, &s)
	}
	return suppliers, rows.Err()
}
