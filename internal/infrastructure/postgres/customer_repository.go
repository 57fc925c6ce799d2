package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/entity"
	"github.com/youssefyouyoudev/GestionStock/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepository)(nil)

// CustomerRepository implementación PostgreSQL del repositorio de clientes.
type CustomerRepository struct {
	q Querier
}

func NewCustomerRepository(q Querier) *CustomerRepository {
	return &CustomerRepository{q: q}
}

const customerColumns = `id, name, COALESCE(phone, ''), COALESCE(email, ''), COALESCE(address, '')`

func (r *CustomerRepository) Create(customer *entity.Customer) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO customers (id, name, phone, email, address)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''))`,
		customer.ID, customer.Name, customer.Phone, customer.Email, customer.Address)
	if err != nil {
		return fmt.Errorf("error al crear cliente: %w", err)
	}
	return nil
}

func (r *CustomerRepository) GetByID(id string) (*entity.Customer, error) {
	var c entity.Customer
	err := r.q.QueryRow(context.Background(),
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error al obtener cliente: %w", err)
	}
	return &c, nil
}

func (r *CustomerRepository) List() ([]*entity.Customer, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+customerColumns+` FROM customers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error al listar clientes: %w", err)
	}
	defer rows.Close()

	var customers []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address); err != nil {
			return nil, fmt.Errorf("error al escanear cliente: %w", err)
		}
		customers = append(customers, &c)
	}
	return customers, rows.Err()
}
