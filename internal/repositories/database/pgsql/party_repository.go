package pgsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vendasys/vendas_pos_app/internal/apperrors"
	"github.com/vendasys/vendas_pos_app/internal/core/domain"
	"github.com/vendasys/vendas_pos_app/internal/core/ports"
	"github.com/vendasys/vendas_pos_app/internal/models"
)

type PgxCustomerRepository struct {
	gw *Gateway
}

func newPgxCustomerRepository(gw *Gateway) ports.CustomerRepository {
	return &PgxCustomerRepository{gw: gw}
}

var _ ports.CustomerRepository = (*PgxCustomerRepository)(nil)

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func toModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID: d.CustomerID,
		Name:       d.Name,
		Phone:      nullable(d.Phone),
		Email:      nullable(d.Email),
		Address:    nullable(d.Address),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID: m.CustomerID,
		Name:       m.Name,
		Phone:      m.Phone.String,
		Email:      m.Email.String,
		Address:    m.Address.String,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const contactColumns = `name, phone, email, address, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := toModelCustomer(customer)
	query := `
		INSERT INTO customers (customer_id, name, phone, email, address,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.gw.Execute(ctx, query,
		m.CustomerID, m.Name, m.Phone, m.Email, m.Address,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save customer: %w", err)
	}
	return nil
}

func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	m := toModelCustomer(customer)
	query := `
		UPDATE customers
		SET name = $1, phone = $2, email = $3, address = $4, last_updated_at = $5, last_updated_by = $6
		WHERE customer_id = $7;
	`
	affected, err := r.gw.Execute(ctx, query,
		m.Name, m.Phone, m.Email, m.Address, m.LastUpdatedAt, m.LastUpdatedBy, m.CustomerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := fmt.Sprintf(`SELECT customer_id, %s FROM customers WHERE customer_id = $1;`, contactColumns)

	var found bool
	var m models.Customer
	err := r.gw.Select(ctx, func(rows pgx.Rows) error {
		for rows.Next() {
			if err := rows.Scan(
				&m.CustomerID, &m.Name, &m.Phone, &m.Email, &m.Address,
				&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
			); err != nil {
				return err
			}
			found = true
		}
		return nil
	}, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	if !found {
		return nil, apperrors.ErrNotFound
	}
	d := toDomainCustomer(m)
	return &d, nil
}

func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, limit, offset int) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf(`
		SELECT customer_id, %s FROM customers
		ORDER BY name
		LIMIT $1 OFFSET $2;
	`, contactColumns)

	var ds []domain.Customer
	err := r.gw.Select(ctx, func(rows pgx.Rows) error {
		ds = ds[:0]
		for rows.Next() {
			var m models.Customer
			if err := rows.Scan(
				&m.CustomerID, &m.Name, &m.Phone, &m.Email, &m.Address,
				&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
			); err != nil {
				return err
			}
			ds = append(ds, toDomainCustomer(m))
		}
		return nil
	}, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return ds, nil
}

// DeleteCustomer hard-deletes. The foreign key from sales is RESTRICT, so a
// customer with sales history surfaces ErrForeignKey from the gateway.
func (r *PgxCustomerRepository) DeleteCustomer(ctx context.Context, customerID string) error {
	affected, err := r.gw.Execute(ctx, `DELETE FROM customers WHERE customer_id = $1;`, customerID)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

type PgxSupplierRepository struct {
	gw *Gateway
}

func newPgxSupplierRepository(gw *Gateway) ports.SupplierRepository {
	return &PgxSupplierRepository{gw: gw}
}

var _ ports.SupplierRepository = (*PgxSupplierRepository)(nil)

func toModelSupplier(d domain.Supplier) models.Supplier {
	return models.Supplier{
		SupplierID: d.SupplierID,
		Name:       d.Name,
		Phone:      nullable(d.Phone),
		Email:      nullable(d.Email),
		Address:    nullable(d.Address),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainSupplier(m models.Supplier) domain.Supplier {
	return domain.Supplier{
		SupplierID: m.SupplierID,
		Name:       m.Name,
		Phone:      m.Phone.String,
		Email:      m.Email.String,
		Address:    m.Address.String,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func (r *PgxSupplierRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	m := toModelSupplier(supplier)
	query := `
		INSERT INTO suppliers (supplier_id, name, phone, email, address,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.gw.Execute(ctx, query,
		m.SupplierID, m.Name, m.Phone, m.Email, m.Address,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save supplier: %w", err)
	}
	return nil
}

func (r *PgxSupplierRepository) UpdateSupplier(ctx context.Context, supplier domain.Supplier) error {
	m := toModelSupplier(supplier)
	query := `
		UPDATE suppliers
		SET name = $1, phone = $2, email = $3, address = $4, last_updated_at = $5, last_updated_by = $6
		WHERE supplier_id = $7;
	`
	affected, err := r.gw.Execute(ctx, query,
		m.Name, m.Phone, m.Email, m.Address, m.LastUpdatedAt, m.LastUpdatedBy, m.SupplierID,
	)
	if err != nil {
		return fmt.Errorf("failed to update supplier: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxSupplierRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	query := fmt.Sprintf(`SELECT supplier_id, %s FROM suppliers WHERE supplier_id = $1;`, contactColumns)

	var found bool
	var m models.Supplier
	err := r.gw.Select(ctx, func(rows pgx.Rows) error {
		for rows.Next() {
			if err := rows.Scan(
				&m.SupplierID, &m.Name, &m.Phone, &m.Email, &m.Address,
				&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
			); err != nil {
				return err
			}
			found = true
		}
		return nil
	}, query, supplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to find supplier: %w", err)
	}
	if !found {
		return nil, apperrors.ErrNotFound
	}
	d := toDomainSupplier(m)
	return &d, nil
}

func (r *PgxSupplierRepository) ListSuppliers(ctx context.Context, limit, offset int) ([]domain.Supplier, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf(`
		SELECT supplier_id, %s FROM suppliers
		ORDER BY name
		LIMIT $1 OFFSET $2;
	`, contactColumns)

	var ds []domain.Supplier
	err := r.gw.Select(ctx, func(rows pgx.Rows) error {
		ds = ds[:0]
		for rows.Next() {
			var m models.Supplier
			if err := rows.Scan(
				&m.SupplierID, &m.Name, &m.Phone, &m.Email, &m.Address,
				&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
			); err != nil {
				return err
			}
			ds = append(ds, toDomainSupplier(m))
		}
		return nil
	}, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	return ds, nil
}

func (r *PgxSupplierRepository) DeleteSupplier(ctx context.Context, supplierID string) error {
	affected, err := r.gw.Execute(ctx, `DELETE FROM suppliers WHERE supplier_id = $1;`, supplierID)
	if err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
