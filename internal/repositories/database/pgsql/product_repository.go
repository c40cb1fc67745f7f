package pgsql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vendasys/vendas_pos_app/internal/apperrors"
	"github.com/vendasys/vendas_pos_app/internal/core/domain"
	"github.com/vendasys/vendas_pos_app/internal/core/ports"
	"github.com/vendasys/vendas_pos_app/internal/models"
)

type PgxProductRepository struct {
	gw *Gateway
}

func newPgxProductRepository(gw *Gateway) ports.ProductRepository {
	return &PgxProductRepository{gw: gw}
}

var _ ports.ProductRepository = (*PgxProductRepository)(nil)

func toModelProduct(d domain.Product) models.Product {
	m := models.Product{
		ProductID:     d.ProductID,
		Name:          d.Name,
		CategoryID:    d.CategoryID,
		PurchasePrice: d.PurchasePrice,
		SalePrice:     d.SalePrice,
		StockQty:      d.StockQty,
		Unit:          d.Unit,
		IsActive:      d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
	if d.Barcode != nil {
		m.Barcode = sql.NullString{String: *d.Barcode, Valid: true}
	}
	return m
}

func toDomainProduct(m models.Product) domain.Product {
	d := domain.Product{
		ProductID:     m.ProductID,
		Name:          m.Name,
		CategoryID:    m.CategoryID,
		CategoryName:  m.CategoryName.String,
		PurchasePrice: m.PurchasePrice,
		SalePrice:     m.SalePrice,
		StockQty:      m.StockQty,
		Unit:          m.Unit,
		IsActive:      m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.Barcode.Valid {
		barcode := m.Barcode.String
		d.Barcode = &barcode
	}
	return d
}

const productColumns = `p.product_id, p.name, p.barcode, p.category_id, c.name,
	p.purchase_price, p.sale_price, p.stock_qty, p.unit, p.is_active,
	p.created_at, p.created_by, p.last_updated_at, p.last_updated_by`

func scanProduct(row pgx.Rows, m *models.Product) error {
	return row.Scan(
		&m.ProductID,
		&m.Name,
		&m.Barcode,
		&m.CategoryID,
		&m.CategoryName,
		&m.PurchasePrice,
		&m.SalePrice,
		&m.StockQty,
		&m.Unit,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
}

func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	m := toModelProduct(product)
	query := `
		INSERT INTO products (product_id, name, barcode, category_id, purchase_price, sale_price,
			stock_qty, unit, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.gw.Execute(ctx, query,
		m.ProductID, m.Name, m.Barcode, m.CategoryID, m.PurchasePrice, m.SalePrice,
		m.StockQty, m.Unit, m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

// UpdateProduct updates catalog fields only; stock_qty is owned by the stock
// ledger and is deliberately absent from the SET list.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	m := toModelProduct(product)
	query := `
		UPDATE products
		SET name = $1, barcode = $2, category_id = $3, purchase_price = $4, sale_price = $5,
			unit = $6, is_active = $7, last_updated_at = $8, last_updated_by = $9
		WHERE product_id = $10;
	`
	affected, err := r.gw.Execute(ctx, query,
		m.Name, m.Barcode, m.CategoryID, m.PurchasePrice, m.SalePrice,
		m.Unit, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy, m.ProductID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	return r.findProductWhere(ctx, "p.product_id = $1", productID)
}

func (r *PgxProductRepository) FindProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	return r.findProductWhere(ctx, "p.barcode = $1", barcode)
}

func (r *PgxProductRepository) findProductWhere(ctx context.Context, where string, arg any) (*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		JOIN categories c ON c.category_id = p.category_id
		WHERE %s;
	`, productColumns, where)

	var found bool
	var m models.Product
	err := r.gw.Select(ctx, func(rows pgx.Rows) error {
		for rows.Next() {
			if err := scanProduct(rows, &m); err != nil {
				return err
			}
			found = true
		}
		return nil
	}, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	if !found {
		return nil, apperrors.ErrNotFound
	}
	d := toDomainProduct(m)
	return &d, nil
}

func (r *PgxProductRepository) SearchProducts(ctx context.Context, term string, forSale bool, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		JOIN categories c ON c.category_id = p.category_id
		WHERE ($1 = '' OR p.name ILIKE '%%' || $1 || '%%' OR p.barcode = $1 OR c.name ILIKE '%%' || $1 || '%%')
		  AND ($2 = false OR (p.is_active AND p.stock_qty > 0))
		ORDER BY p.name
		LIMIT $3;
	`, productColumns)

	var ms []models.Product
	err := r.gw.Select(ctx, func(rows pgx.Rows) error {
		ms = ms[:0]
		for rows.Next() {
			var m models.Product
			if err := scanProduct(rows, &m); err != nil {
				return err
			}
			ms = append(ms, m)
		}
		return nil
	}, query, term, forSale, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	ds := make([]domain.Product, len(ms))
	for i, m := range ms {
		ds[i] = toDomainProduct(m)
	}
	return ds, nil
}

func (r *PgxProductRepository) DeactivateProduct(ctx context.Context, productID, userID string, now time.Time) error {
	query := `
		UPDATE products
		SET is_active = false, last_updated_at = $1, last_updated_by = $2
		WHERE product_id = $3 AND is_active;
	`
	affected, err := r.gw.Execute(ctx, query, now, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to deactivate product: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProductRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT category_id, name FROM categories ORDER BY name;`

	var ds []domain.Category
	err := r.gw.Select(ctx, func(rows pgx.Rows) error {
		ds = ds[:0]
		for rows.Next() {
			var m models.Category
			if err := rows.Scan(&m.CategoryID, &m.Name); err != nil {
				return err
			}
			ds = append(ds, domain.Category{CategoryID: m.CategoryID, Name: m.Name})
		}
		return nil
	}, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return ds, nil
}

func (r *PgxProductRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	query := `INSERT INTO categories (category_id, name) VALUES ($1, $2);`
	if _, err := r.gw.Execute(ctx, query, category.CategoryID, category.Name); err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}
