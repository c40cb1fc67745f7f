package pgsql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vendasys/vendas_pos_app/internal/apperrors"
	"github.com/vendasys/vendas_pos_app/internal/core/domain"
	"github.com/vendasys/vendas_pos_app/internal/core/ports"
	"github.com/vendasys/vendas_pos_app/internal/models"
)

type PgxSaleRepository struct {
	gw *Gateway
}

func newPgxSaleRepository(gw *Gateway) ports.SaleRepository {
	return &PgxSaleRepository{gw: gw}
}

var _ ports.SaleRepository = (*PgxSaleRepository)(nil)

func toDomainSale(m models.Sale) domain.Sale {
	d := domain.Sale{
		SaleID:        m.SaleID,
		CustomerName:  m.CustomerName.String,
		UserID:        m.UserID,
		UserName:      m.UserName.String,
		SoldAt:        m.SoldAt,
		Total:         m.Total,
		PaymentMethod: domain.PaymentMethod(m.PaymentMethod),
		Discount:      m.Discount,
		Notes:         m.Notes.String,
	}
	if m.CustomerID.Valid {
		id := m.CustomerID.String
		d.CustomerID = &id
	}
	return d
}

const saleColumns = `s.sale_id, s.customer_id, c.name, s.user_id, u.name, s.sold_at,
	s.total, s.payment_method, s.discount, s.notes`

func scanSale(rows pgx.Rows, m *models.Sale) error {
	return rows.Scan(
		&m.SaleID,
		&m.CustomerID,
		&m.CustomerName,
		&m.UserID,
		&m.UserName,
		&m.SoldAt,
		&m.Total,
		&m.PaymentMethod,
		&m.Discount,
		&m.Notes,
	)
}

// CreateSale writes the sale header, every line item, the stock decrements
// and the outbound stock movements in one database transaction. Each
// decrement is conditional on sufficient stock; a line that cannot be
// covered aborts the whole transaction with ErrInsufficientStock.
func (r *PgxSaleRepository) CreateSale(ctx context.Context, sale domain.Sale) error {
	return r.gw.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		headerQuery := `
			INSERT INTO sales (sale_id, customer_id, user_id, sold_at, total, payment_method, discount, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
		`
		var customerID sql.NullString
		if sale.CustomerID != nil {
			customerID = sql.NullString{String: *sale.CustomerID, Valid: true}
		}
		if _, err := tx.Exec(ctx, headerQuery,
			sale.SaleID, customerID, sale.UserID, sale.SoldAt,
			sale.Total, string(sale.PaymentMethod), sale.Discount, nullable(sale.Notes),
		); err != nil {
			return fmt.Errorf("failed to insert sale header: %w", err)
		}

		lineQuery := `
			INSERT INTO sale_line_items (line_item_id, sale_id, product_id, position, quantity, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7);
		`
		batch := &pgx.Batch{}
		for _, item := range sale.Items {
			batch.Queue(lineQuery,
				item.LineItemID, sale.SaleID, item.ProductID,
				item.Position, item.Quantity, item.UnitPrice, item.LineTotal,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert sale line items: %w", err)
		}

		decrementQuery := `
			UPDATE products
			SET stock_qty = stock_qty - $1
			WHERE product_id = $2 AND stock_qty >= $1;
		`
		movementQuery := `
			INSERT INTO stock_movements (movement_id, product_id, direction, quantity, reason, moved_at)
			VALUES ($1, $2, $3, $4, $5, $6);
		`
		for _, item := range sale.Items {
			tag, err := tx.Exec(ctx, decrementQuery, item.Quantity, item.ProductID)
			if err != nil {
				return fmt.Errorf("failed to decrement stock for product %s: %w", item.ProductID, err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("%w: product %s", apperrors.ErrInsufficientStock, item.ProductID)
			}
			if _, err := tx.Exec(ctx, movementQuery,
				uuid.NewString(), item.ProductID,
				string(domain.MovementOut), item.Quantity, string(domain.ReasonSale), sale.SoldAt,
			); err != nil {
				return fmt.Errorf("failed to record sale movement for product %s: %w", item.ProductID, err)
			}
		}
		return nil
	})
}

func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM sales s
		LEFT JOIN customers c ON c.customer_id = s.customer_id
		JOIN users u ON u.user_id = s.user_id
		WHERE s.sale_id = $1;
	`, saleColumns)

	var found bool
	var m models.Sale
	err := r.gw.Select(ctx, func(rows pgx.Rows) error {
		for rows.Next() {
			if err := scanSale(rows, &m); err != nil {
				return err
			}
			found = true
		}
		return nil
	}, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find sale: %w", err)
	}
	if !found {
		return nil, apperrors.ErrNotFound
	}

	d := toDomainSale(m)
	items, err := r.findLineItems(ctx, saleID)
	if err != nil {
		return nil, err
	}
	d.Items = items
	return &d, nil
}

func (r *PgxSaleRepository) findLineItems(ctx context.Context, saleID string) ([]domain.SaleLineItem, error) {
	query := `
		SELECT li.line_item_id, li.sale_id, li.product_id, p.name, li.position, li.quantity, li.unit_price, li.line_total
		FROM sale_line_items li
		JOIN products p ON p.product_id = li.product_id
		WHERE li.sale_id = $1
		ORDER BY li.position;
	`
	var items []domain.SaleLineItem
	err := r.gw.Select(ctx, func(rows pgx.Rows) error {
		items = items[:0]
		for rows.Next() {
			var m models.SaleLineItem
			if err := rows.Scan(
				&m.LineItemID, &m.SaleID, &m.ProductID, &m.ProductName,
				&m.Position, &m.Quantity, &m.UnitPrice, &m.LineTotal,
			); err != nil {
				return err
			}
			items = append(items, domain.SaleLineItem{
				LineItemID:  m.LineItemID,
				SaleID:      m.SaleID,
				ProductID:   m.ProductID,
				ProductName: m.ProductName.String,
				Position:    m.Position,
				Quantity:    m.Quantity,
				UnitPrice:   m.UnitPrice,
				LineTotal:   m.LineTotal,
			})
		}
		return nil
	}, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sale line items: %w", err)
	}
	return items, nil
}

func (r *PgxSaleRepository) ListSalesBetween(ctx context.Context, from, to time.Time, limit int) ([]domain.Sale, error) {
	if limit <= 0 {
		limit = 100
	}
	query := fmt.Sprintf(`
		SELECT %s
		FROM sales s
		LEFT JOIN customers c ON c.customer_id = s.customer_id
		JOIN users u ON u.user_id = s.user_id
		WHERE s.sold_at >= $1 AND s.sold_at < $2
		ORDER BY s.sold_at DESC
		LIMIT $3;
	`, saleColumns)

	var ds []domain.Sale
	err := r.gw.Select(ctx, func(rows pgx.Rows) error {
		ds = ds[:0]
		for rows.Next() {
			var m models.Sale
			if err := scanSale(rows, &m); err != nil {
				return err
			}
			ds = append(ds, toDomainSale(m))
		}
		return nil
	}, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return ds, nil
}
