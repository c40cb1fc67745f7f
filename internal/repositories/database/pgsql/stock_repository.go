package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vendasys/vendas_pos_app/internal/apperrors"
	"github.com/vendasys/vendas_pos_app/internal/core/domain"
	"github.com/vendasys/vendas_pos_app/internal/core/ports"
	"github.com/vendasys/vendas_pos_app/internal/models"
)

type PgxStockRepository struct {
	gw *Gateway
}

func newPgxStockRepository(gw *Gateway) ports.StockRepository {
	return &PgxStockRepository{gw: gw}
}

var _ ports.StockRepository = (*PgxStockRepository)(nil)

// RecordMovement appends the movement and applies its signed delta to the
// product's on-hand quantity in one transaction. For outbound movements the
// check and the decrement are a single conditional UPDATE, so a concurrent
// movement cannot slip between them. Returns the on-hand quantity after the
// movement.
func (r *PgxStockRepository) RecordMovement(ctx context.Context, movement domain.StockMovement) (int, error) {
	var onHand int
	err := r.gw.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		updateQuery := `
			UPDATE products
			SET stock_qty = stock_qty + $1
			WHERE product_id = $2 AND stock_qty + $1 >= 0
			RETURNING stock_qty;
		`
		err := tx.QueryRow(ctx, updateQuery, movement.SignedQuantity(), movement.ProductID).Scan(&onHand)
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the product does not exist or stock cannot cover the
			// outbound quantity. Distinguish the two for the caller.
			var exists bool
			if err := tx.QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM products WHERE product_id = $1);`,
				movement.ProductID,
			).Scan(&exists); err != nil {
				return fmt.Errorf("failed to check product existence: %w", err)
			}
			if !exists {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("%w: product %s", apperrors.ErrInsufficientStock, movement.ProductID)
		}
		if err != nil {
			return fmt.Errorf("failed to apply stock movement: %w", err)
		}

		insertQuery := `
			INSERT INTO stock_movements (movement_id, product_id, direction, quantity, reason, moved_at)
			VALUES ($1, $2, $3, $4, $5, $6);
		`
		if _, err := tx.Exec(ctx, insertQuery,
			movement.MovementID, movement.ProductID,
			string(movement.Direction), movement.Quantity, string(movement.Reason), movement.MovedAt,
		); err != nil {
			return fmt.Errorf("failed to insert stock movement: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return onHand, nil
}

func (r *PgxStockRepository) ListMovements(ctx context.Context, productID string, limit int) ([]domain.StockMovement, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT m.movement_id, m.product_id, p.name, m.direction, m.quantity, m.reason, m.moved_at
		FROM stock_movements m
		JOIN products p ON p.product_id = m.product_id
		WHERE ($1 = '' OR m.product_id = $1)
		ORDER BY m.moved_at DESC
		LIMIT $2;
	`
	var ds []domain.StockMovement
	err := r.gw.Select(ctx, func(rows pgx.Rows) error {
		ds = ds[:0]
		for rows.Next() {
			var m models.StockMovement
			if err := rows.Scan(
				&m.MovementID, &m.ProductID, &m.ProductName,
				&m.Direction, &m.Quantity, &m.Reason, &m.MovedAt,
			); err != nil {
				return err
			}
			ds = append(ds, domain.StockMovement{
				MovementID:  m.MovementID,
				ProductID:   m.ProductID,
				ProductName: m.ProductName.String,
				Direction:   domain.MovementDirection(m.Direction),
				Quantity:    m.Quantity,
				Reason:      domain.MovementReason(m.Reason),
				MovedAt:     m.MovedAt,
			})
		}
		return nil
	}, query, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock movements: %w", err)
	}
	return ds, nil
}

func (r *PgxStockRepository) LowStock(ctx context.Context, threshold int) ([]domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		JOIN categories c ON c.category_id = p.category_id
		WHERE p.is_active AND p.stock_qty < $1
		ORDER BY p.stock_qty, p.name;
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
	}, query, threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock products: %w", err)
	}

	ds := make([]domain.Product, len(ms))
	for i, m := range ms {
		ds[i] = toDomainProduct(m)
	}
	return ds, nil
}
