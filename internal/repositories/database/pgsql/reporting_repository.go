package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/vendasys/vendas_pos_app/internal/core/domain"
	"github.com/vendasys/vendas_pos_app/internal/core/ports"
)

type PgxReportingRepository struct {
	gw *Gateway
}

func newPgxReportingRepository(gw *Gateway) ports.ReportingRepository {
	return &PgxReportingRepository{gw: gw}
}

var _ ports.ReportingRepository = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) SalesSummaryBetween(ctx context.Context, from, to time.Time) (domain.SalesSummary, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(total), 0), COALESCE(SUM(discount), 0)
		FROM sales
		WHERE sold_at >= $1 AND sold_at < $2;
	`
	summary := domain.SalesSummary{From: from, To: to}
	err := r.gw.Select(ctx, func(rows pgx.Rows) error {
		for rows.Next() {
			if err := rows.Scan(&summary.SaleCount, &summary.GrossTotal, &summary.Discounts); err != nil {
				return err
			}
		}
		return nil
	}, query, from, to)
	if err != nil {
		return domain.SalesSummary{}, fmt.Errorf("failed to compute sales summary: %w", err)
	}
	return summary, nil
}

func (r *PgxReportingRepository) TopProductsBetween(ctx context.Context, from, to time.Time, limit int) ([]domain.ProductSales, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
		SELECT li.product_id, p.name, SUM(li.quantity), COALESCE(SUM(li.line_total), 0)
		FROM sale_line_items li
		JOIN sales s ON s.sale_id = li.sale_id
		JOIN products p ON p.product_id = li.product_id
		WHERE s.sold_at >= $1 AND s.sold_at < $2
		GROUP BY li.product_id, p.name
		ORDER BY SUM(li.quantity) DESC, p.name
		LIMIT $3;
	`
	var ds []domain.ProductSales
	err := r.gw.Select(ctx, func(rows pgx.Rows) error {
		ds = ds[:0]
		for rows.Next() {
			var ps domain.ProductSales
			var qty int64
			var revenue decimal.Decimal
			if err := rows.Scan(&ps.ProductID, &ps.ProductName, &qty, &revenue); err != nil {
				return err
			}
			ps.QuantitySold = int(qty)
			ps.Revenue = revenue
			ds = append(ds, ps)
		}
		return nil
	}, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to compute top products: %w", err)
	}
	return ds, nil
}

func (r *PgxReportingRepository) CountActiveProducts(ctx context.Context) (int, error) {
	var count int
	err := r.gw.Scalar(ctx, &count, `SELECT COUNT(*) FROM products WHERE is_active;`)
	if err != nil {
		return 0, fmt.Errorf("failed to count active products: %w", err)
	}
	return count, nil
}

func (r *PgxReportingRepository) CountCustomers(ctx context.Context) (int, error) {
	var count int
	err := r.gw.Scalar(ctx, &count, `SELECT COUNT(*) FROM customers;`)
	if err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}
