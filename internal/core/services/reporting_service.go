package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vendasys/vendas_pos_app/internal/core/domain"
	"github.com/vendasys/vendas_pos_app/internal/core/ports"
)

type ReportingService struct {
	reportingRepo     ports.ReportingRepository
	stockRepo         ports.StockRepository
	lowStockThreshold int
}

func NewReportingService(reportingRepo ports.ReportingRepository, stockRepo ports.StockRepository, lowStockThreshold int) *ReportingService {
	return &ReportingService{
		reportingRepo:     reportingRepo,
		stockRepo:         stockRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

// Dashboard composes today's sales, the low stock alert count and the
// catalog and customer counts for the landing screen.
func (s *ReportingService) Dashboard(ctx context.Context) (*domain.DashboardSummary, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	today, err := s.reportingRepo.SalesSummaryBetween(ctx, startOfDay, startOfDay.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to load today's sales for dashboard: %w", err)
	}
	lowStock, err := s.stockRepo.LowStock(ctx, s.lowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to load low stock for dashboard: %w", err)
	}
	productCount, err := s.reportingRepo.CountActiveProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products for dashboard: %w", err)
	}
	customerCount, err := s.reportingRepo.CountCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count customers for dashboard: %w", err)
	}

	return &domain.DashboardSummary{
		TodaySales:    today,
		LowStockCount: len(lowStock),
		ProductCount:  productCount,
		CustomerCount: customerCount,
	}, nil
}

func (s *ReportingService) SalesSummary(ctx context.Context, from, to time.Time) (*domain.SalesSummary, error) {
	summary, err := s.reportingRepo.SalesSummaryBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to compute sales summary: %w", err)
	}
	return &summary, nil
}

func (s *ReportingService) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.ProductSales, error) {
	products, err := s.reportingRepo.TopProductsBetween(ctx, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to compute top products: %w", err)
	}
	return products, nil
}
