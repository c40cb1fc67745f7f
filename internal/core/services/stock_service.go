package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vendasys/vendas_pos_app/internal/apperrors"
	"github.com/vendasys/vendas_pos_app/internal/core/domain"
	"github.com/vendasys/vendas_pos_app/internal/core/ports"
)

// StockService is the stock ledger for manual movements: purchases,
// adjustments and losses. Sale movements are written by checkout itself so
// they share the sale's transaction.
type StockService struct {
	stockRepo ports.StockRepository
}

func NewStockService(stockRepo ports.StockRepository) *StockService {
	return &StockService{stockRepo: stockRepo}
}

func (s *StockService) RecordMovement(ctx context.Context, productID string, direction domain.MovementDirection, qty int, reason domain.MovementReason) (int, error) {
	if qty <= 0 {
		return 0, fmt.Errorf("%w: quantity must be positive, got %d", apperrors.ErrValidation, qty)
	}
	if reason == domain.ReasonSale {
		return 0, fmt.Errorf("%w: sale movements are recorded by checkout", apperrors.ErrValidation)
	}
	movement := domain.StockMovement{
		MovementID: uuid.NewString(),
		ProductID:  productID,
		Direction:  direction,
		Quantity:   qty,
		Reason:     reason,
		MovedAt:    time.Now(),
	}
	onHand, err := s.stockRepo.RecordMovement(ctx, movement)
	if err != nil {
		return 0, fmt.Errorf("failed to record stock movement: %w", err)
	}
	return onHand, nil
}

func (s *StockService) ListMovements(ctx context.Context, productID string, limit int) ([]domain.StockMovement, error) {
	movements, err := s.stockRepo.ListMovements(ctx, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock movements: %w", err)
	}
	return movements, nil
}

func (s *StockService) LowStock(ctx context.Context, threshold int) ([]domain.Product, error) {
	products, err := s.stockRepo.LowStock(ctx, threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock products: %w", err)
	}
	return products, nil
}
