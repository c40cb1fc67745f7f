package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendasys/vendas_pos_app/internal/apperrors"
	"github.com/vendasys/vendas_pos_app/internal/core/domain"
	"github.com/vendasys/vendas_pos_app/internal/core/ports"
	portssvc "github.com/vendasys/vendas_pos_app/internal/core/ports/services"
)

// CheckoutService drives the cart workflow. Carts are per-terminal working
// state and live in memory; only a committed sale touches the database.
type CheckoutService struct {
	productRepo ports.ProductRepository
	saleRepo    ports.SaleRepository

	mu    sync.Mutex
	carts map[string]*domain.Cart
}

func NewCheckoutService(productRepo ports.ProductRepository, saleRepo ports.SaleRepository) *CheckoutService {
	return &CheckoutService{
		productRepo: productRepo,
		saleRepo:    saleRepo,
		carts:       make(map[string]*domain.Cart),
	}
}

func (s *CheckoutService) OpenCart(ctx context.Context) (*domain.Cart, error) {
	cart := domain.NewCart(uuid.NewString(), time.Now())
	s.mu.Lock()
	s.carts[cart.CartID] = cart
	s.mu.Unlock()
	return cart, nil
}

func (s *CheckoutService) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(cartID)
}

func (s *CheckoutService) lookup(cartID string) (*domain.Cart, error) {
	cart, ok := s.carts[cartID]
	if !ok {
		return nil, fmt.Errorf("%w: cart %s", apperrors.ErrNotFound, cartID)
	}
	return cart, nil
}

func (s *CheckoutService) AddItem(ctx context.Context, cartID, productID string, qty int) (*domain.Cart, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product for cart: %w", err)
	}
	if !product.IsActive {
		return nil, fmt.Errorf("%w: product %s is inactive", apperrors.ErrValidation, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cart, err := s.lookup(cartID)
	if err != nil {
		return nil, err
	}
	if err := cart.AddItem(*product, qty); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrCartState, err)
	}
	return cart, nil
}

func (s *CheckoutService) RemoveItem(ctx context.Context, cartID, productID string) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, err := s.lookup(cartID)
	if err != nil {
		return nil, err
	}
	if err := cart.RemoveItem(productID); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrCartState, err)
	}
	return cart, nil
}

func (s *CheckoutService) SetDiscount(ctx context.Context, cartID string, amount decimal.Decimal) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, err := s.lookup(cartID)
	if err != nil {
		return nil, err
	}
	if err := cart.SetDiscount(amount); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrCartState, err)
	}
	return cart, nil
}

func (s *CheckoutService) Cancel(ctx context.Context, cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, err := s.lookup(cartID)
	if err != nil {
		return err
	}
	if err := cart.Cancel(); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrCartState, err)
	}
	delete(s.carts, cartID)
	return nil
}

// Commit turns the cart into a sale. The sale header, line items, stock
// decrements and movements are persisted in one transaction; on any failure
// the cart reverts to building so the cashier can retry or amend it.
func (s *CheckoutService) Commit(ctx context.Context, cartID string, params portssvc.CommitParams) (string, error) {
	s.mu.Lock()
	cart, err := s.lookup(cartID)
	if err != nil {
		s.mu.Unlock()
		return "", err
	}
	if err := cart.BeginCommit(); err != nil {
		s.mu.Unlock()
		return "", fmt.Errorf("%w: %w", apperrors.ErrCartState, err)
	}
	sale := buildSale(cart, params, time.Now())
	s.mu.Unlock()

	if err := s.saleRepo.CreateSale(ctx, sale); err != nil {
		s.mu.Lock()
		cart.AbortCommit()
		s.mu.Unlock()
		return "", fmt.Errorf("failed to persist sale: %w", err)
	}

	s.mu.Lock()
	cart.Complete()
	delete(s.carts, cartID)
	s.mu.Unlock()
	return sale.SaleID, nil
}

func buildSale(cart *domain.Cart, params portssvc.CommitParams, now time.Time) domain.Sale {
	saleID := uuid.NewString()
	items := make([]domain.SaleLineItem, len(cart.Lines))
	for i, line := range cart.Lines {
		items[i] = domain.SaleLineItem{
			LineItemID:  uuid.NewString(),
			SaleID:      saleID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Position:    i + 1,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.LineTotal(),
		}
	}
	return domain.Sale{
		SaleID:        saleID,
		CustomerID:    params.CustomerID,
		UserID:        params.CashierID,
		SoldAt:        now,
		Total:         domain.ComputeTotal(items, cart.Discount),
		PaymentMethod: params.PaymentMethod,
		Discount:      cart.Discount,
		Notes:         params.Notes,
		Items:         items,
	}
}
