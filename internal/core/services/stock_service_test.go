package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vendasys/vendas_pos_app/internal/apperrors"
	"github.com/vendasys/vendas_pos_app/internal/core/domain"
	"github.com/vendasys/vendas_pos_app/internal/core/services"
)

// --- Mock StockRepository ---
type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) RecordMovement(ctx context.Context, movement domain.StockMovement) (int, error) {
	args := m.Called(ctx, movement)
	return args.Int(0), args.Error(1)
}

func (m *MockStockRepository) ListMovements(ctx context.Context, productID string, limit int) ([]domain.StockMovement, error) {
	args := m.Called(ctx, productID, limit)
	var movements []domain.StockMovement
	if args.Get(0) != nil {
		movements = args.Get(0).([]domain.StockMovement)
	}
	return movements, args.Error(1)
}

func (m *MockStockRepository) LowStock(ctx context.Context, threshold int) ([]domain.Product, error) {
	args := m.Called(ctx, threshold)
	var products []domain.Product
	if args.Get(0) != nil {
		products = args.Get(0).([]domain.Product)
	}
	return products, args.Error(1)
}

type StockServiceTestSuite struct {
	suite.Suite
	mockRepo *MockStockRepository
	service  *services.StockService
	ctx      context.Context
}

func (s *StockServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockStockRepository)
	s.service = services.NewStockService(s.mockRepo)
	s.ctx = context.Background()
}

func (s *StockServiceTestSuite) TestRecordMovement_PurchaseIncreasesStock() {
	s.mockRepo.On("RecordMovement", s.ctx, mock.MatchedBy(func(m domain.StockMovement) bool {
		return m.ProductID == "prod-a" &&
			m.Direction == domain.MovementIn &&
			m.Quantity == 20 &&
			m.Reason == domain.ReasonPurchase &&
			m.MovementID != ""
	})).Return(30, nil).Once()

	onHand, err := s.service.RecordMovement(s.ctx, "prod-a", domain.MovementIn, 20, domain.ReasonPurchase)

	s.Require().NoError(err)
	s.Equal(30, onHand)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *StockServiceTestSuite) TestRecordMovement_RejectsNonPositiveQuantity() {
	_, err := s.service.RecordMovement(s.ctx, "prod-a", domain.MovementIn, 0, domain.ReasonAdjustment)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "RecordMovement", mock.Anything, mock.Anything)
}

func (s *StockServiceTestSuite) TestRecordMovement_RejectsSaleReason() {
	_, err := s.service.RecordMovement(s.ctx, "prod-a", domain.MovementOut, 1, domain.ReasonSale)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "RecordMovement", mock.Anything, mock.Anything)
}

func (s *StockServiceTestSuite) TestRecordMovement_InsufficientStockSurfaces() {
	s.mockRepo.On("RecordMovement", s.ctx, mock.AnythingOfType("domain.StockMovement")).
		Return(0, apperrors.ErrInsufficientStock).Once()

	_, err := s.service.RecordMovement(s.ctx, "prod-a", domain.MovementOut, 99, domain.ReasonLoss)

	s.ErrorIs(err, apperrors.ErrInsufficientStock)
}

func (s *StockServiceTestSuite) TestLowStock() {
	low := []domain.Product{{ProductID: "prod-a", StockQty: 2}}
	s.mockRepo.On("LowStock", s.ctx, 10).Return(low, nil).Once()

	got, err := s.service.LowStock(s.ctx, 10)

	s.Require().NoError(err)
	s.Equal(low, got)
}

func TestStockServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StockServiceTestSuite))
}
