package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vendasys/vendas_pos_app/internal/apperrors"
	"github.com/vendasys/vendas_pos_app/internal/core/domain"
	portssvc "github.com/vendasys/vendas_pos_app/internal/core/ports/services"
	"github.com/vendasys/vendas_pos_app/internal/core/services"
)

// --- Mock ProductRepository ---
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	var product *domain.Product
	if args.Get(0) != nil {
		product = args.Get(0).(*domain.Product)
	}
	return product, args.Error(1)
}

func (m *MockProductRepository) FindProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	args := m.Called(ctx, barcode)
	var product *domain.Product
	if args.Get(0) != nil {
		product = args.Get(0).(*domain.Product)
	}
	return product, args.Error(1)
}

func (m *MockProductRepository) SearchProducts(ctx context.Context, term string, forSale bool, limit int) ([]domain.Product, error) {
	args := m.Called(ctx, term, forSale, limit)
	var products []domain.Product
	if args.Get(0) != nil {
		products = args.Get(0).([]domain.Product)
	}
	return products, args.Error(1)
}

func (m *MockProductRepository) DeactivateProduct(ctx context.Context, productID, userID string, now time.Time) error {
	return m.Called(ctx, productID, userID, now).Error(0)
}

func (m *MockProductRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	var categories []domain.Category
	if args.Get(0) != nil {
		categories = args.Get(0).([]domain.Category)
	}
	return categories, args.Error(1)
}

func (m *MockProductRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	return m.Called(ctx, category).Error(0)
}

// --- Mock SaleRepository ---
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) CreateSale(ctx context.Context, sale domain.Sale) error {
	return m.Called(ctx, sale).Error(0)
}

func (m *MockSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	var sale *domain.Sale
	if args.Get(0) != nil {
		sale = args.Get(0).(*domain.Sale)
	}
	return sale, args.Error(1)
}

func (m *MockSaleRepository) ListSalesBetween(ctx context.Context, from, to time.Time, limit int) ([]domain.Sale, error) {
	args := m.Called(ctx, from, to, limit)
	var sales []domain.Sale
	if args.Get(0) != nil {
		sales = args.Get(0).([]domain.Sale)
	}
	return sales, args.Error(1)
}

type CheckoutServiceTestSuite struct {
	suite.Suite
	mockProducts *MockProductRepository
	mockSales    *MockSaleRepository
	service      *services.CheckoutService
	ctx          context.Context

	productA *domain.Product
	productB *domain.Product
}

func (s *CheckoutServiceTestSuite) SetupTest() {
	s.mockProducts = new(MockProductRepository)
	s.mockSales = new(MockSaleRepository)
	s.service = services.NewCheckoutService(s.mockProducts, s.mockSales)
	s.ctx = context.Background()

	s.productA = &domain.Product{
		ProductID: "prod-a",
		Name:      "Fuba de milho 1kg",
		SalePrice: decimal.NewFromInt(500),
		StockQty:  10,
		IsActive:  true,
	}
	s.productB = &domain.Product{
		ProductID: "prod-b",
		Name:      "Oleo alimentar 1L",
		SalePrice: decimal.NewFromInt(1500),
		StockQty:  5,
		IsActive:  true,
	}
}

func (s *CheckoutServiceTestSuite) commitParams() portssvc.CommitParams {
	return portssvc.CommitParams{
		PaymentMethod: domain.PaymentCash,
		CashierID:     "user-1",
	}
}

// Full flow: two of A at 500, one of B at 1500, discount 200, total 2300.
func (s *CheckoutServiceTestSuite) TestCommit_FullCheckoutFlow() {
	s.mockProducts.On("FindProductByID", s.ctx, "prod-a").Return(s.productA, nil)
	s.mockProducts.On("FindProductByID", s.ctx, "prod-b").Return(s.productB, nil)

	var persisted domain.Sale
	s.mockSales.On("CreateSale", s.ctx, mock.AnythingOfType("domain.Sale")).
		Run(func(args mock.Arguments) { persisted = args.Get(1).(domain.Sale) }).
		Return(nil).Once()

	cart, err := s.service.OpenCart(s.ctx)
	s.Require().NoError(err)
	_, err = s.service.AddItem(s.ctx, cart.CartID, "prod-a", 2)
	s.Require().NoError(err)
	_, err = s.service.AddItem(s.ctx, cart.CartID, "prod-b", 1)
	s.Require().NoError(err)
	_, err = s.service.SetDiscount(s.ctx, cart.CartID, decimal.NewFromInt(200))
	s.Require().NoError(err)

	saleID, err := s.service.Commit(s.ctx, cart.CartID, s.commitParams())

	s.Require().NoError(err)
	s.Equal(saleID, persisted.SaleID)
	s.True(persisted.Total.Equal(decimal.NewFromInt(2300)), "total was %s", persisted.Total)
	s.True(persisted.Discount.Equal(decimal.NewFromInt(200)))
	s.Len(persisted.Items, 2)
	s.Equal(domain.PaymentCash, persisted.PaymentMethod)
	s.Equal("user-1", persisted.UserID)

	// Line items keep the order they entered the cart, with 1-based positions.
	s.Equal("prod-a", persisted.Items[0].ProductID)
	s.Equal(1, persisted.Items[0].Position)
	s.Equal("prod-b", persisted.Items[1].ProductID)
	s.Equal(2, persisted.Items[1].Position)

	// Completed carts are gone; the terminal opens a fresh one.
	_, err = s.service.GetCart(s.ctx, cart.CartID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *CheckoutServiceTestSuite) TestCommit_EmptyCartRejected() {
	cart, err := s.service.OpenCart(s.ctx)
	s.Require().NoError(err)

	_, err = s.service.Commit(s.ctx, cart.CartID, s.commitParams())

	s.ErrorIs(err, apperrors.ErrCartState)
	s.mockSales.AssertNotCalled(s.T(), "CreateSale", mock.Anything, mock.Anything)
}

func (s *CheckoutServiceTestSuite) TestCommit_FailurePreservesCartForRetry() {
	s.mockProducts.On("FindProductByID", s.ctx, "prod-a").Return(s.productA, nil)
	s.mockSales.On("CreateSale", s.ctx, mock.AnythingOfType("domain.Sale")).
		Return(apperrors.ErrInsufficientStock).Once()
	s.mockSales.On("CreateSale", s.ctx, mock.AnythingOfType("domain.Sale")).
		Return(nil).Once()

	cart, err := s.service.OpenCart(s.ctx)
	s.Require().NoError(err)
	_, err = s.service.AddItem(s.ctx, cart.CartID, "prod-a", 2)
	s.Require().NoError(err)

	_, err = s.service.Commit(s.ctx, cart.CartID, s.commitParams())
	s.ErrorIs(err, apperrors.ErrInsufficientStock)

	// The cart is back in building state with its lines intact.
	got, err := s.service.GetCart(s.ctx, cart.CartID)
	s.Require().NoError(err)
	s.Equal(domain.CartBuilding, got.Status)
	s.Len(got.Lines, 1)

	_, err = s.service.Commit(s.ctx, cart.CartID, s.commitParams())
	s.NoError(err)
}

func (s *CheckoutServiceTestSuite) TestAddItem_RejectsBeyondStockSnapshot() {
	s.mockProducts.On("FindProductByID", s.ctx, "prod-b").Return(s.productB, nil)

	cart, err := s.service.OpenCart(s.ctx)
	s.Require().NoError(err)
	_, err = s.service.AddItem(s.ctx, cart.CartID, "prod-b", 5)
	s.Require().NoError(err)

	_, err = s.service.AddItem(s.ctx, cart.CartID, "prod-b", 1)

	s.ErrorIs(err, apperrors.ErrCartState)
	got, _ := s.service.GetCart(s.ctx, cart.CartID)
	s.Equal(5, got.Lines[0].Quantity)
}

func (s *CheckoutServiceTestSuite) TestAddItem_InactiveProductRejected() {
	s.productA.IsActive = false
	s.mockProducts.On("FindProductByID", s.ctx, "prod-a").Return(s.productA, nil)

	cart, err := s.service.OpenCart(s.ctx)
	s.Require().NoError(err)

	_, err = s.service.AddItem(s.ctx, cart.CartID, "prod-a", 1)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *CheckoutServiceTestSuite) TestCancel_DropsCart() {
	s.mockProducts.On("FindProductByID", s.ctx, "prod-a").Return(s.productA, nil)

	cart, err := s.service.OpenCart(s.ctx)
	s.Require().NoError(err)
	_, err = s.service.AddItem(s.ctx, cart.CartID, "prod-a", 1)
	s.Require().NoError(err)

	s.Require().NoError(s.service.Cancel(s.ctx, cart.CartID))

	_, err = s.service.GetCart(s.ctx, cart.CartID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestCheckoutServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CheckoutServiceTestSuite))
}
