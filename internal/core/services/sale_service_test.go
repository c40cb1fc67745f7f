package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/vendasys/vendas_pos_app/internal/apperrors"
	"github.com/vendasys/vendas_pos_app/internal/core/domain"
	"github.com/vendasys/vendas_pos_app/internal/core/services"
)

type SaleServiceTestSuite struct {
	suite.Suite
	mockRepo *MockSaleRepository
	service  *services.SaleService
	ctx      context.Context
}

func (s *SaleServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockSaleRepository)
	s.service = services.NewSaleService(s.mockRepo)
	s.ctx = context.Background()
}

func (s *SaleServiceTestSuite) TestRenderReceipt() {
	sale := &domain.Sale{
		SaleID:        "sale-1",
		UserName:      "Amelia",
		CustomerName:  "Joao Manuel",
		SoldAt:        time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC),
		Total:         decimal.NewFromInt(2300),
		Discount:      decimal.NewFromInt(200),
		PaymentMethod: domain.PaymentCash,
		Items: []domain.SaleLineItem{
			{ProductName: "Fuba de milho 1kg", Quantity: 2, UnitPrice: decimal.NewFromInt(500), LineTotal: decimal.NewFromInt(1000)},
			{ProductName: "Oleo alimentar 1L", Quantity: 1, UnitPrice: decimal.NewFromInt(1500), LineTotal: decimal.NewFromInt(1500)},
		},
	}
	s.mockRepo.On("FindSaleByID", s.ctx, "sale-1").Return(sale, nil).Once()

	receipt, err := s.service.RenderReceipt(s.ctx, "sale-1")

	s.Require().NoError(err)
	s.Contains(receipt, "RECIBO DE VENDA")
	s.Contains(receipt, "Fuba de milho 1kg")
	s.Contains(receipt, "2300.00 Kz")
	s.Contains(receipt, "Desconto:")
	s.Contains(receipt, "200.00 Kz")
	s.Contains(receipt, "Dinheiro")
	s.Contains(receipt, "Joao Manuel")
	s.Contains(receipt, "30/08/2026 14:30")
}

func (s *SaleServiceTestSuite) TestRenderReceipt_OmitsDiscountLineWhenZero() {
	sale := &domain.Sale{
		SaleID:        "sale-2",
		UserName:      "Amelia",
		SoldAt:        time.Now(),
		Total:         decimal.NewFromInt(500),
		Discount:      decimal.Zero,
		PaymentMethod: domain.PaymentCard,
		Items: []domain.SaleLineItem{
			{ProductName: "Fuba de milho 1kg", Quantity: 1, UnitPrice: decimal.NewFromInt(500), LineTotal: decimal.NewFromInt(500)},
		},
	}
	s.mockRepo.On("FindSaleByID", s.ctx, "sale-2").Return(sale, nil).Once()

	receipt, err := s.service.RenderReceipt(s.ctx, "sale-2")

	s.Require().NoError(err)
	s.NotContains(receipt, "Desconto:")
	s.NotContains(receipt, "Cliente:")
}

// A discount larger than the line totals clamps the total at zero; the
// subtotal line must still show what the items actually cost.
func (s *SaleServiceTestSuite) TestRenderReceipt_SubtotalFromLineTotalsWhenDiscountExceedsThem() {
	sale := &domain.Sale{
		SaleID:        "sale-3",
		UserName:      "Amelia",
		SoldAt:        time.Now(),
		Total:         decimal.Zero,
		Discount:      decimal.NewFromInt(800),
		PaymentMethod: domain.PaymentCash,
		Items: []domain.SaleLineItem{
			{ProductName: "Fuba de milho 1kg", Quantity: 1, UnitPrice: decimal.NewFromInt(500), LineTotal: decimal.NewFromInt(500)},
		},
	}
	s.mockRepo.On("FindSaleByID", s.ctx, "sale-3").Return(sale, nil).Once()

	receipt, err := s.service.RenderReceipt(s.ctx, "sale-3")

	s.Require().NoError(err)
	subtotal := receiptLine(receipt, "Subtotal:")
	s.True(strings.HasSuffix(subtotal, "500.00 Kz"), "subtotal line was %q", subtotal)
	total := receiptLine(receipt, "TOTAL:")
	s.True(strings.HasSuffix(total, "0.00 Kz"), "total line was %q", total)
}

func receiptLine(receipt, prefix string) string {
	for _, line := range strings.Split(receipt, "\n") {
		if strings.HasPrefix(line, prefix) {
			return line
		}
	}
	return ""
}

func (s *SaleServiceTestSuite) TestGetSaleByID_NotFound() {
	s.mockRepo.On("FindSaleByID", s.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.GetSaleByID(s.ctx, "missing")

	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestSaleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}
