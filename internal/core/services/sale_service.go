package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vendasys/vendas_pos_app/internal/core/domain"
	"github.com/vendasys/vendas_pos_app/internal/core/ports"
)

type SaleService struct {
	saleRepo ports.SaleRepository
}

func NewSaleService(saleRepo ports.SaleRepository) *SaleService {
	return &SaleService{saleRepo: saleRepo}
}

func (s *SaleService) GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}
	return sale, nil
}

func (s *SaleService) ListSalesBetween(ctx context.Context, from, to time.Time, limit int) ([]domain.Sale, error) {
	sales, err := s.saleRepo.ListSalesBetween(ctx, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}

const receiptWidth = 40

// RenderReceipt renders the plain-text receipt for a completed sale, sized
// for a 40-column thermal printer. Amounts are in kwanza.
func (s *SaleService) RenderReceipt(ctx context.Context, saleID string) (string, error) {
	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return "", fmt.Errorf("failed to load sale for receipt: %w", err)
	}

	var b strings.Builder
	rule := strings.Repeat("-", receiptWidth)

	b.WriteString(center("RECIBO DE VENDA") + "\n")
	b.WriteString(rule + "\n")
	b.WriteString(fmt.Sprintf("Venda:    %s\n", sale.SaleID))
	b.WriteString(fmt.Sprintf("Data:     %s\n", sale.SoldAt.Format("02/01/2006 15:04")))
	b.WriteString(fmt.Sprintf("Operador: %s\n", sale.UserName))
	if sale.CustomerName != "" {
		b.WriteString(fmt.Sprintf("Cliente:  %s\n", sale.CustomerName))
	}
	b.WriteString(rule + "\n")

	subtotal := decimal.Zero
	for _, item := range sale.Items {
		b.WriteString(item.ProductName + "\n")
		left := fmt.Sprintf("  %d x %s", item.Quantity, formatKz(item.UnitPrice))
		right := formatKz(item.LineTotal)
		b.WriteString(padLine(left, right) + "\n")
		subtotal = subtotal.Add(item.LineTotal)
	}

	b.WriteString(rule + "\n")
	if sale.Discount.IsPositive() {
		// Total is clamped at zero when the discount exceeds the subtotal, so
		// the subtotal comes from the line totals, not from Total + Discount.
		b.WriteString(padLine("Subtotal:", formatKz(subtotal)) + "\n")
		b.WriteString(padLine("Desconto:", formatKz(sale.Discount)) + "\n")
	}
	b.WriteString(padLine("TOTAL:", formatKz(sale.Total)) + "\n")
	b.WriteString(padLine("Pagamento:", paymentLabel(sale.PaymentMethod)) + "\n")
	if sale.Notes != "" {
		b.WriteString(rule + "\n")
		b.WriteString("Obs: " + sale.Notes + "\n")
	}
	b.WriteString(rule + "\n")
	b.WriteString(center("Obrigado pela preferencia!") + "\n")

	return b.String(), nil
}

func formatKz(amount decimal.Decimal) string {
	return amount.StringFixed(2) + " Kz"
}

func paymentLabel(m domain.PaymentMethod) string {
	switch m {
	case domain.PaymentCash:
		return "Dinheiro"
	case domain.PaymentCard:
		return "Cartao"
	case domain.PaymentTransfer:
		return "Transferencia"
	case domain.PaymentMobileMoney:
		return "Mobile Money"
	}
	return string(m)
}

func center(s string) string {
	if len(s) >= receiptWidth {
		return s
	}
	pad := (receiptWidth - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

func padLine(left, right string) string {
	gap := receiptWidth - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
