package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is the closed set of accepted payment methods. Free-text
// payment names from the sale screen are validated into this set at the
// boundary.
type PaymentMethod string

const (
	PaymentCash        PaymentMethod = "CASH"
	PaymentCard        PaymentMethod = "CARD"
	PaymentTransfer    PaymentMethod = "TRANSFER"
	PaymentMobileMoney PaymentMethod = "MOBILE_MONEY"
)

// PaymentMethods lists every accepted method, for the sale screen.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCash, PaymentCard, PaymentTransfer, PaymentMobileMoney}
}

// ParsePaymentMethod validates s against the closed set.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentMobileMoney:
		return PaymentMethod(s), nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

// SaleLineItem is one product entry within a sale. UnitPrice is the sale
// price snapshot taken when the product entered the cart; it never changes
// even if the catalog price does.
type SaleLineItem struct {
	LineItemID  string          `json:"lineItemID"`
	SaleID      string          `json:"saleID"`
	ProductID   string          `json:"productID"`
	ProductName string          `json:"productName,omitempty"`
	Position    int             `json:"position"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// Sale is an immutable record of a completed checkout. A sale and its line
// items are created together atomically and never updated afterwards;
// corrections are new movements or sales.
type Sale struct {
	SaleID        string          `json:"saleID"`
	CustomerID    *string         `json:"customerID,omitempty"`
	CustomerName  string          `json:"customerName,omitempty"`
	UserID        string          `json:"userID"`
	UserName      string          `json:"userName,omitempty"`
	SoldAt        time.Time       `json:"soldAt"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Discount      decimal.Decimal `json:"discount"`
	Notes         string          `json:"notes,omitempty"`
	Items         []SaleLineItem  `json:"items,omitempty"`
}

// ComputeTotal returns max(0, sum of line totals - discount).
func ComputeTotal(items []SaleLineItem, discount decimal.Decimal) decimal.Decimal {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal)
	}
	total := subtotal.Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
