package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CartStatus is the checkout workflow state.
//
//	Empty -> Building -> Committing -> Completed
//
// Building may return to Empty (cancel); Committing returns to Building when
// the commit fails so the cart is preserved for retry. Completed is terminal:
// a completed sale is immutable and corrections require a new cart.
type CartStatus string

const (
	CartEmpty      CartStatus = "EMPTY"
	CartBuilding   CartStatus = "BUILDING"
	CartCommitting CartStatus = "COMMITTING"
	CartCompleted  CartStatus = "COMPLETED"
)

// CartLine is one product in the cart. UnitPrice and StockSnapshot are
// captured from the catalog when the product first enters the cart.
type CartLine struct {
	ProductID     string          `json:"productID"`
	ProductName   string          `json:"productName"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	StockSnapshot int             `json:"stockSnapshot"`
}

// LineTotal is always quantity x unit-price snapshot, never edited directly.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart accumulates line items for one sale.
type Cart struct {
	CartID   string          `json:"cartID"`
	Status   CartStatus      `json:"status"`
	Lines    []CartLine      `json:"lines"`
	Discount decimal.Decimal `json:"discount"`
	OpenedAt time.Time       `json:"openedAt"`
}

// NewCart returns an empty cart.
func NewCart(cartID string, now time.Time) *Cart {
	return &Cart{
		CartID:   cartID,
		Status:   CartEmpty,
		Discount: decimal.Zero,
		OpenedAt: now,
	}
}

// AddItem adds qty of the product to the cart, snapshotting price and stock
// on first add. It rejects, without mutating the cart, any addition that
// would push the line quantity past the stock snapshot.
func (c *Cart) AddItem(p Product, qty int) error {
	if c.Status != CartEmpty && c.Status != CartBuilding {
		return fmt.Errorf("cannot add items to a %s cart", c.Status)
	}
	if qty <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", qty)
	}
	for i, line := range c.Lines {
		if line.ProductID == p.ProductID {
			if line.Quantity+qty > line.StockSnapshot {
				return fmt.Errorf("only %d of %s in stock", line.StockSnapshot, p.Name)
			}
			c.Lines[i].Quantity += qty
			c.Status = CartBuilding
			return nil
		}
	}
	if qty > p.StockQty {
		return fmt.Errorf("only %d of %s in stock", p.StockQty, p.Name)
	}
	c.Lines = append(c.Lines, CartLine{
		ProductID:     p.ProductID,
		ProductName:   p.Name,
		Quantity:      qty,
		UnitPrice:     p.SalePrice,
		StockSnapshot: p.StockQty,
	})
	c.Status = CartBuilding
	return nil
}

// RemoveItem removes the whole line for the product.
func (c *Cart) RemoveItem(productID string) error {
	if c.Status != CartBuilding {
		return fmt.Errorf("cannot remove items from a %s cart", c.Status)
	}
	for i, line := range c.Lines {
		if line.ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			if len(c.Lines) == 0 {
				c.Status = CartEmpty
			}
			return nil
		}
	}
	return fmt.Errorf("product %s is not in the cart", productID)
}

// SetDiscount sets a non-negative discount amount.
func (c *Cart) SetDiscount(amount decimal.Decimal) error {
	if c.Status != CartEmpty && c.Status != CartBuilding {
		return fmt.Errorf("cannot set discount on a %s cart", c.Status)
	}
	if amount.IsNegative() {
		return fmt.Errorf("discount must not be negative, got %s", amount)
	}
	c.Discount = amount
	return nil
}

// Subtotal is the sum of line totals.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, line := range c.Lines {
		sum = sum.Add(line.LineTotal())
	}
	return sum
}

// Total is max(0, subtotal - discount).
func (c *Cart) Total() decimal.Decimal {
	total := c.Subtotal().Sub(c.Discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// Cancel empties the cart (Building -> Empty).
func (c *Cart) Cancel() error {
	if c.Status == CartCommitting || c.Status == CartCompleted {
		return fmt.Errorf("cannot cancel a %s cart", c.Status)
	}
	c.Lines = nil
	c.Discount = decimal.Zero
	c.Status = CartEmpty
	return nil
}

// BeginCommit transitions Building -> Committing. A cart with no lines is rejected.
func (c *Cart) BeginCommit() error {
	if c.Status != CartBuilding {
		return fmt.Errorf("cannot commit a %s cart", c.Status)
	}
	if len(c.Lines) == 0 {
		return fmt.Errorf("cart has no items")
	}
	c.Status = CartCommitting
	return nil
}

// AbortCommit transitions Committing -> Building, preserving the cart for retry.
func (c *Cart) AbortCommit() {
	if c.Status == CartCommitting {
		c.Status = CartBuilding
	}
}

// Complete transitions Committing -> Completed.
func (c *Cart) Complete() {
	if c.Status == CartCommitting {
		c.Status = CartCompleted
	}
}
