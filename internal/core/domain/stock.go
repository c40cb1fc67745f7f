package domain

import (
	"fmt"
	"time"
)

// MovementDirection is the direction of a stock movement.
type MovementDirection string

const (
	MovementIn  MovementDirection = "IN"
	MovementOut MovementDirection = "OUT"
)

// ParseMovementDirection validates s against the closed set.
func ParseMovementDirection(s string) (MovementDirection, error) {
	switch MovementDirection(s) {
	case MovementIn, MovementOut:
		return MovementDirection(s), nil
	}
	return "", fmt.Errorf("unknown movement direction %q", s)
}

// MovementReason is the closed set of reasons a stock level can change.
type MovementReason string

const (
	ReasonSale       MovementReason = "SALE"
	ReasonPurchase   MovementReason = "PURCHASE"
	ReasonAdjustment MovementReason = "ADJUSTMENT"
	ReasonLoss       MovementReason = "LOSS"
)

// ParseMovementReason validates s against the closed set.
func ParseMovementReason(s string) (MovementReason, error) {
	switch MovementReason(s) {
	case ReasonSale, ReasonPurchase, ReasonAdjustment, ReasonLoss:
		return MovementReason(s), nil
	}
	return "", fmt.Errorf("unknown movement reason %q", s)
}

// StockMovement is an append-only audit record of one inventory change.
// Movements are never updated or deleted; the signed sum of a product's
// movements since inception equals its current stock quantity.
type StockMovement struct {
	MovementID  string            `json:"movementID"`
	ProductID   string            `json:"productID"`
	ProductName string            `json:"productName,omitempty"`
	Direction   MovementDirection `json:"direction"`
	Quantity    int               `json:"quantity"` // always positive; direction carries the sign
	Reason      MovementReason    `json:"reason"`
	MovedAt     time.Time         `json:"movedAt"`
}

// SignedQuantity returns the quantity with the direction's sign applied.
func (m StockMovement) SignedQuantity() int {
	if m.Direction == MovementOut {
		return -m.Quantity
	}
	return m.Quantity
}
