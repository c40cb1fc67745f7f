package dto

// RecordMovementRequest records a manual stock movement.
type RecordMovementRequest struct {
	ProductID string `json:"productID" binding:"required"`
	Direction string `json:"direction" binding:"required,movementdirection"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Reason    string `json:"reason" binding:"required,movementreason"`
}

// RecordMovementResponse reports the on-hand quantity after the movement.
type RecordMovementResponse struct {
	ProductID string `json:"productID"`
	OnHand    int    `json:"onHand"`
}
