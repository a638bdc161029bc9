package models

import (
	"time"

	"github.com/google/uuid"
)

// Product lifecycle event types, also used as routing keys.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// ProductEvent is published after a product was created, updated or deleted.
// Product is nil for deletions.
type ProductEvent struct {
	ID         string           `json:"id"`
	Type       string           `json:"type"`
	ProductID  uint             `json:"product_id"`
	OccurredAt time.Time        `json:"occurred_at"`
	Product    *ProductResponse `json:"product,omitempty"`
}

// NewProductEvent stamps a new event with a random id.
func NewProductEvent(eventType string, productID uint, product *ProductResponse, at time.Time) ProductEvent {
	return ProductEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		ProductID:  productID,
		OccurredAt: at,
		Product:    product,
	}
}
