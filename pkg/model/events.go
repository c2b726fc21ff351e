package model

import (
	"time"

	"github.com/google/uuid"
)

// Change event types published after a successful remote mutation.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
	EventRateCreated    = "dolar.created"
	EventRateUpdated    = "dolar.updated"
	EventRateDeleted    = "dolar.deleted"
)

// ChangeEvent is the envelope published to NATS when a collection changes.
type ChangeEvent struct {
	EventType     string    `json:"event_type"`
	Entity        string    `json:"entity"` // "product" or "dolar"
	CorrelationID uuid.UUID `json:"correlation_id"`
	OccurredAt    time.Time `json:"occurred_at"`
	Payload       any       `json:"payload,omitempty"`
}

// NewChangeEvent builds an envelope with a fresh correlation id.
func NewChangeEvent(eventType, entity string, payload any) *ChangeEvent {
	return &ChangeEvent{
		EventType:     eventType,
		Entity:        entity,
		CorrelationID: uuid.New(),
		OccurredAt:    time.Now().UTC(),
		Payload:       payload,
	}
}
