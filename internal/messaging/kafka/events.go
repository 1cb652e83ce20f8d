package kafka

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopsmart/support-agent/internal/domain"
)

// EventType определяет тип события
type EventType string

const (
	// Refund события
	EventTypeRefundSettled   EventType = "refund.settled"
	EventTypeRefundEscalated EventType = "refund.escalated"
	EventTypeRefundApproved  EventType = "refund.approved"
	EventTypeRefundRejected  EventType = "refund.rejected"
)

// Topics для Kafka
const (
	TopicRefundEvents = "support.refund.events"
)

// RefundEvent представляет событие жизненного цикла возврата.
// EventID уникален для каждой публикации, чтобы потребители могли
// дедуплицировать повторные доставки.
type RefundEvent struct {
	EventID    string    `json:"event_id"`
	EventType  EventType `json:"event_type"`
	TicketID   int64     `json:"ticket_id,omitempty"`
	OrderID    int64     `json:"order_id"`
	CustomerID int64     `json:"customer_id"`
	Amount     float64   `json:"amount"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewRefundEvent создает новое событие возврата
func NewRefundEvent(eventType EventType, ticketID, orderID, customerID int64, amount float64) *RefundEvent {
	return &RefundEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		TicketID:   ticketID,
		OrderID:    orderID,
		CustomerID: customerID,
		Amount:     amount,
		Timestamp:  time.Now().UTC(),
	}
}

// EventTypeForDecision возвращает тип события для решения администратора.
func EventTypeForDecision(decision domain.RefundDecision) EventType {
	if decision == domain.RefundDecisionApprove {
		return EventTypeRefundApproved
	}
	return EventTypeRefundRejected
}
