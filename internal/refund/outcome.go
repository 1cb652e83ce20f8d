package refund

import "github.com/shopsmart/support-agent/internal/domain"

// RequestOutcomeKind перечисляет исходы RequestRefund.
type RequestOutcomeKind string

const (
	// OutcomeSettled — возврат проведён сразу, заказ переведён в returned.
	OutcomeSettled RequestOutcomeKind = "settled"
	// OutcomeEscalated — создана заявка pending_approval, заказ не тронут.
	OutcomeEscalated RequestOutcomeKind = "escalated"
	// OutcomeAlreadyReturned — заказ уже возвращён; информационный исход,
	// а не ошибка, состояние не меняется.
	OutcomeAlreadyReturned RequestOutcomeKind = "already_returned"
)

// RequestOutcome — результат запроса возврата.
type RequestOutcome struct {
	Kind    RequestOutcomeKind
	OrderID int64
	// TicketID заполнен только для OutcomeEscalated.
	TicketID int64
	// Amount — сумма возврата на момент запроса.
	Amount float64
}

// ResolutionOutcomeKind перечисляет исходы ResolveTicket.
type ResolutionOutcomeKind string

const (
	// ResolutionApplied — решение применено к заявке.
	ResolutionApplied ResolutionOutcomeKind = "applied"
	// ResolutionAlreadyProcessed — заявка уже в терминальном статусе;
	// повторное решение не применяется. Это граница идемпотентности.
	ResolutionAlreadyProcessed ResolutionOutcomeKind = "already_processed"
)

// ResolutionOutcome — результат применения решения администратора.
type ResolutionOutcome struct {
	Kind     ResolutionOutcomeKind
	TicketID int64
	Decision domain.RefundDecision
	// OrderID связанного заказа; 0 для ResolutionAlreadyProcessed.
	OrderID int64
	// OrderUpdated — true, если заказ переведён в returned той же транзакцией.
	OrderUpdated bool
}
