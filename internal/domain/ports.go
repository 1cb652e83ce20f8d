package domain

import (
	"context"
	"time"
)

// RefundDecision — решение администратора по заявке.
type RefundDecision string

const (
	RefundDecisionApprove RefundDecision = "approve"
	RefundDecisionReject  RefundDecision = "reject"
)

// ParseRefundDecision валидирует решение, пришедшее с административного интерфейса.
func ParseRefundDecision(s string) (RefundDecision, error) {
	switch RefundDecision(s) {
	case RefundDecisionApprove, RefundDecisionReject:
		return RefundDecision(s), nil
	}
	return "", ErrInvalidDecision
}

// RefundNotification — данные для уведомления покупателя о решении.
type RefundNotification struct {
	TicketID   int64
	OrderID    int64
	CustomerID int64
	Amount     float64
	Decision   RefundDecision
	DecidedAt  time.Time
}

// Notifier доставляет уведомление о принятом решении. Вызов fire-and-forget:
// ошибка доставки логируется, но никогда не откатывает состояние заявки и заказа.
type Notifier interface {
	RefundResolved(ctx context.Context, n RefundNotification) error
}

// ProductHit — результат семантического поиска по каталогу.
type ProductHit struct {
	Name        string
	Description string
	Category    string
	Price       float64
	Score       float64
}

// SearchIndex — семантический индекс каталога. Может отсутствовать в рантайме:
// при ненастроенном поиске компонент просто не регистрируется.
type SearchIndex interface {
	// IndexProducts пересоздаёт записи каталога в индексе.
	IndexProducts(ctx context.Context, products []Product) error
	// Search возвращает ближайшие по смыслу товары, не больше limit.
	Search(ctx context.Context, query string, limit int) ([]ProductHit, error)
}
