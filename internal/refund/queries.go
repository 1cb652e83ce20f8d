package refund

import (
	"context"
	"fmt"

	"github.com/shopsmart/support-agent/internal/domain"
)

// Запросная поверхность заявок. Ничего не мутирует; пустая выборка —
// нормальный результат, а не ошибка NotFound.

// ListTickets возвращает заявки покупателя; orderID=nil — без фильтра по заказу.
func (c *Controller) ListTickets(ctx context.Context, customerID int64, orderID *int64) ([]domain.RefundTicket, error) {
	tickets, err := c.tickets.ListByCustomer(ctx, customerID, orderID)
	if err != nil {
		return nil, fmt.Errorf("list tickets for customer %d: %w", customerID, err)
	}
	return tickets, nil
}

// LatestTicket возвращает самую свежую заявку пары (покупатель, заказ)
// или nil, если заявок нет. Заявки упорядочены по времени создания;
// при совпадении таймштампов побеждает более поздняя вставка.
func (c *Controller) LatestTicket(ctx context.Context, customerID, orderID int64) (*domain.RefundTicket, error) {
	tickets, err := c.tickets.ListByCustomer(ctx, customerID, &orderID)
	if err != nil {
		return nil, fmt.Errorf("latest ticket for order %d: %w", orderID, err)
	}
	if len(tickets) == 0 {
		return nil, nil
	}
	last := tickets[len(tickets)-1]
	return &last, nil
}

// ListPending возвращает все заявки pending_approval — административная
// выборка без привязки к покупателю.
func (c *Controller) ListPending(ctx context.Context) ([]domain.RefundTicket, error) {
	tickets, err := c.tickets.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending tickets: %w", err)
	}
	return tickets, nil
}
