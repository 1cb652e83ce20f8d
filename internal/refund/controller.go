package refund

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/shopsmart/support-agent/internal/domain"
	"github.com/shopsmart/support-agent/internal/metrics"
)

// Controller оркестрирует жизненный цикл запроса на возврат: проверяет
// владение заказом, вызывает политику, фиксирует результат в хранилище и
// применяет решения администратора. Состояния между вызовами не хранит —
// каждая операция заново читает нужные записи и коммитит атомарно.
type Controller struct {
	orders   domain.OrderRepository
	tickets  domain.TicketRepository
	notifier domain.Notifier
	logger   *log.Entry
	metrics  *metrics.RefundMetrics
	now      func() time.Time
}

// NewController создаёт рабочий экземпляр контроллера. notifier может быть nil —
// тогда уведомления не отправляются.
func NewController(
	orders domain.OrderRepository,
	tickets domain.TicketRepository,
	notifier domain.Notifier,
	logger *log.Entry,
) *Controller {
	if logger == nil {
		logger = log.New().WithField("component", "refund")
	}
	return &Controller{
		orders:   orders,
		tickets:  tickets,
		notifier: notifier,
		logger:   logger,
		metrics:  metrics.NewRefundMetrics(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// NewControllerWithoutMetrics создаёт контроллер без метрик (для тестов).
func NewControllerWithoutMetrics(
	orders domain.OrderRepository,
	tickets domain.TicketRepository,
	notifier domain.Notifier,
	logger *log.Entry,
) *Controller {
	c := NewController(orders, tickets, notifier, logger)
	c.metrics = nil
	return c
}

// RequestRefund обрабатывает запрос покупателя на возврат заказа.
//
// Предусловия проверяются по порядку с коротким замыканием:
// заказ существует (ErrOrderNotFound), принадлежит покупателю (ErrForbidden),
// ещё не возвращён (информационный исход OutcomeAlreadyReturned).
// Дальше политика выбирает между немедленным возвратом и эскалацией;
// оба пути коммитятся одной атомарной записью.
func (c *Controller) RequestRefund(ctx context.Context, customerID, orderID int64, reason string) (RequestOutcome, error) {
	start := time.Now()
	defer func() {
		if c.metrics != nil {
			c.metrics.RecordRequestDuration(time.Since(start))
		}
	}()

	order, err := c.orders.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return RequestOutcome{}, domain.ErrOrderNotFound
		}
		return RequestOutcome{}, fmt.Errorf("load order %d: %w", orderID, err)
	}

	// Чужой заказ неотличим для покупателя от любого другого forbidden-случая:
	// наружу не утекает ничего, кроме самого факта отказа.
	if order.CustomerID != customerID {
		return RequestOutcome{}, domain.ErrForbidden
	}

	if order.Status == domain.OrderStatusReturned {
		return c.alreadyReturned(orderID), nil
	}

	switch Decide(order.Status, order.TotalPrice) {
	case DecisionAutoApprove:
		if err := c.orders.MarkReturned(ctx, orderID); err != nil {
			// Конкурентный запрос успел первым; наблюдаем его эффект.
			if errors.Is(err, domain.ErrOrderAlreadyReturned) {
				return c.alreadyReturned(orderID), nil
			}
			if errors.Is(err, domain.ErrOrderNotFound) {
				return RequestOutcome{}, domain.ErrOrderNotFound
			}
			return RequestOutcome{}, fmt.Errorf("settle refund for order %d: %w", orderID, err)
		}

		if c.metrics != nil {
			c.metrics.RecordSettled()
		}
		c.logger.WithFields(log.Fields{
			"order_id":    orderID,
			"customer_id": customerID,
			"amount":      order.TotalPrice,
		}).Info("возврат проведён автоматически")

		return RequestOutcome{
			Kind:    OutcomeSettled,
			OrderID: orderID,
			Amount:  order.TotalPrice,
		}, nil

	default: // DecisionRequireApproval
		ticket := domain.RefundTicket{
			CustomerID: customerID,
			OrderID:    orderID,
			Amount:     order.TotalPrice,
			Reason:     reason,
			Status:     domain.TicketStatusPendingApproval,
			CreatedAt:  c.now(),
		}
		created, err := c.tickets.Create(ctx, ticket)
		if err != nil {
			return RequestOutcome{}, fmt.Errorf("escalate refund for order %d: %w", orderID, err)
		}

		if c.metrics != nil {
			c.metrics.RecordEscalated()
		}
		c.logger.WithFields(log.Fields{
			"order_id":    orderID,
			"customer_id": customerID,
			"ticket_id":   created.ID,
			"amount":      created.Amount,
		}).Info("возврат эскалирован на одобрение")

		return RequestOutcome{
			Kind:     OutcomeEscalated,
			OrderID:  orderID,
			TicketID: created.ID,
			Amount:   created.Amount,
		}, nil
	}
}

// ResolveTicket применяет решение администратора к заявке pending_approval.
// Повторное решение по той же заявке возвращает ResolutionAlreadyProcessed
// и не меняет состояние. Уведомление покупателя — fire-and-forget: его сбой
// логируется, но не откатывает уже зафиксированное решение.
func (c *Controller) ResolveTicket(ctx context.Context, ticketID int64, decision domain.RefundDecision) (ResolutionOutcome, error) {
	target := domain.TicketStatusRejected
	switch decision {
	case domain.RefundDecisionApprove:
		target = domain.TicketStatusApproved
	case domain.RefundDecisionReject:
	default:
		return ResolutionOutcome{}, domain.ErrInvalidDecision
	}

	res, err := c.tickets.Resolve(ctx, ticketID, target)
	if err != nil {
		if errors.Is(err, domain.ErrTicketNotFound) {
			return ResolutionOutcome{}, domain.ErrTicketNotFound
		}
		if errors.Is(err, domain.ErrTicketAlreadyResolved) {
			return ResolutionOutcome{
				Kind:     ResolutionAlreadyProcessed,
				TicketID: ticketID,
				Decision: decision,
			}, nil
		}
		return ResolutionOutcome{}, fmt.Errorf("resolve ticket %d: %w", ticketID, err)
	}

	if res.OrderMissing {
		// Решение по заявке зафиксировано, но заказ к этому моменту исчез.
		// Деградация логируется как расхождение, не как фатальная ошибка.
		c.logger.WithFields(log.Fields{
			"ticket_id": ticketID,
			"order_id":  res.Ticket.OrderID,
		}).Warn("заказ по одобренной заявке не найден, статус заказа не обновлён")
	}

	if c.metrics != nil {
		c.metrics.RecordResolution(string(decision))
	}
	c.logger.WithFields(log.Fields{
		"ticket_id": ticketID,
		"order_id":  res.Ticket.OrderID,
		"decision":  decision,
	}).Info("решение по заявке применено")

	c.notifyResolved(ctx, res.Ticket, decision)

	return ResolutionOutcome{
		Kind:         ResolutionApplied,
		TicketID:     ticketID,
		Decision:     decision,
		OrderID:      res.Ticket.OrderID,
		OrderUpdated: res.OrderUpdated,
	}, nil
}

func (c *Controller) notifyResolved(ctx context.Context, ticket domain.RefundTicket, decision domain.RefundDecision) {
	if c.notifier == nil {
		return
	}

	n := domain.RefundNotification{
		TicketID:   ticket.ID,
		OrderID:    ticket.OrderID,
		CustomerID: ticket.CustomerID,
		Amount:     ticket.Amount,
		Decision:   decision,
		DecidedAt:  c.now(),
	}
	if err := c.notifier.RefundResolved(ctx, n); err != nil {
		c.logger.WithError(err).WithField("ticket_id", ticket.ID).
			Warn("не удалось отправить уведомление о решении")
	}
}

func (c *Controller) alreadyReturned(orderID int64) RequestOutcome {
	if c.metrics != nil {
		c.metrics.RecordAlreadyReturned()
	}
	return RequestOutcome{
		Kind:    OutcomeAlreadyReturned,
		OrderID: orderID,
	}
}
