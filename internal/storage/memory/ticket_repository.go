package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/shopsmart/support-agent/internal/domain"
)

// ticketRepositoryInMemory — in-memory реализация TicketRepository.
// Для атомарности Resolve держит ссылку на репозиторий заказов: одобрение
// заявки и флип заказа выполняются под одним мьютексом заявок, имитируя
// транзакцию реляционного хранилища.
type ticketRepositoryInMemory struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]domain.RefundTicket
	orders domain.OrderRepository
}

// NewTicketRepository возвращает in-memory репозиторий заявок. orders нужен
// Resolve для обновления связанного заказа в том же "коммите".
func NewTicketRepository(orders domain.OrderRepository) domain.TicketRepository {
	return &ticketRepositoryInMemory{
		nextID: 1,
		items:  make(map[int64]domain.RefundTicket),
		orders: orders,
	}
}

// Create сохраняет заявку и присваивает ей идентификатор.
func (r *ticketRepositoryInMemory) Create(_ context.Context, ticket domain.RefundTicket) (domain.RefundTicket, error) {
	if errs := ticket.ValidateInvariants(); len(errs) != 0 {
		return domain.RefundTicket{}, errs[0]
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ticket.ID = r.nextID
	r.nextID++
	r.items[ticket.ID] = ticket
	return ticket, nil
}

// Get возвращает заявку или ErrTicketNotFound.
func (r *ticketRepositoryInMemory) Get(_ context.Context, id int64) (domain.RefundTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ticket, ok := r.items[id]
	if !ok {
		return domain.RefundTicket{}, domain.ErrTicketNotFound
	}
	return ticket, nil
}

// ListByCustomer возвращает заявки покупателя в порядке создания.
func (r *ticketRepositoryInMemory) ListByCustomer(_ context.Context, customerID int64, orderID *int64) ([]domain.RefundTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.RefundTicket, 0)
	for _, ticket := range r.items {
		if ticket.CustomerID != customerID {
			continue
		}
		if orderID != nil && ticket.OrderID != *orderID {
			continue
		}
		result = append(result, ticket)
	}

	sortTickets(result)
	return result, nil
}

// ListPending возвращает все заявки pending_approval.
func (r *ticketRepositoryInMemory) ListPending(_ context.Context) ([]domain.RefundTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.RefundTicket, 0)
	for _, ticket := range r.items {
		if ticket.Status == domain.TicketStatusPendingApproval {
			result = append(result, ticket)
		}
	}

	sortTickets(result)
	return result, nil
}

// Resolve применяет решение к заявке pending_approval; терминальная заявка
// не изменяется и возвращает ErrTicketAlreadyResolved.
func (r *ticketRepositoryInMemory) Resolve(ctx context.Context, ticketID int64, status domain.TicketStatus) (domain.TicketResolution, error) {
	if status != domain.TicketStatusApproved && status != domain.TicketStatusRejected {
		return domain.TicketResolution{}, domain.ErrUnknownTicketStatus
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.items[ticketID]
	if !ok {
		return domain.TicketResolution{}, domain.ErrTicketNotFound
	}
	if ticket.Status != domain.TicketStatusPendingApproval {
		return domain.TicketResolution{}, domain.ErrTicketAlreadyResolved
	}

	res := domain.TicketResolution{}
	if status == domain.TicketStatusApproved {
		err := r.orders.MarkReturned(ctx, ticket.OrderID)
		switch {
		case err == nil:
			res.OrderUpdated = true
		case err == domain.ErrOrderAlreadyReturned:
			// Заказ уже возвращён — решение по заявке всё равно фиксируем.
		case err == domain.ErrOrderNotFound:
			res.OrderMissing = true
		default:
			return domain.TicketResolution{}, err
		}
	}

	ticket.Status = status
	r.items[ticketID] = ticket
	res.Ticket = ticket
	return res, nil
}

func sortTickets(tickets []domain.RefundTicket) {
	sort.Slice(tickets, func(i, j int) bool {
		if !tickets[i].CreatedAt.Equal(tickets[j].CreatedAt) {
			return tickets[i].CreatedAt.Before(tickets[j].CreatedAt)
		}
		return tickets[i].ID < tickets[j].ID
	})
}
