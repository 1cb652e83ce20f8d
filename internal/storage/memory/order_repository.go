package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/shopsmart/support-agent/internal/domain"
)

// orderRepositoryInMemory — простая in-memory реализация OrderRepository.
type orderRepositoryInMemory struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]domain.Order
}

// NewOrderRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		nextID: 1,
		items:  make(map[int64]domain.Order),
	}
}

// OrderSeeder позволяет наполнить репозиторий демонстрационными данными.
type OrderSeeder interface {
	Seed(order domain.Order) domain.Order
}

// Seed добавляет заказ, присваивая идентификатор, если он не задан.
func (r *orderRepositoryInMemory) Seed(order domain.Order) domain.Order {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == 0 {
		order.ID = r.nextID
	}
	if order.ID >= r.nextID {
		r.nextID = order.ID + 1
	}
	r.items[order.ID] = order
	return order
}

// Get возвращает заказ или ErrOrderNotFound, если его нет.
func (r *orderRepositoryInMemory) Get(_ context.Context, id int64) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order, nil
}

// ListByCustomer возвращает заказы покупателя, свежие первыми.
func (r *orderRepositoryInMemory) ListByCustomer(_ context.Context, customerID int64, limit int) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0, len(r.items))
	for _, order := range r.items {
		if order.CustomerID != customerID {
			continue
		}
		result = append(result, order)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].OrderDate.Equal(result[j].OrderDate) {
			return result[i].OrderDate.After(result[j].OrderDate)
		}
		return result[i].ID > result[j].ID
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}

// MarkReturned атомарно переводит заказ в returned (compare-and-set под мьютексом).
func (r *orderRepositoryInMemory) MarkReturned(_ context.Context, orderID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.items[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if order.Status == domain.OrderStatusReturned {
		return domain.ErrOrderAlreadyReturned
	}
	order.Status = domain.OrderStatusReturned
	r.items[orderID] = order
	return nil
}
