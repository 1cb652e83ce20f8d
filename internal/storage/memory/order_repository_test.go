package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopsmart/support-agent/internal/domain"
	"github.com/shopsmart/support-agent/internal/storage/memory"
)

func seedOrder(t *testing.T, repo domain.OrderRepository, order domain.Order) domain.Order {
	t.Helper()

	seeder, ok := repo.(memory.OrderSeeder)
	if !ok {
		t.Fatal("repository does not support seeding")
	}
	return seeder.Seed(order)
}

func newOrder(id int64) domain.Order {
	return domain.Order{
		ID:         id,
		CustomerID: 7,
		ProductID:  3,
		Quantity:   1,
		TotalPrice: 30,
		Status:     domain.OrderStatusProcessing,
		OrderDate:  time.Now().UTC(),
	}
}

func TestOrderRepository_Get(t *testing.T) {
	repo := memory.NewOrderRepository()
	order := seedOrder(t, repo, newOrder(1))

	stored, err := repo.Get(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.ID != order.ID || stored.TotalPrice != order.TotalPrice {
		t.Fatalf("unexpected order: %+v", stored)
	}

	if _, err := repo.Get(context.Background(), 99); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepository_ListByCustomer(t *testing.T) {
	repo := memory.NewOrderRepository()
	now := time.Now().UTC()

	older := newOrder(1)
	older.OrderDate = now.Add(-time.Hour)
	newer := newOrder(2)
	newer.OrderDate = now
	foreign := newOrder(3)
	foreign.CustomerID = 8

	seedOrder(t, repo, older)
	seedOrder(t, repo, newer)
	seedOrder(t, repo, foreign)

	orders, err := repo.ListByCustomer(context.Background(), 7, 5)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	// Свежие заказы первыми.
	if orders[0].ID != 2 || orders[1].ID != 1 {
		t.Fatalf("unexpected ordering: %d, %d", orders[0].ID, orders[1].ID)
	}

	limited, err := repo.ListByCustomer(context.Background(), 7, 1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != 2 {
		t.Fatalf("expected only newest order, got %+v", limited)
	}
}

func TestOrderRepository_MarkReturned(t *testing.T) {
	repo := memory.NewOrderRepository()
	order := seedOrder(t, repo, newOrder(1))

	if err := repo.MarkReturned(context.Background(), order.ID); err != nil {
		t.Fatalf("mark returned failed: %v", err)
	}

	stored, err := repo.Get(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Status != domain.OrderStatusReturned {
		t.Fatalf("expected returned status, got %s", stored.Status)
	}

	if err := repo.MarkReturned(context.Background(), order.ID); !errors.Is(err, domain.ErrOrderAlreadyReturned) {
		t.Fatalf("expected ErrOrderAlreadyReturned, got %v", err)
	}
	if err := repo.MarkReturned(context.Background(), 99); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

// Из двух конкурентных флипов по одному заказу успешным обязан быть ровно один.
func TestOrderRepository_MarkReturned_Race(t *testing.T) {
	repo := memory.NewOrderRepository()
	order := seedOrder(t, repo, newOrder(1))

	const goroutines = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.MarkReturned(context.Background(), order.ID); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 {
		t.Fatalf("expected exactly one successful flip, got %d", succeeded)
	}
}
