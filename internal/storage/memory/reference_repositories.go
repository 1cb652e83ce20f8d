package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/shopsmart/support-agent/internal/domain"
)

// Справочные репозитории: покупатели и каталог. Только чтение со стороны
// ядра; Seed используется для демонстрационных данных.

type customerRepositoryInMemory struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]domain.Customer
}

// NewCustomerRepository возвращает in-memory справочник покупателей.
func NewCustomerRepository() domain.CustomerRepository {
	return &customerRepositoryInMemory{
		nextID: 1,
		items:  make(map[int64]domain.Customer),
	}
}

// CustomerSeeder позволяет наполнить справочник демонстрационными данными.
type CustomerSeeder interface {
	Seed(customer domain.Customer) domain.Customer
}

func (r *customerRepositoryInMemory) Seed(customer domain.Customer) domain.Customer {
	r.mu.Lock()
	defer r.mu.Unlock()

	if customer.ID == 0 {
		customer.ID = r.nextID
	}
	if customer.ID >= r.nextID {
		r.nextID = customer.ID + 1
	}
	r.items[customer.ID] = customer
	return customer
}

func (r *customerRepositoryInMemory) Get(_ context.Context, id int64) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.items[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return customer, nil
}

func (r *customerRepositoryInMemory) List(_ context.Context) ([]domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Customer, 0, len(r.items))
	for _, customer := range r.items {
		result = append(result, customer)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type productRepositoryInMemory struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]domain.Product
}

// NewProductRepository возвращает in-memory каталог товаров.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{
		nextID: 1,
		items:  make(map[int64]domain.Product),
	}
}

// ProductSeeder позволяет наполнить каталог демонстрационными данными.
type ProductSeeder interface {
	Seed(product domain.Product) domain.Product
}

func (r *productRepositoryInMemory) Seed(product domain.Product) domain.Product {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == 0 {
		product.ID = r.nextID
	}
	if product.ID >= r.nextID {
		r.nextID = product.ID + 1
	}
	r.items[product.ID] = product
	return product
}

func (r *productRepositoryInMemory) Get(_ context.Context, id int64) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

func (r *productRepositoryInMemory) List(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.items))
	for _, product := range r.items {
		result = append(result, product)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
