package app

import (
	"time"

	"github.com/shopsmart/support-agent/internal/domain"
	"github.com/shopsmart/support-agent/internal/storage/memory"
)

// seedDemoData наполняет in-memory хранилище каталогом и парой покупателей,
// чтобы диалог с агентом работал сразу после запуска.
func seedDemoData(deps *Dependencies) {
	customers, okCustomers := deps.Customers.(memory.CustomerSeeder)
	products, okProducts := deps.Products.(memory.ProductSeeder)
	orders, okOrders := deps.Orders.(memory.OrderSeeder)
	if !okCustomers || !okProducts || !okOrders {
		return
	}

	alice := customers.Seed(domain.Customer{Name: "Alice Johnson", Email: "alice@example.com", IsVIP: true})
	bob := customers.Seed(domain.Customer{Name: "Bob Smith", Email: "bob@example.com"})

	scarf := products.Seed(domain.Product{
		Name:        "Wool Scarf",
		Description: "Warm hand-knitted scarf for cold winter days",
		Price:       19.99,
		StockLevel:  40,
		Category:    "Clothing",
	})
	headphones := products.Seed(domain.Product{
		Name:        "Noise-Cancelling Headphones",
		Description: "Over-ear wireless headphones with active noise cancellation",
		Price:       199.99,
		StockLevel:  15,
		Category:    "Electronics",
	})
	mug := products.Seed(domain.Product{
		Name:        "Thermal Mug",
		Description: "Insulated travel mug that keeps drinks hot for 8 hours",
		Price:       24.50,
		StockLevel:  60,
		Category:    "Kitchen",
	})

	now := time.Now().UTC()
	orders.Seed(domain.Order{
		CustomerID: alice.ID,
		ProductID:  scarf.ID,
		Quantity:   1,
		TotalPrice: 19.99,
		Status:     domain.OrderStatusDelivered,
		OrderDate:  now.AddDate(0, 0, -10),
	})
	orders.Seed(domain.Order{
		CustomerID: alice.ID,
		ProductID:  headphones.ID,
		Quantity:   1,
		TotalPrice: 199.99,
		Status:     domain.OrderStatusDelivered,
		OrderDate:  now.AddDate(0, 0, -4),
	})
	orders.Seed(domain.Order{
		CustomerID: alice.ID,
		ProductID:  mug.ID,
		Quantity:   2,
		TotalPrice: 49.00,
		Status:     domain.OrderStatusShipped,
		OrderDate:  now.AddDate(0, 0, -1),
	})
	orders.Seed(domain.Order{
		CustomerID: bob.ID,
		ProductID:  mug.ID,
		Quantity:   1,
		TotalPrice: 24.50,
		Status:     domain.OrderStatusProcessing,
		OrderDate:  now,
	})
}
