package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/shopsmart/support-agent/internal/domain"
	"github.com/shopsmart/support-agent/internal/storage/memory"
	"github.com/shopsmart/support-agent/internal/storage/postgres"
)

// Dependencies содержит хранилища приложения. Store заполнен только для
// postgres-драйвера; Close освобождает его.
type Dependencies struct {
	Customers domain.CustomerRepository
	Products  domain.ProductRepository
	Orders    domain.OrderRepository
	Tickets   domain.TicketRepository
	Store     *postgres.Store
	Logger    *log.Entry
}

// NewDependencies инициализирует хранилища по выбранному драйверу.
// Для memory-драйвера по запросу заполняет демо-данные.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	switch cfg.StorageDriver {
	case "", "memory":
		deps := &Dependencies{
			Customers: memory.NewCustomerRepository(),
			Products:  memory.NewProductRepository(),
			Orders:    memory.NewOrderRepository(),
			Logger:    logger,
		}
		deps.Tickets = memory.NewTicketRepository(deps.Orders)
		if cfg.SeedDemoData {
			seedDemoData(deps)
			logger.Info("in-memory хранилище заполнено демо-данными")
		}
		return deps, nil

	case "postgres":
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("postgres хранилище готово")

		return &Dependencies{
			Customers: postgres.NewCustomerRepository(store),
			Products:  postgres.NewProductRepository(store),
			Orders:    postgres.NewOrderRepository(store),
			Tickets:   postgres.NewTicketRepository(store),
			Store:     store,
			Logger:    logger,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// Close освобождает ресурсы хранилища
func (d *Dependencies) Close() {
	if d.Store != nil {
		d.Store.Close()
	}
}
