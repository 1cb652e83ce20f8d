package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/shopsmart/support-agent/internal/domain"
)

const (
	opTimeout = 5 * time.Second
)

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

func (r *orderRepository) Get(ctx context.Context, id int64) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var (
		order  domain.Order
		status string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_id, product_id, quantity, total_price, status, order_date
		FROM orders
		WHERE id = $1
	`, id).Scan(
		&order.ID, &order.CustomerID, &order.ProductID, &order.Quantity,
		&order.TotalPrice, &status, &order.OrderDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}

	order.Status, err = domain.ParseOrderStatus(status)
	if err != nil {
		return domain.Order{}, fmt.Errorf("order %d: %w", id, err)
	}

	return order, nil
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int64, limit int) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	query := `
		SELECT id, customer_id, product_id, quantity, total_price, status, order_date
		FROM orders
		WHERE customer_id = $1
		ORDER BY order_date DESC, id DESC
	`

	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = r.db.QueryContext(ctx, query+" LIMIT $2", customerID, limit)
	} else {
		rows, err = r.db.QueryContext(ctx, query, customerID)
	}
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var (
			order  domain.Order
			status string
		)
		if err := rows.Scan(
			&order.ID, &order.CustomerID, &order.ProductID, &order.Quantity,
			&order.TotalPrice, &status, &order.OrderDate,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		order.Status, err = domain.ParseOrderStatus(status)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", order.ID, err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}

// MarkReturned — один атомарный UPDATE с guard-условием: из двух
// конкурентных вызовов строку изменит ровно один, второй увидит
// эффект первого как ErrOrderAlreadyReturned.
func (r *orderRepository) MarkReturned(ctx context.Context, orderID int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1
		WHERE id = $2
		  AND status <> $1
	`, string(domain.OrderStatusReturned), orderID)
	if err != nil {
		return fmt.Errorf("mark order returned: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx, `
			SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)
		`, orderID).Scan(&exists); err != nil {
			return fmt.Errorf("check order existence: %w", err)
		}
		if !exists {
			return domain.ErrOrderNotFound
		}
		return domain.ErrOrderAlreadyReturned
	}

	return nil
}

// isForeignKeyViolation распознаёт нарушение внешнего ключа PostgreSQL.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
