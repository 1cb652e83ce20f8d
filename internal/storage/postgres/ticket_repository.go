package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopsmart/support-agent/internal/domain"
)

type ticketRepository struct {
	db *sql.DB
}

// NewTicketRepository создаёт PostgreSQL-реализацию TicketRepository.
func NewTicketRepository(store *Store) domain.TicketRepository {
	return &ticketRepository{db: store.DB()}
}

func (r *ticketRepository) Create(ctx context.Context, ticket domain.RefundTicket) (domain.RefundTicket, error) {
	if errs := ticket.ValidateInvariants(); len(errs) != 0 {
		return domain.RefundTicket{}, errs[0]
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO refund_tickets (customer_id, order_id, amount, reason, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`,
		ticket.CustomerID, ticket.OrderID, ticket.Amount, ticket.Reason,
		string(ticket.Status), ticket.CreatedAt,
	).Scan(&ticket.ID)
	if err != nil {
		// Ссылочная целостность: заявка на несуществующий заказ или покупателя.
		if isForeignKeyViolation(err) {
			return domain.RefundTicket{}, domain.ErrOrderNotFound
		}
		return domain.RefundTicket{}, fmt.Errorf("insert refund ticket: %w", err)
	}

	return ticket, nil
}

func (r *ticketRepository) Get(ctx context.Context, id int64) (domain.RefundTicket, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	ticket, err := scanTicket(r.db.QueryRowContext(ctx, `
		SELECT id, customer_id, order_id, amount, reason, status, created_at
		FROM refund_tickets
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.RefundTicket{}, domain.ErrTicketNotFound
		}
		return domain.RefundTicket{}, fmt.Errorf("select refund ticket: %w", err)
	}

	return ticket, nil
}

func (r *ticketRepository) ListByCustomer(ctx context.Context, customerID int64, orderID *int64) ([]domain.RefundTicket, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	query := `
		SELECT id, customer_id, order_id, amount, reason, status, created_at
		FROM refund_tickets
		WHERE customer_id = $1
	`
	args := []any{customerID}
	if orderID != nil {
		query += " AND order_id = $2"
		args = append(args, *orderID)
	}
	query += " ORDER BY created_at ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list refund tickets: %w", err)
	}
	defer rows.Close()

	return collectTickets(rows)
}

func (r *ticketRepository) ListPending(ctx context.Context) ([]domain.RefundTicket, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, customer_id, order_id, amount, reason, status, created_at
		FROM refund_tickets
		WHERE status = $1
		ORDER BY created_at ASC, id ASC
	`, string(domain.TicketStatusPendingApproval))
	if err != nil {
		return nil, fmt.Errorf("list pending tickets: %w", err)
	}
	defer rows.Close()

	return collectTickets(rows)
}

// Resolve применяет решение одной транзакцией: CAS по статусу заявки,
// а при одобрении — guard-UPDATE связанного заказа. Частичное состояние
// наружу не видно: либо коммит целиком, либо rollback.
func (r *ticketRepository) Resolve(ctx context.Context, ticketID int64, status domain.TicketStatus) (domain.TicketResolution, error) {
	if status != domain.TicketStatusApproved && status != domain.TicketStatusRejected {
		return domain.TicketResolution{}, domain.ErrUnknownTicketStatus
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.TicketResolution{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	ticket, err := scanTicket(tx.QueryRowContext(ctx, `
		UPDATE refund_tickets
		SET status = $1
		WHERE id = $2
		  AND status = $3
		RETURNING id, customer_id, order_id, amount, reason, status, created_at
	`, string(status), ticketID, string(domain.TicketStatusPendingApproval)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// CAS не прошёл: либо заявки нет, либо она уже терминальная.
			var current string
			lookupErr := tx.QueryRowContext(ctx, `
				SELECT status FROM refund_tickets WHERE id = $1
			`, ticketID).Scan(&current)
			if errors.Is(lookupErr, sql.ErrNoRows) {
				err = domain.ErrTicketNotFound
				return domain.TicketResolution{}, err
			}
			if lookupErr != nil {
				err = fmt.Errorf("lookup ticket status: %w", lookupErr)
				return domain.TicketResolution{}, err
			}
			err = domain.ErrTicketAlreadyResolved
			return domain.TicketResolution{}, err
		}
		err = fmt.Errorf("update refund ticket: %w", err)
		return domain.TicketResolution{}, err
	}

	res := domain.TicketResolution{Ticket: ticket}
	if status == domain.TicketStatusApproved {
		var updateRes sql.Result
		updateRes, err = tx.ExecContext(ctx, `
			UPDATE orders
			SET status = $1
			WHERE id = $2
			  AND status <> $1
		`, string(domain.OrderStatusReturned), ticket.OrderID)
		if err != nil {
			err = fmt.Errorf("mark order returned: %w", err)
			return domain.TicketResolution{}, err
		}

		var affected int64
		affected, err = updateRes.RowsAffected()
		if err != nil {
			err = fmt.Errorf("rows affected: %w", err)
			return domain.TicketResolution{}, err
		}
		if affected > 0 {
			res.OrderUpdated = true
		} else {
			var exists bool
			if err = tx.QueryRowContext(ctx, `
				SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)
			`, ticket.OrderID).Scan(&exists); err != nil {
				err = fmt.Errorf("check order existence: %w", err)
				return domain.TicketResolution{}, err
			}
			res.OrderMissing = !exists
		}
	}

	if err = tx.Commit(); err != nil {
		err = fmt.Errorf("commit resolve ticket: %w", err)
		return domain.TicketResolution{}, err
	}

	return res, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (domain.RefundTicket, error) {
	var (
		ticket domain.RefundTicket
		status string
	)
	if err := row.Scan(
		&ticket.ID, &ticket.CustomerID, &ticket.OrderID, &ticket.Amount,
		&ticket.Reason, &status, &ticket.CreatedAt,
	); err != nil {
		return domain.RefundTicket{}, err
	}

	parsed, err := domain.ParseTicketStatus(status)
	if err != nil {
		return domain.RefundTicket{}, fmt.Errorf("ticket %d: %w", ticket.ID, err)
	}
	ticket.Status = parsed
	return ticket, nil
}

func collectTickets(rows *sql.Rows) ([]domain.RefundTicket, error) {
	tickets := make([]domain.RefundTicket, 0)
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}
		tickets = append(tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ticket rows: %w", err)
	}
	return tickets, nil
}
