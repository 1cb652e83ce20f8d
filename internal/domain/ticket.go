package domain

import "time"

// TicketStatus описывает состояние заявки на возврат.
type TicketStatus string

const (
	// TicketStatusOpen — зарезервировано для ручных сценариев; автоматический
	// поток таких заявок не создаёт.
	TicketStatusOpen TicketStatus = "open"
	// TicketStatusPendingApproval — заявка ждёт решения администратора.
	TicketStatusPendingApproval TicketStatus = "pending_approval"
	// TicketStatusApproved — возврат одобрен; терминальный статус.
	TicketStatusApproved TicketStatus = "approved"
	// TicketStatusRejected — возврат отклонён; терминальный статус.
	TicketStatusRejected TicketStatus = "rejected"
	// TicketStatusClosed — зарезервировано для ручных сценариев.
	TicketStatusClosed TicketStatus = "closed"
)

// ParseTicketStatus валидирует строку статуса на границе хранилища.
func ParseTicketStatus(s string) (TicketStatus, error) {
	switch TicketStatus(s) {
	case TicketStatusOpen, TicketStatusPendingApproval, TicketStatusApproved,
		TicketStatusRejected, TicketStatusClosed:
		return TicketStatus(s), nil
	}
	return "", ErrUnknownTicketStatus
}

// IsTerminal сообщает, что по заявке уже принято решение и новые решения
// к ней применяться не могут.
func (s TicketStatus) IsTerminal() bool {
	return s == TicketStatusApproved || s == TicketStatusRejected
}

// RefundTicket — заявка на возврат, ожидающая или прошедшая проверку человеком.
// Amount копируется из заказа в момент создания и позже не пересчитывается.
type RefundTicket struct {
	ID         int64
	CustomerID int64
	OrderID    int64
	Amount     float64
	Reason     string
	Status     TicketStatus
	CreatedAt  time.Time
}

// ValidateInvariants проверяет заявку перед сохранением.
func (t *RefundTicket) ValidateInvariants() []error {
	var errs []error

	if t.CustomerID == 0 {
		errs = append(errs, ErrCustomerRequired)
	}
	if t.OrderID == 0 {
		errs = append(errs, ErrOrderRequired)
	}
	if t.Amount < 0 {
		errs = append(errs, ErrAmountNegative)
	}
	if _, err := ParseTicketStatus(string(t.Status)); err != nil {
		errs = append(errs, err)
	}

	return errs
}
