package notify

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"

	"github.com/shopsmart/support-agent/internal/domain"
)

// SMTPConfig описывает подключение к почтовому серверу
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// EmailNotifier отправляет покупателю письмо о решении по его заявке.
// Адрес получателя берётся из профиля покупателя.
type EmailNotifier struct {
	client    *mail.Client
	from      string
	customers domain.CustomerRepository
	logger    *log.Entry
}

// NewEmailNotifier создает notifier с SMTP-клиентом
func NewEmailNotifier(cfg SMTPConfig, customers domain.CustomerRepository) (*EmailNotifier, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &EmailNotifier{
		client:    client,
		from:      cfg.From,
		customers: customers,
		logger:    log.WithField("component", "email-notifier"),
	}, nil
}

// RefundResolved отправляет письмо о решении по заявке
func (e *EmailNotifier) RefundResolved(ctx context.Context, n domain.RefundNotification) error {
	customer, err := e.customers.Get(ctx, n.CustomerID)
	if err != nil {
		return fmt.Errorf("load customer %d for notification: %w", n.CustomerID, err)
	}

	msg := mail.NewMsg()
	if err := msg.From(e.from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(customer.Email); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(subjectFor(n.Decision, n.TicketID))
	msg.SetBodyString(mail.TypeTextPlain, bodyFor(customer.Name, n))

	if err := e.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send decision email for ticket %d: %w", n.TicketID, err)
	}

	e.logger.WithFields(log.Fields{
		"ticket_id": n.TicketID,
		"decision":  n.Decision,
	}).Debug("письмо о решении отправлено")
	return nil
}

func subjectFor(decision domain.RefundDecision, ticketID int64) string {
	if decision == domain.RefundDecisionApprove {
		return fmt.Sprintf("Your refund request #%d has been approved", ticketID)
	}
	return fmt.Sprintf("Your refund request #%d has been declined", ticketID)
}

func bodyFor(name string, n domain.RefundNotification) string {
	if n.Decision == domain.RefundDecisionApprove {
		return fmt.Sprintf(
			"Hello %s,\n\nYour refund request #%d for order #%d has been approved. "+
				"$%.2f will be returned to your original payment method.\n\nShopSmart Support",
			name, n.TicketID, n.OrderID, n.Amount)
	}
	return fmt.Sprintf(
		"Hello %s,\n\nYour refund request #%d for order #%d has been declined. "+
			"Reply to this email if you would like to discuss the decision.\n\nShopSmart Support",
		name, n.TicketID, n.OrderID)
}
