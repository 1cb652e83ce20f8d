package notify

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/shopsmart/support-agent/internal/domain"
	"github.com/shopsmart/support-agent/internal/messaging/kafka"
)

// KafkaNotifier публикует решения по возвратам в топик событий возвратов
type KafkaNotifier struct {
	producer *kafka.Producer
	logger   *log.Entry
}

// NewKafkaNotifier создает notifier поверх готового producer
func NewKafkaNotifier(producer *kafka.Producer) *KafkaNotifier {
	return &KafkaNotifier{
		producer: producer,
		logger:   log.WithField("component", "kafka-notifier"),
	}
}

// RefundResolved публикует событие решения по заявке
func (k *KafkaNotifier) RefundResolved(_ context.Context, n domain.RefundNotification) error {
	event := kafka.NewRefundEvent(
		kafka.EventTypeForDecision(n.Decision),
		n.TicketID,
		n.OrderID,
		n.CustomerID,
		n.Amount,
	)
	if err := k.producer.PublishRefundEvent(event); err != nil {
		return fmt.Errorf("publish refund event for ticket %d: %w", n.TicketID, err)
	}

	k.logger.WithFields(log.Fields{
		"ticket_id":  n.TicketID,
		"event_type": event.EventType,
	}).Debug("событие решения опубликовано")
	return nil
}
