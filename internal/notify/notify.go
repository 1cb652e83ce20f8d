// Package notify доставляет уведомления о решениях по возвратам во внешние
// каналы. Каждый канал реализует domain.Notifier и подключается только когда
// сконфигурирован; отсутствие каналов — валидная конфигурация.
package notify

import (
	"context"
	"errors"

	"github.com/shopsmart/support-agent/internal/domain"
)

// Fanout рассылает уведомление во все каналы. Сбой одного канала не мешает
// остальным; ошибки собираются в одну.
type Fanout struct {
	notifiers []domain.Notifier
}

// NewFanout собирает fanout из ненулевых каналов. Если каналов нет,
// возвращает nil — вызывающий код трактует nil как "уведомления выключены".
func NewFanout(notifiers ...domain.Notifier) domain.Notifier {
	alive := make([]domain.Notifier, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			alive = append(alive, n)
		}
	}
	if len(alive) == 0 {
		return nil
	}
	if len(alive) == 1 {
		return alive[0]
	}
	return &Fanout{notifiers: alive}
}

// RefundResolved доставляет уведомление во все каналы
func (f *Fanout) RefundResolved(ctx context.Context, n domain.RefundNotification) error {
	var errs []error
	for _, notifier := range f.notifiers {
		if err := notifier.RefundResolved(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
