package refund

import "github.com/shopsmart/support-agent/internal/domain"

// AutoApproveThreshold — денежная граница, ниже которой возврат
// выполняется без участия человека. Сравнение строгое: сумма, равная
// порогу, уходит на ручное одобрение.
const AutoApproveThreshold = 50.0

// Decision — решение политики по заявке на возврат.
type Decision string

const (
	// DecisionAutoApprove — возврат можно провести сразу.
	DecisionAutoApprove Decision = "auto_approve"
	// DecisionRequireApproval — возврат требует одобрения администратора.
	DecisionRequireApproval Decision = "require_approval"
)

// Decide — чистая функция политики: по статусу и сумме заказа выбирает
// между немедленным возвратом и эскалацией. Никакого I/O, случайности
// или обращения ко времени.
//
// Предусловие: заказ в статусе returned отсекается вызывающей стороной
// до обращения к политике; сама политика эту проверку не выполняет.
func Decide(_ domain.OrderStatus, totalPrice float64) Decision {
	if totalPrice < AutoApproveThreshold {
		return DecisionAutoApprove
	}
	return DecisionRequireApproval
}
