package domain

import "errors"

var (
	// Ошибка отсутствующего идентификатора покупателя.
	ErrCustomerRequired = errors.New("customer_id is required")
	// Ошибка отсутствующего идентификатора товара.
	ErrProductRequired = errors.New("product_id is required")
	// Ошибка отсутствующего идентификатора заказа в заявке на возврат.
	ErrOrderRequired = errors.New("order_id is required")
	// Ошибка некорректного количества товара (<= 0).
	ErrQuantityInvalid = errors.New("quantity must be greater than zero")
	// Ошибка отрицательной суммы заказа или заявки.
	ErrAmountNegative = errors.New("amount must be non-negative")
	// ErrUnknownOrderStatus возвращается при попытке принять статус вне закрытого перечня.
	ErrUnknownOrderStatus = errors.New("unknown order status")
	// ErrUnknownTicketStatus возвращается при попытке принять статус вне закрытого перечня.
	ErrUnknownTicketStatus = errors.New("unknown ticket status")

	// ErrCustomerNotFound возвращается, если покупатель не найден.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrProductNotFound возвращается, если товар не найден.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound возвращается, если заказ не найден.
	ErrOrderNotFound = errors.New("order not found")
	// ErrTicketNotFound возвращается, если заявка на возврат не найдена.
	ErrTicketNotFound = errors.New("refund ticket not found")

	// ErrForbidden — заказ существует, но принадлежит другому покупателю.
	ErrForbidden = errors.New("order belongs to another customer")
	// ErrOrderAlreadyReturned — compare-and-set по заказу не прошёл: заказ уже возвращён.
	ErrOrderAlreadyReturned = errors.New("order already returned")
	// ErrTicketAlreadyResolved — по заявке уже принято решение; повторное применение запрещено.
	ErrTicketAlreadyResolved = errors.New("ticket already resolved")
	// ErrInvalidDecision — решение администратора вне перечня approve/reject.
	ErrInvalidDecision = errors.New("decision must be approve or reject")
)

// IsNotFound проверяет, относится ли ошибка к классу "запись отсутствует".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrTicketNotFound) ||
		errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrProductNotFound)
}
