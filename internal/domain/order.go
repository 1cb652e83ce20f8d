package domain

import "time"

// OrderStatus описывает жизненный цикл заказа в магазине.
type OrderStatus string

const (
	// OrderStatusProcessing — заказ оформлен и готовится к отправке.
	OrderStatusProcessing OrderStatus = "processing"
	// OrderStatusShipped — заказ передан в доставку.
	OrderStatusShipped OrderStatus = "shipped"
	// OrderStatusDelivered — заказ получен покупателем.
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusReturned — заказ возвращён; повторный возврат невозможен.
	OrderStatusReturned OrderStatus = "returned"
)

// ParseOrderStatus валидирует строку статуса на границе хранилища.
// Любое неизвестное значение отклоняется, а не принимается как есть.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusReturned:
		return OrderStatus(s), nil
	}
	return "", ErrUnknownOrderStatus
}

// Order агрегирует состояние заказа покупателя.
type Order struct {
	ID         int64
	CustomerID int64
	ProductID  int64
	Quantity   int32
	TotalPrice float64
	Status     OrderStatus
	OrderDate  time.Time
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.CustomerID == 0 {
		errs = append(errs, ErrCustomerRequired)
	}
	if o.ProductID == 0 {
		errs = append(errs, ErrProductRequired)
	}
	if o.Quantity <= 0 {
		errs = append(errs, ErrQuantityInvalid)
	}
	if o.TotalPrice < 0 {
		errs = append(errs, ErrAmountNegative)
	}
	if _, err := ParseOrderStatus(string(o.Status)); err != nil {
		errs = append(errs, err)
	}

	return errs
}
