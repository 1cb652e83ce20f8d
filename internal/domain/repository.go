package domain

import "context"

// CustomerRepository описывает доступ к справочнику покупателей (только чтение).
type CustomerRepository interface {
	// Get возвращает покупателя или ErrCustomerNotFound.
	Get(ctx context.Context, id int64) (Customer, error)
	// List возвращает всех покупателей; используется служебными утилитами.
	List(ctx context.Context) ([]Customer, error)
}

// ProductRepository описывает доступ к каталогу товаров (только чтение).
type ProductRepository interface {
	// Get возвращает товар или ErrProductNotFound.
	Get(ctx context.Context, id int64) (Product, error)
	// List возвращает весь каталог; используется индексатором поиска.
	List(ctx context.Context) ([]Product, error)
}

// OrderRepository описывает требования к хранилищу заказов.
// Workflow возвратов — единственный компонент, которому разрешено менять Order.Status.
type OrderRepository interface {
	// Get возвращает заказ по идентификатору или ErrOrderNotFound.
	Get(ctx context.Context, id int64) (Order, error)
	// ListByCustomer возвращает заказы покупателя, свежие первыми,
	// с опциональным ограничением на количество.
	ListByCustomer(ctx context.Context, customerID int64, limit int) ([]Order, error)
	// MarkReturned атомарно переводит заказ в статус returned.
	// Запись, уже находящаяся в returned, не изменяется — в этом случае
	// возвращается ErrOrderAlreadyReturned. Из двух конкурентных вызовов
	// по одному заказу успешным может быть только один.
	MarkReturned(ctx context.Context, orderID int64) error
}

// TicketResolution описывает итог атомарного применения решения администратора.
type TicketResolution struct {
	// Ticket — заявка после перевода в терминальный статус.
	Ticket RefundTicket
	// OrderUpdated — true, если связанный заказ переведён в returned
	// в той же транзакции.
	OrderUpdated bool
	// OrderMissing — true, если заказ к моменту решения исчез из хранилища.
	// Решение по заявке при этом всё равно фиксируется.
	OrderMissing bool
}

// TicketRepository описывает требования к хранилищу заявок на возврат.
type TicketRepository interface {
	// Create сохраняет новую заявку и возвращает её с присвоенным идентификатором.
	Create(ctx context.Context, ticket RefundTicket) (RefundTicket, error)
	// Get возвращает заявку или ErrTicketNotFound.
	Get(ctx context.Context, id int64) (RefundTicket, error)
	// ListByCustomer возвращает заявки покупателя в порядке создания
	// (created_at ASC, id ASC); orderID=nil — без фильтра по заказу.
	ListByCustomer(ctx context.Context, customerID int64, orderID *int64) ([]RefundTicket, error)
	// ListPending возвращает все заявки в статусе pending_approval (административная выборка).
	ListPending(ctx context.Context) ([]RefundTicket, error)
	// Resolve атомарно применяет решение к заявке в статусе pending_approval:
	// переводит её в status (approved или rejected), а при одобрении в той же
	// транзакции помечает связанный заказ возвращённым. Если заявка уже в
	// терминальном статусе, возвращается ErrTicketAlreadyResolved без изменений.
	Resolve(ctx context.Context, ticketID int64, status TicketStatus) (TicketResolution, error)
}
