package httpapi

import "time"

// ChatRequest — сообщение покупателя агенту
type ChatRequest struct {
	Message string `json:"message" validate:"required,min=1,max=4000"`
}

// ChatResponse — ответ агента
type ChatResponse struct {
	Response string `json:"response"`
}

// DecisionRequest — решение администратора по заявке
type DecisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
}

// DecisionResponse — результат применения решения
type DecisionResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// TicketView — заявка в административной выдаче
type TicketView struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customer_id"`
	OrderID    int64     `json:"order_id"`
	Amount     float64   `json:"amount"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
