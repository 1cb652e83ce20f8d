package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopsmart/support-agent/internal/domain"
	"github.com/shopsmart/support-agent/internal/refund"
)

const (
	recentOrdersLimit = 5
	searchHitsLimit   = 3
)

// Toolset связывает инструменты агента с хранилищем и бизнес-логикой.
// search может быть nil — тогда семантический поиск не регистрируется
// и модель про него не знает.
type Toolset struct {
	customers domain.CustomerRepository
	orders    domain.OrderRepository
	refunds   *refund.Controller
	search    domain.SearchIndex
}

// NewToolset собирает инструменты поверх готовых зависимостей
func NewToolset(
	customers domain.CustomerRepository,
	orders domain.OrderRepository,
	refunds *refund.Controller,
	search domain.SearchIndex,
) *Toolset {
	return &Toolset{
		customers: customers,
		orders:    orders,
		refunds:   refunds,
		search:    search,
	}
}

// BuildRegistry регистрирует все доступные инструменты
func (t *Toolset) BuildRegistry() (*Registry, error) {
	registry := NewRegistry()

	tools := []Tool{
		{
			Name:        "get_customer_profile",
			Description: "Fetch the profile of the current customer: their name, VIP status and email.",
			Parameters:  noParamsSchema,
			Handler:     t.getCustomerProfile,
		},
		{
			Name:        "list_recent_orders",
			Description: "Get a list of the customer's most recent orders. Use this when the user asks \"Where is my stuff?\" or \"Show my history\".",
			Parameters:  noParamsSchema,
			Handler:     t.listRecentOrders,
		},
		{
			Name:        "get_order_details",
			Description: "Get the details of a specific order. Use this when the user asks \"What's the status of my order?\".",
			Parameters:  orderIDSchema,
			Handler:     t.getOrderDetails,
		},
		{
			Name:        "check_refund_status",
			Description: "Check the status of refund requests. If order_id is provided, checks that specific order; otherwise lists all refund tickets for the customer.",
			Parameters:  optionalOrderIDSchema,
			Handler:     t.checkRefundStatus,
		},
		{
			Name:        "request_refund",
			Description: "Submit a refund request for an order. Small amounts are refunded immediately, larger ones require admin approval.",
			Parameters:  refundRequestSchema,
			Handler:     t.requestRefund,
		},
	}
	if t.search != nil {
		tools = append(tools, Tool{
			Name:        "search_products",
			Description: "Search for products based on concepts (semantic search). Use for recommendations, vague descriptions or gift ideas.",
			Parameters:  searchQuerySchema,
			Handler:     t.searchProducts,
		})
	}

	for _, tool := range tools {
		if err := registry.Register(tool); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

var (
	noParamsSchema = json.RawMessage(`{"type":"object","properties":{}}`)

	orderIDSchema = json.RawMessage(`{
		"type": "object",
		"properties": {
			"order_id": {"type": "integer", "description": "The order identifier"}
		},
		"required": ["order_id"]
	}`)

	optionalOrderIDSchema = json.RawMessage(`{
		"type": "object",
		"properties": {
			"order_id": {"type": "integer", "description": "Optional order identifier to filter by"}
		}
	}`)

	refundRequestSchema = json.RawMessage(`{
		"type": "object",
		"properties": {
			"order_id": {"type": "integer", "description": "The order to refund"},
			"reason": {"type": "string", "description": "Why the customer wants the refund"}
		},
		"required": ["order_id", "reason"]
	}`)

	searchQuerySchema = json.RawMessage(`{
		"type": "object",
		"properties": {
			"query": {"type": "string", "description": "What the customer is looking for"}
		},
		"required": ["query"]
	}`)
)

func (t *Toolset) getCustomerProfile(ctx context.Context, customerID int64, _ json.RawMessage) (string, error) {
	customer, err := t.customers.Get(ctx, customerID)
	if err != nil {
		if domain.IsNotFound(err) {
			return "Error: Customer not found", nil
		}
		return "", err
	}
	return fmt.Sprintf("Customer Name: %s, VIP Status: %t, Email: %s",
		customer.Name, customer.IsVIP, customer.Email), nil
}

func (t *Toolset) listRecentOrders(ctx context.Context, customerID int64, _ json.RawMessage) (string, error) {
	orders, err := t.orders.ListByCustomer(ctx, customerID, recentOrdersLimit)
	if err != nil {
		return "", err
	}
	if len(orders) == 0 {
		return "No recent orders found", nil
	}

	lines := make([]string, 0, len(orders))
	for _, order := range orders {
		lines = append(lines, fmt.Sprintf("Order ID: %d, Date: %s, Total: %.2f, Status: %s",
			order.ID, order.OrderDate.Format("2006-01-02"), order.TotalPrice, order.Status))
	}
	return strings.Join(lines, "\n"), nil
}

func (t *Toolset) getOrderDetails(ctx context.Context, customerID int64, args json.RawMessage) (string, error) {
	var params struct {
		OrderID int64 `json:"order_id"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return "", fmt.Errorf("parse arguments: %w", err)
	}

	order, err := t.orders.Get(ctx, params.OrderID)
	if err != nil {
		if domain.IsNotFound(err) {
			return "Error: Order not found", nil
		}
		return "", err
	}
	// Чужой заказ не раскрывается даже фактом существования деталей.
	if order.CustomerID != customerID {
		return "Security Alert: You do not have access to this order", nil
	}

	return fmt.Sprintf("Order %d details: Status: %s, Items Qty: %d, Total: %.2f, Order Date: %s",
		order.ID, order.Status, order.Quantity, order.TotalPrice, order.OrderDate.Format("2006-01-02")), nil
}

func (t *Toolset) checkRefundStatus(ctx context.Context, customerID int64, args json.RawMessage) (string, error) {
	var params struct {
		OrderID *int64 `json:"order_id"`
	}
	if len(args) > 0 {
		if err := json.Unmarshal(args, &params); err != nil {
			return "", fmt.Errorf("parse arguments: %w", err)
		}
	}

	tickets, err := t.refunds.ListTickets(ctx, customerID, params.OrderID)
	if err != nil {
		return "", err
	}
	if len(tickets) == 0 {
		return "No active refund tickets found.", nil
	}

	lines := make([]string, 0, len(tickets))
	for _, ticket := range tickets {
		lines = append(lines, fmt.Sprintf("Ticket #%d for Order %d: Status = %s",
			ticket.ID, ticket.OrderID, ticket.Status))
	}
	return strings.Join(lines, "\n"), nil
}

func (t *Toolset) requestRefund(ctx context.Context, customerID int64, args json.RawMessage) (string, error) {
	var params struct {
		OrderID int64  `json:"order_id"`
		Reason  string `json:"reason"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return "", fmt.Errorf("parse arguments: %w", err)
	}

	outcome, err := t.refunds.RequestRefund(ctx, customerID, params.OrderID, params.Reason)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			return "Error: Order not found", nil
		case errors.Is(err, domain.ErrForbidden):
			return "Security Alert: You do not have access to this order", nil
		}
		return "", err
	}

	switch outcome.Kind {
	case refund.OutcomeAlreadyReturned:
		return "Order is already returned", nil
	case refund.OutcomeSettled:
		return fmt.Sprintf("Refund of $%.2f for order %d has been processed immediately.",
			outcome.Amount, outcome.OrderID), nil
	default: // OutcomeEscalated
		return fmt.Sprintf(
			"Request Received: Since the amount $%.2f is greater than $50, Refund of $%.2f for order %d has been submitted for approval.",
			outcome.Amount, outcome.Amount, outcome.OrderID), nil
	}
}

func (t *Toolset) searchProducts(ctx context.Context, _ int64, args json.RawMessage) (string, error) {
	var params struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return "", fmt.Errorf("parse arguments: %w", err)
	}

	hits, err := t.search.Search(ctx, params.Query, searchHitsLimit)
	if err != nil {
		return "", err
	}
	if len(hits) == 0 {
		return "No relevant products found.", nil
	}

	lines := make([]string, 0, len(hits))
	for _, hit := range hits {
		lines = append(lines, fmt.Sprintf("Product: %s ($%.2f) - %s", hit.Name, hit.Price, hit.Description))
	}
	return strings.Join(lines, "\n"), nil
}
