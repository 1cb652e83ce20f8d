package httpapi_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsmart/support-agent/internal/agent"
	"github.com/shopsmart/support-agent/internal/domain"
	"github.com/shopsmart/support-agent/internal/health"
	"github.com/shopsmart/support-agent/internal/httpapi"
	"github.com/shopsmart/support-agent/internal/llm"
	"github.com/shopsmart/support-agent/internal/refund"
	"github.com/shopsmart/support-agent/internal/storage/memory"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type scriptedProvider struct {
	reply string
}

func (p *scriptedProvider) Chat(context.Context, *llm.Request) (*llm.Response, error) {
	return &llm.Response{Content: p.reply}, nil
}

func (p *scriptedProvider) Embed(context.Context, []string) ([][]float32, error) {
	return nil, fmt.Errorf("not implemented")
}

type apiFixture struct {
	router    http.Handler
	customers domain.CustomerRepository
	orders    domain.OrderRepository
	refunds   *refund.Controller
}

func newAPIFixture(t *testing.T, withAgent bool) *apiFixture {
	t.Helper()

	customers := memory.NewCustomerRepository()
	orders := memory.NewOrderRepository()
	tickets := memory.NewTicketRepository(orders)

	logger := log.New()
	logger.SetLevel(log.PanicLevel)
	entry := logger.WithField("component", "httpapi-test")

	controller := refund.NewControllerWithoutMetrics(orders, tickets, nil, entry)

	var a *agent.Agent
	if withAgent {
		registry, err := agent.NewToolset(customers, orders, controller, nil).BuildRegistry()
		require.NoError(t, err)
		a = agent.New(&scriptedProvider{reply: "Happy to help!"}, registry, entry)
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Agent:     a,
		Refunds:   controller,
		Customers: customers,
		Health:    health.NewHandler("test"),
		Logger:    entry,
	})

	return &apiFixture{router: router, customers: customers, orders: orders, refunds: controller}
}

func (f *apiFixture) seedCustomer(t *testing.T) domain.Customer {
	t.Helper()
	seeder, ok := f.customers.(memory.CustomerSeeder)
	require.True(t, ok, "customer repository must support seeding")
	return seeder.Seed(domain.Customer{Name: "Alice", Email: "alice@example.com"})
}

func (f *apiFixture) seedOrder(t *testing.T, customerID int64, total float64) domain.Order {
	t.Helper()
	seeder, ok := f.orders.(memory.OrderSeeder)
	require.True(t, ok, "order repository must support seeding")
	return seeder.Seed(domain.Order{
		CustomerID: customerID,
		ProductID:  1,
		Quantity:   1,
		TotalPrice: total,
		Status:     domain.OrderStatusDelivered,
		OrderDate:  time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC),
	})
}

func (f *apiFixture) do(t *testing.T, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	f := newAPIFixture(t, true)

	w := f.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var report health.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, health.StatusHealthy, report.Status)
	assert.Equal(t, "test", report.Version)
}

func TestChat_RequiresUserHeader(t *testing.T) {
	f := newAPIFixture(t, true)

	w := f.do(t, http.MethodPost, "/chat", `{"message":"hi"}`, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "User ID is Missing")

	w = f.do(t, http.MethodPost, "/chat", `{"message":"hi"}`, map[string]string{"User-Id": "999"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid User ID")

	w = f.do(t, http.MethodPost, "/chat", `{"message":"hi"}`, map[string]string{"User-Id": "not-a-number"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChat_RespondsToAuthenticatedCustomer(t *testing.T) {
	f := newAPIFixture(t, true)
	customer := f.seedCustomer(t)

	w := f.do(t, http.MethodPost, "/chat", `{"message":"hello"}`,
		map[string]string{"User-Id": fmt.Sprint(customer.ID)})
	require.Equal(t, http.StatusOK, w.Code)

	var resp httpapi.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Happy to help!", resp.Response)
}

func TestChat_ValidatesBody(t *testing.T) {
	f := newAPIFixture(t, true)
	customer := f.seedCustomer(t)
	headers := map[string]string{"User-Id": fmt.Sprint(customer.ID)}

	w := f.do(t, http.MethodPost, "/chat", `{"message":""}`, headers)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/chat", `not json`, headers)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChat_UnavailableWithoutAgent(t *testing.T) {
	f := newAPIFixture(t, false)
	customer := f.seedCustomer(t)

	w := f.do(t, http.MethodPost, "/chat", `{"message":"hi"}`,
		map[string]string{"User-Id": fmt.Sprint(customer.ID)})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAdminTickets(t *testing.T) {
	f := newAPIFixture(t, true)
	customer := f.seedCustomer(t)

	w := f.do(t, http.MethodGet, "/admin/tickets", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	order := f.seedOrder(t, customer.ID, 120.00)
	outcome, err := f.refunds.RequestRefund(context.Background(), customer.ID, order.ID, "defective")
	require.NoError(t, err)
	require.Equal(t, refund.OutcomeEscalated, outcome.Kind)

	w = f.do(t, http.MethodGet, "/admin/tickets", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var views []httpapi.TicketView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, outcome.TicketID, views[0].ID)
	assert.Equal(t, "pending_approval", views[0].Status)
	assert.Equal(t, 120.00, views[0].Amount)
}

func TestAdminDecision_Approve(t *testing.T) {
	f := newAPIFixture(t, true)
	customer := f.seedCustomer(t)
	order := f.seedOrder(t, customer.ID, 120.00)

	outcome, err := f.refunds.RequestRefund(context.Background(), customer.ID, order.ID, "defective")
	require.NoError(t, err)

	path := fmt.Sprintf("/admin/refunds/%d/decision", outcome.TicketID)
	w := f.do(t, http.MethodPost, path, `{"decision":"approve"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp httpapi.DecisionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "approved", resp.Status)
	assert.Equal(t, fmt.Sprintf("Refund for Order %d processed", order.ID), resp.Message)

	got, err := f.orders.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusReturned, got.Status)

	// Повторное решение по той же заявке
	w = f.do(t, http.MethodPost, path, `{"decision":"reject"}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Ticket is already processed")
}

func TestAdminDecision_Reject(t *testing.T) {
	f := newAPIFixture(t, true)
	customer := f.seedCustomer(t)
	order := f.seedOrder(t, customer.ID, 120.00)

	outcome, err := f.refunds.RequestRefund(context.Background(), customer.ID, order.ID, "changed my mind")
	require.NoError(t, err)

	path := fmt.Sprintf("/admin/refunds/%d/decision", outcome.TicketID)
	w := f.do(t, http.MethodPost, path, `{"decision":"reject"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp httpapi.DecisionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "rejected", resp.Status)

	got, err := f.orders.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDelivered, got.Status)
}

func TestAdminDecision_Errors(t *testing.T) {
	f := newAPIFixture(t, true)

	w := f.do(t, http.MethodPost, "/admin/refunds/404/decision", `{"decision":"approve"}`, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Ticket not found")

	w = f.do(t, http.MethodPost, "/admin/refunds/abc/decision", `{"decision":"approve"}`, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodPost, "/admin/refunds/1/decision", `{"decision":"maybe"}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
