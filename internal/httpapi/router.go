// Package httpapi — HTTP-поверхность сервиса: чат с агентом для покупателей
// и административные операции над заявками на возврат.
package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"

	"github.com/shopsmart/support-agent/internal/agent"
	"github.com/shopsmart/support-agent/internal/domain"
	"github.com/shopsmart/support-agent/internal/health"
	"github.com/shopsmart/support-agent/internal/refund"
)

// Deps — зависимости HTTP-слоя. Agent может быть nil: тогда /chat отвечает 503,
// остальная поверхность продолжает работать.
type Deps struct {
	Agent     *agent.Agent
	Refunds   *refund.Controller
	Customers domain.CustomerRepository
	Health    *health.Handler
	Logger    *log.Entry
}

// NewRouter собирает маршруты сервиса
func NewRouter(deps Deps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = log.New().WithField("component", "httpapi")
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger), corsMiddleware())

	v := validatorv10.New()

	router.GET("/health", gin.WrapH(deps.Health))

	router.POST("/chat", authCustomer(deps.Customers), chatHandler(deps.Agent, v))

	admin := router.Group("/admin")
	{
		admin.GET("/tickets", listPendingHandler(deps.Refunds))
		admin.POST("/refunds/:ticket_id/decision", decisionHandler(deps.Refunds, v))
	}

	return router
}

func chatHandler(a *agent.Agent, v *validatorv10.Validate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if a == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "assistant is not configured"})
			return
		}

		var req ChatRequest
		if err := bindAndValidate(c, &req, v); err != nil {
			return
		}

		reply, _, err := a.Respond(c.Request.Context(), currentCustomerID(c), req.Message, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}

		c.JSON(http.StatusOK, ChatResponse{Response: reply})
	}
}

func listPendingHandler(refunds *refund.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		tickets, err := refunds.ListPending(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}

		views := make([]TicketView, 0, len(tickets))
		for _, t := range tickets {
			views = append(views, TicketView{
				ID:         t.ID,
				CustomerID: t.CustomerID,
				OrderID:    t.OrderID,
				Amount:     t.Amount,
				Reason:     t.Reason,
				Status:     string(t.Status),
				CreatedAt:  t.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, views)
	}
}

func decisionHandler(refunds *refund.Controller, v *validatorv10.Validate) gin.HandlerFunc {
	return func(c *gin.Context) {
		ticketID, err := strconv.ParseInt(c.Param("ticket_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Ticket not found"})
			return
		}

		var req DecisionRequest
		if err := bindAndValidate(c, &req, v); err != nil {
			return
		}

		decision, err := domain.ParseRefundDecision(req.Decision)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid decision. Use 'approve' or 'reject'"})
			return
		}

		outcome, err := refunds.ResolveTicket(c.Request.Context(), ticketID, decision)
		if err != nil {
			if errors.Is(err, domain.ErrTicketNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"detail": "Ticket not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}

		// Повторное решение не меняет состояние: сообщаем, что заявка уже закрыта.
		if outcome.Kind == refund.ResolutionAlreadyProcessed {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Ticket is already processed"})
			return
		}

		if decision == domain.RefundDecisionApprove {
			c.JSON(http.StatusOK, DecisionResponse{
				Status:  "approved",
				Message: fmt.Sprintf("Refund for Order %d processed", outcome.OrderID),
			})
			return
		}
		c.JSON(http.StatusOK, DecisionResponse{
			Status:  "rejected",
			Message: fmt.Sprintf("Refund request for Order %d denied", outcome.OrderID),
		})
	}
}
