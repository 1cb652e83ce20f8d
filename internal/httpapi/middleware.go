package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/shopsmart/support-agent/internal/domain"
)

const customerIDKey = "customer_id"

// authCustomer проверяет заголовок User-Id и кладёт идентификатор покупателя
// в контекст запроса. Суррогат настоящей аутентификации: сервис доверяет
// заголовку, как и положено за внутренним периметром.
func authCustomer(customers domain.CustomerRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("User-Id")
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "User ID is Missing"})
			return
		}

		customerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid User ID"})
			return
		}

		if _, err := customers.Get(c.Request.Context(), customerID); err != nil {
			if domain.IsNotFound(err) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid User ID"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}

		c.Set(customerIDKey, customerID)
		c.Next()
	}
}

func currentCustomerID(c *gin.Context) int64 {
	return c.GetInt64(customerIDKey)
}

// requestLogger логирует завершённые запросы
func requestLogger(logger *log.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Debug("запрос обработан")
	}
}

// corsMiddleware открывает API для браузерных клиентов
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, User-Id")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
