// Package agent реализует диалогового ассистента поддержки: модель получает
// набор инструментов над заказами и возвратами и вызывает их в цикле, пока
// не соберёт финальный ответ покупателю.
package agent

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/shopsmart/support-agent/internal/llm"
)

// DefaultMaxIterations ограничивает цикл tool-вызовов одного хода диалога
const DefaultMaxIterations = 8

const exhaustedReply = "I could not finish processing your request. Please try rephrasing it."

// Agent ведёт диалог с покупателем. История диалога живёт у вызывающего:
// агент принимает её на вход и возвращает дополненной.
type Agent struct {
	provider      llm.Provider
	registry      *Registry
	logger        *log.Entry
	maxIterations int
	now           func() time.Time
}

// New создает агента поверх провайдера и реестра инструментов
func New(provider llm.Provider, registry *Registry, logger *log.Entry) *Agent {
	if logger == nil {
		logger = log.New().WithField("component", "agent")
	}
	return &Agent{
		provider:      provider,
		registry:      registry,
		logger:        logger,
		maxIterations: DefaultMaxIterations,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// WithMaxIterations ограничивает число итераций цикла tool-вызовов
func (a *Agent) WithMaxIterations(n int) *Agent {
	if n > 0 {
		a.maxIterations = n
	}
	return a
}

func (a *Agent) systemPrompt() string {
	return "You are a helpful customer support assistant from 'ShopSmart'. " +
		"You have access to the customer's order history and product catalog. " +
		"Always be polite and professional. " +
		"Use the provided tools to lookup information before answering the customer. " +
		"Today's date is " + a.now().Format("2006-01-02")
}

// Respond обрабатывает одно сообщение покупателя. Возвращает ответ и историю,
// дополненную всеми сообщениями этого хода, включая tool-вызовы.
func (a *Agent) Respond(ctx context.Context, customerID int64, message string, history []llm.Message) (string, []llm.Message, error) {
	history = append(history, llm.Message{Role: llm.RoleUser, Content: message})
	toolDefs := a.registry.Definitions()

	for iter := 0; iter < a.maxIterations; iter++ {
		resp, err := a.provider.Chat(ctx, &llm.Request{
			SystemPrompt: a.systemPrompt(),
			Messages:     history,
			Tools:        toolDefs,
		})
		if err != nil {
			return "", history, fmt.Errorf("llm request: %w", err)
		}

		history = append(history, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		if !resp.HasToolCalls() {
			return resp.Content, history, nil
		}

		a.logger.WithFields(log.Fields{
			"customer_id": customerID,
			"iteration":   iter + 1,
			"tool_calls":  len(resp.ToolCalls),
		}).Debug("выполняем инструменты")

		for _, call := range resp.ToolCalls {
			history = append(history, a.executeToolCall(ctx, customerID, call))
		}
	}

	a.logger.WithFields(log.Fields{
		"customer_id":    customerID,
		"max_iterations": a.maxIterations,
	}).Warn("исчерпан лимит итераций tool-вызовов")

	return exhaustedReply, history, nil
}

// executeToolCall выполняет один tool-вызов. Любой сбой возвращается модели
// текстом результата: модель должна увидеть ошибку и отреагировать, а не
// обрывать диалог.
func (a *Agent) executeToolCall(ctx context.Context, customerID int64, call llm.ToolCall) llm.Message {
	result := llm.Message{
		Role:       llm.RoleTool,
		ToolCallID: call.ID,
		Name:       call.Name,
	}

	tool, ok := a.registry.Get(call.Name)
	if !ok {
		result.Content = fmt.Sprintf("Error: unknown tool %q", call.Name)
		return result
	}

	output, err := tool.Handler(ctx, customerID, []byte(call.Arguments))
	if err != nil {
		a.logger.WithError(err).WithFields(log.Fields{
			"customer_id": customerID,
			"tool":        call.Name,
		}).Error("сбой инструмента")
		result.Content = fmt.Sprintf("Error: %s", err)
		return result
	}

	result.Content = output
	return result
}
