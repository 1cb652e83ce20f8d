package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopsmart/support-agent/internal/llm"
)

// ToolHandler выполняет инструмент от имени конкретного покупателя.
// Возвращаемая строка уходит модели как результат; ошибка означает
// инфраструктурный сбой, а не отказ предметной логики.
type ToolHandler func(ctx context.Context, customerID int64, args json.RawMessage) (string, error)

// Tool — один инструмент агента
type Tool struct {
	Name        string
	Description string
	Parameters  json.RawMessage
	Handler     ToolHandler
}

// Registry хранит инструменты агента. Порядок регистрации сохраняется,
// чтобы определения уходили модели стабильно.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry создает пустой реестр
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register добавляет инструмент. Повторная регистрация имени — ошибка программиста.
func (r *Registry) Register(t Tool) error {
	if t.Name == "" {
		return fmt.Errorf("tool name is required")
	}
	if t.Handler == nil {
		return fmt.Errorf("tool %s has no handler", t.Name)
	}
	if _, exists := r.tools[t.Name]; exists {
		return fmt.Errorf("tool %s already registered", t.Name)
	}
	r.tools[t.Name] = t
	r.order = append(r.order, t.Name)
	return nil
}

// Get возвращает инструмент по имени
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Definitions возвращает определения инструментов для модели
func (r *Registry) Definitions() []llm.ToolDefinition {
	defs := make([]llm.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		defs = append(defs, llm.ToolDefinition{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Parameters,
		})
	}
	return defs
}
