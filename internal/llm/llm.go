// Package llm изолирует остальной код от конкретного LLM-провайдера.
// Агент работает с нейтральными типами сообщений и tool-вызовов; провайдер
// отвечает за перевод в свой wire-формат.
package llm

import (
	"context"
	"encoding/json"
)

// Role роль участника диалога
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message — одно сообщение истории диалога. Для сообщений ассистента с
// tool-вызовами заполняется ToolCalls; для результатов инструментов —
// ToolCallID и Name.
type Message struct {
	Role       Role
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
	Name       string
}

// ToolCall — запрошенный моделью вызов инструмента. Arguments — сырой JSON
// в том виде, в котором его вернула модель.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// ToolDefinition описывает инструмент для модели. Parameters — JSON Schema
// аргументов.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  json.RawMessage
}

// Request — один запрос к модели
type Request struct {
	SystemPrompt string
	Messages     []Message
	Tools        []ToolDefinition
}

// Usage — учёт токенов запроса
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Response — ответ модели: либо финальный текст, либо запрос tool-вызовов
type Response struct {
	Content   string
	ToolCalls []ToolCall
	Usage     Usage
}

// HasToolCalls сообщает, запросила ли модель выполнение инструментов
func (r *Response) HasToolCalls() bool {
	return len(r.ToolCalls) > 0
}

// Provider — минимальный контракт LLM-провайдера. Chat ведёт диалог с
// поддержкой инструментов, Embed строит векторные представления текстов.
type Provider interface {
	Chat(ctx context.Context, req *Request) (*Response, error)
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
