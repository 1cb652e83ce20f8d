package app

import (
	"fmt"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"
	log "github.com/sirupsen/logrus"

	"github.com/shopsmart/support-agent/internal/agent"
	"github.com/shopsmart/support-agent/internal/domain"
	"github.com/shopsmart/support-agent/internal/llm"
	"github.com/shopsmart/support-agent/internal/refund"
	"github.com/shopsmart/support-agent/internal/search"
)

// initLLMProvider создаёт LLM-провайдера, если задан API-ключ.
// Без ключа возвращает nil, nil — сервис работает без ассистента.
func initLLMProvider(cfg Config, logger *log.Entry) (llm.Provider, error) {
	if cfg.LLMAPIKey == "" {
		logger.Info("LLM не настроен, чат-ассистент отключён")
		return nil, nil
	}

	provider, err := llm.NewOpenAIProvider(llm.OpenAIConfig{
		APIKey:         cfg.LLMAPIKey,
		BaseURL:        cfg.LLMBaseURL,
		ChatModel:      cfg.LLMChatModel,
		EmbeddingModel: cfg.LLMEmbeddingModel,
	})
	if err != nil {
		return nil, fmt.Errorf("init llm provider: %w", err)
	}
	return provider, nil
}

// initSearchIndex создаёт семантический индекс каталога, если настроены
// и Elasticsearch, и embeddings-провайдер.
func initSearchIndex(cfg Config, embedder search.Embedder, logger *log.Entry) (domain.SearchIndex, error) {
	if cfg.ElasticsearchURL == "" || embedder == nil {
		logger.Info("семантический поиск не настроен")
		return nil, nil
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ElasticsearchURL},
	})
	if err != nil {
		return nil, fmt.Errorf("init elasticsearch client: %w", err)
	}
	return search.NewProductIndex(client, embedder), nil
}

// CreateAgent собирает чат-агента поверх инструментов. provider == nil
// означает, что ассистент выключен конфигурацией.
func CreateAgent(
	provider llm.Provider,
	deps *Dependencies,
	refunds *refund.Controller,
	searchIndex domain.SearchIndex,
	logger *log.Entry,
) (*agent.Agent, error) {
	if provider == nil {
		return nil, nil
	}

	registry, err := agent.NewToolset(deps.Customers, deps.Orders, refunds, searchIndex).BuildRegistry()
	if err != nil {
		return nil, fmt.Errorf("build tool registry: %w", err)
	}
	return agent.New(provider, registry, logger.WithField("component", "agent")), nil
}
