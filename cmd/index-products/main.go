// Команда index-products пересоздаёт семантический индекс каталога:
// читает товары из хранилища, строит embeddings и загружает их в Elasticsearch.
package main

import (
	"context"
	"time"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"
	log "github.com/sirupsen/logrus"

	"github.com/shopsmart/support-agent/internal/app"
	"github.com/shopsmart/support-agent/internal/llm"
	"github.com/shopsmart/support-agent/internal/search"
)

const indexTimeout = 5 * time.Minute

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	cfg := app.LoadConfig()
	logger := log.WithField("component", "index-products")

	if cfg.LLMAPIKey == "" {
		logger.Fatal("SUPPORT_LLM_API_KEY обязателен для построения embeddings")
	}
	if cfg.ElasticsearchURL == "" {
		logger.Fatal("SUPPORT_ELASTICSEARCH_URL обязателен для индексации")
	}

	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	deps, err := app.NewDependencies(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("не удалось открыть хранилище")
	}
	defer deps.Close()

	provider, err := llm.NewOpenAIProvider(llm.OpenAIConfig{
		APIKey:         cfg.LLMAPIKey,
		BaseURL:        cfg.LLMBaseURL,
		EmbeddingModel: cfg.LLMEmbeddingModel,
	})
	if err != nil {
		logger.WithError(err).Fatal("не удалось создать llm провайдера")
	}

	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ElasticsearchURL},
	})
	if err != nil {
		logger.WithError(err).Fatal("не удалось создать elasticsearch клиента")
	}

	products, err := deps.Products.List(ctx)
	if err != nil {
		logger.WithError(err).Fatal("не удалось прочитать каталог")
	}
	if len(products) == 0 {
		logger.Warn("каталог пуст, индексировать нечего")
		return
	}

	index := search.NewProductIndex(esClient, provider)
	if err := index.IndexProducts(ctx, products); err != nil {
		logger.WithError(err).Fatal("индексация не удалась")
	}

	logger.WithField("count", len(products)).Info("индексация завершена")
}
