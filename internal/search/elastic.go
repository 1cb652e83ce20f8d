// Package search реализует семантический поиск по каталогу поверх
// Elasticsearch: товары хранятся вместе с векторными представлениями,
// запросы выполняются kNN-поиском по косинусной близости.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	log "github.com/sirupsen/logrus"

	"github.com/shopsmart/support-agent/internal/domain"
)

const (
	indexName = "shop_products"
	// Результаты со score ниже порога считаются нерелевантными и отбрасываются.
	minScore      = 0.4
	numCandidates = 100
)

// Embedder строит векторные представления текстов
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// ProductIndex — индекс каталога в Elasticsearch
type ProductIndex struct {
	client   *elasticsearch.Client
	embedder Embedder
	logger   *log.Entry
}

// NewProductIndex создает индекс поверх готового клиента
func NewProductIndex(client *elasticsearch.Client, embedder Embedder) *ProductIndex {
	return &ProductIndex{
		client:   client,
		embedder: embedder,
		logger:   log.WithField("component", "product-search"),
	}
}

type productDocument struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Embedding   []float32 `json:"embedding"`
}

// embeddingText собирает текст товара для векторизации. Формат фиксирован:
// менять его без переиндексации каталога нельзя.
func embeddingText(p domain.Product) string {
	return fmt.Sprintf("Product: %s. Category: %s. Description: %s", p.Name, p.Category, p.Description)
}

// IndexProducts пересоздаёт записи каталога в индексе
func (i *ProductIndex) IndexProducts(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	texts := make([]string, len(products))
	for n, p := range products {
		texts[n] = embeddingText(p)
	}
	vectors, err := i.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed %d products: %w", len(products), err)
	}

	if err := i.ensureIndex(ctx, len(vectors[0])); err != nil {
		return err
	}

	for n, p := range products {
		doc := productDocument{
			Name:        p.Name,
			Description: p.Description,
			Category:    p.Category,
			Price:       p.Price,
			Embedding:   vectors[n],
		}
		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal product %d: %w", p.ID, err)
		}

		req := esapi.IndexRequest{
			Index:      indexName,
			DocumentID: strconv.FormatInt(p.ID, 10),
			Body:       bytes.NewReader(data),
			Refresh:    "true",
		}
		res, err := req.Do(ctx, i.client)
		if err != nil {
			return fmt.Errorf("index product %d: %w", p.ID, err)
		}
		res.Body.Close()
		if res.IsError() {
			return fmt.Errorf("index product %d: %s", p.ID, res.String())
		}
	}

	i.logger.WithField("count", len(products)).Info("каталог проиндексирован")
	return nil
}

// Search возвращает ближайшие по смыслу товары, не больше limit
func (i *ProductIndex) Search(ctx context.Context, query string, limit int) ([]domain.ProductHit, error) {
	vectors, err := i.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	body := map[string]interface{}{
		"knn": map[string]interface{}{
			"field":          "embedding",
			"query_vector":   vectors[0],
			"k":              limit,
			"num_candidates": numCandidates,
		},
		"size":    limit,
		"_source": []string{"name", "description", "category", "price"},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("encode search request: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{indexName},
		Body:  &buf,
	}
	res, err := req.Do(ctx, i.client)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search products: %s", res.String())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Score  float64 `json:"_score"`
				Source struct {
					Name        string  `json:"name"`
					Description string  `json:"description"`
					Category    string  `json:"category"`
					Price       float64 `json:"price"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	hits := make([]domain.ProductHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		if h.Score < minScore {
			continue
		}
		hits = append(hits, domain.ProductHit{
			Name:        h.Source.Name,
			Description: h.Source.Description,
			Category:    h.Source.Category,
			Price:       h.Source.Price,
			Score:       h.Score,
		})
	}
	return hits, nil
}

// ensureIndex создаёт индекс с dense_vector mapping, если его ещё нет.
// Размерность вектора фиксируется моделью embeddings при первой индексации.
func (i *ProductIndex) ensureIndex(ctx context.Context, dims int) error {
	exists := esapi.IndicesExistsRequest{Index: []string{indexName}}
	res, err := exists.Do(ctx, i.client)
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}

	mapping := map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"name":        map[string]interface{}{"type": "text"},
				"description": map[string]interface{}{"type": "text"},
				"category":    map[string]interface{}{"type": "keyword"},
				"price":       map[string]interface{}{"type": "double"},
				"embedding": map[string]interface{}{
					"type":       "dense_vector",
					"dims":       dims,
					"index":      true,
					"similarity": "cosine",
				},
			},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(mapping); err != nil {
		return fmt.Errorf("encode index mapping: %w", err)
	}

	create := esapi.IndicesCreateRequest{Index: indexName, Body: &buf}
	res, err = create.Do(ctx, i.client)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("create index: %s", res.String())
	}

	i.logger.WithFields(log.Fields{"index": indexName, "dims": dims}).Info("индекс каталога создан")
	return nil
}
