package app

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config описывает настройки запуска приложения. Все значения читаются из
// окружения с префиксом SUPPORT_; .env подхватывается, если присутствует.
type Config struct {
	HTTPAddr    string
	MetricsAddr string

	// StorageDriver: "memory" или "postgres".
	StorageDriver string
	PostgresDSN   string
	SeedDemoData  bool

	KafkaBrokers string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	LLMAPIKey         string
	LLMBaseURL        string
	LLMChatModel      string
	LLMEmbeddingModel string

	ElasticsearchURL string
}

// DefaultConfig возвращает конфигурацию для локального запуска без внешних
// зависимостей: in-memory хранилище с демо-данными, без Kafka, почты и LLM.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:      ":8000",
		MetricsAddr:   ":9090",
		StorageDriver: "memory",
		SeedDemoData:  true,
		SMTPPort:      587,
	}
}

// LoadConfig читает конфигурацию из окружения поверх значений по умолчанию
func LoadConfig() Config {
	if err := godotenv.Load(); err == nil {
		log.WithField("component", "config").Debug(".env загружен")
	}

	cfg := DefaultConfig()

	cfg.HTTPAddr = envOr("SUPPORT_HTTP_ADDR", cfg.HTTPAddr)
	cfg.MetricsAddr = envOr("SUPPORT_METRICS_ADDR", cfg.MetricsAddr)

	cfg.StorageDriver = envOr("SUPPORT_STORAGE_DRIVER", cfg.StorageDriver)
	cfg.PostgresDSN = envOr("SUPPORT_POSTGRES_DSN", cfg.PostgresDSN)
	cfg.SeedDemoData = envBoolOr("SUPPORT_SEED_DEMO_DATA", cfg.SeedDemoData)

	cfg.KafkaBrokers = envOr("SUPPORT_KAFKA_BROKERS", cfg.KafkaBrokers)

	cfg.SMTPHost = envOr("SUPPORT_SMTP_HOST", cfg.SMTPHost)
	cfg.SMTPPort = envIntOr("SUPPORT_SMTP_PORT", cfg.SMTPPort)
	cfg.SMTPUsername = envOr("SUPPORT_SMTP_USERNAME", cfg.SMTPUsername)
	cfg.SMTPPassword = envOr("SUPPORT_SMTP_PASSWORD", cfg.SMTPPassword)
	cfg.SMTPFrom = envOr("SUPPORT_SMTP_FROM", cfg.SMTPFrom)

	cfg.LLMAPIKey = envOr("SUPPORT_LLM_API_KEY", cfg.LLMAPIKey)
	cfg.LLMBaseURL = envOr("SUPPORT_LLM_BASE_URL", cfg.LLMBaseURL)
	cfg.LLMChatModel = envOr("SUPPORT_LLM_CHAT_MODEL", cfg.LLMChatModel)
	cfg.LLMEmbeddingModel = envOr("SUPPORT_LLM_EMBEDDING_MODEL", cfg.LLMEmbeddingModel)

	cfg.ElasticsearchURL = envOr("SUPPORT_ELASTICSEARCH_URL", cfg.ElasticsearchURL)

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		log.WithField("component", "config").
			Warnf("некорректное значение %s=%q, используется %d", key, v, fallback)
		return fallback
	}
	return parsed
}

func envBoolOr(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		log.WithField("component", "config").
			Warnf("некорректное значение %s=%q, используется %t", key, v, fallback)
		return fallback
	}
	return parsed
}
