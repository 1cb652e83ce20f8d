package app

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.HTTPAddr != ":8000" {
		t.Errorf("HTTPAddr = %q, want :8000", cfg.HTTPAddr)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("MetricsAddr = %q, want :9090", cfg.MetricsAddr)
	}
	if cfg.StorageDriver != "memory" {
		t.Errorf("StorageDriver = %q, want memory", cfg.StorageDriver)
	}
	if !cfg.SeedDemoData {
		t.Error("SeedDemoData must default to true")
	}
	if cfg.KafkaBrokers != "" || cfg.LLMAPIKey != "" || cfg.SMTPHost != "" {
		t.Error("external integrations must be off by default")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SUPPORT_HTTP_ADDR", ":9000")
	t.Setenv("SUPPORT_STORAGE_DRIVER", "postgres")
	t.Setenv("SUPPORT_POSTGRES_DSN", "postgres://app:secret@db:5432/support")
	t.Setenv("SUPPORT_SEED_DEMO_DATA", "false")
	t.Setenv("SUPPORT_SMTP_PORT", "2525")
	t.Setenv("SUPPORT_KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

	cfg := LoadConfig()

	if cfg.HTTPAddr != ":9000" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.StorageDriver != "postgres" {
		t.Errorf("StorageDriver = %q", cfg.StorageDriver)
	}
	if cfg.PostgresDSN != "postgres://app:secret@db:5432/support" {
		t.Errorf("PostgresDSN = %q", cfg.PostgresDSN)
	}
	if cfg.SeedDemoData {
		t.Error("SeedDemoData must be overridable to false")
	}
	if cfg.SMTPPort != 2525 {
		t.Errorf("SMTPPort = %d", cfg.SMTPPort)
	}
	if cfg.KafkaBrokers != "kafka-1:9092,kafka-2:9092" {
		t.Errorf("KafkaBrokers = %q", cfg.KafkaBrokers)
	}
}

func TestLoadConfig_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("SUPPORT_SMTP_PORT", "not-a-port")
	t.Setenv("SUPPORT_SEED_DEMO_DATA", "maybe")

	cfg := LoadConfig()

	if cfg.SMTPPort != DefaultConfig().SMTPPort {
		t.Errorf("SMTPPort = %d, want default", cfg.SMTPPort)
	}
	if cfg.SeedDemoData != DefaultConfig().SeedDemoData {
		t.Error("SeedDemoData must fall back to default on bad input")
	}
}
