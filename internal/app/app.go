// Package app связывает конфигурацию, хранилища, внешние интеграции и
// HTTP-поверхность в работающий сервис поддержки.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/shopsmart/support-agent/internal/domain"
	healthcheck "github.com/shopsmart/support-agent/internal/health"
	"github.com/shopsmart/support-agent/internal/httpapi"
	"github.com/shopsmart/support-agent/internal/notify"
	"github.com/shopsmart/support-agent/internal/refund"
	"github.com/shopsmart/support-agent/internal/version"
)

// Run запускает сервис и блокируется до отмены контекста или фатальной ошибки
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps, err := NewDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.Close()

	// Kafka опционален: без брокеров события просто не публикуются.
	kafkaProducer, _ := initKafkaProducer(cfg.KafkaBrokers, logger)
	defer closeKafka(kafkaProducer, logger)

	var channels []domain.Notifier
	if kafkaProducer != nil {
		channels = append(channels, notify.NewKafkaNotifier(kafkaProducer))
	}
	if cfg.SMTPHost != "" {
		emailNotifier, err := notify.NewEmailNotifier(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		}, deps.Customers)
		if err != nil {
			logger.WithError(err).Warn("failed to create email notifier, continuing without email")
		} else {
			channels = append(channels, emailNotifier)
			logger.WithField("host", cfg.SMTPHost).Info("email notifier initialized")
		}
	}
	notifier := notify.NewFanout(channels...)

	refunds := refund.NewController(deps.Orders, deps.Tickets, notifier,
		logger.WithField("component", "refund"))

	llmProvider, err := initLLMProvider(cfg, logger)
	if err != nil {
		return err
	}
	searchIndex, err := initSearchIndex(cfg, llmProvider, logger)
	if err != nil {
		return err
	}
	chatAgent, err := CreateAgent(llmProvider, deps, refunds, searchIndex, logger)
	if err != nil {
		return err
	}

	v, _, _ := version.Info()
	healthHandler := healthcheck.NewHandler(v)
	if deps.Store != nil {
		healthHandler.RegisterChecker("storage", healthcheck.NewPingChecker("storage", deps.Store.Ping))
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Agent:     chatAgent,
		Refunds:   refunds,
		Customers: deps.Customers,
		Health:    healthHandler,
		Logger:    logger.WithField("component", "httpapi"),
	})

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP сервер слушает %s", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP сервер")
		shutdownHTTP(srv, logger)
		shutdownHTTP(metricsSrv, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startMetricsServer запускает HTTP-обработчик /metrics для Prometheus.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
