package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthHandler(t *testing.T) {
	handler := NewHandler("v1.0.0")

	// Добавляем здоровую проверку
	handler.RegisterChecker("storage", NewPingChecker("storage", func(context.Context) error {
		return nil
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var report Report
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if report.Status != StatusHealthy {
		t.Errorf("expected status healthy, got %s", report.Status)
	}

	if report.Version != "v1.0.0" {
		t.Errorf("expected version v1.0.0, got %s", report.Version)
	}

	if len(report.Checks) != 1 {
		t.Errorf("expected 1 check, got %d", len(report.Checks))
	}
}

func TestHealthHandler_Unhealthy(t *testing.T) {
	handler := NewHandler("v1.0.0")

	handler.RegisterChecker("storage", NewPingChecker("storage", func(context.Context) error {
		return nil
	}))
	// Одна нездоровая зависимость валит общий статус
	handler.RegisterChecker("kafka", NewPingChecker("kafka", func(context.Context) error {
		return errors.New("broker unavailable")
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}

	var report Report
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if report.Status != StatusUnhealthy {
		t.Errorf("expected status unhealthy, got %s", report.Status)
	}
}

func TestHealthHandler_NoCheckers(t *testing.T) {
	handler := NewHandler("")

	report := handler.Report(context.Background())
	if report.Status != StatusHealthy {
		t.Errorf("empty handler must report healthy, got %s", report.Status)
	}
}

func TestPingChecker(t *testing.T) {
	checker := NewPingChecker("storage", func(ctx context.Context) error {
		if ctx == nil {
			return errors.New("no context")
		}
		return nil
	})

	check := checker.Check(context.Background())

	if check.Status != StatusHealthy {
		t.Errorf("expected status healthy, got %s", check.Status)
	}
	if check.Name != "storage" {
		t.Errorf("expected name storage, got %s", check.Name)
	}
}

func TestPingChecker_Error(t *testing.T) {
	checker := NewPingChecker("storage", func(context.Context) error {
		return errors.New("connection refused")
	})

	check := checker.Check(context.Background())

	if check.Status != StatusUnhealthy {
		t.Errorf("expected status unhealthy, got %s", check.Status)
	}
	if check.Message != "connection refused" {
		t.Errorf("expected message 'connection refused', got %s", check.Message)
	}
}
