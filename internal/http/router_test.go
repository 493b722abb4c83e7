package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func TestHealthzReflectsDatabaseState(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("ok when database responds", func(t *testing.T) {
		router := NewRouter(zap.NewNop(), RouterDeps{
			DBPing: func(ctx context.Context) error { return nil },
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("unavailable when database is down", func(t *testing.T) {
		router := NewRouter(zap.NewNop(), RouterDeps{
			DBPing: func(ctx context.Context) error { return errors.New("connection refused") },
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
	})
}
