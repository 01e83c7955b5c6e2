package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/seo-optimizer/backend/internal/config"
	chatmodel "github.com/seo-optimizer/backend/internal/model/chat"
	chatservice "github.com/seo-optimizer/backend/internal/service/chat"
	"github.com/seo-optimizer/backend/internal/store"
)

type stubAnalyzer struct{}

func (stubAnalyzer) Analyze(context.Context, string, []chatmodel.Message, string) string {
	return "analysis result"
}

func setupTestRouter(t *testing.T) http.Handler {
	t.Helper()

	db, err := store.Open(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("store.Open err: %v", err)
	}

	svc := chatservice.NewService(
		store.NewUserStore(db),
		store.NewConversationStore(db),
		store.NewMessageStore(db),
		stubAnalyzer{},
	)

	return NewRouter(svc, "test-secret")
}

func TestHealthEndpointNeedsNoAuth(t *testing.T) {
	r := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestAPIRoutesRequireAuth(t *testing.T) {
	r := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/conversations", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a bearer token, got %d", resp.Code)
	}
}
