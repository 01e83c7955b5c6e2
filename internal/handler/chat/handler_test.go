package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/seo-optimizer/backend/internal/auth"
	"github.com/seo-optimizer/backend/internal/config"
	chatmodel "github.com/seo-optimizer/backend/internal/model/chat"
	chatservice "github.com/seo-optimizer/backend/internal/service/chat"
	"github.com/seo-optimizer/backend/internal/store"
)

type stubAnalyzer struct{}

func (stubAnalyzer) Analyze(context.Context, string, []chatmodel.Message, string) string {
	return "analysis result"
}

func setupRouter(t *testing.T) *chi.Mux {
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

	r := chi.NewRouter()
	New(svc).RegisterRoutes(r)
	return r
}

func doRequest(r http.Handler, method, target string, body []byte, claims *auth.Claims) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if claims != nil {
		req = req.WithContext(auth.WithClaims(req.Context(), *claims))
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestSendMessageWithoutIdentity(t *testing.T) {
	r := setupRouter(t)
	payload, _ := json.Marshal(map[string]string{"content": "hello"})

	resp := doRequest(r, http.MethodPost, "/messages", payload, nil)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestSendMessageEmptyContent(t *testing.T) {
	r := setupRouter(t)
	claims := auth.Claims{Subject: "auth0|alice"}
	payload, _ := json.Marshal(map[string]string{"content": "   "})

	resp := doRequest(r, http.MethodPost, "/messages", payload, &claims)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestSendMessageNewConversation(t *testing.T) {
	r := setupRouter(t)
	claims := auth.Claims{Subject: "auth0|alice"}
	payload, _ := json.Marshal(map[string]string{"content": "check https://example.com"})

	resp := doRequest(r, http.MethodPost, "/messages", payload, &claims)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		Conversation struct {
			ID       string `json:"id"`
			Messages []struct {
				Role string `json:"role"`
			} `json:"messages"`
		} `json:"conversation"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if result.Message.Role != "assistant" || result.Message.Content != "analysis result" {
		t.Fatalf("unexpected message: %+v", result.Message)
	}
	if len(result.Conversation.Messages) != 2 {
		t.Fatalf("expected one turn pair, got %d messages", len(result.Conversation.Messages))
	}

	// The refreshed conversation is retrievable afterwards.
	resp = doRequest(r, http.MethodGet, "/conversations/"+result.Conversation.ID, nil, &claims)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 on get, got %d", resp.Code)
	}
}

func TestSendMessageUnknownConversation(t *testing.T) {
	r := setupRouter(t)
	claims := auth.Claims{Subject: "auth0|alice"}
	payload, _ := json.Marshal(map[string]string{
		"content":        "hello",
		"conversationId": uuid.NewString(),
	})

	resp := doRequest(r, http.MethodPost, "/messages", payload, &claims)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestListConversations(t *testing.T) {
	r := setupRouter(t)
	claims := auth.Claims{Subject: "auth0|alice"}
	payload, _ := json.Marshal(map[string]string{"content": "hello"})

	if resp := doRequest(r, http.MethodPost, "/messages", payload, &claims); resp.Code != http.StatusOK {
		t.Fatalf("seed send failed: %d", resp.Code)
	}

	resp := doRequest(r, http.MethodGet, "/conversations", nil, &claims)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var conversations []json.RawMessage
	if err := json.Unmarshal(resp.Body.Bytes(), &conversations); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(conversations) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(conversations))
	}
}

func TestDeleteConversation(t *testing.T) {
	r := setupRouter(t)
	claims := auth.Claims{Subject: "auth0|alice"}
	payload, _ := json.Marshal(map[string]string{"content": "hello"})

	resp := doRequest(r, http.MethodPost, "/messages", payload, &claims)
	if resp.Code != http.StatusOK {
		t.Fatalf("seed send failed: %d", resp.Code)
	}

	var result struct {
		Conversation struct {
			ID string `json:"id"`
		} `json:"conversation"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}

	resp = doRequest(r, http.MethodDelete, "/conversations/"+result.Conversation.ID, nil, &claims)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	resp = doRequest(r, http.MethodDelete, "/conversations/"+result.Conversation.ID, nil, &claims)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on repeat delete, got %d", resp.Code)
	}
}
