package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/seo-optimizer/backend/internal/auth"
	chatService "github.com/seo-optimizer/backend/internal/service/chat"
	"github.com/seo-optimizer/backend/pkg/utils"
)

// Handler exposes the conversation operations over HTTP.
type Handler struct {
	chatSvc *chatService.Service
}

// New creates the chat handler.
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes mounts the conversation and message routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/conversations", h.handleListConversations)
	r.Get("/conversations/{conversationID}", h.handleGetConversation)
	r.Delete("/conversations/{conversationID}", h.handleDeleteConversation)
	r.Post("/messages", h.handleSendMessage)
}

func (h *Handler) handleListConversations(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	conversations, err := h.chatSvc.ListConversations(r.Context(), claims)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to list conversations")
		return
	}

	utils.RespondJSON(w, http.StatusOK, conversations)
}

func (h *Handler) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	conversation, err := h.chatSvc.GetConversation(r.Context(), chi.URLParam(r, "conversationID"), claims)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, conversation)
}

func (h *Handler) handleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	ok, err := h.chatSvc.DeleteConversation(r.Context(), chi.URLParam(r, "conversationID"), claims)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]bool{"success": ok})
}

func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var payload struct {
		Content        string `json:"content"`
		ConversationID string `json:"conversationId"`
		ModelID        string `json:"modelId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(payload.Content) == "" {
		utils.RespondError(w, http.StatusBadRequest, "content is required")
		return
	}

	result, err := h.chatSvc.SendMessage(r.Context(), payload.Content, payload.ConversationID, payload.ModelID, claims)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, result)
}

func respondServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, chatService.ErrConversationNotFound) {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}
	utils.RespondError(w, http.StatusInternalServerError, "internal error")
}
