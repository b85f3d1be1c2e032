package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"orienta-backend/internal/models"
)

type conversationService interface {
	Converse(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error)
}

type ChatHandler struct {
	chatService conversationService
}

func NewChatHandler(chatService conversationService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	fields := map[string]string{}
	if strings.TrimSpace(req.Message) == "" {
		fields["message"] = "Message is required"
	}
	// The session key is only needed when the store carries the state; the
	// inline shape supplies profile and history itself.
	if req.StudentProfile == nil && strings.TrimSpace(req.SessionKey) == "" {
		fields["sessionKey"] = "Session key is required"
	}
	if len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}

	resp, err := h.chatService.Converse(r.Context(), &req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
