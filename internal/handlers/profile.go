package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"orienta-backend/internal/models"
	"orienta-backend/internal/store"
)

type profileStore interface {
	GetProfile(ctx context.Context, sessionKey string) (*models.StudentProfile, error)
	UpsertProfile(ctx context.Context, profile *models.StudentProfile) (*models.StudentProfile, error)
	ListMessages(ctx context.Context, sessionKey string) ([]models.ChatMessage, error)
}

type ProfileHandler struct {
	store profileStore
}

func NewProfileHandler(store profileStore) *ProfileHandler {
	return &ProfileHandler{store: store}
}

func (h *ProfileHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var req models.SaveProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	fields := map[string]string{}
	if strings.TrimSpace(req.SessionKey) == "" {
		fields["sessionKey"] = "Session key is required"
	}
	if req.ProfileData == nil {
		fields["profileData"] = "Profile data is required"
	}
	if len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}

	profile := &models.StudentProfile{
		SessionKey:  req.SessionKey,
		Name:        req.ProfileData.Name,
		Age:         req.ProfileData.Age,
		Interests:   req.ProfileData.Interests,
		Skills:      req.ProfileData.Skills,
		Preferences: req.ProfileData.Preferences,
	}
	if profile.Interests == nil {
		profile.Interests = []string{}
	}
	if profile.Skills == nil {
		profile.Skills = []string{}
	}
	if profile.Preferences == nil {
		profile.Preferences = map[string]any{}
	}

	stored, err := h.store.UpsertProfile(r.Context(), profile)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SaveProfileResponse{
		Message: "Profile saved",
		Profile: stored,
	})
}

func (h *ProfileHandler) LoadData(w http.ResponseWriter, r *http.Request) {
	sessionKey := chi.URLParam(r, "sessionKey")
	if sessionKey == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Session key is required", r))
		return
	}

	profile, err := h.store.GetProfile(r.Context(), sessionKey)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		handleServiceError(w, r, err)
		return
	}

	history, err := h.store.ListMessages(r.Context(), sessionKey)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if history == nil {
		history = []models.ChatMessage{}
	}

	writeJSON(w, http.StatusOK, models.LoadDataResponse{
		StudentProfile: profile,
		ChatHistory:    history,
	})
}
