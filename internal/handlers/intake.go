package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"orienta-backend/internal/models"
)

// The intake endpoints are a small persistence service for the questionnaire
// form. They share no data model with the chat pipeline.

const (
	statsCacheKey = "intake:stats"
	statsCacheTTL = 30 * time.Second
)

type intakeStore interface {
	SaveSubmission(ctx context.Context, sub *models.QuestionnaireSubmission) error
	SubmissionStats(ctx context.Context) (int, *time.Time, error)
}

type IntakeHandler struct {
	store intakeStore
	redis *redis.Client // nil disables the stats cache
}

func NewIntakeHandler(store intakeStore, redisClient *redis.Client) *IntakeHandler {
	return &IntakeHandler{store: store, redis: redisClient}
}

func (h *IntakeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var sub models.QuestionnaireSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	received := 0
	missing := []int{}
	for i, answer := range sub.Answers() {
		if strings.TrimSpace(answer) != "" {
			received++
		} else {
			missing = append(missing, i+1)
		}
	}
	if len(missing) > 0 {
		log.Printf("questionnaire submission missing %d/%d answers: %v", len(missing), models.QuestionnaireFieldCount, missing)
	}

	if err := h.store.SaveSubmission(r.Context(), &sub); err != nil {
		handleServiceError(w, r, err)
		return
	}

	if h.redis != nil {
		h.redis.Del(r.Context(), statsCacheKey)
	}

	writeJSON(w, http.StatusOK, models.SubmitResponse{
		Mensaje:            "Respuestas guardadas correctamente.",
		ID:                 sub.ID,
		PreguntasGuardadas: received,
		TotalPreguntas:     models.QuestionnaireFieldCount,
	})
}

func (h *IntakeHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.redis != nil {
		if cached, err := h.redis.Get(r.Context(), statsCacheKey).Result(); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, cached)
			return
		}
	}

	total, last, err := h.store.SubmissionStats(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	resp := models.StatsResponse{
		TotalRespuestas: total,
		UltimaRespuesta: last,
	}

	if h.redis != nil {
		if data, err := json.Marshal(resp); err == nil {
			h.redis.Set(r.Context(), statsCacheKey, data, statsCacheTTL)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
