package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"orienta-backend/internal/models"
	"orienta-backend/internal/services"
)

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

func errorRespWithFields(code, message string, fields map[string]string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			Fields:    fields,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch e := err.(type) {
	case *services.ValidationError:
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", e.Fields, r))
	case *services.NotFoundError:
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", e.Message, r))
	case *services.ProviderError:
		log.Printf("completion provider failure: %v", e.Unwrap())
		writeJSON(w, http.StatusInternalServerError, errorResp("PROVIDER_ERROR", "The language model could not be reached", r))
	case *services.MalformedCompletionError:
		// The raw completion is the only evidence of the contract violation;
		// keep it in the server log, never in the response.
		log.Printf("malformed completion (%v), raw text follows:\n%s", e.Unwrap(), e.Raw)
		writeJSON(w, http.StatusInternalServerError, errorResp("MALFORMED_COMPLETION", "The language model returned an unusable response", r))
	default:
		log.Printf("unexpected error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "An unexpected error occurred", r))
	}
}
