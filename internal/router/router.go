package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"orienta-backend/internal/handlers"
	"orienta-backend/internal/middleware"
)

func New(
	chatHandler *handlers.ChatHandler,
	profileHandler *handlers.ProfileHandler,
	intakeHandler *handlers.IntakeHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Chat rate limiter (30 req/min per IP); each turn costs a model call
	chatLimiter := middleware.NewRateLimiter(30, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// ──── Chat & Profile Routes ────
	r.Group(func(r chi.Router) {
		r.Use(chatLimiter.Middleware)
		r.Post("/chat", chatHandler.Chat)
	})
	r.Post("/save-profile", profileHandler.SaveProfile)
	r.Get("/load-data/{sessionKey}", profileHandler.LoadData)

	// ──── Questionnaire Intake Routes ────
	r.Route("/api", func(r chi.Router) {
		r.Post("/submit", intakeHandler.Submit)
		r.Get("/stats", intakeHandler.Stats)
	})

	return r
}
