package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orienta-backend/internal/config"
	"orienta-backend/internal/database"
	"orienta-backend/internal/handlers"
	"orienta-backend/internal/router"
	"orienta-backend/internal/services"
	"orienta-backend/internal/store"
)

func main() {
	log.Println("🚀 Starting Orienta Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Select the Store ────
	// Postgres when reachable; otherwise the process keeps serving from an
	// in-memory store. Nothing written in that mode survives a restart.
	var st store.Store
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Printf("✗ PostgreSQL connection failed: %v", err)
		log.Println("⚠ Falling back to in-memory storage; data will NOT survive a restart")
		st = store.NewMemoryStore()
	} else {
		defer pool.Close()
		if err := database.EnsureSchema(pool); err != nil {
			log.Fatalf("✗ Schema initialization failed: %v", err)
		}
		st = store.NewPostgresStore(pool)
		log.Println("✓ PostgreSQL connected")
	}

	// ──── Step 3: Initialize Redis (optional) ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Printf("⚠ Redis unavailable, stats caching disabled: %v", err)
		redisClient = nil
	} else if redisClient != nil {
		defer redisClient.Close()
		log.Println("✓ Redis connected")
	}

	// ──── Step 4: Initialize Gemini Client ────
	geminiService, err := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiConcurrentReqs)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer geminiService.Close()
	log.Printf("✓ Gemini client initialized (model %s, %s contract)", cfg.GeminiModel, cfg.OutputContract)

	// ──── Step 5: Initialize Services & Handlers ────
	chatService := services.NewChatService(st, geminiService, cfg.OutputContract)

	chatHandler := handlers.NewChatHandler(chatService)
	profileHandler := handlers.NewProfileHandler(st)
	intakeHandler := handlers.NewIntakeHandler(st, redisClient)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(chatHandler, profileHandler, intakeHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Orienta Backend ready on http://localhost:%s", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
