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

	"vontara-backend/internal/analytics"
	"vontara-backend/internal/config"
	"vontara-backend/internal/database"
	"vontara-backend/internal/handlers"
	"vontara-backend/internal/middleware"
	"vontara-backend/internal/repository"
	"vontara-backend/internal/router"
	"vontara-backend/internal/scheduler"
	"vontara-backend/internal/services"
	"vontara-backend/internal/websocket"
)

func main() {
	log.Println("🚀 Starting Vontara Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis ────
	// Analytics degrades to no-ops without Redis, so a failure here is loud
	// but not fatal: the course portal still works.
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Printf("✗ Redis connection failed, analytics disabled: %v", err)
	} else {
		defer redisClient.Close()
		log.Println("✓ Redis connected")
	}

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	courseRepo := repository.NewCourseRepo(pool)
	chapterRepo := repository.NewChapterRepo(pool)

	// ──── Initialize Services ────
	analyticsService := analytics.NewService(redisClient)
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	authService := services.NewAuthService(jwtAuth, cfg.AdminPasswordHash)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	dashboardHandler := handlers.NewDashboardHandler(analyticsService)
	courseHandler := handlers.NewCourseHandler(courseRepo, chapterRepo)
	chapterHandler := handlers.NewChapterHandler(chapterRepo)

	// ──── Step 5: Start WebSocket Hub ────
	wsHub := websocket.NewHub(jwtAuth)
	log.Println("✓ Dashboard feed hub started")

	// ──── Step 6: Start Analytics Scheduler ────
	sched := scheduler.New(
		analyticsService,
		wsHub,
		time.Duration(cfg.HeartbeatIntervalSecs)*time.Second,
		time.Duration(cfg.DashboardRefreshIntervalSecs)*time.Second,
	)
	sched.Start()
	log.Printf("✓ Scheduler started (heartbeat %ds, dashboard refresh %ds)",
		cfg.HeartbeatIntervalSecs, cfg.DashboardRefreshIntervalSecs)

	// ──── Step 7: Start HTTP Server ────
	r, stopLimiters := router.New(
		jwtAuth,
		authHandler,
		analyticsHandler,
		dashboardHandler,
		courseHandler,
		chapterHandler,
		wsHub,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		sched.Stop()
		wsHub.Close()
		stopLimiters()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Vontara Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
