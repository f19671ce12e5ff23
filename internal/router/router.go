package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"vontara-backend/internal/handlers"
	"vontara-backend/internal/middleware"
	"vontara-backend/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	dashboardHandler *handlers.DashboardHandler,
	courseHandler *handlers.CourseHandler,
	chapterHandler *handlers.ChapterHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) (http.Handler, func()) {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP); tracking gets a looser budget
	// since every page navigation emits an event.
	authLimiter := middleware.NewRateLimiter(10, time.Minute)
	trackLimiter := middleware.NewRateLimiter(120, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/login", authHandler.Login)
		})

		// ──── Analytics Routes (public, best-effort) ────
		r.Group(func(r chi.Router) {
			r.Use(trackLimiter.Middleware)
			r.Post("/track", analyticsHandler.Track)
			r.Post("/sessions/start", analyticsHandler.StartSession)
			r.Post("/sessions/end", analyticsHandler.EndSession)
		})
		r.Get("/engagement/{userId}", analyticsHandler.Engagement)

		// ──── Course Routes ────
		r.Route("/courses", func(r chi.Router) {
			// Public
			r.Get("/", courseHandler.List)
			r.Get("/{id}", courseHandler.Get)
			r.Post("/{id}/enroll", courseHandler.Enroll)

			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/", courseHandler.Create)
				r.Put("/{id}", courseHandler.Update)
				r.Delete("/{id}", courseHandler.Delete)
				r.Post("/{id}/chapters", chapterHandler.Create)
				r.Put("/{id}/chapters/reorder", chapterHandler.Reorder)
			})
		})

		// ──── Chapter Routes (admin) ────
		r.Route("/chapters", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Put("/{id}", chapterHandler.Update)
			r.Delete("/{id}", chapterHandler.Delete)
		})

		// ──── Dashboard Routes (admin) ────
		r.Group(func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/dashboard", dashboardHandler.Stats)
		})

		// ──── WebSocket dashboard feed (token auth via query param) ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	cleanup := func() {
		authLimiter.Stop()
		trackLimiter.Stop()
	}
	return r, cleanup
}
