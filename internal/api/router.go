package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/gouji-dev/gouji/internal/api/handlers"
	"github.com/gouji-dev/gouji/internal/api/middleware"
	"github.com/gouji-dev/gouji/internal/core"
	"github.com/gouji-dev/gouji/internal/health"
	"github.com/gouji-dev/gouji/internal/observability"
)

// Router wires the HTTP surface of the game server.
type Router struct {
	manager       *core.GameManager
	gameHandler   *handlers.GameHandler
	matchHandler  *handlers.MatchHandler
	healthChecker *health.Checker
	obs           *observability.Manager
}

func NewRouter(manager *core.GameManager, healthChecker *health.Checker, obs *observability.Manager) *Router {
	if obs == nil {
		obs = observability.NopManager()
	}
	return &Router{
		manager:       manager,
		gameHandler:   handlers.NewGameHandler(manager),
		matchHandler:  handlers.NewMatchHandler(manager),
		healthChecker: healthChecker,
		obs:           obs,
	}
}

// SetupRoutes configures all routes and middleware.
func (r *Router) SetupRoutes() http.Handler {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(r.obs.Logging().LoggingMiddleware())
	router.Use(r.obs.Metrics().MetricsMiddleware())
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Use(chiMiddleware.Timeout(60 * time.Second))
	router.Use(middleware.RateLimit(300, time.Minute))

	router.Get("/health", r.healthCheck)
	router.Get("/ready", r.readinessCheck)
	router.Method("GET", "/metrics", r.obs.Metrics().Handler())

	router.Route("/api/v1", func(apiRouter chi.Router) {
		apiRouter.Route("/games", func(gameRouter chi.Router) {
			gameRouter.Post("/", r.gameHandler.CreateGame)

			gameRouter.Route("/{gameID}", func(idRouter chi.Router) {
				idRouter.Get("/", r.gameHandler.GetGame)
				idRouter.Post("/plays", r.gameHandler.SubmitPlay)
				idRouter.Post("/step", r.gameHandler.StepAI)
				idRouter.Post("/run", r.gameHandler.RunToCompletion)

				idRouter.Route("/players/{playerID}", func(playerRouter chi.Router) {
					playerRouter.Get("/hand", r.gameHandler.GetHand)
					playerRouter.Get("/valid-plays", r.gameHandler.GetValidPlays)
				})
			})
		})

		apiRouter.Route("/matches", func(matchRouter chi.Router) {
			matchRouter.Get("/", r.matchHandler.ListMatches)
			matchRouter.Get("/{matchID}", r.matchHandler.GetMatch)
		})
	})

	return router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	if r.healthChecker != nil {
		systemHealth := r.healthChecker.Check(ctx)

		statusCode := http.StatusOK
		if systemHealth.Status == health.StatusUnhealthy {
			statusCode = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		json.NewEncoder(w).Encode(systemHealth)
		return
	}

	if err := r.manager.HealthCheck(ctx); err != nil {
		http.Error(w, "Service unhealthy", http.StatusServiceUnavailable)
		return
	}

	response := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

func (r *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	if err := r.manager.HealthCheck(req.Context()); err != nil {
		http.Error(w, "Service not ready", http.StatusServiceUnavailable)
		return
	}

	response := map[string]any{
		"status":     "ready",
		"timestamp":  time.Now().UTC(),
		"live_games": r.manager.LiveGames(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
