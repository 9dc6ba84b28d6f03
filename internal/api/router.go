package api

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/clawdbotatg/nerve-cord/internal/api/middleware"
	"github.com/clawdbotatg/nerve-cord/internal/config"
	"github.com/clawdbotatg/nerve-cord/internal/handlers"
	"github.com/clawdbotatg/nerve-cord/internal/store"
)

// NewRouter creates and configures the HTTP router. Every route carries an
// explicit capability so tier precedence lives in one table instead of
// depending on handler source order.
func NewRouter(logger zerolog.Logger, cfg *config.Config, ds store.DataStore, alog *store.ActivityLog) *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware (first to capture all requests)
	r.Use(middleware.Metrics)

	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBodySize(1 << 20)) // 1MB max body
	r.Use(middleware.ValidateRequest)

	// Standard middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	// CORS: bots call from anywhere
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Admin-Token"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	h := handlers.NewHandler(ds, alog, cfg, logger)
	auth := middleware.NewAuth(cfg.Token, cfg.LarvaToken, cfg.ReadonlyToken)

	read := auth.Require(middleware.CapRead)
	write := auth.Require(middleware.CapWrite)

	// Metrics endpoint (for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// Public routes (no token at all)
	r.Get("/stats", h.Stats)
	r.Get("/skill", h.Skill)
	r.Get("/skill/version", h.SkillVersion)
	r.Get("/heartbeat", h.GetHeartbeats)

	r.With(auth.Require(middleware.CapHeartbeat)).Post("/heartbeat", h.PostHeartbeat)

	// Messages
	r.Route("/messages", func(r chi.Router) {
		r.With(read).Get("/", h.ListMessages)
		r.With(write).Post("/", h.SendMessage)
		r.With(read).Get("/{id}", h.GetMessage)
		r.With(write).Delete("/{id}", h.DeleteMessage)
		r.With(write).Post("/{id}/reply", h.ReplyMessage)
		r.With(auth.Require(middleware.CapMarkSeen)).Post("/{id}/seen", h.MarkSeen)
		r.With(write).Post("/{id}/burn", h.BurnMessage)
	})

	// Bot registry
	r.Route("/bots", func(r chi.Router) {
		r.With(read).Get("/", h.ListBots)
		r.With(write).Post("/", h.RegisterBot)
		r.With(read).Get("/{name}", h.GetBot)
		r.With(write).Delete("/{name}", h.DeleteBot) // plus X-Admin-Token
	})

	// Larvae
	r.Route("/larvae", func(r chi.Router) {
		larva := auth.Require(middleware.CapLarva)
		r.With(read).Get("/", h.ListLarvae)
		r.With(larva).Post("/", h.RegisterLarva)
		r.With(read).Get("/{name}", h.GetLarva)
		r.With(larva).Patch("/{name}", h.UpdateLarva)
		r.With(write).Delete("/{name}", h.DeleteLarva)
	})

	// Priorities
	r.Route("/priorities", func(r chi.Router) {
		r.With(read).Get("/", h.ListPriorities)
		r.With(write).Post("/", h.CreatePriority)
		r.With(write).Post("/top", h.TopPriority)
		r.With(write).Patch("/{id}", h.UpdatePriority)
		r.With(write).Post("/{id}/done", h.CompletePriority)
		r.With(write).Delete("/{id}", h.DeletePriority)
	})

	// Projects
	r.Route("/projects", func(r chi.Router) {
		r.With(read).Get("/", h.ListProjects)
		r.With(write).Post("/", h.CreateProject)
		r.With(read).Get("/{id}", h.GetProject)
		r.With(write).Patch("/{id}", h.UpdateProject)
		r.With(write).Delete("/{id}", h.DeleteProject)
	})

	// Suggestions (writable by every tier)
	r.Route("/suggestions", func(r chi.Router) {
		suggest := auth.Require(middleware.CapSuggest)
		r.With(read).Get("/", h.ListSuggestions)
		r.With(suggest).Post("/", h.CreateSuggestion)
		r.With(read).Get("/{id}", h.GetSuggestion)
		r.With(suggest).Patch("/{id}", h.UpdateSuggestion)
		r.With(suggest).Delete("/{id}", h.DeleteSuggestion)
	})

	// Activity log
	r.Route("/log", func(r chi.Router) {
		r.With(read).Get("/", h.QueryLog)
		r.With(auth.Require(middleware.CapLogAppend)).Post("/", h.AppendLog)
		r.With(write).Delete("/{id}", h.DeleteLog)
	})

	r.With(read).Get("/health", h.Health)

	return r
}
