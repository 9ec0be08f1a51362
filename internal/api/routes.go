package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures all API routes.
func SetupRoutes(h *Handlers) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	allowedOrigins := []string{"*"}
	if h.config != nil && len(h.config.Server.AllowedOrigins) > 0 {
		allowedOrigins = h.config.Server.AllowedOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		// Company resolution
		r.Get("/company/resolve", h.HandleResolveCompany)
		r.Post("/company/switch", h.HandleSwitchCompany)

		// Aggregate profile
		r.Get("/profile", h.HandleGetProfile)
		r.Patch("/profile/{kind}", h.HandlePatchProfile)
		r.Post("/profile/{kind}/generate", h.HandleGenerateProfile)

		// List sections (stateless CRUD)
		r.Route("/collections/{kind}", func(r chi.Router) {
			r.Post("/", h.HandleAddCollectionItem)
			r.Patch("/{id}", h.HandleUpdateCollectionItem)
			r.Delete("/{id}", h.HandleDeleteCollectionItem)
		})

		// Per-platform channel rows
		r.Get("/channels", h.HandleGetChannels)
		r.Patch("/channels/{platform}", h.HandlePatchChannel)

		// Edit sessions (optimistic editor state)
		r.Post("/sessions", h.HandleOpenSession)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Delete("/", h.HandleCloseSession)
			r.Post("/refresh", h.HandleRefreshSession)
			r.Get("/events", h.HandleSessionEvents)
			r.Post("/fields", h.HandleSetField)
			r.Post("/fields/commit", h.HandleCommitField)
			r.Route("/collections/{kind}", func(r chi.Router) {
				r.Get("/", h.HandleSessionItems)
				r.Post("/", h.HandleSessionAddItem)
				r.Patch("/{id}", h.HandleSessionUpdateItem)
				r.Delete("/{id}", h.HandleSessionRemoveItem)
			})
		})
	})

	return r
}
