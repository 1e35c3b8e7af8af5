// Package rest wires the HTTP surface: route layout, global middleware and
// the authentication boundary. Everything under /api except auth and
// geocode requires a valid bearer token.
package rest

import (
	"net/http"

	"lifemap-backend/infrastructure/di"
	"lifemap-backend/interfaces/http/rest/handlers"
	"lifemap-backend/interfaces/http/rest/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Router creates and configures the HTTP router
type Router struct {
	container *di.Container
}

// NewRouter creates a new router instance
func NewRouter(container *di.Container) *Router {
	return &Router{container: container}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	c := rt.container

	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(c.Logger))

	if c.Config.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.lifemap.app"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	authHandler := handlers.NewAuthHandler(c.AuthService, c.ContactService, c.TimelineService, c.Logger)
	contactHandler := handlers.NewContactHandler(c.ContactService, c.ImportService, c.DomainConfig, c.Logger)
	timelineHandler := handlers.NewTimelineHandler(c.TimelineService, c.Logger)
	geocodeHandler := handlers.NewGeocodeHandler(c.GeocodeClient, c.Logger)

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.RateLimitByIP(c.Config.AuthRequestsPerMinute))
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// Geocoding is a stateless relay used by the public map view, so
		// it sits outside the auth boundary with its own IP limit.
		r.With(middleware.RateLimitByIP(c.Config.APIRequestsPerMinute)).
			Get("/geocode", geocodeHandler.Lookup)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(c.JWTService, c.Config.APIRequestsPerMinute, c.Logger))

			r.Route("/contacts", func(r chi.Router) {
				r.Get("/", contactHandler.ListContacts)
				r.Post("/", contactHandler.CreateContact)
				r.Patch("/", contactHandler.BatchUpdateContacts)
				r.Post("/import", contactHandler.ImportContacts)
				r.Get("/export", contactHandler.ExportContacts)
				r.Put("/{contactID}", contactHandler.UpdateContact)
				r.Delete("/{contactID}", contactHandler.DeleteContact)
			})

			r.Route("/timeline", func(r chi.Router) {
				r.Get("/", timelineHandler.ListEvents)
				r.Post("/", timelineHandler.CreateEvent)
				r.Post("/parse-resume", timelineHandler.ParseResume)
				r.Put("/{eventID}", timelineHandler.UpdateEvent)
				r.Delete("/{eventID}", timelineHandler.DeleteEvent)
			})

			r.Post("/session/logout", authHandler.Logout)
		})
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

func (rt *Router) readinessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
