// Package rest wires the chi router: public catalog reads and account
// routes, admin-only catalog mutations, and owner-scoped watchlist and
// review routes behind JWT authentication.
package rest

import (
	"net/http"

	"gamewatch-backend/application/services"
	"gamewatch-backend/interfaces/http/rest/handlers"
	appmiddleware "gamewatch-backend/interfaces/http/rest/middleware"
	"gamewatch-backend/pkg/auth"
	apperrors "gamewatch-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router.
type Router struct {
	catalog    *services.CatalogService
	users      *services.UserService
	watchlist  *services.WatchlistService
	reviews    *services.ReviewService
	tokens     *auth.TokenService
	errs       *apperrors.ErrorHandler
	logger     *zap.Logger
	enableCORS bool
}

// NewRouter creates a new router instance.
func NewRouter(
	catalog *services.CatalogService,
	users *services.UserService,
	watchlist *services.WatchlistService,
	reviews *services.ReviewService,
	tokens *auth.TokenService,
	errs *apperrors.ErrorHandler,
	logger *zap.Logger,
	enableCORS bool,
) *Router {
	return &Router{
		catalog:    catalog,
		users:      users,
		watchlist:  watchlist,
		reviews:    reviews,
		tokens:     tokens,
		errs:       errs,
		logger:     logger,
		enableCORS: enableCORS,
	}
}

// Setup configures all routes and middleware.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(appmiddleware.Logger(rt.logger))
	router.Use(rt.errs.Middleware)

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	authenticate := appmiddleware.Authenticate(rt.tokens, rt.logger)

	router.Get("/health", rt.healthCheck)

	gameHandler := handlers.NewGameHandler(rt.catalog, rt.errs, rt.logger)
	router.Route("/games", func(r chi.Router) {
		r.Get("/", gameHandler.List)
		r.Get("/{game_id}", gameHandler.Get)

		// Catalog mutations are admin-only.
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(appmiddleware.RequireAdmin)
			r.Post("/create", gameHandler.Create)
			r.Put("/{game_id}", gameHandler.Update)
			r.Delete("/{game_id}", gameHandler.Delete)
		})
	})

	userHandler := handlers.NewUserHandler(rt.users, rt.errs, rt.logger)
	router.Route("/users", func(r chi.Router) {
		r.Post("/register", userHandler.Register)
		r.Post("/create-admin", userHandler.CreateAdmin)
		r.Post("/login", userHandler.Login)
		r.Post("/admin/login", userHandler.AdminLogin)
		r.Get("/{user_id}", userHandler.Get)
	})

	watchlistHandler := handlers.NewWatchlistHandler(rt.watchlist, rt.errs, rt.logger)
	router.Route("/watchlist", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(appmiddleware.RequireUser)
		r.Post("/{user_id}", watchlistHandler.Add)
		r.Get("/{user_id}", watchlistHandler.List)
		r.Delete("/{user_id}/{game_id}", watchlistHandler.Remove)
		r.Put("/{user_id}/update-status/{game_id}", watchlistHandler.UpdateStatus)
		r.Patch("/{user_id}/update/{game_id}", watchlistHandler.UpdatePlaytime)
	})

	reviewHandler := handlers.NewReviewHandler(rt.reviews, rt.errs, rt.logger)
	router.Route("/review", func(r chi.Router) {
		r.Get("/{game_id}", reviewHandler.ListByGame)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(appmiddleware.RequireUser)
			r.Post("/{user_id}/review/{game_id}", reviewHandler.Upsert)
			r.Delete("/{user_id}/review/{game_id}", reviewHandler.Delete)
		})
	})

	return router
}

// healthCheck handles health check requests.
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
