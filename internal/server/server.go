// Package server wires stores, services and handlers into the HTTP router.
package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/dishly/internal/auth"
	"github.com/dukerupert/dishly/internal/config"
	"github.com/dukerupert/dishly/internal/handler"
	"github.com/dukerupert/dishly/internal/metrics"
	"github.com/dukerupert/dishly/internal/middleware"
	"github.com/dukerupert/dishly/internal/service"
	"github.com/dukerupert/dishly/internal/store"
	"github.com/go-chi/cors"
)

const (
	loginLimit    = 10
	registerLimit = 5
	authWindow    = time.Minute
)

type Server struct {
	db            *sql.DB
	tokens        *auth.TokenManager
	cfg           *config.Config
	authH         *handler.AuthHandler
	recipeH       *handler.RecipeHandler
	collectionH   *handler.CollectionHandler
	shoppingListH *handler.ShoppingListHandler
	logger        *slog.Logger
}

func New(db *sql.DB, tokens *auth.TokenManager, cfg *config.Config, logger *slog.Logger) *Server {
	userStore := store.NewUserStore(db)
	recipeStore := store.NewRecipeStore(db)
	ratingStore := store.NewRatingStore(db)
	likeStore := store.NewLikeStore(db)
	listStore := store.NewShoppingListStore(db)
	collectionStore := store.NewCollectionStore(db)

	authSvc := service.NewAuthService(userStore, tokens, logger)
	recipeSvc := service.NewRecipeService(recipeStore, likeStore, logger)
	aggregateSvc := service.NewAggregationService(recipeStore, ratingStore, likeStore, logger)
	listSvc := service.NewShoppingListService(listStore, recipeStore, logger)
	collectionSvc := service.NewCollectionService(collectionStore, recipeStore, likeStore, logger)

	handlerLogger := logger.With("component", "handler")

	return &Server{
		db:            db,
		tokens:        tokens,
		cfg:           cfg,
		authH:         handler.NewAuthHandler(authSvc, handlerLogger),
		recipeH:       handler.NewRecipeHandler(recipeSvc, aggregateSvc, cfg.TrendingLimit, handlerLogger),
		collectionH:   handler.NewCollectionHandler(collectionSvc, handlerLogger),
		shoppingListH: handler.NewShoppingListHandler(listSvc, handlerLogger),
		logger:        logger,
	}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.Handle("GET /metrics", metrics.Handler())

	// Auth
	mux.Handle("POST /api/auth/register", s.rateLimited("register", registerLimit, s.authH.Register))
	mux.Handle("POST /api/auth/login", s.rateLimited("login", loginLimit, s.authH.Login))
	mux.Handle("GET /api/auth/me", s.protected(s.authH.Me))

	// Public recipe reads
	mux.Handle("GET /api/recipes/public", s.optional(s.recipeH.ListPublic))
	mux.Handle("GET /api/recipes/public/trending", s.optional(s.recipeH.Trending))
	mux.Handle("GET /api/recipes/search", s.optional(s.recipeH.Search))
	mux.Handle("GET /api/recipes/{id}", s.optional(s.recipeH.Get))

	// Recipes
	mux.Handle("POST /api/recipes", s.protected(s.recipeH.Create))
	mux.Handle("GET /api/recipes", s.protected(s.recipeH.ListOwn))
	mux.Handle("PUT /api/recipes/{id}", s.protected(s.recipeH.Update))
	mux.Handle("DELETE /api/recipes/{id}", s.protected(s.recipeH.Delete))
	mux.Handle("PATCH /api/recipes/{id}/visibility", s.protected(s.recipeH.ToggleVisibility))
	mux.Handle("POST /api/recipes/{id}/copy", s.protected(s.recipeH.Copy))

	// Ratings and likes
	mux.Handle("PATCH /api/recipes/{id}/rating", s.protected(s.recipeH.Rate))
	mux.Handle("GET /api/recipes/{id}/ratings", s.protected(s.recipeH.Ratings))
	mux.Handle("POST /api/recipes/{id}/like", s.protected(s.recipeH.Like))
	mux.Handle("DELETE /api/recipes/{id}/like", s.protected(s.recipeH.Unlike))

	// Collections
	mux.Handle("POST /api/collections", s.protected(s.collectionH.Create))
	mux.Handle("GET /api/collections", s.protected(s.collectionH.List))
	mux.Handle("GET /api/collections/{id}/recipes", s.protected(s.collectionH.Recipes))
	mux.Handle("POST /api/collections/{id}/recipes/{recipe_id}", s.protected(s.collectionH.AddRecipe))
	mux.Handle("DELETE /api/collections/{id}/recipes/{recipe_id}", s.protected(s.collectionH.RemoveRecipe))
	mux.Handle("DELETE /api/collections/{id}", s.protected(s.collectionH.Delete))

	// Shopping lists
	mux.Handle("POST /api/shopping-lists/generate", s.protected(s.shoppingListH.Generate))
	mux.Handle("GET /api/shopping-lists", s.protected(s.shoppingListH.List))
	mux.Handle("GET /api/shopping-lists/{id}", s.protected(s.shoppingListH.Get))
	mux.Handle("PATCH /api/shopping-lists/{id}/items/{index}/toggle", s.protected(s.shoppingListH.ToggleItem))
	mux.Handle("DELETE /api/shopping-lists/{id}", s.protected(s.shoppingListH.Delete))

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	return middleware.RequestLogger(s.logger.With("component", "http"))(corsHandler(mux))
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status, code := "ok", http.StatusOK
	if err := s.db.PingContext(r.Context()); err != nil {
		s.logger.Error("health check failed", "error", err)
		status, code = "unavailable", http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}

func (s *Server) protected(h http.HandlerFunc) http.Handler {
	return middleware.RequireAuth(s.tokens)(h)
}

func (s *Server) optional(h http.HandlerFunc) http.Handler {
	return middleware.OptionalAuth(s.tokens)(h)
}

func (s *Server) rateLimited(route string, limit int, h http.HandlerFunc) http.Handler {
	return middleware.RateLimit(route, limit, authWindow)(h)
}
