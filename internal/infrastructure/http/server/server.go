// Package server provides the JSON API HTTP server
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	appuser "github.com/saskialein/plan-to-plate/internal/application/user"
	"github.com/saskialein/plan-to-plate/internal/infrastructure/config"
	"github.com/saskialein/plan-to-plate/internal/infrastructure/http/handlers"
	"github.com/saskialein/plan-to-plate/internal/infrastructure/http/middleware"
	"github.com/saskialein/plan-to-plate/internal/ports/inbound"
)

// APIServer is the pure JSON API server
type APIServer struct {
	config          *config.Config
	logger          *zap.Logger
	server          *http.Server
	router          *chi.Mux
	userService     *appuser.UserService
	recipeService   inbound.RecipeService
	mealPlanService inbound.MealPlanService
	chatService     inbound.ChatService
}

// NewAPIServer creates a new API server instance
func NewAPIServer(
	cfg *config.Config,
	log *zap.Logger,
	userService *appuser.UserService,
	recipeService inbound.RecipeService,
	mealPlanService inbound.MealPlanService,
	chatService inbound.ChatService,
) *APIServer {
	s := &APIServer{
		config:          cfg,
		logger:          log,
		userService:     userService,
		recipeService:   recipeService,
		mealPlanService: mealPlanService,
		chatService:     chatService,
	}

	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

// setupRoutes configures the JSON API routes
func (s *APIServer) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	if s.config.Server.EnableCORS {
		r.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	}
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.JSONOnly())

	r.Route("/api/v1", func(r chi.Router) {
		s.setupAPIV1Routes(r)
	})

	return r
}

// setupAPIV1Routes configures API v1 endpoints
func (s *APIServer) setupAPIV1Routes(r chi.Router) {
	authH := handlers.NewAuthAPIHandlers(s.userService, s.logger)
	recipeH := handlers.NewRecipeAPIHandlers(s.recipeService, s.logger)
	llmH := handlers.NewLLMAPIHandlers(s.mealPlanService, s.chatService, s.logger)
	mealPlanH := handlers.NewMealPlanAPIHandlers(s.mealPlanService, s.logger)
	healthH := handlers.NewHealthHandlers(s.config.App.Version, s.logger)

	authenticated := middleware.Authenticate(s.userService)

	// Authentication routes
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authH.Register)
		r.Post("/login", authH.Login)

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Get("/profile", authH.Profile)
		})
	})

	// Recipe routes
	r.Route("/recipes", func(r chi.Router) {
		r.Use(authenticated)
		r.Post("/", recipeH.CreateRecipe)
		r.Get("/", recipeH.ListRecipes)
		r.Post("/generate-signed-url", recipeH.GenerateSignedURL)
		r.Post("/fetch-opengraph", recipeH.FetchOpenGraph)
		r.Get("/{id}", recipeH.GetRecipe)
		r.Put("/{id}", recipeH.UpdateRecipe)
		r.Delete("/{id}", recipeH.DeleteRecipe)
		r.Post("/{id}/comments", recipeH.AddComment)
	})

	// LLM routes
	r.Route("/llm", func(r chi.Router) {
		r.Use(authenticated)
		r.Post("/meal-plan", llmH.GenerateMealPlan)
		r.Post("/chat", llmH.Chat)
		r.Get("/chat/{sessionID}/history", llmH.ChatHistory)
		r.Delete("/chat/{sessionID}/history", llmH.ClearChatHistory)
	})

	// Saved meal plan routes
	r.Route("/meal-plans", func(r chi.Router) {
		r.Use(authenticated)
		r.Post("/", mealPlanH.SaveMealPlan)
		r.Get("/", mealPlanH.ListMealPlans)
		r.Delete("/{id}", mealPlanH.DeleteMealPlan)
	})

	// Health check
	r.Get("/health", healthH.HealthCheck)
}

// Start starts the HTTP server
func (s *APIServer) Start() error {
	s.logger.Info("Starting JSON API server",
		zap.String("address", s.server.Addr),
	)

	return s.server.ListenAndServe()
}

// Server returns the underlying HTTP server instance
func (s *APIServer) Server() *http.Server {
	return s.server
}

// Shutdown gracefully shuts down the server
func (s *APIServer) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")
	return s.server.Shutdown(ctx)
}
