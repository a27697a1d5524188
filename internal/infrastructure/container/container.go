// Package container provides dependency injection setup using Uber FX
package container

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	gormdb "gorm.io/gorm"

	appchat "github.com/saskialein/plan-to-plate/internal/application/chat"
	"github.com/saskialein/plan-to-plate/internal/application/indexer"
	appmealplan "github.com/saskialein/plan-to-plate/internal/application/mealplan"
	apprecipe "github.com/saskialein/plan-to-plate/internal/application/recipe"
	appuser "github.com/saskialein/plan-to-plate/internal/application/user"
	"github.com/saskialein/plan-to-plate/internal/infrastructure/ai/ollama"
	openaiadapter "github.com/saskialein/plan-to-plate/internal/infrastructure/ai/openai"
	"github.com/saskialein/plan-to-plate/internal/infrastructure/config"
	"github.com/saskialein/plan-to-plate/internal/infrastructure/http/server"
	"github.com/saskialein/plan-to-plate/internal/infrastructure/opengraph"
	gormadapter "github.com/saskialein/plan-to-plate/internal/infrastructure/persistence/gorm"
	"github.com/saskialein/plan-to-plate/internal/infrastructure/persistence/pgvector"
	"github.com/saskialein/plan-to-plate/internal/infrastructure/persistence/postgres"
	redisadapter "github.com/saskialein/plan-to-plate/internal/infrastructure/persistence/redis"
	"github.com/saskialein/plan-to-plate/internal/infrastructure/storage"
	"github.com/saskialein/plan-to-plate/internal/ingest"
	"github.com/saskialein/plan-to-plate/internal/ports/inbound"
	"github.com/saskialein/plan-to-plate/internal/ports/outbound"
	"github.com/saskialein/plan-to-plate/pkg/logger"
)

// Module combines all application modules for dependency injection
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	RedisModule,
	RepositoryModule,
	AIModule,
	IndexModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Options(
	fx.Provide(func() (*config.Config, error) {
		return config.Load("")
	}),
)

// LoggerModule provides structured logging
var LoggerModule = fx.Options(
	fx.Provide(func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.IsDevelopment(),
		})
	}),
)

// DatabaseModule provides the GORM connection and the pgx pool used by the
// vector index
var DatabaseModule = fx.Options(
	fx.Provide(postgres.Connect),
	fx.Provide(postgres.ConnectPool),
)

// RedisModule provides the Redis client and the chat history store backed
// by it
var RedisModule = fx.Options(
	fx.Provide(redisadapter.NewClient),
	fx.Provide(redisadapter.NewHistoryStore),
)

// RepositoryModule provides data access implementations
var RepositoryModule = fx.Options(
	fx.Provide(gormadapter.NewUserRepository),
	fx.Provide(gormadapter.NewRecipeRepository),
	fx.Provide(gormadapter.NewMealPlanRepository),
)

// AIModule provides the chat model and embedder for the configured provider
var AIModule = fx.Options(
	fx.Provide(newAIClient),
)

// aiClients bundles the provider-specific implementations behind the
// outbound ports
type aiClients struct {
	fx.Out

	ChatModel outbound.ChatModel
	Embedder  outbound.Embedder
}

func newAIClient(cfg *config.Config, log *zap.Logger) (aiClients, error) {
	switch cfg.AI.Provider {
	case "ollama":
		client := ollama.NewClient(ollama.Config{
			BaseURL:        cfg.AI.OllamaBaseURL,
			ChatModel:      cfg.AI.ChatModel,
			EmbeddingModel: cfg.AI.EmbeddingModel,
			Timeout:        cfg.AI.Timeout,
		}, log)
		return aiClients{ChatModel: client, Embedder: client}, nil
	case "openai":
		client, err := openaiadapter.NewClient(openaiadapter.Config{
			APIKey:         cfg.AI.OpenAIKey,
			BaseURL:        cfg.AI.OpenAIBaseURL,
			ChatModel:      cfg.AI.ChatModel,
			EmbeddingModel: cfg.AI.EmbeddingModel,
		}, log)
		if err != nil {
			return aiClients{}, err
		}
		return aiClients{ChatModel: client, Embedder: client}, nil
	default:
		return aiClients{}, fmt.Errorf("unknown ai provider: %s", cfg.AI.Provider)
	}
}

// IndexModule provides document ingestion and the vector index
var IndexModule = fx.Options(
	fx.Provide(ingest.NewIngestor),
	fx.Provide(fx.Annotate(
		pgvector.NewIndex,
		fx.As(new(outbound.VectorIndex)),
	)),
	fx.Provide(fx.Annotate(
		indexer.NewService,
		fx.As(new(inbound.IndexService)),
	)),
)

// ServiceModule provides application services
var ServiceModule = fx.Options(
	fx.Provide(func(cfg *config.Config, userRepo outbound.UserRepository, log *zap.Logger) *appuser.UserService {
		return appuser.NewUserService(userRepo, cfg.Auth.JWTSecret, log)
	}),
	fx.Provide(func(cfg *config.Config, index outbound.VectorIndex, log *zap.Logger) *appmealplan.Retriever {
		return appmealplan.NewRetriever(index, cfg.AI.RetrievalK, log)
	}),
	fx.Provide(appmealplan.NewPromptBuilder),
	fx.Provide(func(cfg *config.Config, model outbound.ChatModel, log *zap.Logger) *appmealplan.Generator {
		return appmealplan.NewGenerator(model, cfg.AI.MaxTokens, cfg.AI.StrictPlanValidation, log)
	}),
	fx.Provide(func(cfg *config.Config, log *zap.Logger) *appmealplan.Reconciler {
		return appmealplan.NewReconciler(appmealplan.MatchPolicy(cfg.AI.MatchPolicy), log)
	}),
	fx.Provide(fx.Annotate(
		appmealplan.NewService,
		fx.As(new(inbound.MealPlanService)),
	)),
	fx.Provide(fx.Annotate(
		apprecipe.NewService,
		fx.As(new(inbound.RecipeService)),
	)),
	fx.Provide(fx.Annotate(
		func(cfg *config.Config, model outbound.ChatModel, history outbound.ChatHistoryStore, log *zap.Logger) *appchat.Service {
			return appchat.NewService(model, history, cfg.AI.ChatMaxTokens, log)
		},
		fx.As(new(inbound.ChatService)),
	)),
	fx.Provide(storage.NewS3Storage),
	fx.Provide(opengraph.NewFetcher),
)

// HTTPModule provides the API server
var HTTPModule = fx.Options(
	fx.Provide(server.NewAPIServer),
)

// LifecycleModule wires startup and shutdown hooks
var LifecycleModule = fx.Options(
	fx.Invoke(RegisterLifecycleHooks),
)

// RegisterLifecycleHooks runs schema setup on start, serves HTTP, and tears
// everything down in order on stop
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gormdb.DB,
	pool *pgxpool.Pool,
	redisClient *redis.Client,
	index outbound.VectorIndex,
	apiServer *server.APIServer,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting Plan to Plate",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			if cfg.Database.AutoMigrate {
				if err := gormadapter.AutoMigrate(db, log); err != nil {
					return fmt.Errorf("failed to run migrations: %w", err)
				}
			}

			if ensurer, ok := index.(*pgvector.Index); ok {
				if err := ensurer.EnsureSchema(ctx); err != nil {
					return fmt.Errorf("failed to prepare vector index: %w", err)
				}
			}

			go func() {
				if err := apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("API server stopped", zap.Error(err))
				}
			}()

			log.Info("HTTP server listening",
				zap.String("host", cfg.Server.Host),
				zap.Int("port", cfg.Server.Port),
			)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Plan to Plate")

			if err := apiServer.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown API server", zap.Error(err))
			}

			if sqlDB, err := db.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}
			pool.Close()

			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close redis connection", zap.Error(err))
			}

			_ = log.Sync()
			return nil
		},
	})
}
