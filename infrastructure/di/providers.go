package di

import (
	"context"
	"net/http"

	"gamewatch-backend/application/ports"
	"gamewatch-backend/application/services"
	"gamewatch-backend/infrastructure/config"
	dynamorepo "gamewatch-backend/infrastructure/persistence/dynamodb"
	"gamewatch-backend/infrastructure/persistence/memory"
	"gamewatch-backend/interfaces/http/rest"
	"gamewatch-backend/pkg/auth"
	apperrors "gamewatch-backend/pkg/errors"
	"gamewatch-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// metricsNamespace is the CloudWatch namespace all metrics are shipped
// under.
const metricsNamespace = "GameWatch"

// ProvideLogger creates the process logger.
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig loads the default AWS configuration.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client.
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client.
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideMetrics returns a metrics emitter, or nil when metrics are
// disabled; the nil emitter drops everything.
func ProvideMetrics(cfg *config.Config, client *awscloudwatch.Client, logger *zap.Logger) *observability.Metrics {
	if !cfg.EnableMetrics {
		return nil
	}
	return observability.NewMetrics(metricsNamespace, client, logger)
}

// ProvideGameRepository creates the game repository for the configured
// store backend.
func ProvideGameRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.GameRepository {
	if cfg.StoreBackend == config.StoreBackendMemory {
		return memory.NewGameRepository()
	}
	return dynamorepo.NewGameRepository(client, cfg.GamesTable, logger)
}

// ProvideUserRepository creates the user repository.
func ProvideUserRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.UserRepository {
	if cfg.StoreBackend == config.StoreBackendMemory {
		return memory.NewUserRepository()
	}
	return dynamorepo.NewUserRepository(client, cfg.UsersTable, logger)
}

// ProvideWatchlistRepository creates the watchlist repository.
func ProvideWatchlistRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.WatchlistRepository {
	if cfg.StoreBackend == config.StoreBackendMemory {
		return memory.NewWatchlistRepository()
	}
	return dynamorepo.NewWatchlistRepository(client, cfg.WatchlistTable, logger)
}

// ProvideReviewRepository creates the review repository.
func ProvideReviewRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ReviewRepository {
	if cfg.StoreBackend == config.StoreBackendMemory {
		return memory.NewReviewRepository()
	}
	return dynamorepo.NewReviewRepository(client, cfg.ReviewsTable, cfg.ReviewsGameIndex, logger)
}

// ProvideTokenService creates the JWT issuer/validator.
func ProvideTokenService(cfg *config.Config) (*auth.TokenService, error) {
	return auth.NewTokenService(auth.JWTConfig{
		SecretKey: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
	})
}

// ProvideErrorHandler creates the shared HTTP error handler.
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *apperrors.ErrorHandler {
	return apperrors.NewErrorHandler(logger, cfg.IsDevelopment())
}

// ProvideStatsReconciler creates the stats reconciler.
func ProvideStatsReconciler(games ports.GameRepository, reviews ports.ReviewRepository, metrics *observability.Metrics, logger *zap.Logger) *services.StatsReconciler {
	return services.NewStatsReconciler(games, reviews, metrics, logger)
}

// ProvideCatalogService creates the game catalog service.
func ProvideCatalogService(games ports.GameRepository, logger *zap.Logger) *services.CatalogService {
	return services.NewCatalogService(games, logger)
}

// ProvideUserService creates the account service.
func ProvideUserService(users ports.UserRepository, tokens *auth.TokenService, cfg *config.Config, logger *zap.Logger) *services.UserService {
	return services.NewUserService(users, tokens, cfg.AdminKey, logger)
}

// ProvideWatchlistService creates the watchlist service.
func ProvideWatchlistService(watchlist ports.WatchlistRepository, users ports.UserRepository, games ports.GameRepository, logger *zap.Logger) *services.WatchlistService {
	return services.NewWatchlistService(watchlist, users, games, logger)
}

// ProvideReviewService creates the review service.
func ProvideReviewService(reviews ports.ReviewRepository, users ports.UserRepository, reconciler *services.StatsReconciler, metrics *observability.Metrics, logger *zap.Logger) *services.ReviewService {
	return services.NewReviewService(reviews, users, reconciler, metrics, logger)
}

// ProvideHandler builds the configured HTTP handler.
func ProvideHandler(
	catalog *services.CatalogService,
	users *services.UserService,
	watchlist *services.WatchlistService,
	reviews *services.ReviewService,
	tokens *auth.TokenService,
	errs *apperrors.ErrorHandler,
	cfg *config.Config,
	logger *zap.Logger,
) http.Handler {
	return rest.NewRouter(catalog, users, watchlist, reviews, tokens, errs, logger, cfg.EnableCORS).Setup()
}
