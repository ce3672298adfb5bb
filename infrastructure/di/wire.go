//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"gamewatch-backend/infrastructure/config"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers.
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideCloudWatchClient,
	ProvideMetrics,
	ProvideGameRepository,
	ProvideUserRepository,
	ProvideWatchlistRepository,
	ProvideReviewRepository,
	ProvideTokenService,
	ProvideErrorHandler,
	ProvideStatsReconciler,
	ProvideCatalogService,
	ProvideUserService,
	ProvideWatchlistService,
	ProvideReviewService,
	ProvideHandler,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container.
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil
}
