// Package di wires the application together with google/wire. The
// generated wire_gen.go is checked in so builds do not depend on the
// wire tool.
package di

import (
	"net/http"

	"gamewatch-backend/application/ports"
	"gamewatch-backend/application/services"
	"gamewatch-backend/infrastructure/config"
	"gamewatch-backend/pkg/auth"
	apperrors "gamewatch-backend/pkg/errors"
	"gamewatch-backend/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	GameRepo      ports.GameRepository
	UserRepo      ports.UserRepository
	WatchlistRepo ports.WatchlistRepository
	ReviewRepo    ports.ReviewRepository

	Catalog    *services.CatalogService
	Users      *services.UserService
	Watchlist  *services.WatchlistService
	Reviews    *services.ReviewService
	Reconciler *services.StatsReconciler

	Tokens       *auth.TokenService
	ErrorHandler *apperrors.ErrorHandler
	Metrics      *observability.Metrics

	Handler http.Handler
}
