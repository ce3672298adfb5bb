package services

import (
	"context"

	"gamewatch-backend/application/ports"
	"gamewatch-backend/domain/core/entities"
	apperrors "gamewatch-backend/pkg/errors"
	"gamewatch-backend/pkg/utils"

	"go.uber.org/zap"
)

// GameInput carries the six required catalog fields for create and update.
type GameInput struct {
	Title       string   `json:"title" validate:"required"`
	Genre       string   `json:"genre" validate:"required"`
	Platforms   []string `json:"platforms" validate:"required,min=1"`
	ReleaseDate string   `json:"release_date" validate:"required"`
	ImageURL    string   `json:"image_url" validate:"required"`
	Description string   `json:"description" validate:"required"`
}

// CatalogService implements the admin-curated game catalog workflow.
type CatalogService struct {
	games  ports.GameRepository
	logger *zap.Logger
}

// NewCatalogService creates a catalog service.
func NewCatalogService(games ports.GameRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{games: games, logger: logger}
}

// Create inserts a new game with a freshly assigned id and zeroed review
// stats, returning the id.
func (s *CatalogService) Create(ctx context.Context, input GameInput) (string, error) {
	if err := validateGameInput(input); err != nil {
		return "", err
	}

	gameID, err := s.games.NextID(ctx)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to assign game id")
	}

	game := &entities.Game{
		GameID:        gameID,
		Title:         input.Title,
		Genre:         input.Genre,
		Platforms:     input.Platforms,
		ReleaseDate:   input.ReleaseDate,
		ImageURL:      input.ImageURL,
		Description:   input.Description,
		CreatedAt:     utils.NowRFC3339(),
		ReviewsCount:  0,
		AverageRating: 0,
	}
	if err := s.games.Create(ctx, game); err != nil {
		return "", apperrors.Wrap(err, "failed to create game")
	}

	s.logger.Info("game created",
		zap.String("gameID", gameID),
		zap.String("title", game.Title),
	)
	return gameID, nil
}

// Get returns a single game by id.
func (s *CatalogService) Get(ctx context.Context, gameID string) (*entities.Game, error) {
	game, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("game")
		}
		return nil, apperrors.Wrap(err, "failed to load game")
	}
	return game, nil
}

// List returns the full catalog, unfiltered.
func (s *CatalogService) List(ctx context.Context) ([]entities.Game, error) {
	games, err := s.games.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list games")
	}
	return games, nil
}

// Update rewrites all six catalog fields of a game. Because the title is
// the sort key of the Games table, a title change moves the row: the
// repository performs a transactional delete+put carrying over created_at
// and the derived review stats. An unchanged title is an in-place update.
func (s *CatalogService) Update(ctx context.Context, gameID string, input GameInput) (*entities.Game, error) {
	if err := validateGameInput(input); err != nil {
		return nil, err
	}

	current, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("game")
		}
		return nil, apperrors.Wrap(err, "failed to load game")
	}

	updated := &entities.Game{
		GameID:        gameID,
		Title:         input.Title,
		Genre:         input.Genre,
		Platforms:     input.Platforms,
		ReleaseDate:   input.ReleaseDate,
		ImageURL:      input.ImageURL,
		Description:   input.Description,
		CreatedAt:     current.CreatedAt,
		ReviewsCount:  current.ReviewsCount,
		AverageRating: current.AverageRating,
	}

	if current.Title == input.Title {
		return s.games.UpdateAttributes(ctx, updated)
	}

	if err := s.games.Rename(ctx, current.Title, updated); err != nil {
		return nil, apperrors.Wrap(err, "failed to rename game")
	}
	s.logger.Info("game renamed",
		zap.String("gameID", gameID),
		zap.String("oldTitle", current.Title),
		zap.String("newTitle", input.Title),
	)
	return updated, nil
}

// Delete removes a game, looking it up first to obtain its sort key.
func (s *CatalogService) Delete(ctx context.Context, gameID string) error {
	game, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewNotFoundError("game")
		}
		return apperrors.Wrap(err, "failed to load game")
	}
	if err := s.games.Delete(ctx, game.GameID, game.Title); err != nil {
		return apperrors.Wrap(err, "failed to delete game")
	}
	return nil
}

func validateGameInput(input GameInput) error {
	if err := utils.ValidateStruct(input); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	for _, p := range input.Platforms {
		if !entities.ValidGamePlatform(p) {
			return apperrors.NewValidationError("platforms contains an unknown platform: " + p)
		}
	}
	return nil
}
