package dynamodb

import (
	"context"

	"gamewatch-backend/application/ports"
	"gamewatch-backend/domain/core/entities"
	apperrors "gamewatch-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// GameRepository implements ports.GameRepository on the Games table,
// keyed by game_id (partition) and title (sort).
type GameRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewGameRepository creates a new GameRepository.
func NewGameRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.GameRepository {
	return &GameRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// gameItem is the DynamoDB item structure for a game.
type gameItem struct {
	GameID        string   `dynamodbav:"game_id"`
	Title         string   `dynamodbav:"title"`
	Genre         string   `dynamodbav:"genre"`
	Platforms     []string `dynamodbav:"platforms"`
	ReleaseDate   string   `dynamodbav:"release_date"`
	ImageURL      string   `dynamodbav:"image_url"`
	Description   string   `dynamodbav:"description"`
	CreatedAt     string   `dynamodbav:"created_at"`
	ReviewsCount  int      `dynamodbav:"reviews_count"`
	AverageRating float64  `dynamodbav:"average_rating"`
}

func gameToItem(g *entities.Game) gameItem {
	return gameItem{
		GameID:        g.GameID,
		Title:         g.Title,
		Genre:         g.Genre,
		Platforms:     g.Platforms,
		ReleaseDate:   g.ReleaseDate,
		ImageURL:      g.ImageURL,
		Description:   g.Description,
		CreatedAt:     g.CreatedAt,
		ReviewsCount:  g.ReviewsCount,
		AverageRating: g.AverageRating,
	}
}

func itemToGame(item gameItem) entities.Game {
	return entities.Game{
		GameID:        item.GameID,
		Title:         item.Title,
		Genre:         item.Genre,
		Platforms:     item.Platforms,
		ReleaseDate:   item.ReleaseDate,
		ImageURL:      item.ImageURL,
		Description:   item.Description,
		CreatedAt:     item.CreatedAt,
		ReviewsCount:  item.ReviewsCount,
		AverageRating: item.AverageRating,
	}
}

// NextID returns the next game id from the table's counter item.
func (r *GameRepository) NextID(ctx context.Context) (string, error) {
	key := map[string]types.AttributeValue{
		"game_id": &types.AttributeValueMemberS{Value: counterKey},
		"title":   &types.AttributeValueMemberS{Value: counterKey},
	}
	return nextCounterValue(ctx, r.client, r.tableName, key)
}

// Create inserts a game, failing with Conflict when the id already exists.
func (r *GameRepository) Create(ctx context.Context, game *entities.Game) error {
	av, err := attributevalue.MarshalMap(gameToItem(game))
	if err != nil {
		return apperrors.NewDatabaseError("marshal game", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(game_id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return apperrors.NewConflictError("a game with this id already exists")
		}
		return apperrors.NewDatabaseError("put game", err)
	}

	r.logger.Debug("game saved",
		zap.String("gameID", game.GameID),
		zap.String("title", game.Title),
	)
	return nil
}

// GetByID queries by the partition key alone; the caller usually does not
// know the title, which is the sort key.
func (r *GameRepository) GetByID(ctx context.Context, gameID string) (*entities.Game, error) {
	keyCond := expression.Key("game_id").Equal(expression.Value(gameID))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("build game query", err)
	}

	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("query game", err)
	}
	if len(result.Items) == 0 {
		return nil, apperrors.NewNotFoundError("game")
	}

	var item gameItem
	if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
		return nil, apperrors.NewDatabaseError("unmarshal game", err)
	}
	game := itemToGame(item)
	return &game, nil
}

// List scans the full table, skipping the counter item.
func (r *GameRepository) List(ctx context.Context) ([]entities.Game, error) {
	filter := expression.Name("game_id").NotEqual(expression.Value(counterKey))
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("build games scan", err)
	}

	games := make([]entities.Game, 0)
	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName:                 aws.String(r.tableName),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, apperrors.NewDatabaseError("scan games", err)
		}
		for _, raw := range page.Items {
			var item gameItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Warn("failed to unmarshal game item", zap.Error(err))
				continue
			}
			games = append(games, itemToGame(item))
		}
	}
	return games, nil
}

// UpdateAttributes rewrites the mutable fields in place under the
// unchanged composite key and returns the stored row.
func (r *GameRepository) UpdateAttributes(ctx context.Context, game *entities.Game) (*entities.Game, error) {
	update := expression.
		Set(expression.Name("genre"), expression.Value(game.Genre)).
		Set(expression.Name("platforms"), expression.Value(game.Platforms)).
		Set(expression.Name("release_date"), expression.Value(game.ReleaseDate)).
		Set(expression.Name("image_url"), expression.Value(game.ImageURL)).
		Set(expression.Name("description"), expression.Value(game.Description))
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("build game update", err)
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       r.key(game.GameID, game.Title),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("update game", err)
	}

	var item gameItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &item); err != nil {
		return nil, apperrors.NewDatabaseError("unmarshal game", err)
	}
	updated := itemToGame(item)
	return &updated, nil
}

// Rename moves the row to its new composite key in one transaction, so a
// failure between the delete and the put cannot lose the game.
func (r *GameRepository) Rename(ctx context.Context, oldTitle string, game *entities.Game) error {
	av, err := attributevalue.MarshalMap(gameToItem(game))
	if err != nil {
		return apperrors.NewDatabaseError("marshal game", err)
	}

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Delete: &types.Delete{
					TableName: aws.String(r.tableName),
					Key:       r.key(game.GameID, oldTitle),
				},
			},
			{
				Put: &types.Put{
					TableName: aws.String(r.tableName),
					Item:      av,
				},
			},
		},
	})
	if err != nil {
		return apperrors.NewDatabaseError("rename game", err)
	}

	r.logger.Debug("game renamed",
		zap.String("gameID", game.GameID),
		zap.String("oldTitle", oldTitle),
		zap.String("newTitle", game.Title),
	)
	return nil
}

// Delete removes the row under its full composite key.
func (r *GameRepository) Delete(ctx context.Context, gameID, title string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       r.key(gameID, title),
	})
	if err != nil {
		return apperrors.NewDatabaseError("delete game", err)
	}
	return nil
}

// UpdateStats overwrites the derived review aggregates.
func (r *GameRepository) UpdateStats(ctx context.Context, gameID, title string, reviewsCount int, averageRating float64) error {
	update := expression.
		Set(expression.Name("reviews_count"), expression.Value(reviewsCount)).
		Set(expression.Name("average_rating"), expression.Value(averageRating))
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return apperrors.NewDatabaseError("build stats update", err)
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       r.key(gameID, title),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return apperrors.NewDatabaseError("update game stats", err)
	}
	return nil
}

func (r *GameRepository) key(gameID, title string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"game_id": &types.AttributeValueMemberS{Value: gameID},
		"title":   &types.AttributeValueMemberS{Value: title},
	}
}
