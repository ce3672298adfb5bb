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

// ReviewRepository implements ports.ReviewRepository on the Reviews
// table, keyed by user_id (partition) and game_id (sort), with a GSI on
// game_id for per-game listings.
type ReviewRepository struct {
	client    *dynamodb.Client
	tableName string
	gameIndex string
	logger    *zap.Logger
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(client *dynamodb.Client, tableName, gameIndex string, logger *zap.Logger) ports.ReviewRepository {
	return &ReviewRepository{
		client:    client,
		tableName: tableName,
		gameIndex: gameIndex,
		logger:    logger,
	}
}

type reviewItem struct {
	UserID        string  `dynamodbav:"user_id"`
	GameID        string  `dynamodbav:"game_id"`
	Rating        int     `dynamodbav:"rating"`
	Comment       string  `dynamodbav:"comment"`
	Platform      string  `dynamodbav:"platform"`
	PlaytimeHours float64 `dynamodbav:"playtime_hours"`
	PostedAt      string  `dynamodbav:"posted_at"`
}

func reviewToItem(rv *entities.Review) reviewItem {
	return reviewItem{
		UserID:        rv.UserID,
		GameID:        rv.GameID,
		Rating:        rv.Rating,
		Comment:       rv.Comment,
		Platform:      rv.Platform,
		PlaytimeHours: rv.PlaytimeHours,
		PostedAt:      rv.PostedAt,
	}
}

func itemToReview(item reviewItem) entities.Review {
	return entities.Review{
		UserID:        item.UserID,
		GameID:        item.GameID,
		Rating:        item.Rating,
		Comment:       item.Comment,
		Platform:      item.Platform,
		PlaytimeHours: item.PlaytimeHours,
		PostedAt:      item.PostedAt,
	}
}

// Get fetches one review by its composite key.
func (r *ReviewRepository) Get(ctx context.Context, userID, gameID string) (*entities.Review, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       r.key(userID, gameID),
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("get review", err)
	}
	if result.Item == nil {
		return nil, apperrors.NewNotFoundError("review")
	}

	var item reviewItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, apperrors.NewDatabaseError("unmarshal review", err)
	}
	review := itemToReview(item)
	return &review, nil
}

// Insert writes a fresh review.
func (r *ReviewRepository) Insert(ctx context.Context, review *entities.Review) error {
	av, err := attributevalue.MarshalMap(reviewToItem(review))
	if err != nil {
		return apperrors.NewDatabaseError("marshal review", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return apperrors.NewDatabaseError("put review", err)
	}
	return nil
}

// UpdateFields rewrites the editable fields of an existing review,
// leaving posted_at untouched.
func (r *ReviewRepository) UpdateFields(ctx context.Context, review *entities.Review) error {
	update := expression.
		Set(expression.Name("rating"), expression.Value(review.Rating)).
		Set(expression.Name("comment"), expression.Value(review.Comment)).
		Set(expression.Name("platform"), expression.Value(review.Platform)).
		Set(expression.Name("playtime_hours"), expression.Value(review.PlaytimeHours))
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return apperrors.NewDatabaseError("build review update", err)
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       r.key(review.UserID, review.GameID),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return apperrors.NewDatabaseError("update review", err)
	}
	return nil
}

// Delete removes a review; deleting an absent review is not an error.
func (r *ReviewRepository) Delete(ctx context.Context, userID, gameID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       r.key(userID, gameID),
	})
	if err != nil {
		return apperrors.NewDatabaseError("delete review", err)
	}
	return nil
}

// ListByGame queries the game_id index for every review of one game.
func (r *ReviewRepository) ListByGame(ctx context.Context, gameID string) ([]entities.Review, error) {
	keyCond := expression.Key("game_id").Equal(expression.Value(gameID))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("build reviews query", err)
	}

	reviews := make([]entities.Review, 0)
	paginator := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.gameIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, apperrors.NewDatabaseError("query reviews", err)
		}
		for _, raw := range page.Items {
			var item reviewItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Warn("failed to unmarshal review item", zap.Error(err))
				continue
			}
			reviews = append(reviews, itemToReview(item))
		}
	}
	return reviews, nil
}

func (r *ReviewRepository) key(userID, gameID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"user_id": &types.AttributeValueMemberS{Value: userID},
		"game_id": &types.AttributeValueMemberS{Value: gameID},
	}
}
