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

// WatchlistRepository implements ports.WatchlistRepository on the
// Watchlist table, keyed by user_id (partition) and game_id (sort).
type WatchlistRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewWatchlistRepository creates a new WatchlistRepository.
func NewWatchlistRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.WatchlistRepository {
	return &WatchlistRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

type watchlistItem struct {
	UserID   string  `dynamodbav:"user_id"`
	GameID   string  `dynamodbav:"game_id"`
	Status   string  `dynamodbav:"status"`
	Playtime float64 `dynamodbav:"playtime"`
	AddedAt  string  `dynamodbav:"added_at"`
}

func itemToEntry(item watchlistItem) entities.WatchlistEntry {
	return entities.WatchlistEntry{
		UserID:   item.UserID,
		GameID:   item.GameID,
		Status:   entities.WatchStatus(item.Status),
		Playtime: item.Playtime,
		AddedAt:  item.AddedAt,
	}
}

// Add inserts an entry, failing with Conflict when the (user, game) pair
// already exists.
func (r *WatchlistRepository) Add(ctx context.Context, entry *entities.WatchlistEntry) error {
	av, err := attributevalue.MarshalMap(watchlistItem{
		UserID:   entry.UserID,
		GameID:   entry.GameID,
		Status:   string(entry.Status),
		Playtime: entry.Playtime,
		AddedAt:  entry.AddedAt,
	})
	if err != nil {
		return apperrors.NewDatabaseError("marshal watchlist entry", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(user_id) AND attribute_not_exists(game_id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return apperrors.NewConflictError("game is already on the watchlist")
		}
		return apperrors.NewDatabaseError("put watchlist entry", err)
	}
	return nil
}

// ListByUser queries all entries under a user's partition.
func (r *WatchlistRepository) ListByUser(ctx context.Context, userID string) ([]entities.WatchlistEntry, error) {
	keyCond := expression.Key("user_id").Equal(expression.Value(userID))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("build watchlist query", err)
	}

	entries := make([]entities.WatchlistEntry, 0)
	paginator := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, apperrors.NewDatabaseError("query watchlist", err)
		}
		for _, raw := range page.Items {
			var item watchlistItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Warn("failed to unmarshal watchlist item", zap.Error(err))
				continue
			}
			entries = append(entries, itemToEntry(item))
		}
	}
	return entries, nil
}

// Remove deletes the entry; removing an absent entry is not an error.
func (r *WatchlistRepository) Remove(ctx context.Context, userID, gameID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       r.key(userID, gameID),
	})
	if err != nil {
		return apperrors.NewDatabaseError("delete watchlist entry", err)
	}
	return nil
}

// UpdateStatus sets the status on an existing entry and returns the
// stored row; a missing entry is NotFound rather than silently created.
func (r *WatchlistRepository) UpdateStatus(ctx context.Context, userID, gameID string, status entities.WatchStatus) (*entities.WatchlistEntry, error) {
	update := expression.Set(expression.Name("status"), expression.Value(string(status)))
	cond := expression.AttributeExists(expression.Name("user_id"))
	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("build status update", err)
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       r.key(userID, gameID),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, apperrors.NewNotFoundError("watchlist entry")
		}
		return nil, apperrors.NewDatabaseError("update watchlist status", err)
	}

	var item watchlistItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &item); err != nil {
		return nil, apperrors.NewDatabaseError("unmarshal watchlist entry", err)
	}
	entry := itemToEntry(item)
	return &entry, nil
}

// UpdatePlaytime sets the playtime unconditionally. DynamoDB upserts the
// row when it is absent, which produces a partial entry with only the key
// and playtime attributes; that quirk is part of the documented contract.
func (r *WatchlistRepository) UpdatePlaytime(ctx context.Context, userID, gameID string, playtime float64) (float64, error) {
	update := expression.Set(expression.Name("playtime"), expression.Value(playtime))
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return 0, apperrors.NewDatabaseError("build playtime update", err)
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       r.key(userID, gameID),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, apperrors.NewDatabaseError("update watchlist playtime", err)
	}

	var stored struct {
		Playtime float64 `dynamodbav:"playtime"`
	}
	if err := attributevalue.UnmarshalMap(out.Attributes, &stored); err != nil {
		return 0, apperrors.NewDatabaseError("unmarshal playtime", err)
	}
	return stored.Playtime, nil
}

func (r *WatchlistRepository) key(userID, gameID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"user_id": &types.AttributeValueMemberS{Value: userID},
		"game_id": &types.AttributeValueMemberS{Value: gameID},
	}
}
