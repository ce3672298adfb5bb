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

// UserRepository implements ports.UserRepository on the Users table,
// keyed by user_id alone.
type UserRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.UserRepository {
	return &UserRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

type userItem struct {
	UserID       string `dynamodbav:"user_id"`
	Username     string `dynamodbav:"username"`
	Email        string `dynamodbav:"email"`
	PasswordHash string `dynamodbav:"password_hash"`
	IsAdmin      bool   `dynamodbav:"is_admin"`
	CreatedAt    string `dynamodbav:"created_at"`
}

func userToItem(u *entities.User) userItem {
	return userItem{
		UserID:       u.UserID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IsAdmin:      u.IsAdmin,
		CreatedAt:    u.CreatedAt,
	}
}

func itemToUser(item userItem) entities.User {
	return entities.User{
		UserID:       item.UserID,
		Username:     item.Username,
		Email:        item.Email,
		PasswordHash: item.PasswordHash,
		IsAdmin:      item.IsAdmin,
		CreatedAt:    item.CreatedAt,
	}
}

// NextID returns the next user id from the table's counter item.
func (r *UserRepository) NextID(ctx context.Context) (string, error) {
	key := map[string]types.AttributeValue{
		"user_id": &types.AttributeValueMemberS{Value: counterKey},
	}
	return nextCounterValue(ctx, r.client, r.tableName, key)
}

// Create inserts a user, failing with Conflict on an existing id.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	av, err := attributevalue.MarshalMap(userToItem(user))
	if err != nil {
		return apperrors.NewDatabaseError("marshal user", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(user_id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return apperrors.NewConflictError("a user with this id already exists")
		}
		return apperrors.NewDatabaseError("put user", err)
	}

	r.logger.Debug("user saved", zap.String("userID", user.UserID))
	return nil
}

// GetByID fetches a user by its primary key.
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*entities.User, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("get user", err)
	}
	if result.Item == nil {
		return nil, apperrors.NewNotFoundError("user")
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, apperrors.NewDatabaseError("unmarshal user", err)
	}
	user := itemToUser(item)
	return &user, nil
}

// FindByEmail scans for a matching email attribute. Email is not part of
// any key, so a filtered scan is the only lookup available.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	filter := expression.Name("email").Equal(expression.Value(email))
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("build user scan", err)
	}

	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName:                 aws.String(r.tableName),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, apperrors.NewDatabaseError("scan users", err)
		}
		if len(page.Items) == 0 {
			continue
		}
		var item userItem
		if err := attributevalue.UnmarshalMap(page.Items[0], &item); err != nil {
			return nil, apperrors.NewDatabaseError("unmarshal user", err)
		}
		user := itemToUser(item)
		return &user, nil
	}
	return nil, apperrors.NewNotFoundError("user")
}
