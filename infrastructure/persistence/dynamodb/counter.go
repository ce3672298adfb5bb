// Package dynamodb implements the application repositories on DynamoDB.
// Each collection lives in its own table; composite keys match the tables
// the legacy API wrote (Games: game_id + title, Watchlist and Reviews:
// user_id + game_id).
package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	apperrors "gamewatch-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// counterKey is the reserved key under which each table stores its id
// counter item. It sorts outside the numeric id space and is filtered out
// of scans.
const counterKey = "#COUNTER"

// nextCounterValue atomically bumps the counter item of a table and
// returns the new value as a decimal string. This replaces the legacy
// scan-for-max id assignment with a store-native atomic increment, so
// concurrent creates can no longer compute the same id.
func nextCounterValue(ctx context.Context, client *dynamodb.Client, tableName string, key map[string]types.AttributeValue) (string, error) {
	update := expression.Add(expression.Name("next_id"), expression.Value(1))
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return "", apperrors.NewDatabaseError("build counter expression", err)
	}

	out, err := client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(tableName),
		Key:                       key,
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return "", apperrors.NewDatabaseError("increment id counter", err)
	}

	next, ok := out.Attributes["next_id"].(*types.AttributeValueMemberN)
	if !ok {
		return "", apperrors.NewDatabaseError("increment id counter", fmt.Errorf("counter attribute missing from response"))
	}
	if _, err := strconv.ParseInt(next.Value, 10, 64); err != nil {
		return "", apperrors.NewDatabaseError("increment id counter", fmt.Errorf("counter value %q is not an integer", next.Value))
	}
	return next.Value, nil
}

// isConditionalCheckFailed reports whether err is a failed conditional
// write, the signal DynamoDB uses for both duplicate inserts and
// update-if-exists misses.
func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}
