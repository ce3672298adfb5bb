package dynamodb

import (
	"testing"

	"gamewatch-backend/domain/core/entities"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Rows written by the legacy API must keep unmarshalling, so the
// persisted attribute names are part of the storage contract.
func TestUserItemAttributeNames(t *testing.T) {
	av, err := attributevalue.MarshalMap(userToItem(&entities.User{
		UserID:       "7",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "d74ff0ee8da3b9806b18c877dbf29bbde50b5bd8e4dad7a3a725000feb82e8f1",
		IsAdmin:      false,
		CreatedAt:    "2024-05-01T10:00:00Z",
	}))
	require.NoError(t, err)

	for _, name := range []string{"user_id", "username", "email", "password_hash", "is_admin", "created_at"} {
		assert.Contains(t, av, name)
	}

	hash, ok := av["password_hash"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "d74ff0ee8da3b9806b18c877dbf29bbde50b5bd8e4dad7a3a725000feb82e8f1", hash.Value)
}

func TestUserItemRoundTrip(t *testing.T) {
	in := entities.User{
		UserID:       "3",
		Username:     "bob",
		Email:        "bob@example.com",
		PasswordHash: "abc123",
		IsAdmin:      true,
		CreatedAt:    "2024-06-02T09:30:00Z",
	}

	av, err := attributevalue.MarshalMap(userToItem(&in))
	require.NoError(t, err)

	var item userItem
	require.NoError(t, attributevalue.UnmarshalMap(av, &item))
	assert.Equal(t, in, itemToUser(item))
}
