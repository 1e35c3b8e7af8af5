package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"lifemap-backend/application/ports"
	pkgerrors "lifemap-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

func emailPK(email string) string {
	return fmt.Sprintf("EMAIL#%s", email)
}

// userItem stores the credentials record. It is keyed by email so that
// login lookups and the uniqueness check are the same single item.
type userItem struct {
	PK           string `dynamodbav:"PK"`
	SK           string `dynamodbav:"SK"`
	UserID       string `dynamodbav:"UserID"`
	Email        string `dynamodbav:"Email"`
	PasswordHash string `dynamodbav:"PasswordHash"`
	DisplayName  string `dynamodbav:"DisplayName,omitempty"`
	CreatedAt    string `dynamodbav:"CreatedAt"`
}

// UserRepository implements ports.UserRepository on DynamoDB
type UserRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.UserRepository {
	return &UserRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// CreateUser stores a new user. The conditional put makes the email the
// uniqueness boundary.
func (r *UserRepository) CreateUser(ctx context.Context, user *ports.User) error {
	av, err := attributevalue.MarshalMap(userItem{
		PK:           emailPK(user.Email),
		SK:           skProfile,
		UserID:       user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		DisplayName:  user.DisplayName,
		CreatedAt:    user.CreatedAt,
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal user", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return pkgerrors.NewConflictError("email already registered")
		}
		return pkgerrors.NewDatabaseError("create user", err)
	}
	return nil
}

// GetUserByEmail returns the user or a not-found error
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*ports.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: emailPK(email)},
			"SK": &types.AttributeValueMemberS{Value: skProfile},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get user", err)
	}
	if out.Item == nil {
		return nil, pkgerrors.NewNotFoundError("user")
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal user", err)
	}

	return &ports.User{
		ID:           item.UserID,
		Email:        item.Email,
		PasswordHash: item.PasswordHash,
		DisplayName:  item.DisplayName,
		CreatedAt:    item.CreatedAt,
	}, nil
}

// EnsureInitialized writes the one-time marker for the user. The first
// write reports true; every later call finds the marker and reports false.
func (r *UserRepository) EnsureInitialized(ctx context.Context, userID string) (bool, error) {
	_, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(userID)},
			"SK": &types.AttributeValueMemberS{Value: skInit},
		},
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return false, nil
		}
		return false, pkgerrors.NewDatabaseError("ensure initialized", err)
	}
	return true, nil
}
