// Package dynamodb implements the repository ports on a single DynamoDB
// table. Collections are stored as one snapshot item per user, matching
// the write pattern of the services: every save replaces the whole
// collection.
package dynamodb

import (
	"context"
	"fmt"

	"lifemap-backend/application/ports"
	"lifemap-backend/domain/core/entities"
	"lifemap-backend/domain/core/valueobjects"
	pkgerrors "lifemap-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

const (
	skContacts = "CONTACTS"
	skTimeline = "TIMELINE"
	skProfile  = "PROFILE"
	skInit     = "INIT"
)

func userPK(userID string) string {
	return fmt.Sprintf("USER#%s", userID)
}

// contactItem is the stored shape of one contact inside the snapshot. A
// nil Notes pointer round-trips the absent notes state.
type contactItem struct {
	ID              string  `dynamodbav:"ID"`
	FirstName       string  `dynamodbav:"FirstName"`
	LastName        string  `dynamodbav:"LastName"`
	EmailAddress    string  `dynamodbav:"EmailAddress,omitempty"`
	PhoneNumber     string  `dynamodbav:"PhoneNumber,omitempty"`
	LinkedInProfile string  `dynamodbav:"LinkedInProfile,omitempty"`
	DateAdded       string  `dynamodbav:"DateAdded,omitempty"`
	DateEdited      string  `dynamodbav:"DateEdited,omitempty"`
	Source          string  `dynamodbav:"Source,omitempty"`
	Notes           *string `dynamodbav:"Notes,omitempty"`
}

// contactSnapshotItem is the single item holding a user's whole collection
type contactSnapshotItem struct {
	PK       string        `dynamodbav:"PK"`
	SK       string        `dynamodbav:"SK"`
	Contacts []contactItem `dynamodbav:"Contacts"`
}

// ContactRepository implements ports.ContactRepository on DynamoDB
type ContactRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.ContactRepository {
	return &ContactRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// LoadContacts returns the stored collection, empty when the user has none
func (r *ContactRepository) LoadContacts(ctx context.Context, userID string) ([]*entities.Contact, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(userID)},
			"SK": &types.AttributeValueMemberS{Value: skContacts},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("load contacts", err)
	}
	if out.Item == nil {
		return []*entities.Contact{}, nil
	}

	var snapshot contactSnapshotItem
	if err := attributevalue.UnmarshalMap(out.Item, &snapshot); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal contacts", err)
	}

	contacts := make([]*entities.Contact, 0, len(snapshot.Contacts))
	for _, item := range snapshot.Contacts {
		id, err := valueobjects.NewContactIDFromString(item.ID)
		if err != nil {
			r.logger.Warn("Skipping stored contact with invalid id",
				zap.String("userID", userID),
				zap.String("contactID", item.ID),
			)
			continue
		}
		contacts = append(contacts, entities.ReconstructContact(id, entities.ContactFields{
			FirstName:       item.FirstName,
			LastName:        item.LastName,
			EmailAddress:    item.EmailAddress,
			PhoneNumber:     item.PhoneNumber,
			LinkedInProfile: item.LinkedInProfile,
			DateAdded:       item.DateAdded,
			DateEdited:      item.DateEdited,
			Source:          item.Source,
			Notes:           valueobjects.NotesFromPointer(item.Notes),
		}))
	}
	return contacts, nil
}

// SaveContacts replaces the stored collection with the given one
func (r *ContactRepository) SaveContacts(ctx context.Context, userID string, contacts []*entities.Contact) error {
	items := make([]contactItem, 0, len(contacts))
	for _, c := range contacts {
		items = append(items, contactItem{
			ID:              c.ID().String(),
			FirstName:       c.FirstName(),
			LastName:        c.LastName(),
			EmailAddress:    c.EmailAddress(),
			PhoneNumber:     c.PhoneNumber(),
			LinkedInProfile: c.LinkedInProfile(),
			DateAdded:       c.DateAdded(),
			DateEdited:      c.DateEdited(),
			Source:          c.Source(),
			Notes:           c.Notes().Pointer(),
		})
	}

	av, err := attributevalue.MarshalMap(contactSnapshotItem{
		PK:       userPK(userID),
		SK:       skContacts,
		Contacts: items,
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal contacts", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		return pkgerrors.NewDatabaseError("save contacts", err)
	}
	return nil
}
