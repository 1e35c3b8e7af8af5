package dynamodb

import (
	"context"

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

// timelineItem is the stored shape of one timeline event
type timelineItem struct {
	ID                string `dynamodbav:"ID"`
	MonthYear         string `dynamodbav:"MonthYear"`
	ProfessionalEvent string `dynamodbav:"ProfessionalEvent,omitempty"`
	PersonalEvent     string `dynamodbav:"PersonalEvent,omitempty"`
	GeographicEvent   string `dynamodbav:"GeographicEvent,omitempty"`
}

// timelineSnapshotItem is the single item holding a user's whole timeline
type timelineSnapshotItem struct {
	PK     string         `dynamodbav:"PK"`
	SK     string         `dynamodbav:"SK"`
	Events []timelineItem `dynamodbav:"Events"`
}

// TimelineRepository implements ports.TimelineRepository on DynamoDB
type TimelineRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewTimelineRepository creates a new TimelineRepository
func NewTimelineRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.TimelineRepository {
	return &TimelineRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// LoadEvents returns the stored timeline, empty when the user has none
func (r *TimelineRepository) LoadEvents(ctx context.Context, userID string) ([]*entities.TimelineEvent, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(userID)},
			"SK": &types.AttributeValueMemberS{Value: skTimeline},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("load timeline", err)
	}
	if out.Item == nil {
		return []*entities.TimelineEvent{}, nil
	}

	var snapshot timelineSnapshotItem
	if err := attributevalue.UnmarshalMap(out.Item, &snapshot); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal timeline", err)
	}

	events := make([]*entities.TimelineEvent, 0, len(snapshot.Events))
	for _, item := range snapshot.Events {
		monthYear, err := valueobjects.ParseMonthYear(item.MonthYear)
		if err != nil {
			r.logger.Warn("Skipping stored event with invalid month",
				zap.String("userID", userID),
				zap.String("eventID", item.ID),
				zap.String("monthYear", item.MonthYear),
			)
			continue
		}
		events = append(events, entities.ReconstructTimelineEvent(
			item.ID,
			monthYear,
			item.ProfessionalEvent,
			item.PersonalEvent,
			item.GeographicEvent,
		))
	}
	return events, nil
}

// SaveEvents replaces the stored timeline with the given one
func (r *TimelineRepository) SaveEvents(ctx context.Context, userID string, events []*entities.TimelineEvent) error {
	items := make([]timelineItem, 0, len(events))
	for _, e := range events {
		items = append(items, timelineItem{
			ID:                e.ID(),
			MonthYear:         e.MonthYear().String(),
			ProfessionalEvent: e.ProfessionalEvent(),
			PersonalEvent:     e.PersonalEvent(),
			GeographicEvent:   e.GeographicEvent(),
		})
	}

	av, err := attributevalue.MarshalMap(timelineSnapshotItem{
		PK:     userPK(userID),
		SK:     skTimeline,
		Events: items,
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal timeline", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		return pkgerrors.NewDatabaseError("save timeline", err)
	}
	return nil
}
