package storage

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/codebreakerd260/SIH2k25-Prod/logging"
)

type SubmissionStorage interface {
	Get(ctx context.Context, teamCode string, round int) (*Submission, error)
	GetAll(ctx context.Context) ([]*Submission, error)
	GetByTeam(ctx context.Context, teamCode string) ([]*Submission, error)
	Create(ctx context.Context, submission *Submission) error
	UpdateStatus(ctx context.Context, teamCode string, round int, status string) error
}

type DynamoSubmissionStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoSubmissionStorage) Get(ctx context.Context, teamCode string, round int) (*Submission, error) {
	key, err := attributevalue.MarshalMap(map[string]interface{}{"PK": teamCode, "SK": round})
	if err != nil {
		logging.Log.Errorf("SUBMISSION: failed to marshal key for %s round %d: %v", teamCode, round, err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("SUBMISSION: GetItem for %s round %d failed: %v", teamCode, round, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, nil
	}

	var sub Submission
	if err := attributevalue.UnmarshalMap(out.Item, &sub); err != nil {
		logging.Log.Errorf("SUBMISSION: failed to unmarshal submission: %v", err)
		return nil, err
	}
	return &sub, nil
}

func (s *DynamoSubmissionStorage) GetAll(ctx context.Context) ([]*Submission, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("SUBMISSION: scan failed: %v", err)
		return nil, err
	}

	var subs []*Submission
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &subs); err != nil {
		logging.Log.Errorf("SUBMISSION: failed to unmarshal submission list: %v", err)
		return nil, err
	}
	return subs, nil
}

func (s *DynamoSubmissionStorage) GetByTeam(ctx context.Context, teamCode string) ([]*Submission, error) {
	input := &dynamodb.QueryInput{
		TableName:              &s.TableName,
		KeyConditionExpression: aws.String("PK = :teamCode"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":teamCode": &types.AttributeValueMemberS{Value: teamCode},
		},
	}

	output, err := s.Client.Query(ctx, input)
	if err != nil {
		logging.Log.Errorf("SUBMISSION: failed to query submissions for team %s: %v", teamCode, err)
		return nil, err
	}

	var subs []*Submission
	if err := attributevalue.UnmarshalListOfMaps(output.Items, &subs); err != nil {
		logging.Log.Errorf("SUBMISSION: failed to unmarshal submissions for team %s: %v", teamCode, err)
		return nil, err
	}
	return subs, nil
}

// Create enforces at most one submission per (team, round) via the
// conditional expression on both key attributes.
func (s *DynamoSubmissionStorage) Create(ctx context.Context, submission *Submission) error {
	now := time.Now().UTC()
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = now
	}
	submission.UpdatedAt = now

	item, err := attributevalue.MarshalMap(submission)
	if err != nil {
		logging.Log.Errorf("SUBMISSION: failed to marshal submission: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			logging.Log.Warnf("SUBMISSION: team %s already submitted for round %d", submission.TeamCode, submission.Round)
			return ErrItemAlreadyExists
		}
		logging.Log.Errorf("SUBMISSION: failed to create submission: %v", err)
		return err
	}
	return nil
}

func (s *DynamoSubmissionStorage) UpdateStatus(ctx context.Context, teamCode string, round int, status string) error {
	roundAV, err := attributevalue.Marshal(round)
	if err != nil {
		logging.Log.Errorf("SUBMISSION: failed to marshal round %d: %v", round, err)
		return err
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.TableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: teamCode},
			"SK": roundAV,
		},
		UpdateExpression:    aws.String("SET #status = :status, UpdatedAt = :now"),
		ConditionExpression: aws.String("attribute_exists(PK)"),
		ExpressionAttributeNames: map[string]string{
			"#status": "Status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: status},
			":now":    &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
	}
	_, err = s.Client.UpdateItem(ctx, input)
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			return ErrNotFound
		}
		logging.Log.Errorf("SUBMISSION: failed to update status for %s round %d: %v", teamCode, round, err)
		return err
	}
	return nil
}
