package storage

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/codebreakerd260/SIH2k25-Prod/logging"
)

type ScoreStorage interface {
	Get(ctx context.Context, teamCode string, round int) (*Score, error)
	GetAll(ctx context.Context) ([]*Score, error)
	GetByTeam(ctx context.Context, teamCode string) ([]*Score, error)
	Create(ctx context.Context, score *Score) error
	Update(ctx context.Context, score *Score, expectedVersion int64) error
}

type DynamoScoreStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoScoreStorage) Get(ctx context.Context, teamCode string, round int) (*Score, error) {
	key, err := attributevalue.MarshalMap(map[string]interface{}{"PK": teamCode, "SK": round})
	if err != nil {
		logging.Log.Errorf("SCORE: failed to marshal key for %s round %d: %v", teamCode, round, err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("SCORE: GetItem for %s round %d failed: %v", teamCode, round, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, nil
	}

	var score Score
	if err := attributevalue.UnmarshalMap(out.Item, &score); err != nil {
		logging.Log.Errorf("SCORE: failed to unmarshal score: %v", err)
		return nil, err
	}
	return &score, nil
}

func (s *DynamoScoreStorage) GetAll(ctx context.Context) ([]*Score, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("SCORE: scan failed: %v", err)
		return nil, err
	}

	var scores []*Score
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &scores); err != nil {
		logging.Log.Errorf("SCORE: failed to unmarshal score list: %v", err)
		return nil, err
	}
	return scores, nil
}

func (s *DynamoScoreStorage) GetByTeam(ctx context.Context, teamCode string) ([]*Score, error) {
	input := &dynamodb.QueryInput{
		TableName:              &s.TableName,
		KeyConditionExpression: aws.String("PK = :teamCode"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":teamCode": &types.AttributeValueMemberS{Value: teamCode},
		},
	}

	output, err := s.Client.Query(ctx, input)
	if err != nil {
		logging.Log.Errorf("SCORE: failed to query scores for team %s: %v", teamCode, err)
		return nil, err
	}

	var scores []*Score
	if err := attributevalue.UnmarshalListOfMaps(output.Items, &scores); err != nil {
		logging.Log.Errorf("SCORE: failed to unmarshal scores for team %s: %v", teamCode, err)
		return nil, err
	}
	return scores, nil
}

// Create writes the first Score document for a (team, round) pair. A
// concurrent creator loses with ErrItemAlreadyExists and must re-read.
func (s *DynamoScoreStorage) Create(ctx context.Context, score *Score) error {
	now := time.Now().UTC()
	if score.CreatedAt.IsZero() {
		score.CreatedAt = now
	}
	score.UpdatedAt = now
	score.Version = 1

	item, err := attributevalue.MarshalMap(score)
	if err != nil {
		logging.Log.Errorf("SCORE: failed to marshal score: %v", err)
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
			return ErrItemAlreadyExists
		}
		logging.Log.Errorf("SCORE: failed to create score: %v", err)
		return err
	}
	return nil
}

// Update replaces the whole document but only when the stored version still
// matches expectedVersion. Two mentors racing on the same document cannot
// both win, so the find-entry-or-append sequence never produces duplicates;
// the loser gets ErrVersionConflict and retries on fresh state.
func (s *DynamoScoreStorage) Update(ctx context.Context, score *Score, expectedVersion int64) error {
	score.UpdatedAt = time.Now().UTC()
	score.Version = expectedVersion + 1

	item, err := attributevalue.MarshalMap(score)
	if err != nil {
		logging.Log.Errorf("SCORE: failed to marshal updated score: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("Version = :expected"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(expectedVersion, 10)},
		},
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			logging.Log.Warnf("SCORE: version conflict for %s round %d (expected %d)", score.TeamCode, score.Round, expectedVersion)
			return ErrVersionConflict
		}
		logging.Log.Errorf("SCORE: failed to update score: %v", err)
		return err
	}
	return nil
}
