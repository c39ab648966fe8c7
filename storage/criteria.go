package storage

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/codebreakerd260/SIH2k25-Prod/logging"
)

type CriterionStorage interface {
	Get(ctx context.Context, key string) (*JudgingCriterion, error)
	GetAll(ctx context.Context) ([]*JudgingCriterion, error)
	Create(ctx context.Context, criterion *JudgingCriterion) error
	Update(ctx context.Context, criterion *JudgingCriterion) error
	Delete(ctx context.Context, key string) error
}

type DynamoCriterionStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoCriterionStorage) Get(ctx context.Context, criterionKey string) (*JudgingCriterion, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": criterionKey})
	if err != nil {
		logging.Log.Errorf("CRITERION: failed to marshal key %s: %v", criterionKey, err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("CRITERION: GetItem for %s failed: %v", criterionKey, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, nil
	}

	var c JudgingCriterion
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		logging.Log.Errorf("CRITERION: failed to unmarshal criterion: %v", err)
		return nil, err
	}
	return &c, nil
}

func (s *DynamoCriterionStorage) GetAll(ctx context.Context) ([]*JudgingCriterion, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("CRITERION: scan failed: %v", err)
		return nil, err
	}

	var criteria []*JudgingCriterion
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &criteria); err != nil {
		logging.Log.Errorf("CRITERION: failed to unmarshal criterion list: %v", err)
		return nil, err
	}
	return criteria, nil
}

func (s *DynamoCriterionStorage) Create(ctx context.Context, criterion *JudgingCriterion) error {
	item, err := attributevalue.MarshalMap(criterion)
	if err != nil {
		logging.Log.Errorf("CRITERION: failed to marshal criterion: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			logging.Log.Warnf("CRITERION: key %s already exists", criterion.Key)
			return ErrItemAlreadyExists
		}
		logging.Log.Errorf("CRITERION: failed to create criterion: %v", err)
		return err
	}
	return nil
}

func (s *DynamoCriterionStorage) Update(ctx context.Context, criterion *JudgingCriterion) error {
	item, err := attributevalue.MarshalMap(criterion)
	if err != nil {
		logging.Log.Errorf("CRITERION: failed to marshal updated criterion: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	})
	if err != nil {
		logging.Log.Errorf("CRITERION: failed to update criterion %s: %v", criterion.Key, err)
		return err
	}
	return nil
}

func (s *DynamoCriterionStorage) Delete(ctx context.Context, criterionKey string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": criterionKey})
	if err != nil {
		logging.Log.Errorf("CRITERION: failed to marshal delete key %s: %v", criterionKey, err)
		return err
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("CRITERION: failed to delete criterion %s: %v", criterionKey, err)
		return err
	}
	logging.Log.Infof("CRITERION: deleted criterion %s", criterionKey)
	return nil
}
