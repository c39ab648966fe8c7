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

type RoundStorage interface {
	Get(ctx context.Context, round int) (*Round, error)
	GetAll(ctx context.Context) ([]*Round, error)
	Create(ctx context.Context, round *Round) error
	Update(ctx context.Context, round *Round) error
	Delete(ctx context.Context, round int) error
}

type DynamoRoundStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoRoundStorage) Get(ctx context.Context, round int) (*Round, error) {
	key, err := attributevalue.MarshalMap(map[string]int{"PK": round})
	if err != nil {
		logging.Log.Errorf("ROUND: failed to marshal key for round %d: %v", round, err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("ROUND: GetItem for round %d failed: %v", round, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, nil
	}

	var r Round
	if err := attributevalue.UnmarshalMap(out.Item, &r); err != nil {
		logging.Log.Errorf("ROUND: failed to unmarshal round: %v", err)
		return nil, err
	}
	return &r, nil
}

func (s *DynamoRoundStorage) GetAll(ctx context.Context) ([]*Round, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("ROUND: scan failed: %v", err)
		return nil, err
	}

	var rounds []*Round
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &rounds); err != nil {
		logging.Log.Errorf("ROUND: failed to unmarshal round list: %v", err)
		return nil, err
	}
	return rounds, nil
}

func (s *DynamoRoundStorage) Create(ctx context.Context, round *Round) error {
	item, err := attributevalue.MarshalMap(round)
	if err != nil {
		logging.Log.Errorf("ROUND: failed to marshal round: %v", err)
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
			logging.Log.Warnf("ROUND: round %d already exists", round.Round)
			return ErrItemAlreadyExists
		}
		logging.Log.Errorf("ROUND: failed to create round: %v", err)
		return err
	}
	return nil
}

func (s *DynamoRoundStorage) Update(ctx context.Context, round *Round) error {
	item, err := attributevalue.MarshalMap(round)
	if err != nil {
		logging.Log.Errorf("ROUND: failed to marshal updated round: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	})
	if err != nil {
		logging.Log.Errorf("ROUND: failed to update round %d: %v", round.Round, err)
		return err
	}
	return nil
}

func (s *DynamoRoundStorage) Delete(ctx context.Context, round int) error {
	key, err := attributevalue.MarshalMap(map[string]int{"PK": round})
	if err != nil {
		logging.Log.Errorf("ROUND: failed to marshal delete key for round %d: %v", round, err)
		return err
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("ROUND: failed to delete round %d: %v", round, err)
		return err
	}
	logging.Log.Infof("ROUND: deleted round %d", round)
	return nil
}
