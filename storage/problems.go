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

type ProblemStorage interface {
	Get(ctx context.Context, sNo int) (*ProblemStatement, error)
	GetAll(ctx context.Context) ([]*ProblemStatement, error)
	Create(ctx context.Context, problem *ProblemStatement) error
	Update(ctx context.Context, problem *ProblemStatement) error
	Delete(ctx context.Context, sNo int) error
}

type DynamoProblemStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoProblemStorage) Get(ctx context.Context, sNo int) (*ProblemStatement, error) {
	key, err := attributevalue.MarshalMap(map[string]int{"PK": sNo})
	if err != nil {
		logging.Log.Errorf("PROBLEM: failed to marshal key for sNo %d: %v", sNo, err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("PROBLEM: GetItem for sNo %d failed: %v", sNo, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, nil
	}

	var p ProblemStatement
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		logging.Log.Errorf("PROBLEM: failed to unmarshal problem statement: %v", err)
		return nil, err
	}
	return &p, nil
}

func (s *DynamoProblemStorage) GetAll(ctx context.Context) ([]*ProblemStatement, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("PROBLEM: scan failed: %v", err)
		return nil, err
	}

	var problems []*ProblemStatement
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &problems); err != nil {
		logging.Log.Errorf("PROBLEM: failed to unmarshal problem list: %v", err)
		return nil, err
	}
	return problems, nil
}

func (s *DynamoProblemStorage) Create(ctx context.Context, problem *ProblemStatement) error {
	item, err := attributevalue.MarshalMap(problem)
	if err != nil {
		logging.Log.Errorf("PROBLEM: failed to marshal problem statement: %v", err)
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
			logging.Log.Warnf("PROBLEM: sNo %d already exists", problem.SNo)
			return ErrItemAlreadyExists
		}
		logging.Log.Errorf("PROBLEM: failed to create problem statement: %v", err)
		return err
	}
	return nil
}

func (s *DynamoProblemStorage) Update(ctx context.Context, problem *ProblemStatement) error {
	item, err := attributevalue.MarshalMap(problem)
	if err != nil {
		logging.Log.Errorf("PROBLEM: failed to marshal updated problem statement: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	})
	if err != nil {
		logging.Log.Errorf("PROBLEM: failed to update problem %d: %v", problem.SNo, err)
		return err
	}
	return nil
}

func (s *DynamoProblemStorage) Delete(ctx context.Context, sNo int) error {
	key, err := attributevalue.MarshalMap(map[string]int{"PK": sNo})
	if err != nil {
		logging.Log.Errorf("PROBLEM: failed to marshal delete key for sNo %d: %v", sNo, err)
		return err
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("PROBLEM: failed to delete problem %d: %v", sNo, err)
		return err
	}
	logging.Log.Infof("PROBLEM: deleted problem %d", sNo)
	return nil
}
