package controllers

import (
	"context"
	"testing"

	"github.com/codebreakerd260/SIH2k25-Prod/auth"
	"github.com/codebreakerd260/SIH2k25-Prod/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"
)

// Tests run against localstack DynamoDB on the default port with pre-created
// tables: Users, Teams, Rounds, Submissions, Scores, Criteria, Problems.

//nolint:staticcheck
func localstackClient(t *testing.T) *dynamodb.Client {
	t.Helper()
	logging.Log = logrus.New()
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("us-east-1"),
		config.WithEndpointResolverWithOptions(
			aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{URL: "http://localhost:4566", HostnameImmutable: true}, nil
			}),
		),
	)
	if err != nil {
		t.Fatalf("failed to load AWS config: %v", err)
	}

	return dynamodb.NewFromConfig(cfg)
}

func cleanupTable(t *testing.T, client *dynamodb.Client, tableName string) {
	t.Helper()

	out, err := client.Scan(context.TODO(), &dynamodb.ScanInput{
		TableName: aws.String(tableName),
	})
	if err != nil {
		t.Fatalf("cleanup failed to scan %s: %v", tableName, err)
	}

	for _, item := range out.Items {
		key := make(map[string]types.AttributeValue)

		if pk, ok := item["PK"]; ok {
			key["PK"] = pk
		}
		if sk, ok := item["SK"]; ok {
			key["SK"] = sk
		}

		_, err := client.DeleteItem(context.TODO(), &dynamodb.DeleteItemInput{
			TableName: aws.String(tableName),
			Key:       key,
		})
		if err != nil {
			t.Fatalf("cleanup failed to delete item from %s: %v", tableName, err)
		}
	}
}

func bearerToken(t *testing.T, userID, email, role, teamCode string) map[string]string {
	t.Helper()

	token, err := auth.GenerateToken(userID, email, role, teamCode)
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + token}
}
