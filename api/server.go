package api

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/codebreakerd260/SIH2k25-Prod/api/controllers"
	"github.com/codebreakerd260/SIH2k25-Prod/api/transport"
	"github.com/codebreakerd260/SIH2k25-Prod/logging"
	"github.com/codebreakerd260/SIH2k25-Prod/storage"
	"github.com/gin-gonic/gin"
)

type Server struct {
	config *Config
}

func NewServer(config *Config) *Server {
	return &Server{
		config: config,
	}
}

func (s *Server) Start() {
	r := transport.NewRouter(gin.DebugMode)

	// Create storage
	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logging.Log.Errorf("failed to load AWS config: %v", err)
		panic("failed to load AWS config")
	}

	dynamoClient := dynamodb.NewFromConfig(cfg)

	userStorage := &storage.DynamoUserStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameUsers,
	}
	teamStorage := &storage.DynamoTeamStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameTeams,
	}
	roundStorage := &storage.DynamoRoundStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameRounds,
	}
	submissionStorage := &storage.DynamoSubmissionStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameSubmissions,
	}
	scoreStorage := &storage.DynamoScoreStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameScores,
	}
	criterionStorage := &storage.DynamoCriterionStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameCriteria,
	}
	problemStorage := &storage.DynamoProblemStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameProblems,
	}

	//Register controllers
	authController := controllers.NewAuthController(userStorage, teamStorage)
	authController.RegisterRoutes(r)
	teamController := controllers.NewTeamController(teamStorage)
	teamController.RegisterRoutes(r)
	roundController := controllers.NewRoundController(roundStorage)
	roundController.RegisterRoutes(r)
	criteriaController := controllers.NewCriteriaController(criterionStorage)
	criteriaController.RegisterRoutes(r)
	problemController := controllers.NewProblemController(problemStorage)
	problemController.RegisterRoutes(r)
	submissionController := controllers.NewSubmissionController(submissionStorage, roundStorage)
	submissionController.RegisterRoutes(r)
	scoreController := controllers.NewScoreController(scoreStorage, teamStorage)
	scoreController.RegisterRoutes(r)
	leaderboardController := controllers.NewLeaderboardController(teamStorage, scoreStorage, submissionStorage)
	leaderboardController.RegisterRoutes(r)

	//Do not run lambda helper locally
	if os.Getenv("APP_ENV") == "local" {
		startLocal(r, s.config.Port)
	} else {
		startLambda(r)
	}
}

// StartLambda sets up for AWS Lambda
func startLambda(engine *gin.Engine) {
	ginLambda := ginadapter.NewV2(engine)

	handler := func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		logging.Log.Infof("Lambda handler triggered on path: %s", req.RawPath)
		return ginLambda.ProxyWithContext(ctx, req)
	}

	logging.Log.Info("Starting lambda")
	lambda.Start(handler)
}

// StartLocal starts a normal HTTP server on the configured port
func startLocal(engine *gin.Engine, port int) {
	logging.Log.Info(fmt.Sprintf("Starting server on http://localhost:%d", port))

	if err := engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		logging.Log.Fatalf("Failed to run server: %v", err)
	}
}
