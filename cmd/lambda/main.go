package main

import (
	"context"
	"log"
	"time"

	"neptune-lambda/infrastructure/config"
	"neptune-lambda/infrastructure/di"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"go.uber.org/zap"
)

// Global variables for Lambda lifecycle management
var (
	// chiLambda wraps the Chi router for API Gateway REST proxy events
	chiLambda *chiadapter.ChiLambda

	// container holds the dependency injection container
	container *di.Container

	// coldStart tracks whether this is a cold start invocation
	coldStart = true

	// coldStartTime records when the cold start began
	coldStartTime time.Time
)

// init runs during cold start. NEPTUNE_ENDPOINT is read here, once, and
// handed to the client constructor.
func init() {
	coldStartTime = time.Now()

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err = di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	chiLambda = chiadapter.New(container.Router)

	container.Logger.Info("Lambda cold start completed",
		zap.Duration("duration", time.Since(coldStartTime)),
		zap.String("function", cfg.LambdaFunctionName),
		zap.Bool("is_lambda", cfg.IsLambda),
		zap.String("neptune_url", container.NeptuneClient.URL()),
		zap.Bool("iam_auth", cfg.NeptuneIAMAuth),
	)
}

// Handler is the Lambda function handler
func Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	resp, err := chiLambda.ProxyWithContext(ctx, req)

	container.Logger.Info("Lambda response",
		zap.String("method", req.HTTPMethod),
		zap.String("path", req.Path),
		zap.String("request_id", req.RequestContext.RequestID),
		zap.String("stage", req.RequestContext.Stage),
		zap.Int("status_code", resp.StatusCode),
		zap.Bool("cold_start", coldStart),
	)
	coldStart = false

	if err != nil {
		container.Logger.Error("Lambda proxy failed", zap.Error(err))
	}

	return resp, err
}

// main is the entry point for the Lambda function
func main() {
	defer func() { _ = container.Logger.Sync() }()

	lambda.Start(Handler)
}
