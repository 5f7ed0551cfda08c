package di

import (
	"context"
	"net/http"

	"neptune-lambda/application/services"
	"neptune-lambda/infrastructure/config"
	"neptune-lambda/infrastructure/neptune"
	"neptune-lambda/interfaces/http/rest"
	"neptune-lambda/interfaces/http/rest/handlers"
	"neptune-lambda/pkg/observability"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/go-chi/chi/v5"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "neptune-lambda"

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.With(zap.String("service", serviceName)), nil
}

// ProvideTracer creates the X-Ray tracer, inert unless tracing is enabled
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer(serviceName, cfg.EnableTracing)
}

// ProvideMetrics creates metrics instance, nil when metrics are disabled
func ProvideMetrics(cfg *config.Config) *observability.Metrics {
	if !cfg.EnableMetrics {
		return nil
	}
	return observability.NewMetrics("neptune_lambda")
}

// ProvideHTTPClient creates the outbound client used for Neptune queries
func ProvideHTTPClient(tracer *observability.Tracer) *http.Client {
	return tracer.InstrumentClient(&http.Client{})
}

// ProvideSigner returns a SigV4 signer when IAM database auth is enabled
func ProvideSigner(ctx context.Context, cfg *config.Config) (neptune.RequestSigner, error) {
	if !cfg.NeptuneIAMAuth {
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, err
	}

	return neptune.NewSigV4Signer(awsCfg.Credentials, awsCfg.Region), nil
}

// ProvideBreaker creates the query circuit breaker when enabled
func ProvideBreaker(cfg *config.Config, logger *zap.Logger) *gobreaker.CircuitBreaker {
	if !cfg.EnableCircuitBreaker {
		return nil
	}
	return neptune.NewBreaker(neptune.DefaultBreakerConfig(), logger)
}

// ProvideNeptuneClient creates the openCypher client
func ProvideNeptuneClient(
	cfg *config.Config,
	httpClient *http.Client,
	signer neptune.RequestSigner,
	breaker *gobreaker.CircuitBreaker,
	metrics *observability.Metrics,
	logger *zap.Logger,
) (*neptune.Client, error) {
	return neptune.NewClient(neptune.Options{
		Endpoint:   cfg.NeptuneEndpoint,
		Port:       cfg.NeptunePort,
		Scheme:     cfg.NeptuneScheme,
		Timeout:    cfg.NeptuneQueryTimeout,
		HTTPClient: httpClient,
		Signer:     signer,
		Breaker:    breaker,
		Metrics:    metrics,
		Logger:     logger,
	})
}

// ProvidePersonService creates the create-and-fetch service
func ProvidePersonService(runner services.QueryRunner, tracer *observability.Tracer, logger *zap.Logger) *services.PersonService {
	return services.NewPersonService(runner, tracer, logger)
}

// ProvideRouter builds the chi router serving the flow
func ProvideRouter(cfg *config.Config, flow handlers.PersonFlow, metrics *observability.Metrics, logger *zap.Logger) *chi.Mux {
	return rest.NewRouter(flow, logger, rest.RouterOptions{
		EnableCORS: cfg.EnableCORS,
		Metrics:    metrics,
	}).Setup()
}
