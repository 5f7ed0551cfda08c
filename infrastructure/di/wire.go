//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"neptune-lambda/application/services"
	"neptune-lambda/infrastructure/config"
	"neptune-lambda/infrastructure/neptune"
	"neptune-lambda/interfaces/http/rest/handlers"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideTracer,
	ProvideMetrics,
	ProvideHTTPClient,
	ProvideSigner,
	ProvideBreaker,
	ProvideNeptuneClient,
	ProvidePersonService,
	ProvideRouter,
	wire.Bind(new(services.QueryRunner), new(*neptune.Client)),
	wire.Bind(new(handlers.PersonFlow), new(*services.PersonService)),
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
