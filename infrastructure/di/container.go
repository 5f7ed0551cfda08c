package di

import (
	"neptune-lambda/application/services"
	"neptune-lambda/infrastructure/config"
	"neptune-lambda/infrastructure/neptune"
	"neptune-lambda/pkg/observability"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	Tracer        *observability.Tracer
	Metrics       *observability.Metrics
	NeptuneClient *neptune.Client
	PersonService *services.PersonService
	Router        *chi.Mux
}
