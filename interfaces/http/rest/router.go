package rest

import (
	"net/http"

	"neptune-lambda/interfaces/http/rest/handlers"
	"neptune-lambda/interfaces/http/rest/middleware"
	apperrors "neptune-lambda/pkg/errors"
	"neptune-lambda/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// RouterOptions toggles optional routes and middleware
type RouterOptions struct {
	EnableCORS bool
	Metrics    *observability.Metrics
}

// Router creates and configures the HTTP router
type Router struct {
	flow    handlers.PersonFlow
	logger  *zap.Logger
	options RouterOptions
}

// NewRouter creates a new router instance
func NewRouter(flow handlers.PersonFlow, logger *zap.Logger, options RouterOptions) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		flow:    flow,
		logger:  logger,
		options: options,
	}
}

// Setup configures all routes and middleware. Anything that is not a probe
// runs the person flow, like a gateway {proxy+} resource.
func (rt *Router) Setup() *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(apperrors.NewErrorHandler(rt.logger).Middleware)
	router.Use(middleware.Logger(rt.logger, rt.options.Metrics))

	if rt.options.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:     []string{"*"},
			AllowedMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:     []string{"X-Request-ID"},
			MaxAge:             300,
			OptionsPassthrough: true,
		}))
	}

	router.Get("/health", rt.healthCheck)
	if rt.options.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", rt.options.Metrics.Handler())
	}

	personHandler := handlers.NewPersonHandler(rt.flow, rt.logger)
	router.HandleFunc("/", personHandler.CreateAndFetch)
	router.HandleFunc("/*", personHandler.CreateAndFetch)

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}
