package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"neptune-lambda/domain/person"
	"neptune-lambda/infrastructure/neptune"
	apperrors "neptune-lambda/pkg/errors"
	"neptune-lambda/pkg/observability"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const serviceName = "neptune"

// QueryRunner sends one openCypher statement and returns its records
type QueryRunner interface {
	Query(ctx context.Context, statement string) (*neptune.Result, error)
}

// PersonService creates a person vertex and reads back every person sharing
// its last name.
//
// The read is not correlated with the write beyond the last name literal, so
// pre-existing vertices with the same last name are returned too.
type PersonService struct {
	runner QueryRunner
	person person.Person
	tracer *observability.Tracer
	logger *zap.Logger
}

// NewPersonService creates a service for DefaultPerson
func NewPersonService(runner QueryRunner, tracer *observability.Tracer, logger *zap.Logger) *PersonService {
	return NewPersonServiceFor(runner, person.DefaultPerson(), tracer, logger)
}

// NewPersonServiceFor creates a service for an arbitrary person
func NewPersonServiceFor(runner QueryRunner, p person.Person, tracer *observability.Tracer, logger *zap.Logger) *PersonService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PersonService{
		runner: runner,
		person: p,
		tracer: tracer,
		logger: logger,
	}
}

// Person returns the person this service writes
func (s *PersonService) Person() person.Person {
	return s.person
}

// CreateAndFetch writes the vertex, then reads matching vertices. The read
// only starts once the write has succeeded; the first failure is returned.
func (s *PersonService) CreateAndFetch(ctx context.Context) ([]json.RawMessage, error) {
	create, err := s.person.CreateStatement()
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	match, err := s.person.MatchByLastNameStatement()
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	s.tracer.AddAnnotation(ctx, "last_name", s.person.LastName)

	if _, err := s.run(ctx, "write", create); err != nil {
		return nil, err
	}

	res, err := s.run(ctx, "read", match)
	if err != nil {
		return nil, err
	}

	s.logger.Info("person vertices fetched",
		zap.String("last_name", s.person.LastName),
		zap.Int("records", len(res.Results)),
	)

	return res.Results, nil
}

func (s *PersonService) run(ctx context.Context, step, statement string) (*neptune.Result, error) {
	var res *neptune.Result

	err := s.tracer.TraceFunction(ctx, step, func(ctx context.Context) error {
		var err error
		res, err = s.runner.Query(ctx, statement)
		return err
	})
	if err != nil {
		return nil, classify(step, err)
	}

	return res, nil
}

// classify maps a transport or upstream failure onto the app error taxonomy.
// Callers only ever see the generic failure; the type is for operator logs.
func classify(step string, err error) error {
	var statusErr *neptune.StatusError

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewTimeoutError(serviceName+"."+step, err)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return apperrors.NewUnavailableError(serviceName, err)
	case errors.As(err, &statusErr):
		appErr := apperrors.NewExternalError(serviceName, err).WithDetails(map[string]interface{}{
			"step":   step,
			"status": statusErr.StatusCode,
		})
		if statusErr.Code != "" {
			appErr = appErr.WithCode(statusErr.Code)
		}
		return appErr
	default:
		return apperrors.NewNetworkError(fmt.Sprintf("%s step failed", step), err)
	}
}
