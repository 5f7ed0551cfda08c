package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	apperrors "neptune-lambda/pkg/errors"

	"go.uber.org/zap"
)

// PersonFlow runs the create-then-fetch sequence
type PersonFlow interface {
	CreateAndFetch(ctx context.Context) ([]json.RawMessage, error)
}

// PersonHandler answers every proxied gateway request. The request method,
// path and body are ignored.
type PersonHandler struct {
	flow   PersonFlow
	errors *apperrors.ErrorHandler
	logger *zap.Logger
}

// NewPersonHandler creates a new person handler
func NewPersonHandler(flow PersonFlow, logger *zap.Logger) *PersonHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PersonHandler{
		flow:   flow,
		errors: apperrors.NewErrorHandler(logger),
		logger: logger,
	}
}

// CreateAndFetch handles any request: 200 with the JSON result array, or the
// fixed plain-text 500
func (h *PersonHandler) CreateAndFetch(w http.ResponseWriter, r *http.Request) {
	records, err := h.flow.CreateAndFetch(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	if records == nil {
		records = []json.RawMessage{}
	}

	body, err := json.Marshal(records)
	if err != nil {
		h.errors.Handle(w, r, apperrors.NewInternalError("encode results").WithCause(err))
		return
	}

	h.logger.Debug("RESPONSE", zap.ByteString("body", body))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
