package errors

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// PublicMessage is the only error text callers ever see. The spelling is part
// of the response contract.
const PublicMessage = "error occured"

// ErrorHandler logs failures for operators and answers callers with a fixed
// plain-text 500
type ErrorHandler struct {
	logger *zap.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *zap.Logger) *ErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorHandler{logger: logger}
}

// Handle logs err and writes the generic failure response
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	fields := []zap.Field{
		zap.Error(err),
		zap.String("error_type", string(TypeOf(err))),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", r.Header.Get("X-Request-ID")),
	}
	if appErr := GetAppError(err); appErr != nil {
		if appErr.Code != "" {
			fields = append(fields, zap.String("error_code", appErr.Code))
		}
		if appErr.Details != nil {
			fields = append(fields, zap.Any("details", appErr.Details))
		}
	}

	if IsType(err, ErrorTypeValidation) {
		h.logger.Warn("request rejected", fields...)
	} else {
		h.logger.Error("request failed", fields...)
	}
	WritePlainError(w)
}

// WritePlainError writes the fixed 500 response
func WritePlainError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(PublicMessage))
}

// Middleware returns an HTTP middleware that turns panics into the generic
// failure response
func (h *ErrorHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				h.Handle(w, r, NewInternalError(fmt.Sprintf("panic: %v", rec)))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
