package neptune

import (
	"encoding/json"
	"fmt"
)

// StatusError is returned for any non-2xx response from the endpoint
type StatusError struct {
	StatusCode      int
	Code            string `json:"code"`
	DetailedMessage string `json:"detailedMessage"`
	RequestID       string `json:"requestId"`
	Body            string `json:"-"`
}

func newStatusError(status int, body []byte) *StatusError {
	e := &StatusError{StatusCode: status, Body: string(body)}
	// Neptune error documents are JSON; anything else stays in Body.
	_ = json.Unmarshal(body, e)
	e.StatusCode = status
	return e
}

// Error implements the error interface
func (e *StatusError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("neptune returned %d %s: %s", e.StatusCode, e.Code, e.DetailedMessage)
	}
	return fmt.Sprintf("neptune returned %d", e.StatusCode)
}
