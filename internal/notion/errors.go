package notion

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// Reason classifies an API failure. Each reason maps to a single HTTP status
// code, though several Notion error codes may share one reason.
type Reason string

const (
	// ReasonUnknown means the server declined to indicate a specific cause.
	ReasonUnknown Reason = ""

	// ReasonInvalidRequest means the request body or parameters were
	// rejected. Requests that return this can never succeed unchanged.
	// Status code 400.
	ReasonInvalidRequest Reason = "InvalidRequest"

	// ReasonUnauthorized means the integration secret is missing, invalid,
	// or revoked. Status code 401.
	ReasonUnauthorized Reason = "Unauthorized"

	// ReasonForbidden means the secret is valid but the integration lacks
	// the capability for this operation. Status code 403.
	ReasonForbidden Reason = "Forbidden"

	// ReasonNotFound means the target object does not exist or has not been
	// shared with the integration through a connection. Notion deliberately
	// reports unshared pages as not found. Status code 404.
	ReasonNotFound Reason = "NotFound"

	// ReasonConflict means the transaction could not be completed, usually
	// from a concurrent edit. Status code 409.
	ReasonConflict Reason = "Conflict"

	// ReasonRateLimited means the request quota was exceeded and the client
	// should wait before retrying. Status code 429.
	ReasonRateLimited Reason = "RateLimited"

	// ReasonInternal means an unexpected error occurred on Notion's side.
	// Status codes 500 and 502.
	ReasonInternal Reason = "Internal"

	// ReasonUnavailable means Notion is temporarily unavailable.
	// Status code 503.
	ReasonUnavailable Reason = "Unavailable"
)

// Error is a failure response from the Notion API.
type Error struct {
	StatusCode int
	// Code is the machine-readable error code from the response body,
	// e.g. "object_not_found" or "validation_error".
	Code    string
	Message string
	Reason  Reason
}

func (e *Error) Error() string {
	return fmt.Sprintf("notion: [%d %s] %s", e.StatusCode, e.Code, e.Message)
}

// errorBody is the JSON error envelope Notion returns on failures.
type errorBody struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// newAPIError builds an Error from a non-2xx response, decoding the Notion
// error envelope when present.
func newAPIError(res *resty.Response) *Error {
	e := &Error{
		StatusCode: res.StatusCode(),
		Reason:     reasonForStatus(res.StatusCode()),
		Message:    http.StatusText(res.StatusCode()),
	}

	var body errorBody
	if err := json.Unmarshal(res.Body(), &body); err == nil && body.Object == "error" {
		e.Code = body.Code
		if body.Message != "" {
			e.Message = body.Message
		}
	}

	return e
}

func reasonForStatus(code int) Reason {
	switch code {
	case http.StatusBadRequest:
		return ReasonInvalidRequest
	case http.StatusUnauthorized:
		return ReasonUnauthorized
	case http.StatusForbidden:
		return ReasonForbidden
	case http.StatusNotFound:
		return ReasonNotFound
	case http.StatusConflict:
		return ReasonConflict
	case http.StatusTooManyRequests:
		return ReasonRateLimited
	case http.StatusServiceUnavailable:
		return ReasonUnavailable
	default:
		if code >= 500 {
			return ReasonInternal
		}
		return ReasonUnknown
	}
}

// reasonForError extracts the Reason from an error chain.
func reasonForError(err error) Reason {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Reason
	}
	return ReasonUnknown
}

// IsNotFound reports whether err means the object is missing or unshared.
func IsNotFound(err error) bool {
	return reasonForError(err) == ReasonNotFound
}

// IsUnauthorized reports whether err is an authentication failure.
func IsUnauthorized(err error) bool {
	return reasonForError(err) == ReasonUnauthorized
}

// IsRateLimited reports whether err is a rate-limit rejection.
func IsRateLimited(err error) bool {
	return reasonForError(err) == ReasonRateLimited
}
