package invitesdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/aurora/pkg/httpx"
)

// ============================================================================
// Error Codes
// ============================================================================

const (
	ErrorCodeInvalidRequest      = "invalid_request"
	ErrorCodeValidation          = "validation_error"
	ErrorCodeNotFound            = "not_found"
	ErrorCodeDuplicateInvitation = "duplicate_invitation"
	ErrorCodeInvalidState        = "invalid_state"
	ErrorCodeInvitationExpired   = "invitation_expired"
	ErrorCodeInvalidToken        = "invalid_token"
	ErrorCodeUnauthorized        = "unauthorized"
	ErrorCodeForbidden           = "forbidden"
	ErrorCodeRateLimited         = "rate_limit_exceeded"
	ErrorCodeServerError         = "server_error"
)

// ============================================================================
// APIError
// ============================================================================

// APIError is a non-2xx response from the invitation service, or a request
// rejected by client-side validation (StatusCode 0). It is used by the
// server to write error bodies and by the SDK to report them.
type APIError struct {
	// StatusCode is the HTTP status code, 0 for client-side validation
	StatusCode int `json:"-"`

	// Code is the machine readable error code (e.g. "duplicate_invitation")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`

	// Fields maps request field names to validation messages
	Fields map[string]string `json:"fields,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes e as a JSON error body.
func (e *APIError) WriteError(w http.ResponseWriter) {
	status := e.StatusCode
	if status == 0 {
		status = http.StatusBadRequest
	}
	httpx.WriteJSON(w, status, e)
}

// NewAPIError creates an APIError with the given status, code and description.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

// IsNotFound reports whether err is an APIError for a missing resource.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Message returns the most human-readable text for err: the description of
// an APIError when it has one, err.Error() otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Description != "" {
		return apiErr.Description
	}
	return err.Error()
}

// ============================================================================
// Predefined Errors
// ============================================================================

var (
	ErrInvalidJSON = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "invalid JSON body",
	}

	ErrUnauthorized = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthorized,
		Description: "authentication required",
	}

	ErrInvitationNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "Invitation not found",
	}

	ErrInvalidInvitationToken = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidToken,
		Description: "Invalid invitation token",
	}

	ErrInvitationExpired = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvitationExpired,
		Description: "Invitation has expired",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// parseErrorResponse turns a non-2xx response into an *APIError. It accepts
// the service's own {"error","error_description"} body and the
// {"detail": "..."} form used by upstream gateways.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
			Fields:      errResp.Fields,
		}
	}

	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &detail); err == nil && detail.Detail != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        codeForStatus(resp.StatusCode),
			Description: detail.Detail,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        codeForStatus(resp.StatusCode),
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrorCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrorCodeUnauthorized
	case http.StatusForbidden:
		return ErrorCodeForbidden
	case http.StatusNotFound:
		return ErrorCodeNotFound
	case http.StatusTooManyRequests:
		return ErrorCodeRateLimited
	default:
		return ErrorCodeServerError
	}
}
