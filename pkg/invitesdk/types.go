package invitesdk

import (
	"net/url"
	"strconv"
	"time"
)

// ============================================================================
// Error Response
// ============================================================================

// ErrorResponse is the JSON body of every non-2xx response.
// Client code should use the APIError type from errors.go instead.
type ErrorResponse struct {
	// Error is the machine readable error code
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`

	// Fields contains field-specific validation errors (field name: message)
	Fields map[string]string `json:"fields,omitempty"`
}

// ============================================================================
// Invitation Types
// ============================================================================

// Invitation is the wire form of an invitation.
type Invitation struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name,omitempty"`
	TenantID     string     `json:"tenant_id"`
	ClientIDs    []string   `json:"client_ids,omitempty"`
	RoleGroupIDs []string   `json:"role_group_ids,omitempty"`
	Message      string     `json:"message,omitempty"`
	Status       string     `json:"status"`
	InvitedBy    string     `json:"invited_by"`
	CreatedAt    time.Time  `json:"created_at"`
	ExpiresAt    time.Time  `json:"expires_at"`
	AcceptedAt   *time.Time `json:"accepted_at"`
	RevokedAt    *time.Time `json:"revoked_at"`
	RevokedBy    string     `json:"revoked_by,omitempty"`
}

// InvitationList is one page of invitations, newest first.
type InvitationList struct {
	Items    []Invitation `json:"items"`
	Total    int          `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
	Pages    int          `json:"pages"`
}

// InvitationStats holds the per-tenant invitation counts.
type InvitationStats struct {
	Total        int `json:"total"`
	Pending      int `json:"pending"`
	Accepted     int `json:"accepted"`
	Expired      int `json:"expired"`
	Revoked      int `json:"revoked"`
	SentToday    int `json:"sent_today"`
	SentThisWeek int `json:"sent_this_week"`
}

// CreateInvitationRequest is the body of POST /v1/invitations.
type CreateInvitationRequest struct {
	// Email of the invitee (required)
	Email string `json:"email" validate:"required,email,max=255"`

	// Name is the invitee's display name
	Name string `json:"name,omitempty" validate:"max=255"`

	// ClientIDs are the clients the invitee is granted on acceptance
	ClientIDs []string `json:"client_ids,omitempty" validate:"dive,required"`

	// RoleGroupIDs are the role groups the invitee joins on acceptance
	RoleGroupIDs []string `json:"role_group_ids,omitempty" validate:"dive,required"`

	// Message is a custom note included in the invitation email
	Message string `json:"message,omitempty" validate:"max=1000"`
}

// AcceptInvitationRequest is the body of POST /v1/invitations/accept.
type AcceptInvitationRequest struct {
	// Token is the raw invitation token from the email link
	Token string `json:"token" validate:"required,min=32,max=64"`
}

// ActionResponse is returned by resend and revoke.
type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AcceptResponse is returned by accept.
type AcceptResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	TenantID   string `json:"tenant_id"`
	TenantName string `json:"tenant_name,omitempty"`
}

// ListQuery selects one page of invitations. Zero-valued fields are
// omitted from the query string.
type ListQuery struct {
	Status        string
	Email         string
	InvitedBy     string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	Page          int
	PageSize      int
}

// Values renders q as URL query parameters.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Email != "" {
		v.Set("email", q.Email)
	}
	if q.InvitedBy != "" {
		v.Set("invited_by", q.InvitedBy)
	}
	if q.CreatedAfter != nil {
		v.Set("created_after", q.CreatedAfter.UTC().Format(time.RFC3339))
	}
	if q.CreatedBefore != nil {
		v.Set("created_before", q.CreatedBefore.UTC().Format(time.RFC3339))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	return v
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	// Status is "ok" or "degraded"
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks holds per-dependency results (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of the service's dependencies.
type HealthChecks struct {
	// Database is the sqlite connection status
	Database string `json:"database"`

	// Cache is the stats cache status, "disabled" when none is configured
	Cache string `json:"cache"`
}
