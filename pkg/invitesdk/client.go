package invitesdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the Aurora invitation service.
// It provides the unauthenticated health operations and creates Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// ValidateRequests runs the client-side request validation before
	// sending mutations. Invalid requests are rejected with a
	// *ValidationError without touching the network.
	// Default: true
	ValidateRequests bool
}

// NewSDKClient creates a new invitation service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		ValidateRequests: true,
	}
}

// NewSession returns a Session that authenticates with the given bearer token.
func (c *SDKClient) NewSession(accessToken string) *Session {
	return &Session{
		client:      c,
		accessToken: accessToken,
	}
}
