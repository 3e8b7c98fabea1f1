package aurora_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/aurora/pkg/invitesdk"
	"github.com/stretchr/testify/require"
)

// TestAcceptRateLimit verifies token redemption is throttled per caller
// with the production defaults.
func TestAcceptRateLimit(t *testing.T) {
	baseURL, cleanup := setupAuroraContainerWithDefaultRateLimits(t)
	defer cleanup()

	session := invitesdk.NewSDKClient(baseURL).NewSession(mintToken(t, "guesser", "tenant-1", ""))

	var limited bool
	for range 20 {
		_, err := session.AcceptInvitation(t.Context(), "guessing-tokens-is-not-going-to-work-here")
		require.Error(t, err)

		var apiErr *invitesdk.APIError
		require.True(t, errors.As(err, &apiErr))
		if apiErr.StatusCode == http.StatusTooManyRequests {
			require.Equal(t, invitesdk.ErrorCodeRateLimited, apiErr.Code)
			limited = true
			break
		}
		require.Equal(t, invitesdk.ErrorCodeInvalidToken, apiErr.Code)
	}

	require.True(t, limited, "expected accept to be rate limited within 20 attempts")
}
