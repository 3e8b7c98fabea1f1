package aurora_test

import (
	"testing"

	"github.com/aussiebroadwan/aurora/pkg/invitesdk"
	"github.com/stretchr/testify/require"
)

// TestLivezEndpoint verifies the liveness check endpoint.
func TestLivezEndpoint(t *testing.T) {
	baseURL, cleanup := setupAuroraContainer(t)
	defer cleanup()

	health, err := invitesdk.NewSDKClient(baseURL).GetLiveness(t.Context())
	assertHealthy(t, health, err)
}

// TestReadyzEndpoint verifies the readiness check reports the database and
// the disabled cache.
func TestReadyzEndpoint(t *testing.T) {
	baseURL, cleanup := setupAuroraContainer(t)
	defer cleanup()

	health, err := invitesdk.NewSDKClient(baseURL).GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
	require.Equal(t, "disabled", health.Checks.Cache)
}
