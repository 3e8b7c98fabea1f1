package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/aurora/internal/aurora/cache"
	"github.com/aussiebroadwan/aurora/internal/aurora/store"
	"github.com/aussiebroadwan/aurora/pkg/httpx"
	"github.com/aussiebroadwan/aurora/pkg/invitesdk"
)

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe endpoint returning basic service health status, uptime, and version information
//	@Description	This endpoint always returns 200 OK if the service is running
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	invitesdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, invitesdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Description	A configured but unreachable stats cache degrades readiness; an unconfigured one reports "disabled"
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	invitesdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	invitesdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	sc cache.StatsCache,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &invitesdk.HealthChecks{
			Database: "ok",
			Cache:    "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if _, disabled := sc.(cache.Nop); disabled {
			checks.Cache = sc.Name()
		} else if err := sc.Ping(r.Context()); err != nil {
			checks.Cache = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, invitesdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
