package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/aurora/internal/aurora/service"
	"github.com/aussiebroadwan/aurora/pkg/invitesdk"
	"github.com/aussiebroadwan/aurora/pkg/slogx"
)

// writeServiceError maps a service error onto the wire error body. Anything
// unrecognised is logged and reported as a server error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	detail := service.Detail(err)

	var apiErr *invitesdk.APIError
	switch {
	case errors.Is(err, service.ErrInvitationNotFound):
		apiErr = invitesdk.NewAPIError(http.StatusNotFound, invitesdk.ErrorCodeNotFound, detail)
	case errors.Is(err, service.ErrPendingInvitationExists):
		apiErr = invitesdk.NewAPIError(http.StatusBadRequest, invitesdk.ErrorCodeDuplicateInvitation, detail)
	case errors.Is(err, service.ErrInvalidState):
		apiErr = invitesdk.NewAPIError(http.StatusBadRequest, invitesdk.ErrorCodeInvalidState, detail)
	case errors.Is(err, service.ErrInvitationExpired):
		apiErr = invitesdk.NewAPIError(http.StatusBadRequest, invitesdk.ErrorCodeInvitationExpired, detail)
	case errors.Is(err, service.ErrInvalidToken):
		apiErr = invitesdk.NewAPIError(http.StatusBadRequest, invitesdk.ErrorCodeInvalidToken, detail)
	case errors.Is(err, service.ErrInvalidRequest):
		apiErr = invitesdk.NewAPIError(http.StatusBadRequest, invitesdk.ErrorCodeInvalidRequest, detail)
	default:
		slogx.FromContext(r.Context()).Error("failed to "+action, "err", err)
		apiErr = invitesdk.NewAPIError(http.StatusInternalServerError, invitesdk.ErrorCodeServerError, "Failed to "+action)
	}

	if apiErr.Description == "" {
		apiErr.Description = err.Error()
	}
	apiErr.WriteError(w)
}
