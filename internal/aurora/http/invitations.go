package http

import (
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/aurora/internal/aurora/domain"
	"github.com/aussiebroadwan/aurora/internal/aurora/service"
	"github.com/aussiebroadwan/aurora/pkg/httpx"
	"github.com/aussiebroadwan/aurora/pkg/invitesdk"
)

type InvitationsHandler struct {
	InvitationService *service.InvitationService
}

// actorFrom builds the service actor from verified claims. The authn
// middleware guarantees claims are present on every route using it.
func actorFrom(r *http.Request) (service.Actor, bool) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok || claims.Subject == "" || claims.TenantID == "" {
		return service.Actor{}, false
	}
	return service.Actor{
		UserID:     claims.Subject,
		TenantID:   claims.TenantID,
		TenantName: claims.TenantName,
	}, true
}

// HandleList godoc
//
//	@Summary		List Invitations
//	@Description	Returns one page of the caller's tenant invitations, newest first. page_size is clamped to the server maximum.
//	@Tags			Invitations
//	@Produce		json
//	@Param			status			query		string	false	"PENDING, ACCEPTED, EXPIRED or REVOKED"
//	@Param			email			query		string	false	"Case-insensitive email substring"
//	@Param			invited_by		query		string	false	"User ID of the inviter"
//	@Param			created_after	query		string	false	"RFC 3339 lower bound"
//	@Param			created_before	query		string	false	"RFC 3339 upper bound"
//	@Param			page			query		int		false	"1-based page"
//	@Param			page_size		query		int		false	"Items per page"
//	@Success		200				{object}	invitesdk.InvitationList
//	@Failure		400				{object}	invitesdk.ErrorResponse	"error, error_description"
//	@Failure		401				{object}	invitesdk.ErrorResponse	"error, error_description"
//	@Failure		403				{object}	invitesdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations [get].
func (h *InvitationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		invitesdk.ErrUnauthorized.WriteError(w)
		return
	}

	filter, err := domain.ParseFilter(r.URL.Query())
	if err != nil {
		invitesdk.NewAPIError(http.StatusBadRequest, invitesdk.ErrorCodeInvalidRequest, err.Error()).WriteError(w)
		return
	}
	page, err := httpx.QueryInt(r, "page", 1)
	if err != nil {
		invitesdk.NewAPIError(http.StatusBadRequest, invitesdk.ErrorCodeInvalidRequest, err.Error()).WriteError(w)
		return
	}
	pageSize, err := httpx.QueryInt(r, "page_size", 0)
	if err != nil {
		invitesdk.NewAPIError(http.StatusBadRequest, invitesdk.ErrorCodeInvalidRequest, err.Error()).WriteError(w)
		return
	}

	res, err := h.InvitationService.List(r.Context(), actor.TenantID, filter, page, pageSize)
	if err != nil {
		writeServiceError(w, r, err, "list invitations")
		return
	}

	items := make([]invitesdk.Invitation, 0, len(res.Items))
	for _, inv := range res.Items {
		items = append(items, invitationToWire(inv))
	}

	httpx.WriteJSON(w, http.StatusOK, invitesdk.InvitationList{
		Items:    items,
		Total:    res.Pagination.Total,
		Page:     res.Pagination.Page,
		PageSize: res.Pagination.PageSize,
		Pages:    res.Pagination.Pages,
	})
}

// HandleGet godoc
//
//	@Summary		Get Invitation
//	@Tags			Invitations
//	@Produce		json
//	@Param			id	path		string	true	"Invitation ID"
//	@Success		200	{object}	invitesdk.Invitation
//	@Failure		404	{object}	invitesdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations/{id} [get].
func (h *InvitationsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		invitesdk.ErrUnauthorized.WriteError(w)
		return
	}

	inv, err := h.InvitationService.Get(r.Context(), actor.TenantID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, "fetch invitation")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, invitationToWire(inv))
}

// HandleStats godoc
//
//	@Summary		Invitation Statistics
//	@Description	Per-status counts for the caller's tenant plus invitations sent today and this week (UTC).
//	@Tags			Invitations
//	@Produce		json
//	@Success		200	{object}	invitesdk.InvitationStats
//	@Security		BearerAuth
//	@Router			/v1/invitations/stats [get].
func (h *InvitationsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		invitesdk.ErrUnauthorized.WriteError(w)
		return
	}

	stats, err := h.InvitationService.Stats(r.Context(), actor.TenantID)
	if err != nil {
		writeServiceError(w, r, err, "load invitation stats")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, statsToWire(stats))
}

// HandleCreate godoc
//
//	@Summary		Create Invitation
//	@Description	Creates a pending invitation in the caller's tenant and notifies the invitee.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		invitesdk.CreateInvitationRequest	true	"Invitation"
//	@Success		201		{object}	invitesdk.Invitation
//	@Failure		400		{object}	invitesdk.ErrorResponse	"error, error_description, fields"
//	@Security		BearerAuth
//	@Router			/v1/invitations [post].
func (h *InvitationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		invitesdk.ErrUnauthorized.WriteError(w)
		return
	}

	var req invitesdk.CreateInvitationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		invitesdk.ErrInvalidJSON.WriteError(w)
		return
	}
	if fields := req.Validate(); fields != nil {
		apiErr := invitesdk.ValidationError(fields)
		apiErr.StatusCode = http.StatusBadRequest
		apiErr.WriteError(w)
		return
	}

	inv, err := h.InvitationService.Create(r.Context(), actor, domain.NewInvitation{
		Email:        req.Email,
		Name:         req.Name,
		ClientIDs:    req.ClientIDs,
		RoleGroupIDs: req.RoleGroupIDs,
		Message:      req.Message,
	})
	if err != nil {
		writeServiceError(w, r, err, "create invitation")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, invitationToWire(inv))
}

// HandleResend godoc
//
//	@Summary		Resend Invitation
//	@Description	Rotates the token of a pending invitation, restarts its expiry and notifies again. success is false when delivery failed.
//	@Tags			Invitations
//	@Produce		json
//	@Param			id	path		string	true	"Invitation ID"
//	@Success		200	{object}	invitesdk.ActionResponse
//	@Failure		400	{object}	invitesdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	invitesdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations/{id}/resend [post].
func (h *InvitationsHandler) HandleResend(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		invitesdk.ErrUnauthorized.WriteError(w)
		return
	}

	inv, sent, err := h.InvitationService.Resend(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, "resend invitation")
		return
	}

	msg := fmt.Sprintf("Invitation resent to %s", inv.Email)
	if !sent {
		msg = fmt.Sprintf("Failed to send invitation to %s", inv.Email)
	}
	httpx.WriteJSON(w, http.StatusOK, invitesdk.ActionResponse{Success: sent, Message: msg})
}

// HandleRevoke godoc
//
//	@Summary		Revoke Invitation
//	@Tags			Invitations
//	@Produce		json
//	@Param			id	path		string	true	"Invitation ID"
//	@Success		200	{object}	invitesdk.ActionResponse
//	@Failure		400	{object}	invitesdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	invitesdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations/{id}/revoke [post].
func (h *InvitationsHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		invitesdk.ErrUnauthorized.WriteError(w)
		return
	}

	inv, err := h.InvitationService.Revoke(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, "revoke invitation")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, invitesdk.ActionResponse{
		Success: true,
		Message: fmt.Sprintf("Invitation to %s revoked", inv.Email),
	})
}

type AcceptHandler struct {
	InvitationService *service.InvitationService
}

// ServeHTTP godoc
//
//	@Summary		Accept Invitation
//	@Description	Redeems an invitation token for the authenticated user and joins them to the inviting tenant.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		invitesdk.AcceptInvitationRequest	true	"Token from the invitation link"
//	@Success		200		{object}	invitesdk.AcceptResponse
//	@Failure		400		{object}	invitesdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	invitesdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations/accept [post].
func (h *AcceptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		invitesdk.ErrUnauthorized.WriteError(w)
		return
	}

	var req invitesdk.AcceptInvitationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		invitesdk.ErrInvalidJSON.WriteError(w)
		return
	}
	if fields := req.Validate(); fields != nil {
		// A malformed token can never match, report it the same way.
		invitesdk.ErrInvalidInvitationToken.WriteError(w)
		return
	}

	res, err := h.InvitationService.Accept(r.Context(), userID, req.Token)
	if err != nil {
		writeServiceError(w, r, err, "accept invitation")
		return
	}

	name := res.Tenant.Name
	msg := "Invitation accepted"
	if name != "" {
		msg = fmt.Sprintf("You have joined %s", name)
	}
	httpx.WriteJSON(w, http.StatusOK, invitesdk.AcceptResponse{
		Success:    true,
		Message:    msg,
		TenantID:   res.Tenant.ID,
		TenantName: name,
	})
}
