/*
Package invitesdk provides a client SDK for the Aurora invitation service.

# SDKClient vs Session

  - SDKClient: unauthenticated operations (health checks) and Session creation
  - Session: authenticated invitation operations carrying a bearer token

	client := invitesdk.NewSDKClient("https://aurora.example.com")

	health, err := client.GetLiveness(ctx)

	session := client.NewSession(accessToken)
	page, err := session.ListInvitations(ctx, invitesdk.ListQuery{Status: "PENDING", Page: 1})

The token can be swapped at any time, for example after an upstream refresh:

	session.SetToken(newAccessToken)

# Permissions

Each operation is checked server-side against the permissions carried in
the access token:

  - aurora.invitations.view: ListInvitations, GetInvitation, GetStats
  - aurora.invitations.create: CreateInvitation, ResendInvitation
  - aurora.invitations.revoke: RevokeInvitation

AcceptInvitation only needs an authenticated user.

# Error Handling

Every non-2xx response is returned as an *APIError carrying the HTTP status,
a machine readable code and a human-readable description:

	_, err := session.RevokeInvitation(ctx, id)
	var apiErr *invitesdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == invitesdk.ErrorCodeInvalidState {
		fmt.Println(apiErr.Description) // "Cannot revoke ACCEPTED invitation"
	}

Create and accept requests are validated before they are sent. A rejected
request is an *APIError with code validation_error, no status code, and the
offending fields in Fields. Set SDKClient.ValidateRequests to false to leave
validation to the server.

Every request carries a fresh X-Request-ID header, which the service echoes
into its request logs.
*/
package invitesdk
