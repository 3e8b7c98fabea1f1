package service

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/aurora/internal/aurora/domain"
	"github.com/aussiebroadwan/aurora/pkg/slogx"
)

// Notifier delivers an invitation token to the invitee.
type Notifier interface {
	SendInvitation(ctx context.Context, inv domain.Invitation, token, tenantName string) error
}

// LogNotifier writes the invitation to the request logger instead of
// sending mail. The raw token is never logged, only the fact that a link
// was produced.
type LogNotifier struct {
	AppURL string
	Expiry time.Duration
}

func (n *LogNotifier) SendInvitation(ctx context.Context, inv domain.Invitation, token, tenantName string) error {
	log := slogx.FromContext(ctx)

	link := AcceptURL(n.AppURL, token)
	log.Info("invitation notification",
		slog.String("invitation_id", inv.ID),
		slog.String("email", inv.Email),
		slog.String("tenant", tenantName),
		slog.Bool("has_message", inv.Message != ""),
		slog.Int("accept_url_length", len(link)),
		slog.Duration("expires_in", n.Expiry),
	)
	return nil
}

// AcceptURL builds the link an invitee follows to accept.
func AcceptURL(appURL, token string) string {
	return strings.TrimSuffix(appURL, "/") + "/accept-invitation?token=" + url.QueryEscape(token)
}
