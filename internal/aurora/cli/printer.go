package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/aussiebroadwan/aurora/internal/aurora/domain"
	"github.com/aussiebroadwan/aurora/internal/aurora/facade"
	"github.com/aussiebroadwan/aurora/internal/aurora/state"
)

type printer struct {
	out  io.Writer
	json bool
	now  func() time.Time
}

func (p printer) encode(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p printer) list(snap state.Snapshot) error {
	if p.json {
		return p.encode(struct {
			Items      []*domain.Invitation `json:"items"`
			Pagination domain.Pagination    `json:"pagination"`
		}{snap.Items, snap.Pagination})
	}

	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tSTATUS\tEXPIRES\tACTIONS")
	for _, inv := range snap.Items {
		status := inv.EffectiveStatus(p.now())
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			inv.ID, inv.Email, status, inv.ExpiresAt.Local().Format(time.DateTime), actions(status))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	pg := snap.Pagination
	_, err := fmt.Fprintf(p.out, "page %d of %d (%d total)\n", pg.Page, pg.Pages, pg.Total)
	return err
}

func (p printer) invitation(inv *domain.Invitation) error {
	if p.json {
		return p.encode(inv)
	}

	status := inv.EffectiveStatus(p.now())
	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "id:\t%s\n", inv.ID)
	fmt.Fprintf(tw, "email:\t%s\n", inv.Email)
	if inv.Name != "" {
		fmt.Fprintf(tw, "name:\t%s\n", inv.Name)
	}
	fmt.Fprintf(tw, "status:\t%s (%s)\n", status, facade.StatusColor(status))
	fmt.Fprintf(tw, "invited by:\t%s\n", inv.InvitedBy)
	fmt.Fprintf(tw, "created:\t%s\n", inv.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(tw, "expires:\t%s\n", inv.ExpiresAt.Local().Format(time.DateTime))
	if len(inv.ClientIDs) > 0 {
		fmt.Fprintf(tw, "clients:\t%s\n", strings.Join(inv.ClientIDs, ", "))
	}
	if len(inv.RoleGroupIDs) > 0 {
		fmt.Fprintf(tw, "role groups:\t%s\n", strings.Join(inv.RoleGroupIDs, ", "))
	}
	if a := actions(status); a != "" {
		fmt.Fprintf(tw, "actions:\t%s\n", a)
	}
	return tw.Flush()
}

func (p printer) stats(s *domain.Stats) error {
	if s == nil {
		s = &domain.Stats{}
	}
	if p.json {
		return p.encode(s)
	}

	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "total\t%d\n", s.Total)
	fmt.Fprintf(tw, "pending\t%d\n", s.Pending)
	fmt.Fprintf(tw, "accepted\t%d\n", s.Accepted)
	fmt.Fprintf(tw, "expired\t%d\n", s.Expired)
	fmt.Fprintf(tw, "revoked\t%d\n", s.Revoked)
	fmt.Fprintf(tw, "sent today\t%d\n", s.SentToday)
	fmt.Fprintf(tw, "sent this week\t%d\n", s.SentThisWeek)
	return tw.Flush()
}

func (p printer) action(verb, id string) error {
	if p.json {
		return p.encode(map[string]any{"success": true, "id": id, "action": verb})
	}
	_, err := fmt.Fprintf(p.out, "invitation %s %s\n", id, verb)
	return err
}

func (p printer) accept(res *domain.AcceptResult) error {
	if p.json {
		return p.encode(res)
	}
	_, err := fmt.Fprintf(p.out, "%s (tenant %s)\n", res.Message, res.TenantID)
	return err
}

func actions(s domain.Status) string {
	var out []string
	if facade.CanResend(s) {
		out = append(out, "resend")
	}
	if facade.CanRevoke(s) {
		out = append(out, "revoke")
	}
	return strings.Join(out, ",")
}
