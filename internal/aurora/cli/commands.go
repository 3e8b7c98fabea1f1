package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/aussiebroadwan/aurora/internal/aurora/domain"
	"github.com/aussiebroadwan/aurora/internal/aurora/facade"
	"github.com/aussiebroadwan/aurora/internal/aurora/state"
	"github.com/aussiebroadwan/aurora/pkg/jwtx"
)

func runList(ctx context.Context, store *state.Store, args []string, p printer, errOut io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(errOut)

	values := map[domain.FilterKey]*string{}
	for _, key := range []domain.FilterKey{
		domain.FilterStatus,
		domain.FilterEmail,
		domain.FilterInvitedBy,
		domain.FilterCreatedAfter,
		domain.FilterCreatedBefore,
	} {
		values[key] = fs.String(flagName(key), "", "filter on "+string(key))
	}
	page := fs.Int("page", 1, "page to show")
	pageSize := fs.Int("page-size", domain.DefaultPageSize, "invitations per page")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var filter domain.Filter
	for key, v := range values {
		var err error
		if filter, err = filter.With(key, *v); err != nil {
			return err
		}
	}

	f := facade.New(store, facade.Options{
		AutoLoad:      true,
		InitialFilter: &filter,
		PageSize:      *pageSize,
	})
	if err := f.Activate(ctx); err != nil {
		return err
	}
	if *page > 1 {
		if err := f.GoToPage(ctx, *page); err != nil {
			return err
		}
	}

	return p.list(f.Snapshot())
}

func runGet(ctx context.Context, store *state.Store, args []string, p printer) error {
	id, err := oneArg(args, "invitation id")
	if err != nil {
		return err
	}

	f := facade.New(store, facade.Options{})
	inv := f.LoadInvitation(ctx, id)
	if inv == nil {
		return failure(f, "get invitation")
	}
	return p.invitation(inv)
}

func runStats(ctx context.Context, store *state.Store, p printer) error {
	f := facade.New(store, facade.Options{AutoLoadStats: true})
	if err := f.Activate(ctx); err != nil {
		return err
	}
	return p.stats(f.Snapshot().Stats)
}

func runCreate(ctx context.Context, store *state.Store, args []string, p printer, errOut io.Writer) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(errOut)

	email := fs.String("email", "", "invitee email (required)")
	name := fs.String("name", "", "invitee display name")
	clients := fs.String("clients", "", "comma-separated client IDs")
	roleGroups := fs.String("role-groups", "", "comma-separated role group IDs")
	message := fs.String("message", "", "note included in the invitation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return fmt.Errorf("%w: -email is required", ErrUsage)
	}

	f := facade.New(store, facade.Options{})
	inv := f.Create(ctx, domain.NewInvitation{
		Email:        *email,
		Name:         *name,
		ClientIDs:    splitList(*clients),
		RoleGroupIDs: splitList(*roleGroups),
		Message:      *message,
	})
	if inv == nil {
		return failure(f, "create invitation")
	}
	return p.invitation(inv)
}

func runResend(ctx context.Context, store *state.Store, args []string, p printer) error {
	id, err := oneArg(args, "invitation id")
	if err != nil {
		return err
	}

	f := facade.New(store, facade.Options{})
	if !f.Resend(ctx, id) {
		if f.Err() != "" {
			return failure(f, "resend invitation")
		}
		// The server rotated the token but could not deliver it.
		return fmt.Errorf("invitation %s was updated but not delivered", id)
	}
	return p.action("resent", id)
}

func runRevoke(ctx context.Context, store *state.Store, args []string, p printer) error {
	id, err := oneArg(args, "invitation id")
	if err != nil {
		return err
	}

	f := facade.New(store, facade.Options{})
	if !f.Revoke(ctx, id) {
		return failure(f, "revoke invitation")
	}
	return p.action("revoked", id)
}

func runAccept(ctx context.Context, store *state.Store, args []string, p printer) error {
	token, err := oneArg(args, "token")
	if err != nil {
		return err
	}

	f := facade.New(store, facade.Options{})
	res := f.Accept(ctx, token)
	if res == nil {
		return failure(f, "accept invitation")
	}
	return p.accept(res)
}

// runToken mints an HS256 access token for local testing against a
// service that shares the secret.
func runToken(cfg Config, out, errOut io.Writer) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(errOut)

	secret := fs.String("secret", envOrDefault(cfg.lookup, "AURORA_JWT_SECRET", ""), "HS256 secret (env AURORA_JWT_SECRET)")
	issuer := fs.String("issuer", envOrDefault(cfg.lookup, "AURORA_ISSUER", "aurora"), "issuer claim")
	sub := fs.String("sub", "", "user ID (required)")
	tenant := fs.String("tenant", "", "tenant ID (required)")
	tenantName := fs.String("tenant-name", "", "tenant display name")
	email := fs.String("email", "", "user email")
	perms := fs.String("perms", "aurora.invitations.view,aurora.invitations.create,aurora.invitations.revoke", "comma-separated permissions")
	ttl := fs.Duration("ttl", jwtx.DefaultAccessTokenTTL, "token lifetime")
	if err := fs.Parse(cfg.Args); err != nil {
		return err
	}
	if *sub == "" || *tenant == "" {
		return fmt.Errorf("%w: -sub and -tenant are required", ErrUsage)
	}

	signer, err := jwtx.NewHS256([]byte(*secret), *issuer)
	if err != nil {
		return err
	}

	tok, err := signer.Sign(jwtx.NewAccessClaims(
		*sub, *tenant, *tenantName, *email,
		splitList(*perms), *issuer, *ttl, time.Now(),
	))
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	_, err = fmt.Fprintln(out, tok)
	return err
}

// flagName turns a filter key into its flag spelling, e.g. invited-by.
func flagName(k domain.FilterKey) string {
	b := []byte(k)
	for i := range b {
		if b[i] == '_' {
			b[i] = '-'
		}
	}
	return string(b)
}
