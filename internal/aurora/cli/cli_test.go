package cli

import (
	"bytes"
	"context"
	"flag"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aussiebroadwan/aurora/internal/aurora/cache"
	"github.com/aussiebroadwan/aurora/internal/aurora/domain"
	aurorahttp "github.com/aussiebroadwan/aurora/internal/aurora/http"
	"github.com/aussiebroadwan/aurora/internal/aurora/service"
	"github.com/aussiebroadwan/aurora/internal/aurora/store/drivers/sqlite"
	"github.com/aussiebroadwan/aurora/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testSecret = strings.Repeat("c", jwtx.MinSecretBytes)

type lastToken struct {
	mu    sync.Mutex
	token string
}

func (n *lastToken) SendInvitation(_ context.Context, _ domain.Invitation, token, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.token = token
	return nil
}

func (n *lastToken) get() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.token
}

func startServer(t *testing.T) (string, *lastToken) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	verifier, err := jwtx.NewHS256([]byte(testSecret), "aurora")
	require.NoError(t, err)

	notifier := &lastToken{}
	router := aurorahttp.NewRouter(verifier, "test", st, cache.Nop{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	router.InvitationService = &service.InvitationService{Store: st, Cache: cache.Nop{}, Notifier: notifier}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv.URL, notifier
}

func lookupFrom(env map[string]string) EnvLookup {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

// invitectl runs one command and returns its stdout.
func invitectl(t *testing.T, env map[string]string, args ...string) (string, error) {
	t.Helper()

	fs := flag.NewFlagSet("invitectl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg, err := ParseConfig(fs, args, lookupFrom(env))
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	err = Run(t.Context(), cfg, &out, io.Discard)
	return out.String(), err
}

func mintToken(t *testing.T, sub, tenant string) string {
	t.Helper()
	out, err := invitectl(t, map[string]string{"AURORA_JWT_SECRET": testSecret},
		"token", "-sub", sub, "-tenant", tenant, "-tenant-name", "Acme")
	require.NoError(t, err)
	return strings.TrimSpace(out)
}

func TestParseConfig(t *testing.T) {
	t.Run("env fills defaults", func(t *testing.T) {
		fs := flag.NewFlagSet("x", flag.ContinueOnError)
		cfg, err := ParseConfig(fs, []string{"stats"}, lookupFrom(map[string]string{
			"AURORA_URL":   "http://aurora:8080",
			"AURORA_TOKEN": "tok",
		}))
		require.NoError(t, err)
		require.Equal(t, "http://aurora:8080", cfg.URL)
		require.Equal(t, "tok", cfg.Token)
		require.Equal(t, "stats", cfg.Command)
	})

	t.Run("flags win over env", func(t *testing.T) {
		fs := flag.NewFlagSet("x", flag.ContinueOnError)
		cfg, err := ParseConfig(fs, []string{"-url", "http://other", "get", "inv-1"},
			lookupFrom(map[string]string{"AURORA_URL": "http://aurora:8080"}))
		require.NoError(t, err)
		require.Equal(t, "http://other", cfg.URL)
		require.Equal(t, []string{"inv-1"}, cfg.Args)
	})

	t.Run("missing command", func(t *testing.T) {
		fs := flag.NewFlagSet("x", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		_, err := ParseConfig(fs, nil, nil)
		require.ErrorIs(t, err, ErrUsage)
	})
}

func TestRunRequiresToken(t *testing.T) {
	_, err := invitectl(t, nil, "stats")
	require.ErrorContains(t, err, "AURORA_TOKEN")
}

func TestRunUnknownCommand(t *testing.T) {
	_, err := invitectl(t, map[string]string{"AURORA_TOKEN": "x"}, "frobnicate")
	require.ErrorIs(t, err, ErrUsage)
}

func TestTokenCommand(t *testing.T) {
	tok := mintToken(t, "admin-1", "tenant-1")

	verifier, err := jwtx.NewHS256([]byte(testSecret), "aurora")
	require.NoError(t, err)
	claims, err := verifier.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "admin-1", claims.Subject)
	require.Equal(t, "tenant-1", claims.TenantID)
	require.True(t, claims.HasPermission(aurorahttp.PermissionRevoke))

	_, err = invitectl(t, map[string]string{"AURORA_JWT_SECRET": testSecret}, "token", "-sub", "x")
	require.ErrorIs(t, err, ErrUsage)
}

func TestInvitationCommands(t *testing.T) {
	url, notifier := startServer(t)
	env := map[string]string{
		"AURORA_URL":   url,
		"AURORA_TOKEN": mintToken(t, "admin-1", "tenant-1"),
	}

	out, err := invitectl(t, env, "create", "-email", "new@example.com", "-clients", "c1, c2")
	require.NoError(t, err)
	require.Contains(t, out, "new@example.com")
	require.Contains(t, out, "c1, c2")
	require.Contains(t, out, "resend,revoke")

	_, err = invitectl(t, env, "create", "-email", "new@example.com")
	require.ErrorContains(t, err, "Pending invitation already exists for new@example.com")

	out, err = invitectl(t, env, "list", "-status", "PENDING")
	require.NoError(t, err)
	require.Contains(t, out, "new@example.com")
	require.Contains(t, out, "page 1 of 1 (1 total)")

	out, err = invitectl(t, env, "-json", "stats")
	require.NoError(t, err)
	require.Contains(t, out, `"Pending": 1`)

	out, err = invitectl(t, env, "-json", "list")
	require.NoError(t, err)
	id := between(t, out, `"ID": "`, `"`)

	out, err = invitectl(t, env, "get", id)
	require.NoError(t, err)
	require.Contains(t, out, "PENDING (warning)")

	out, err = invitectl(t, env, "resend", id)
	require.NoError(t, err)
	require.Contains(t, out, "resent")

	accepter := map[string]string{
		"AURORA_URL":   url,
		"AURORA_TOKEN": mintToken(t, "user-1", "tenant-x"),
	}
	out, err = invitectl(t, accepter, "accept", notifier.get())
	require.NoError(t, err)
	require.Contains(t, out, "tenant-1")

	_, err = invitectl(t, env, "revoke", id)
	require.ErrorContains(t, err, "Cannot revoke accepted invitation")

	_, err = invitectl(t, env, "get", "missing")
	require.ErrorContains(t, err, "Invitation not found")
}

func between(t *testing.T, s, start, end string) string {
	t.Helper()
	i := strings.Index(s, start)
	require.GreaterOrEqual(t, i, 0, "missing %q in %s", start, s)
	rest := s[i+len(start):]
	j := strings.Index(rest, end)
	require.GreaterOrEqual(t, j, 0)
	return rest[:j]
}
