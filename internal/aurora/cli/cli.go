// Package cli implements invitectl, a command-line front end over the
// invitation facade.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aussiebroadwan/aurora/internal/aurora/facade"
	"github.com/aussiebroadwan/aurora/internal/aurora/state"
	"github.com/aussiebroadwan/aurora/pkg/invitesdk"
	"github.com/aussiebroadwan/aurora/pkg/slogx"
)

const DefaultURL = "http://localhost:8080"

// EnvLookup returns the value for a key when present.
type EnvLookup func(string) (string, bool)

// Config holds the global flags and the selected command.
type Config struct {
	URL     string
	Token   string
	JSON    bool
	Verbose bool
	Timeout time.Duration

	Command string
	Args    []string

	// lookup is kept for commands that read their own variables.
	lookup EnvLookup
}

var ErrUsage = errors.New("usage")

const usage = `usage: invitectl [flags] <command> [args]

commands:
  list     [-status S] [-email E] [-invited-by U] [-created-after T] [-created-before T] [-page N] [-page-size N]
  get      <id>
  stats
  create   -email E [-name N] [-clients a,b] [-role-groups a,b] [-message M]
  resend   <id>
  revoke   <id>
  accept   <token>
  token    -sub U -tenant T [-tenant-name N] [-perms p,q] [-ttl D] [-secret S]

flags:
`

// ParseConfig parses the global flags. AURORA_URL and AURORA_TOKEN fill in
// -url and -token when the flags are absent.
func ParseConfig(fs *flag.FlagSet, args []string, lookup EnvLookup) (Config, error) {
	if lookup == nil {
		lookup = func(string) (string, bool) { return "", false }
	}

	cfg := Config{lookup: lookup}
	fs.StringVar(&cfg.URL, "url", envOrDefault(lookup, "AURORA_URL", DefaultURL), "service base URL (env AURORA_URL)")
	fs.StringVar(&cfg.Token, "token", envOrDefault(lookup, "AURORA_TOKEN", ""), "bearer token (env AURORA_TOKEN)")
	fs.BoolVar(&cfg.JSON, "json", false, "print JSON instead of text")
	fs.BoolVar(&cfg.Verbose, "v", false, "log debug output to stderr")
	fs.DurationVar(&cfg.Timeout, "timeout", 30*time.Second, "overall command timeout")
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return Config{}, fmt.Errorf("%w: missing command", ErrUsage)
	}

	cfg.Command = fs.Arg(0)
	cfg.Args = fs.Args()[1:]
	return cfg, nil
}

// Run executes the selected command.
func Run(ctx context.Context, cfg Config, out, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if cfg.lookup == nil {
		cfg.lookup = func(string) (string, bool) { return "", false }
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	level := "warn"
	if cfg.Verbose {
		level = "debug"
	}
	logger := slogx.New(slogx.Config{
		Service: "invitectl",
		Level:   level,
		Format:  "text",
		Output:  errOut,
	})

	if cfg.Command == "token" {
		return runToken(cfg, out, errOut)
	}

	if cfg.Token == "" {
		return errors.New("no access token: pass -token or set AURORA_TOKEN")
	}

	session := invitesdk.NewSDKClient(cfg.URL).NewSession(cfg.Token)
	store := state.New(session, state.WithLogger(logger))
	p := printer{out: out, json: cfg.JSON, now: store.Now}

	switch cfg.Command {
	case "list":
		return runList(ctx, store, cfg.Args, p, errOut)
	case "get":
		return runGet(ctx, store, cfg.Args, p)
	case "stats":
		return runStats(ctx, store, p)
	case "create":
		return runCreate(ctx, store, cfg.Args, p, errOut)
	case "resend":
		return runResend(ctx, store, cfg.Args, p)
	case "revoke":
		return runRevoke(ctx, store, cfg.Args, p)
	case "accept":
		return runAccept(ctx, store, cfg.Args, p)
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cfg.Command)
	}
}

// failure turns the facade's error slot into an error.
func failure(f *facade.Facade, op string) error {
	if msg := f.Err(); msg != "" {
		return fmt.Errorf("%s: %s", op, msg)
	}
	return fmt.Errorf("%s failed", op)
}

func oneArg(args []string, name string) (string, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return "", fmt.Errorf("%w: expected exactly one %s", ErrUsage, name)
	}
	return args[0], nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envOrDefault(lookup EnvLookup, key, def string) string {
	if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}
