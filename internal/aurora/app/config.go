package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/aurora/pkg/jwtx"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseFile string `env:"AURORA_DATABASE_FILE" envDefault:"aurora.db"`
	JWTSecret    string `env:"AURORA_JWT_SECRET,required"` // HS256 secret shared with the identity service
	Issuer       string `env:"AURORA_ISSUER" envDefault:"aurora"`
	AppURL       string `env:"AURORA_APP_URL" envDefault:"http://localhost:3000"` // base of accept links
	RedisURL     string `env:"AURORA_REDIS_URL"`                                  // optional stats cache

	InvitationExpiry time.Duration `env:"AURORA_INVITATION_EXPIRY" envDefault:"168h"`
	TokenLength      int           `env:"AURORA_TOKEN_LENGTH" envDefault:"32"` // random bytes per token
	DefaultPageSize  int           `env:"AURORA_DEFAULT_PAGE_SIZE" envDefault:"50"`
	MaxPageSize      int           `env:"AURORA_MAX_PAGE_SIZE" envDefault:"100"`
	StatsCacheTTL    time.Duration `env:"AURORA_STATS_CACHE_TTL" envDefault:"30s"`

	Env                 string        `env:"ENV" envDefault:"dev"`
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat           string        `env:"LOG_FORMAT" envDefault:"json"`
	Port                int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	ExpirySweepInterval time.Duration `env:"EXPIRY_SWEEP_INTERVAL" envDefault:"1h"`
}

// LoadConfig reads the environment, preloading a .env file from the
// working directory when one exists. Variables already set win over the
// file.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot run with.
func (c Config) Validate() error {
	var errs []error

	if len(c.JWTSecret) < jwtx.MinSecretBytes {
		errs = append(errs, fmt.Errorf("AURORA_JWT_SECRET must be at least %d bytes", jwtx.MinSecretBytes))
	}
	if c.InvitationExpiry <= 0 {
		errs = append(errs, errors.New("AURORA_INVITATION_EXPIRY must be positive"))
	}
	// Encoded tokens must fit the 32-64 character range accepted on redemption.
	if c.TokenLength < 24 || c.TokenLength > 48 {
		errs = append(errs, fmt.Errorf("AURORA_TOKEN_LENGTH must be between 24 and 48, got %d", c.TokenLength))
	}
	if c.MaxPageSize <= 0 {
		errs = append(errs, errors.New("AURORA_MAX_PAGE_SIZE must be positive"))
	}
	if c.DefaultPageSize <= 0 || c.DefaultPageSize > c.MaxPageSize {
		errs = append(errs, errors.New("AURORA_DEFAULT_PAGE_SIZE must be between 1 and AURORA_MAX_PAGE_SIZE"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}

	return errors.Join(errs...)
}
