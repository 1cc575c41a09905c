package userdir

import (
	"fmt"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

const defaultListenAddr = ":8080"

// EnvConfig is the environment backed Config implementation. It is
// loaded once at process start and treated as immutable afterwards.
type EnvConfig struct {
	DBURL               string
	SigningKey          string
	TokenExpirationSecs int
	ListenAddr          string
}

var _ Config = (*EnvConfig)(nil)

// NewEnvConfig reads the configuration surface from the environment:
// DB_URL, JWT_SECRET_KEY, JWT_EXP_DELTA_SECONDS and the optional
// LISTEN_ADDR.
func NewEnvConfig() (*EnvConfig, error) {
	cfg := &EnvConfig{
		DBURL:      os.Getenv("DB_URL"),
		SigningKey: os.Getenv("JWT_SECRET_KEY"),
		ListenAddr: os.Getenv("LISTEN_ADDR"),
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = defaultListenAddr
	}

	if raw := os.Getenv("JWT_EXP_DELTA_SECONDS"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXP_DELTA_SECONDS %q: %w", raw, err)
		}
		cfg.TokenExpirationSecs = secs
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration is complete enough to run
func (c *EnvConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DBURL, validation.Required),
		validation.Field(&c.SigningKey, validation.Required),
		validation.Field(&c.TokenExpirationSecs, validation.Required, validation.Min(1)),
		validation.Field(&c.ListenAddr, validation.Required),
	)
}

func (c *EnvConfig) GetDBURL() string {
	return c.DBURL
}

func (c *EnvConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c *EnvConfig) GetTokenExpiration() time.Duration {
	return time.Duration(c.TokenExpirationSecs) * time.Second
}

func (c *EnvConfig) GetListenAddr() string {
	return c.ListenAddr
}
