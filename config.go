package titulacion

import (
	"os"
	"strconv"

	goerrors "github.com/goliatone/go-errors"
	"github.com/joho/godotenv"
)

// AppConfig is the environment-backed configuration for the service.
// The signing key has no default: a process without JWT_SECRET must not
// come up, since every token it issued would be forgeable.
type AppConfig struct {
	SigningKey      string
	TokenExpiration int
	Issuer          string
	Audience        []string
	DBDriver        string
	DatabaseURL     string
	Port            string
}

// LoadConfig reads the process environment, merging in a .env file when one
// is present in the working directory.
func LoadConfig() (*AppConfig, error) {
	// best effort, env vars win
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, goerrors.New(
			"JWT_SECRET is not set",
			goerrors.CategoryOperation,
		).WithTextCode("CONFIG_MISSING_SECRET")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, goerrors.New(
			"DATABASE_URL is not set",
			goerrors.CategoryOperation,
		).WithTextCode("CONFIG_MISSING_DSN")
	}

	cfg := &AppConfig{
		SigningKey:      secret,
		TokenExpiration: 24,
		Issuer:          getenv("TOKEN_ISSUER", ""),
		DBDriver:        getenv("DB_DRIVER", "mysql"),
		DatabaseURL:     dsn,
		Port:            getenv("PORT", "3000"),
	}

	if raw := os.Getenv("TOKEN_DURATION"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			return nil, goerrors.New(
				"TOKEN_DURATION must be a positive number of hours",
				goerrors.CategoryOperation,
			).WithTextCode("CONFIG_BAD_DURATION")
		}
		cfg.TokenExpiration = hours
	}

	if aud := os.Getenv("TOKEN_AUDIENCE"); aud != "" {
		cfg.Audience = []string{aud}
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (c *AppConfig) GetSigningKey() string    { return c.SigningKey }
func (c *AppConfig) GetSigningMethod() string { return "HS256" }
func (c *AppConfig) GetContextKey() string    { return "user" }
func (c *AppConfig) GetTokenExpiration() int  { return c.TokenExpiration }
func (c *AppConfig) GetTokenLookup() string   { return "header:Authorization" }
func (c *AppConfig) GetAuthScheme() string    { return "Bearer" }
func (c *AppConfig) GetIssuer() string        { return c.Issuer }
func (c *AppConfig) GetAudience() []string    { return c.Audience }

var _ Config = (*AppConfig)(nil)
