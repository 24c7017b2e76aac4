package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port        string     `env:"PORT" envDefault:"8000"`
	Environment string     `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string     `env:"LOG_FILE"`
	APIPrefix   string     `env:"API_PREFIX" envDefault:"/api"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	Database    DatabaseConfig    `envPrefix:"DB_"`
	RedisURL    string            `env:"REDIS_URL"`
	Auth        AuthConfig        `envPrefix:"AUTH_"`
	Casdoor     CasdoorConfig     `envPrefix:"CASDOOR_"`
	Translation TranslationConfig `envPrefix:"TRANSLATE_"`

	// UniqueEnrollments rejects a second enrollment of the same student in the same course.
	UniqueEnrollments bool `env:"ENROLLMENT_UNIQUE" envDefault:"false"`
	SeedDemoData      bool `env:"SEED_DEMO_DATA" envDefault:"false"`
}

type DatabaseConfig struct {
	Driver          string        `env:"DRIVER" envDefault:"postgres"`
	DSN             string        `env:"DSN"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"30m"`
	AutoMigrate     bool          `env:"AUTO_MIGRATE" envDefault:"true"`
}

type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`
	Issuer     string        `env:"ISSUER" envDefault:"lingua-api"`
}

type CasdoorConfig struct {
	Endpoint     string `env:"ENDPOINT"`
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	Cert         string `env:"CERTIFICATE"`
	Organization string `env:"ORGANIZATION"`
	Application  string `env:"APPLICATION"`
}

// Enabled reports whether single sign-on through Casdoor is configured.
func (c CasdoorConfig) Enabled() bool {
	return c.Endpoint != "" && c.ClientID != ""
}

type TranslationConfig struct {
	BaseURL string        `env:"BASE_URL" envDefault:"https://api.mymemory.translated.net"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"8s"`
	Email   string        `env:"EMAIL"`
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var problems []string

	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		problems = append(problems, fmt.Sprintf("DB_DRIVER must be %q or %q", DriverPostgres, DriverSQLite))
	}
	if c.Database.DSN == "" {
		problems = append(problems, "DB_DSN is required")
	}
	if c.Auth.JWTSecret == "" {
		problems = append(problems, "AUTH_JWT_SECRET is required")
	}
	if c.Auth.TokenTTL <= 0 {
		problems = append(problems, "AUTH_TOKEN_TTL must be positive")
	}
	if c.Translation.Timeout <= 0 {
		problems = append(problems, "TRANSLATE_TIMEOUT must be positive")
	}
	if !strings.HasPrefix(c.APIPrefix, "/") {
		problems = append(problems, "API_PREFIX must start with /")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
