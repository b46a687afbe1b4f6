package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port           int           `envconfig:"PORT" default:"8080"`
	BasePath       string        `envconfig:"BASE_PATH" default:"/api"`
	PublicURL      string        `envconfig:"PUBLIC_URL" default:"http://localhost:8080"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	Environment    string        `envconfig:"ENVIRONMENT" default:"development"`
	Version        string        `envconfig:"VERSION" default:"dev"`
	DatabaseURL    string        `envconfig:"DATABASE_URL" required:"true"`
	MigrateOnStart bool          `envconfig:"MIGRATE_ON_START" default:"true"`
	CarKeyColumn   string        `envconfig:"CAR_KEY_COLUMN" default:"id"`
	JWTSecret      string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL       time.Duration `envconfig:"TOKEN_TTL" default:"2h"`
	IdentityURL    string        `envconfig:"IDENTITY_URL" required:"true"`
	IdentityKey    string        `envconfig:"IDENTITY_SERVICE_KEY" default:""`
	RateLimitRate  float64       `envconfig:"RATE_LIMIT_RATE" default:"100"`
	RateLimitBurst int           `envconfig:"RATE_LIMIT_BURST" default:"20"`
}

// Load reads configuration from environment variables into a Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	cfg.BasePath = "/" + strings.Trim(cfg.BasePath, "/")

	// The cars table key column differs between deployments; anything else
	// would be interpolated into SQL, so reject it here.
	switch cfg.CarKeyColumn {
	case "id", "car_id":
	default:
		return nil, fmt.Errorf("CAR_KEY_COLUMN must be \"id\" or \"car_id\", got %q", cfg.CarKeyColumn)
	}

	return &cfg, nil
}

// IsProduction reports whether the service runs in production mode.
// Error responses include diagnostic detail only outside production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
