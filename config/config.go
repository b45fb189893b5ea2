package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server  ServerConfig
	Zoho    ZohoConfig
	Redis   RedisConfig
	Session SessionConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

// ZohoConfig holds the Zoho OAuth client and Inventory API settings.
type ZohoConfig struct {
	ClientID       string `envconfig:"ZOHO_CLIENT_ID" required:"true"`
	ClientSecret   string `envconfig:"ZOHO_CLIENT_SECRET" required:"true"`
	RedirectURI    string `envconfig:"ZOHO_REDIRECT_URI" required:"true"`
	AccountsDomain string `envconfig:"ZOHO_ACCOUNTS_DOMAIN" default:"https://accounts.zoho.eu"`
	APIDomain      string `envconfig:"ZOHO_API_DOMAIN" default:"https://inventory.zoho.eu"`
	OrganizationID string `envconfig:"ZOHO_ORGANIZATION_ID" required:"true"`
	// DefaultVendorID receives all deficit purchase orders. Leaving it
	// empty disables the deficit-ordering feature.
	DefaultVendorID string `envconfig:"ZOHO_DEFAULT_VENDOR_ID" default:""`
	FrontendURL     string `envconfig:"ZOHO_FRONTEND_URL" default:"http://localhost:5173"`
}

// RedisConfig holds Redis connection settings for the token store.
type RedisConfig struct {
	Addresses []string `envconfig:"REDIS_ADDRESSES" default:"localhost:6379"`
	Password  string   `envconfig:"REDIS_PASSWORD" default:""`
	DB        int      `envconfig:"REDIS_DB" default:"0"`
	KeyPrefix string   `envconfig:"REDIS_KEY_PREFIX" default:"zohoserver"`
	EnableTLS bool     `envconfig:"REDIS_TLS" default:"false"`
}

// SessionConfig holds cookie session settings.
type SessionConfig struct {
	Secret string `envconfig:"SESSION_SECRET" required:"true"`
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
