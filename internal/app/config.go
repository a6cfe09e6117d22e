package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete application configuration, loadable from
// environment variables (ORDERPAY_ prefix), flags, or YAML config files.
type Config struct {
	Addr        string `default:"0.0.0.0:8080" usage:"API server listen address"`
	DatabaseURL string `usage:"PostgreSQL connection URL (ORDERPAY_DATABASE_URL or DATABASE_URL)" flag:"database-url"`
	Payment     PaymentConfig
	Graceful    GracefulConfig
}

// PaymentConfig selects and configures the payment channel.
type PaymentConfig struct {
	// Mode selects the channel: "stub" charges in-process, "http" posts to a
	// remote provider.
	Mode string `default:"stub" usage:"Payment channel: stub or http" flag:"payment-mode"`
	// ProviderURL is the remote provider base URL, required in http mode.
	ProviderURL string `usage:"Payment provider base URL (http mode)" flag:"payment-provider-url"`
	// Approve controls the stub channel: true approves every charge, false
	// declines every charge.
	Approve bool `default:"true" usage:"Stub channel approves charges" flag:"payment-approve"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "ORDERPAY",
		Files:     []string{"config.yaml", "/etc/orderpay/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.DatabaseURL == "" {
		return nil, errors.New("database URL is required: set ORDERPAY_DATABASE_URL or DATABASE_URL")
	}
	switch cfg.Payment.Mode {
	case "stub":
	case "http":
		if cfg.Payment.ProviderURL == "" {
			return nil, errors.New("payment provider URL is required in http mode")
		}
	default:
		return nil, errors.Errorf("unknown payment mode %q", cfg.Payment.Mode)
	}

	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables
// (Railway, Render, etc.) that use standard names like DATABASE_URL and PORT
// to the application's ORDERPAY_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.DatabaseURL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.DatabaseURL = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
