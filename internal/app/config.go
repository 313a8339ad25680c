package app

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/samber/lo"

	"github.com/raysh454/segmentd/internal/demo"
	"github.com/raysh454/segmentd/internal/logging"
	"github.com/raysh454/segmentd/internal/ratelimit"
	"github.com/raysh454/segmentd/internal/server"
)

// Config is the service configuration, read from the environment.
type Config struct {
	Host           string        `env:"SEGMENTD_HOST,default=0.0.0.0"`
	Port           int           `env:"SEGMENTD_PORT,default=8000"`
	LogLevel       string        `env:"SEGMENTD_LOG_LEVEL,default=info"`
	AllowedOrigins string        `env:"SEGMENTD_ALLOWED_ORIGINS,default=*"`
	RateLimitRPS   float64       `env:"SEGMENTD_RATE_LIMIT_RPS,default=10"`
	RateLimitBurst int           `env:"SEGMENTD_RATE_LIMIT_BURST,default=20"`
	EnableDemoMode bool          `env:"SEGMENTD_ENABLE_DEMO_MODE,default=true"`
	RequestTimeout time.Duration `env:"SEGMENTD_REQUEST_TIMEOUT,default=10s"`
	ReadTimeout    time.Duration `env:"SEGMENTD_READ_TIMEOUT,default=15s"`
	MaxConnections int           `env:"SEGMENTD_MAX_CONNECTIONS,default=256"`
	TrustProxy     bool          `env:"SEGMENTD_TRUST_PROXY,default=false"`

	// DemoSeed makes demo vectors reproducible; zero seeds from the clock.
	DemoSeed int `env:"SEGMENTD_DEMO_SEED,default=0"`

	// CatalogPath overrides the embedded segment catalog when set.
	CatalogPath string `env:"SEGMENTD_CATALOG_PATH"`
}

// DefaultConfig returns the configuration used when no variable is set.
func DefaultConfig() *Config {
	return &Config{
		Host:           "0.0.0.0",
		Port:           8000,
		LogLevel:       "info",
		AllowedOrigins: "*",
		RateLimitRPS:   10,
		RateLimitBurst: 20,
		EnableDemoMode: true,
		RequestTimeout: 10 * time.Second,
		ReadTimeout:    15 * time.Second,
		MaxConnections: 256,
	}
}

// LoadConfig reads envFiles (missing files are skipped) into the process
// environment and decodes the SEGMENTD_* variables. With no envFiles, a .env
// file in the working directory is used when present.
func LoadConfig(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if _, err := env.UnmarshalFromEnviron(cfg); err != nil {
		return nil, fmt.Errorf("decoding environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the service cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("SEGMENTD_PORT %d out of range", c.Port))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("SEGMENTD_LOG_LEVEL: %w", err))
	}
	if c.RateLimitRPS <= 0 {
		errs = append(errs, fmt.Errorf("SEGMENTD_RATE_LIMIT_RPS must be positive, got %v", c.RateLimitRPS))
	}
	if c.RateLimitBurst <= 0 {
		errs = append(errs, fmt.Errorf("SEGMENTD_RATE_LIMIT_BURST must be positive, got %d", c.RateLimitBurst))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SEGMENTD_REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout))
	}
	if c.DemoSeed < 0 {
		errs = append(errs, fmt.Errorf("SEGMENTD_DEMO_SEED must not be negative, got %d", c.DemoSeed))
	}
	if c.MaxConnections < 0 {
		errs = append(errs, fmt.Errorf("SEGMENTD_MAX_CONNECTIONS must not be negative, got %d", c.MaxConnections))
	}
	if len(c.Origins()) == 0 {
		errs = append(errs, errors.New("SEGMENTD_ALLOWED_ORIGINS is empty"))
	}
	return errors.Join(errs...)
}

// ListenAddr is the host:port the HTTP server binds.
func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Origins splits AllowedOrigins on commas, dropping blanks.
func (c *Config) Origins() []string {
	parts := lo.Map(strings.Split(c.AllowedOrigins, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
	return lo.Compact(parts)
}

// Level returns the parsed log level, defaulting to info.
func (c *Config) Level() logging.Level {
	l, _ := logging.ParseLevel(c.LogLevel)
	return l
}

// ServerConfig derives the HTTP server settings.
func (c *Config) ServerConfig() server.Config {
	return server.Config{
		ListenAddr:     c.ListenAddr(),
		AllowedOrigins: c.Origins(),
		EnableDemoMode: c.EnableDemoMode,
		TrustProxy:     c.TrustProxy,
		RequestTimeout: c.RequestTimeout,
		ReadTimeout:    c.ReadTimeout,
		RateLimit: ratelimit.Config{
			RequestsPerSecond: c.RateLimitRPS,
			Burst:             c.RateLimitBurst,
			IdleTTL:           ratelimit.DefaultConfig().IdleTTL,
		},
	}
}

// DemoConfig derives the demo generator settings.
func (c *Config) DemoConfig() demo.Config {
	cfg := demo.DefaultConfig()
	if c.DemoSeed > 0 {
		cfg.Seed = uint64(c.DemoSeed)
	}
	return cfg
}
