// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Regions lists the supported upstream region codes.
var Regions = []string{"na", "eu", "fe"}

// Config is the top-level application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	SPAPI     SPAPIConfig     `yaml:"spapi"`
	Orders    OrdersConfig    `yaml:"orders"`
	Security  SecurityConfig  `yaml:"security"`
	Redis     RedisConfig     `yaml:"redis"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// SPAPIConfig defines the upstream marketplace API and OAuth settings.
type SPAPIConfig struct {
	Region        string `yaml:"region"` // na, eu, fe
	Sandbox       bool   `yaml:"sandbox"`
	ApplicationID string `yaml:"application_id"`
	ClientID      string `yaml:"client_id"`
	ClientSecret  string `yaml:"client_secret"`
	RedirectURI   string `yaml:"redirect_uri"`
	TokenURL      string `yaml:"token_url"`
	AuthURL       string `yaml:"auth_url"`
	// Endpoint overrides the region-derived data endpoint (mock servers, proxies).
	Endpoint string `yaml:"endpoint"`
	// MarketplaceOverrides replaces the default marketplace per region. The
	// shipped default for eu is the India marketplace; set eu here to use a
	// true EU storefront.
	MarketplaceOverrides map[string]string `yaml:"marketplace_overrides"`
	DraftApp             *bool             `yaml:"draft_app"`
	Timeout              time.Duration     `yaml:"timeout"`
	AuthTimeout          time.Duration     `yaml:"auth_timeout"`
	RateLimit            RateLimitConfig   `yaml:"rate_limit"`
}

// RateLimitConfig defines upstream API rate limiting settings.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// OrdersConfig defines order retrieval behavior.
type OrdersConfig struct {
	WindowDays     int           `yaml:"window_days"`
	PageSize       int           `yaml:"page_size"`
	TotalCap       int           `yaml:"total_cap"`
	PageDelay      time.Duration `yaml:"page_delay"`
	MockFallback   *bool         `yaml:"mock_fallback"`   // default: true
	RestrictedData *bool         `yaml:"restricted_data"` // default: true
}

// SecurityConfig defines OAuth state signing and token-at-rest encryption.
type SecurityConfig struct {
	StateSecret        string        `yaml:"state_secret"`
	StateTTL           time.Duration `yaml:"state_ttl"`
	TokenEncryptionKey string        `yaml:"token_encryption_key"` // 32 bytes, AES-256
}

// RedisConfig defines the optional cross-instance refresh lock.
type RedisConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	LockTTL  time.Duration `yaml:"lock_ttl"`
}

// TelemetryConfig defines OpenTelemetry tracing export.
type TelemetryConfig struct {
	Enabled       bool    `yaml:"enabled"`
	Endpoint      string  `yaml:"endpoint"`
	Insecure      bool    `yaml:"insecure"`
	SamplingRatio float64 `yaml:"sampling_ratio"`
	ServiceName   string  `yaml:"service_name"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json, pretty
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applySPAPIDefaults(&cfg.SPAPI)
	applyOrdersDefaults(&cfg.Orders)
	applySecurityDefaults(&cfg.Security)
	applyRedisDefaults(&cfg.Redis)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applySPAPIDefaults(s *SPAPIConfig) {
	if s.Region == "" {
		s.Region = "na"
	}
	if s.TokenURL == "" {
		s.TokenURL = "https://api.amazon.com/auth/o2/token"
	}
	if s.AuthURL == "" {
		s.AuthURL = "https://sellercentral.amazon.com/apps/authorize/consent"
	}
	if s.DraftApp == nil {
		s.DraftApp = boolPtr(true)
	}
	if s.Timeout == 0 {
		s.Timeout = 30 * time.Second
	}
	if s.AuthTimeout == 0 {
		s.AuthTimeout = 10 * time.Second
	}
	applyRateLimitDefaults(&s.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 0.0167 // orders endpoint restores one request per minute
	}
	if r.Burst == 0 {
		r.Burst = 20
	}
	if r.DailyLimit == 0 {
		r.DailyLimit = 5000
	}
}

func applyOrdersDefaults(o *OrdersConfig) {
	if o.WindowDays == 0 {
		o.WindowDays = 30
	}
	if o.PageSize == 0 {
		o.PageSize = 50
	}
	if o.TotalCap == 0 {
		o.TotalCap = 200
	}
	if o.PageDelay == 0 {
		o.PageDelay = 500 * time.Millisecond
	}
	if o.MockFallback == nil {
		o.MockFallback = boolPtr(true)
	}
	if o.RestrictedData == nil {
		o.RestrictedData = boolPtr(true)
	}
}

func applySecurityDefaults(s *SecurityConfig) {
	if s.StateTTL == 0 {
		s.StateTTL = 15 * time.Minute
	}
}

func applyRedisDefaults(r *RedisConfig) {
	if r.Addr == "" {
		r.Addr = "localhost:6379"
	}
	if r.LockTTL == 0 {
		r.LockTTL = 30 * time.Second
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.ServiceName == "" {
		t.ServiceName = "sellerlink"
	}
	if t.SamplingRatio == 0 {
		t.SamplingRatio = 1.0
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Database.Host == "" {
		errs = append(errs, fmt.Errorf("database.host is required"))
	}
	if cfg.Database.Name == "" {
		errs = append(errs, fmt.Errorf("database.name is required"))
	}
	if cfg.Database.User == "" {
		errs = append(errs, fmt.Errorf("database.user is required"))
	}

	if !slices.Contains(Regions, cfg.SPAPI.Region) {
		errs = append(errs, fmt.Errorf(
			"spapi.region must be one of: na, eu, fe (got %q)", cfg.SPAPI.Region,
		))
	}
	if cfg.SPAPI.ApplicationID == "" {
		errs = append(errs, fmt.Errorf("spapi.application_id is required"))
	}
	if cfg.SPAPI.ClientID == "" {
		errs = append(errs, fmt.Errorf("spapi.client_id is required"))
	}
	if cfg.SPAPI.ClientSecret == "" {
		errs = append(errs, fmt.Errorf("spapi.client_secret is required"))
	}
	if cfg.SPAPI.RedirectURI == "" {
		errs = append(errs, fmt.Errorf("spapi.redirect_uri is required"))
	}
	for region := range cfg.SPAPI.MarketplaceOverrides {
		if !slices.Contains(Regions, region) {
			errs = append(errs, fmt.Errorf(
				"spapi.marketplace_overrides has unknown region %q", region,
			))
		}
	}

	if cfg.Orders.PageSize < 1 || cfg.Orders.PageSize > 100 {
		errs = append(errs, fmt.Errorf(
			"orders.page_size must be between 1 and 100 (got %d)", cfg.Orders.PageSize,
		))
	}
	if cfg.Orders.TotalCap < cfg.Orders.PageSize {
		errs = append(errs, fmt.Errorf("orders.total_cap must be at least orders.page_size"))
	}
	if cfg.Orders.WindowDays < 1 {
		errs = append(errs, fmt.Errorf("orders.window_days must be positive"))
	}

	if len(cfg.Security.StateSecret) < 32 {
		errs = append(errs, fmt.Errorf("security.state_secret must be at least 32 bytes"))
	}
	if k := cfg.Security.TokenEncryptionKey; k != "" && len(k) != 32 {
		errs = append(errs, fmt.Errorf("security.token_encryption_key must be exactly 32 bytes"))
	}

	if cfg.Telemetry.Enabled && cfg.Telemetry.Endpoint == "" {
		errs = append(errs, fmt.Errorf("telemetry.endpoint is required when telemetry is enabled"))
	}

	return errors.Join(errs...)
}

func boolPtr(b bool) *bool {
	return &b
}
