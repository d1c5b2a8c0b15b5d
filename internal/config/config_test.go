package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseYAML = `
database:
  host: localhost
  name: testdb
  user: testuser
spapi:
  application_id: amzn1.sp.solution.test
  client_id: amzn1.application-oa2-client.test
  client_secret: test-secret
  redirect_uri: https://example.com/api/v1/oauth/callback
security:
  state_secret: 0123456789abcdef0123456789abcdef
`

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid minimal config",
			yaml: baseYAML,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, "amzn1.sp.solution.test", cfg.SPAPI.ApplicationID)
				assert.Equal(t, "amzn1.application-oa2-client.test", cfg.SPAPI.ClientID)
				assert.Equal(t, "https://example.com/api/v1/oauth/callback", cfg.SPAPI.RedirectURI)
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: baseYAML,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, "na", cfg.SPAPI.Region)
				assert.False(t, cfg.SPAPI.Sandbox)
				assert.Equal(t, "https://api.amazon.com/auth/o2/token", cfg.SPAPI.TokenURL)
				assert.Equal(t, 30*time.Second, cfg.SPAPI.Timeout)
				assert.Equal(t, 10*time.Second, cfg.SPAPI.AuthTimeout)
				require.NotNil(t, cfg.SPAPI.DraftApp)
				assert.True(t, *cfg.SPAPI.DraftApp)
				assert.Equal(t, 20, cfg.SPAPI.RateLimit.Burst)
				assert.Equal(t, 30, cfg.Orders.WindowDays)
				assert.Equal(t, 50, cfg.Orders.PageSize)
				assert.Equal(t, 200, cfg.Orders.TotalCap)
				assert.Equal(t, 500*time.Millisecond, cfg.Orders.PageDelay)
				require.NotNil(t, cfg.Orders.MockFallback)
				assert.True(t, *cfg.Orders.MockFallback)
				require.NotNil(t, cfg.Orders.RestrictedData)
				assert.True(t, *cfg.Orders.RestrictedData)
				assert.Equal(t, 15*time.Minute, cfg.Security.StateTTL)
				assert.Equal(t, 30*time.Second, cfg.Redis.LockTTL)
				assert.Equal(t, "sellerlink", cfg.Telemetry.ServiceName)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "explicit toggles are kept",
			yaml: baseYAML + `
orders:
  mock_fallback: false
  restricted_data: false
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.False(t, *cfg.Orders.MockFallback)
				assert.False(t, *cfg.Orders.RestrictedData)
			},
		},
		{
			name: "env var substitution",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
spapi:
  application_id: app
  client_id: client
  client_secret: "${TEST_SPAPI_SECRET}"
  redirect_uri: https://example.com/cb
security:
  state_secret: 0123456789abcdef0123456789abcdef
`,
			envVars: map[string]string{
				"TEST_SPAPI_SECRET": "secret123",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "secret123", cfg.SPAPI.ClientSecret)
			},
		},
		{
			name: "eu region with marketplace override",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
spapi:
  region: eu
  sandbox: true
  application_id: app
  client_id: client
  client_secret: secret
  redirect_uri: https://example.com/cb
  marketplace_overrides:
    eu: A1PA6795UKMFR9
security:
  state_secret: 0123456789abcdef0123456789abcdef
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "eu", cfg.SPAPI.Region)
				assert.True(t, cfg.SPAPI.Sandbox)
				assert.Equal(t, "A1PA6795UKMFR9", cfg.SPAPI.MarketplaceOverrides["eu"])
			},
		},
		{
			name: "missing required database.host",
			yaml: `
database:
  name: testdb
  user: testuser
spapi:
  application_id: app
  client_id: client
  client_secret: secret
  redirect_uri: https://example.com/cb
security:
  state_secret: 0123456789abcdef0123456789abcdef
`,
			wantErr: "database.host is required",
		},
		{
			name: "missing oauth client values",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
security:
  state_secret: 0123456789abcdef0123456789abcdef
`,
			wantErr: "spapi.application_id is required",
		},
		{
			name: "missing redirect uri",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
spapi:
  application_id: app
  client_id: client
  client_secret: secret
security:
  state_secret: 0123456789abcdef0123456789abcdef
`,
			wantErr: "spapi.redirect_uri is required",
		},
		{
			name: "invalid region",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
spapi:
  region: sa
  application_id: app
  client_id: client
  client_secret: secret
  redirect_uri: https://example.com/cb
security:
  state_secret: 0123456789abcdef0123456789abcdef
`,
			wantErr: `spapi.region must be one of: na, eu, fe (got "sa")`,
		},
		{
			name: "unknown marketplace override region",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
spapi:
  application_id: app
  client_id: client
  client_secret: secret
  redirect_uri: https://example.com/cb
  marketplace_overrides:
    br: A2Q3Y263D00KWC
security:
  state_secret: 0123456789abcdef0123456789abcdef
`,
			wantErr: `spapi.marketplace_overrides has unknown region "br"`,
		},
		{
			name: "page size above upstream maximum",
			yaml: baseYAML + `
orders:
  page_size: 150
  total_cap: 300
`,
			wantErr: "orders.page_size must be between 1 and 100 (got 150)",
		},
		{
			name: "short state secret",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
spapi:
  application_id: app
  client_id: client
  client_secret: secret
  redirect_uri: https://example.com/cb
security:
  state_secret: short
`,
			wantErr: "security.state_secret must be at least 32 bytes",
		},
		{
			name: "bad encryption key length",
			yaml: baseYAML + `  token_encryption_key: tooshort
`,
			wantErr: "security.token_encryption_key must be exactly 32 bytes",
		},
		{
			name: "telemetry enabled without endpoint",
			yaml: baseYAML + `
telemetry:
  enabled: true
`,
			wantErr: "telemetry.endpoint is required when telemetry is enabled",
		},
		{
			name: "custom logging config",
			yaml: baseYAML + `
logging:
  level: debug
  format: json
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Only parallelize tests that don't modify env vars.
			if len(tt.envVars) == 0 {
				t.Parallel()
			}

			// Set env vars for this test.
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			// Write YAML to a temp file.
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Parallel()

	d := DatabaseConfig{
		Host:     "db.example.com",
		Port:     5433,
		Name:     "sellerlink",
		User:     "admin",
		Password: "s3cret",
		SSLMode:  "require",
	}
	assert.Equal(
		t,
		"host=db.example.com port=5433 dbname=sellerlink user=admin password=s3cret sslmode=require",
		d.DSN(),
	)
}
