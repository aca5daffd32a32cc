package config_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finanzas/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "Finanzas", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 7, cfg.Rates.LookbackDays)
	assert.True(t, decimal.NewFromFloat(3.75).Equal(cfg.Rates.Fallback))
	assert.True(t, decimal.NewFromInt(50).Equal(cfg.Budget.DailyFloor))
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("RATES_FALLBACK", "3.81")
	t.Setenv("AUTH_WHITELIST", "a@example.com,b@example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "3.81", cfg.Rates.Fallback.String())
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.Auth.Whitelist)
}

func TestValidate(t *testing.T) {
	type testCase struct {
		name    string
		mutate  func(c *config.Config)
		wantErr bool
	}

	tests := []testCase{
		{
			name:   "Valid",
			mutate: func(c *config.Config) {},
		},
		{
			name:    "BadPort",
			mutate:  func(c *config.Config) { c.App.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "ZeroFallback",
			mutate:  func(c *config.Config) { c.Rates.Fallback = decimal.Zero },
			wantErr: true,
		},
		{
			name: "AuthWithoutSecret",
			mutate: func(c *config.Config) {
				c.Auth.Enabled = true
				c.Auth.JWTSecret = ""
				c.Auth.Whitelist = []string{"ana@example.com"}
			},
			wantErr: true,
		},
		{
			name: "AuthWithoutWhitelist",
			mutate: func(c *config.Config) {
				c.Auth.Enabled = true
				c.Auth.JWTSecret = "s3cret"
			},
			wantErr: true,
		},
		{
			name: "AuthEnabled",
			mutate: func(c *config.Config) {
				c.Auth.Enabled = true
				c.Auth.JWTSecret = "s3cret"
				c.Auth.Whitelist = []string{"ana@example.com"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestConnectionString(t *testing.T) {
	cfg := validConfig()
	cfg.DB.User = "fin"
	cfg.DB.Password = "p@ss"
	cfg.DB.Host = "db"
	cfg.DB.Port = 5433
	cfg.DB.Name = "finanzas"
	cfg.DB.SSLMode = "require"

	assert.Equal(t, "postgres://fin:p%40ss@db:5433/finanzas?sslmode=require", cfg.ConnectionString())
}

func validConfig() *config.Config {
	var c config.Config
	c.App.Port = 8080
	c.DB.MaxOpenConns = 5
	c.Rates.Fallback = decimal.NewFromFloat(3.75)
	c.Rates.LookbackDays = 7
	c.Budget.DailyFloor = decimal.NewFromInt(50)
	c.Import.MaxUploadMB = 10

	return &c
}
