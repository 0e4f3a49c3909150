package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("BCRYPT_COST", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.GreaterOrEqual(t, cfg.HashWorkers, 1)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{
			name:    "missing secret",
			env:     map[string]string{"JWT_SECRET": ""},
			wantErr: ErrMissingJWTSecret,
		},
		{
			name:    "unparseable ttl",
			env:     map[string]string{"JWT_SECRET": "s", "TOKEN_TTL": "soon"},
			wantErr: ErrInvalidTokenTTL,
		},
		{
			name:    "negative ttl",
			env:     map[string]string{"JWT_SECRET": "s", "TOKEN_TTL": "-5m"},
			wantErr: ErrInvalidTokenTTL,
		},
		{
			name:    "unknown driver",
			env:     map[string]string{"JWT_SECRET": "s", "TOKEN_TTL": "1h", "DB_DRIVER": "mongo"},
			wantErr: ErrUnsupportedDriver,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load()
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("BCRYPT_COST", "99")
	t.Setenv("HASH_WORKERS", "0")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 31, cfg.BcryptCost)
	assert.Equal(t, 1, cfg.HashWorkers)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigins)
}
