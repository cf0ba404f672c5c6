package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func devConfig() *Config {
	return &Config{
		JWTSecret:            "dev-secret",
		Port:                 "8294",
		DBPassword:           "password",
		Env:                  "development",
		MediaMaxUploadSizeMB: 10,
	}
}

func prodConfig() *Config {
	return &Config{
		JWTSecret:            strings.Repeat("s", 48),
		Port:                 "8294",
		DBPassword:           "a-strong-password",
		DBSSLMode:            "require",
		Env:                  "production",
		MediaUploadURL:       "https://media.example.com/upload",
		MediaMaxUploadSizeMB: 10,
	}
}

func TestValidateDevelopmentDefaults(t *testing.T) {
	require.NoError(t, devConfig().Validate())
}

func TestValidateRequiredFields(t *testing.T) {
	cfg := devConfig()
	cfg.Port = ""
	assert.ErrorContains(t, cfg.Validate(), "PORT")

	cfg = devConfig()
	cfg.JWTSecret = ""
	assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")

	cfg = devConfig()
	cfg.MediaMaxUploadSizeMB = 0
	assert.ErrorContains(t, cfg.Validate(), "MEDIA_MAX_UPLOAD_SIZE_MB")
}

func TestValidateProduction(t *testing.T) {
	require.NoError(t, prodConfig().Validate())

	cfg := prodConfig()
	cfg.JWTSecret = "your-secret-key-change-in-production"
	assert.ErrorContains(t, cfg.Validate(), "default value")

	cfg = prodConfig()
	cfg.JWTSecret = "short-secret"
	assert.ErrorContains(t, cfg.Validate(), "32 characters")

	cfg = prodConfig()
	cfg.DBPassword = "password"
	assert.ErrorContains(t, cfg.Validate(), "DB_PASSWORD")

	cfg = prodConfig()
	cfg.MediaUploadURL = ""
	assert.ErrorContains(t, cfg.Validate(), "MEDIA_UPLOAD_URL")
}

func TestIsProduction(t *testing.T) {
	assert.True(t, (&Config{Env: "production"}).IsProduction())
	assert.True(t, (&Config{Env: "prod"}).IsProduction())
	assert.False(t, (&Config{Env: "development"}).IsProduction())
	assert.False(t, (&Config{Env: ""}).IsProduction())
}
