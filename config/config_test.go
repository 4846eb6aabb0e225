package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ADMIN_PATH", "SITE_URL", "ADMIN_PASSWORD_HASH", "RATE_REFRESH_INTERVAL", "UPLOAD_MAX_BYTES", "JWT_SECRET"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/km-secret-panel-2025", cfg.AdminPath)
	assert.Equal(t, "https://kustommania.com", cfg.SiteURL)
	assert.Equal(t, 5*time.Minute, cfg.RateRefreshInterval)
	assert.Equal(t, int64(10<<20), cfg.UploadMaxBytes)
	assert.False(t, cfg.AdminAuthEnabled())
	assert.Empty(t, cfg.JWTSecret)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SITE_URL", "https://example.com/")
	t.Setenv("ADMIN_PATH", "panel/")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$hash")
	t.Setenv("RATE_REFRESH_INTERVAL", "90s")
	t.Setenv("LEAD_RATE_BURST", "not-a-number")
	t.Setenv("STORAGE_PUBLIC_URL", "https://cdn.example.com/img/")

	cfg := Load()
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://example.com", cfg.SiteURL)
	assert.Equal(t, "/panel", cfg.AdminPath)
	assert.True(t, cfg.AdminAuthEnabled())
	assert.Equal(t, 90*time.Second, cfg.RateRefreshInterval)
	assert.Equal(t, 5, cfg.LeadRateBurst)
	assert.Equal(t, "https://cdn.example.com/img", cfg.StoragePublicURL)
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/admin", normalizePath("/"))
	assert.Equal(t, "/admin", normalizePath(""))
	assert.Equal(t, "/a/b", normalizePath("a/b/"))
}
