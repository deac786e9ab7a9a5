package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("UPLOAD_MAX_BYTES", "")
	t.Setenv("UPLOAD_DIR", "")
	t.Setenv("PORT", "")

	cfg := Load()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, BackendAuto, cfg.Storage.Backend)
	assert.Equal(t, int64(5<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, "attached_assets", cfg.Upload.Dir)
}

func TestLoadStorageBackendOverride(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", " Memory ")
	assert.Equal(t, BackendMemory, Load().Storage.Backend)

	t.Setenv("STORAGE_BACKEND", "mongo")
	assert.Equal(t, BackendAuto, Load().Storage.Backend)
}

func TestGetenvBool(t *testing.T) {
	t.Setenv("SEED_CATALOG", "yes")
	assert.True(t, getenvBool("SEED_CATALOG", false))

	t.Setenv("SEED_CATALOG", "nope")
	assert.True(t, getenvBool("SEED_CATALOG", true))
}

func TestIsProduction(t *testing.T) {
	assert.True(t, Config{Environment: "Production"}.IsProduction())
	assert.False(t, Config{Environment: "development"}.IsProduction())
}

func TestValidateStorefrontConfig(t *testing.T) {
	assert.NoError(t, validateStorefrontConfig(DefaultStorefrontConfig()))

	bad := DefaultStorefrontConfig()
	bad.Images.UploadsPrefix = "/attached_assets"
	assert.Error(t, validateStorefrontConfig(bad))

	bad = DefaultStorefrontConfig()
	bad.Images.DefaultImage = " "
	assert.Error(t, validateStorefrontConfig(bad))
}

func TestStaticHolder(t *testing.T) {
	cfg := DefaultStorefrontConfig()
	cfg.Images.UploadKeywords = []string{"matcha", "hojicha"}

	holder := NewStaticStorefrontConfigHolder(cfg)
	assert.Equal(t, []string{"matcha", "hojicha"}, holder.Get().Images.UploadKeywords)
}
