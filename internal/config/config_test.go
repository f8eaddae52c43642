package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelshare/internal/pager"
)

const sampleTOML = `
version = 1

[client]
api_url = "http://movies.test:8080"
timeout = "5s"

[ui]
units_per_column = 10

[ui.breakpoints]
medium = 600
wide = 900

[server]
jwt_secret = "0123456789abcdef0123456789abcdef"
cors_origins = ["https://a.test", "https://b.test"]

[media]
backend = "gcs"
gcs_bucket = "posters"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromPathMergesDefaults(t *testing.T) {
	path := writeConfig(t, sampleTOML)
	cfg, err := NewConfigService(path).LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "http://movies.test:8080", cfg.Client.APIURL)
	assert.Equal(t, 5*time.Second, cfg.ClientTimeout())
	assert.Equal(t, 10, cfg.UI.UnitsPerColumn)
	assert.Equal(t, 600, cfg.UI.Breakpoints.Medium)
	// untouched keys keep their defaults
	assert.Equal(t, 3, cfg.UI.Slots.Medium)
	assert.Equal(t, ":3000", cfg.Server.Addr)
	assert.Equal(t, time.Hour, cfg.TokenTTL())
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, MediaBackendGCS, cfg.Media.Backend)
	assert.NoError(t, cfg.ValidateClient())
	assert.NoError(t, cfg.ValidateServer())
}

func TestLoadFromPathMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")
	_, err := NewConfigService(path).LoadFromPath(path)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	cs := NewConfigService(filepath.Join(t.TempDir(), "config.toml"))
	cfg, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Client, cfg.Client)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, sampleTOML)
	t.Setenv("REELSHARE_API_URL", "http://env.test")
	t.Setenv("REELSHARE_UNITS_PER_COLUMN", "6")
	t.Setenv("REELSHARE_CORS_ORIGINS", "https://x.test, https://y.test")
	t.Setenv("REELSHARE_RATE_LIMIT_MAX", "7")
	t.Setenv("REELSHARE_UNKNOWN_THING", "ignored")

	cfg, err := NewConfigService(path).LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env.test", cfg.Client.APIURL)
	assert.Equal(t, 6, cfg.UI.UnitsPerColumn)
	assert.Equal(t, []string{"https://x.test", "https://y.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 7, cfg.Server.RateLimitMax)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cs := NewConfigService(path)

	cfg := DefaultConfig()
	cfg.Client.APIURL = "http://saved.test"
	cfg.UI.Slots.Wide = 5
	require.NoError(t, cs.Save(cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://saved.test", loaded.Client.APIURL)
	assert.Equal(t, 5, loaded.UI.Slots.Wide)
}

func TestPagerLayoutAndWidthUnits(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, pager.DefaultLayout(), cfg.PagerLayout())

	layout := cfg.PagerLayout()
	assert.Equal(t, 2, layout.Configure(cfg.WidthUnits(80)))
	assert.Equal(t, 3, layout.Configure(cfg.WidthUnits(120)))
	assert.Equal(t, 4, layout.Configure(cfg.WidthUnits(140)))

	cfg.UI.UnitsPerColumn = 0
	assert.Equal(t, 80, cfg.WidthUnits(80))
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UI.Breakpoints = BreakpointSettings{Medium: 900, Wide: 800}
	cfg.UI.Slots.Narrow = 0
	err := cfg.ValidateClient()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ui.breakpoints")
	assert.Contains(t, err.Error(), "ui.slots")

	cfg = DefaultConfig()
	assert.ErrorContains(t, cfg.ValidateServer(), "jwt_secret")

	cfg.Server.JWTSecret = "0123456789abcdef0123456789abcdef"
	cfg.Media.Backend = "s3"
	assert.ErrorContains(t, cfg.ValidateServer(), "unknown backend")

	cfg.Media.Backend = MediaBackendLocal
	cfg.Server.TokenTTL = "soon"
	assert.ErrorContains(t, cfg.ValidateServer(), "token_ttl")
}
