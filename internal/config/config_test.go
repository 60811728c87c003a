package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodmap/foodmap/internal/config"
)

func strptr(s string) *string { return &s }

func TestEffectiveDefaultsWhenNoOverride(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("AMAP_REST_KEY", "")
	r := config.NewResolver(t.TempDir())
	cfg := r.Effective()
	assert.Equal(t, "", cfg.SupabaseURL)
	assert.Equal(t, "", cfg.AmapRestKey)
}

func TestSaveAndEffective(t *testing.T) {
	r := config.NewResolver(t.TempDir())

	saved, err := r.Save(config.Patch{
		SupabaseURL:     strptr("https://demo.supabase.co"),
		SupabaseAnonKey: strptr("eyJtest"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://demo.supabase.co", saved.SupabaseURL)

	cfg := r.Effective()
	assert.Equal(t, "https://demo.supabase.co", cfg.SupabaseURL)
	assert.Equal(t, "eyJtest", cfg.SupabaseAnonKey)
}

func TestSaveMergesFieldByField(t *testing.T) {
	r := config.NewResolver(t.TempDir())

	_, err := r.Save(config.Patch{AmapRestKey: strptr("rest-key")})
	require.NoError(t, err)
	_, err = r.Save(config.Patch{AmapKey: strptr("js-key")})
	require.NoError(t, err)

	cfg := r.Effective()
	assert.Equal(t, "rest-key", cfg.AmapRestKey)
	assert.Equal(t, "js-key", cfg.AmapKey)
}

func TestCorruptOverrideDegradesFully(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")
	t.Setenv("AMAP_KEY", "")
	t.Setenv("AMAP_SECURITY_JS_CODE", "")
	t.Setenv("AMAP_REST_KEY", "")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o644))

	r := config.NewResolver(dir)
	cfg := r.Effective()
	assert.Equal(t, config.Config{}, cfg)
}

func TestLogLevelRoundTrip(t *testing.T) {
	r := config.NewResolver(t.TempDir())
	assert.Equal(t, "info", r.LogLevel())

	require.NoError(t, r.SaveLogLevel("debug"))
	assert.Equal(t, "debug", r.LogLevel())
}
