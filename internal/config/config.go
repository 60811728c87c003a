// Package config resolves the effective runtime configuration by overlaying
// a persisted JSON override onto built-in defaults and environment values.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/foodmap/foodmap/pkg/errors"
	"github.com/foodmap/foodmap/pkg/logging"
)

const (
	// DefaultStateDirName is the per-user state directory under $HOME.
	DefaultStateDirName = ".foodmap"

	configFileName   = "config.json"
	logLevelFileName = "loglevel"
)

// Config is the effective runtime configuration. By construction every field
// resolves to a default when unset; a Config is never partially invalid.
type Config struct {
	SupabaseURL        string `json:"supabaseUrl"`
	SupabaseAnonKey    string `json:"supabaseAnonKey"`
	AmapKey            string `json:"amapKey"`
	AmapSecurityJSCode string `json:"amapSecurityJsCode"`
	AmapRestKey        string `json:"amapRestKey"`
}

// Patch is a partial configuration override. Nil fields are left unchanged.
type Patch struct {
	SupabaseURL        *string `json:"supabaseUrl,omitempty"`
	SupabaseAnonKey    *string `json:"supabaseAnonKey,omitempty"`
	AmapKey            *string `json:"amapKey,omitempty"`
	AmapSecurityJSCode *string `json:"amapSecurityJsCode,omitempty"`
	AmapRestKey        *string `json:"amapRestKey,omitempty"`
}

// Resolver produces the effective configuration for a state directory.
type Resolver struct {
	dir string
}

// NewResolver creates a resolver rooted at dir. An empty dir resolves to
// DefaultStateDirName under the user's home directory.
func NewResolver(dir string) *Resolver {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dir = filepath.Join(home, DefaultStateDirName)
	}
	return &Resolver{dir: dir}
}

// Dir returns the state directory the resolver is rooted at.
func (r *Resolver) Dir() string {
	return r.dir
}

// Effective returns the effective configuration. It always succeeds: a
// missing or malformed override file degrades fully to defaults rather than
// a partial merge of garbage.
func (r *Resolver) Effective() Config {
	cfg := defaults()

	raw, err := os.ReadFile(filepath.Join(r.dir, configFileName))
	if err != nil {
		return cfg
	}

	var saved Patch
	if err := json.Unmarshal(raw, &saved); err != nil {
		logging.Debug().Err(err).Msg("config override malformed, using defaults")
		return cfg
	}
	return apply(cfg, saved)
}

// Save merges patch into the current effective configuration and persists
// the result atomically. Returns the new effective configuration.
func (r *Resolver) Save(patch Patch) (Config, error) {
	next := apply(r.Effective(), patch)

	data, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return next, errors.WrapParse("json", "config", err)
	}
	if err := writeFileAtomic(filepath.Join(r.dir, configFileName), data); err != nil {
		return next, err
	}
	return next, nil
}

// LogLevel returns the persisted log verbosity, or "info" when unset.
func (r *Resolver) LogLevel() string {
	raw, err := os.ReadFile(filepath.Join(r.dir, logLevelFileName))
	if err != nil {
		return "info"
	}
	level := strings.TrimSpace(string(raw))
	if level == "" {
		return "info"
	}
	return level
}

// SaveLogLevel persists the active log verbosity as a plain string.
func (r *Resolver) SaveLogLevel(level string) error {
	return writeFileAtomic(filepath.Join(r.dir, logLevelFileName), []byte(level))
}

// defaults returns the built-in defaults overlaid with environment values.
// Viper carries the env bindings set up by the CLI; direct env lookups keep
// library use working without viper initialization.
func defaults() Config {
	return Config{
		SupabaseURL:        envString("supabase_url", "SUPABASE_URL"),
		SupabaseAnonKey:    envString("supabase_anon_key", "SUPABASE_ANON_KEY"),
		AmapKey:            envString("amap_key", "AMAP_KEY"),
		AmapSecurityJSCode: envString("amap_security_js_code", "AMAP_SECURITY_JS_CODE"),
		AmapRestKey:        envString("amap_rest_key", "AMAP_REST_KEY"),
	}
}

func envString(viperKey, envKey string) string {
	if v := viper.GetString(viperKey); v != "" {
		return v
	}
	return os.Getenv(envKey)
}

func apply(cfg Config, patch Patch) Config {
	if patch.SupabaseURL != nil {
		cfg.SupabaseURL = *patch.SupabaseURL
	}
	if patch.SupabaseAnonKey != nil {
		cfg.SupabaseAnonKey = *patch.SupabaseAnonKey
	}
	if patch.AmapKey != nil {
		cfg.AmapKey = *patch.AmapKey
	}
	if patch.AmapSecurityJSCode != nil {
		cfg.AmapSecurityJSCode = *patch.AmapSecurityJSCode
	}
	if patch.AmapRestKey != nil {
		cfg.AmapRestKey = *patch.AmapRestKey
	}
	return cfg
}

// writeFileAtomic writes data via a temp file and rename so readers never
// observe a partial file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapIO("create", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return errors.WrapIO("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.WrapIO("close", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.WrapIO("rename", path, err)
	}
	return nil
}

// WriteFileAtomic is exported for sibling stores that persist snapshots in
// the same state directory.
func WriteFileAtomic(path string, data []byte) error {
	return writeFileAtomic(path, data)
}
