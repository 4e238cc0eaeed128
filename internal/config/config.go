// SPDX-License-Identifier: MPL-2.0

// Package config loads tool-level settings for routegen.
//
// Settings come from an optional routegen.yaml in the working directory and
// from ROUTEGEN_* environment variables, with environment taking precedence.
// A missing or malformed file falls back to defaults; tool configuration is
// never a fatal error.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppName is the application name.
const AppName = "routegen"

// Config holds tool-level settings shared by the generate, watch, and repo
// entry points.
type Config struct {
	// Debounce is the watch-mode quiet period before regeneration.
	Debounce time.Duration
	// AutoStub populates newly created empty files with starter content.
	AutoStub bool
	// Globs are the workspace globs for repo-wide generation. Empty means
	// "consult the workspace manifest".
	Globs []string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Debounce: 100 * time.Millisecond,
		AutoStub: true,
	}
}

// Load reads settings from routegen.yaml (if present) and the environment.
func Load() *Config {
	defaults := Default()

	v := viper.New()
	v.SetDefault("debounce", defaults.Debounce.String())
	v.SetDefault("auto_stub", defaults.AutoStub)
	v.SetDefault("globs", defaults.Globs)

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(AppName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	// Absent or unreadable tool config is the default state; environment
	// overrides still apply either way.
	_ = v.ReadInConfig()
	return fromViper(v, defaults)
}

// fromViper materializes a Config, falling back to defaults for values that
// do not parse.
func fromViper(v *viper.Viper, defaults *Config) *Config {
	cfg := *defaults

	if d := v.GetDuration("debounce"); d > 0 {
		cfg.Debounce = d
	}
	cfg.AutoStub = v.GetBool("auto_stub")
	if globs := v.GetStringSlice("globs"); len(globs) > 0 {
		cfg.Globs = globs
	}
	return &cfg
}
