// SPDX-License-Identifier: MPL-2.0

// Package pkgconfig loads the optional per-package configuration file and
// package metadata for a routable command-line package.
//
// The configuration file is JSON with comments; comments are stripped before
// parsing. A missing or malformed file is never an error: loading falls back
// to defaults so a package can opt in with an empty directory convention
// alone.
package pkgconfig

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/tidwall/jsonc"
)

// FileName is the per-package configuration filename.
const FileName = "routegen.config.json"

const (
	// DefaultCommandsDir is the conventional commands directory, relative to
	// the package root.
	DefaultCommandsDir = "src/commands"
	// DefaultOutput is the conventional route-map output path, relative to
	// the package root.
	DefaultOutput = "src/routes.gen.ts"
	// DefaultImportPrefix prefixes generated module specifiers, resolving
	// from the output module's directory to the commands directory.
	DefaultImportPrefix = "./commands/"
)

type (
	// Config holds the per-package overrides. Zero-valued fields mean "use
	// the default".
	Config struct {
		// CommandsDir is the commands directory, relative to the package root.
		CommandsDir string `json:"commandsDir"`
		// Output is the route-map output path, relative to the package root.
		Output string `json:"output"`
		// ImportPrefix prefixes generated module specifiers.
		ImportPrefix string `json:"importPrefix"`
	}

	// Metadata carries the application-mode defaults read from package.json.
	Metadata struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}
)

// Default returns the convention-only configuration.
func Default() Config {
	return Config{
		CommandsDir:  DefaultCommandsDir,
		Output:       DefaultOutput,
		ImportPrefix: DefaultImportPrefix,
	}
}

// Load reads the package configuration from pkgRoot. The second return value
// reports whether a configuration file was present and parseable; the Config
// itself is always usable, with unset fields filled from defaults.
func Load(fsys afero.Fs, pkgRoot string) (Config, bool) {
	cfg := Default()

	raw, err := afero.ReadFile(fsys, filepath.Join(pkgRoot, FileName))
	if err != nil {
		return cfg, false
	}

	var parsed Config
	if err := json.Unmarshal(jsonc.ToJSON(raw), &parsed); err != nil {
		// Malformed configuration recovers to defaults, never an error.
		return cfg, false
	}

	if strings.TrimSpace(parsed.CommandsDir) != "" {
		cfg.CommandsDir = parsed.CommandsDir
	}
	if strings.TrimSpace(parsed.Output) != "" {
		cfg.Output = parsed.Output
	}
	if strings.TrimSpace(parsed.ImportPrefix) != "" {
		cfg.ImportPrefix = parsed.ImportPrefix
	}
	return cfg, true
}

// LoadMetadata reads name and version from the package.json in pkgRoot.
// Absent or malformed metadata degrades to the zero value.
func LoadMetadata(fsys afero.Fs, pkgRoot string) Metadata {
	var meta Metadata
	raw, err := afero.ReadFile(fsys, filepath.Join(pkgRoot, "package.json"))
	if err != nil {
		return meta
	}
	if err := json.Unmarshal(jsonc.ToJSON(raw), &meta); err != nil {
		return Metadata{}
	}
	return meta
}
