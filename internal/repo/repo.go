// SPDX-License-Identifier: MPL-2.0

// Package repo scans a multi-package workspace, detects routable
// command-line packages, and drives scan → stub → generate for each of them.
package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"routegen-cli/internal/convention"
	"routegen-cli/internal/pkgconfig"
	"routegen-cli/internal/scaffold"
	"routegen-cli/internal/scanner"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

type (
	// Package describes one routable command-line package discovered in a
	// workspace. All paths are resolved against the workspace root;
	// descriptors are built per scan and never persisted.
	Package struct {
		// Name identifies the package in results and logs: package.json
		// name when declared, directory basename otherwise.
		Name string
		// Root is the package root directory.
		Root string
		// CommandsDir is the resolved commands directory.
		CommandsDir string
		// Output is the resolved route-map output path.
		Output string
		// ImportPrefix prefixes generated module specifiers.
		ImportPrefix string
		// Meta carries application-mode name/version defaults.
		Meta pkgconfig.Metadata
	}

	// Scanner discovers and generates for workspace packages.
	Scanner struct {
		fs        afero.Fs
		dirs      *scanner.Scanner
		templates scaffold.Provider
		logger    *log.Logger
	}
)

// New returns a workspace Scanner over the given filesystem. A nil logger
// falls back to the default logger; a nil templates provider falls back to
// the built-in scaffold templates.
func New(fsys afero.Fs, templates scaffold.Provider, logger *log.Logger) *Scanner {
	if logger == nil {
		logger = log.Default()
	}
	if templates == nil {
		templates = scaffold.Default{}
	}
	return &Scanner{
		fs:        fsys,
		dirs:      scanner.New(fsys),
		templates: templates,
		logger:    logger,
	}
}

// FindPackages resolves each workspace glob under root and returns every
// routable package found. A glob match is tried as a package root itself
// first; matches that are not packages have their immediate subdirectories
// tried, so both "packages/*" and "packages" glob styles work. Directories
// that match neither detection rule are silently skipped.
func (s *Scanner) FindPackages(root string, globs []string) ([]Package, error) {
	iofs := afero.NewIOFS(afero.NewBasePathFs(s.fs, root))

	var out []Package
	seen := make(map[string]bool)

	add := func(dir string) {
		if seen[dir] {
			return
		}
		seen[dir] = true
		if pkg, ok := s.detect(dir); ok {
			out = append(out, pkg)
		}
	}

	for _, glob := range globs {
		matches, err := doublestar.Glob(iofs, glob)
		if err != nil {
			return nil, fmt.Errorf("resolve workspace glob %q: %w", glob, err)
		}
		for _, match := range matches {
			dir := filepath.Join(root, filepath.FromSlash(match))
			isDir, err := afero.DirExists(s.fs, dir)
			if err != nil || !isDir {
				continue
			}
			if seen[dir] {
				continue
			}
			if pkg, ok := s.detect(dir); ok {
				seen[dir] = true
				out = append(out, pkg)
				continue
			}
			seen[dir] = true

			entries, err := afero.ReadDir(s.fs, dir)
			if err != nil {
				continue
			}
			for _, entry := range entries {
				if entry.IsDir() {
					add(filepath.Join(dir, entry.Name()))
				}
			}
		}
	}
	return out, nil
}

// detect attempts package detection on one directory, in priority order:
// an explicit per-package configuration file whose declared commands
// directory exists, then the convention fallback of a default commands
// directory containing a root configuration file.
func (s *Scanner) detect(dir string) (Package, bool) {
	cfg, explicit := pkgconfig.Load(s.fs, dir)

	if explicit {
		if ok, err := afero.DirExists(s.fs, filepath.Join(dir, cfg.CommandsDir)); err == nil && ok {
			return s.describe(dir, cfg), true
		}
		s.logger.Debug("declared commands directory missing, trying convention",
			"package", dir, "commandsDir", cfg.CommandsDir)
	}

	rootFile := filepath.Join(dir, pkgconfig.DefaultCommandsDir, convention.RootFileName)
	if ok, err := afero.Exists(s.fs, rootFile); err == nil && ok {
		return s.describe(dir, pkgconfig.Default()), true
	}
	return Package{}, false
}

// describe builds the full descriptor for a detected package.
func (s *Scanner) describe(dir string, cfg pkgconfig.Config) Package {
	meta := pkgconfig.LoadMetadata(s.fs, dir)
	name := meta.Name
	if name == "" {
		name = filepath.Base(dir)
	}
	return Package{
		Name:         name,
		Root:         dir,
		CommandsDir:  filepath.Join(dir, cfg.CommandsDir),
		Output:       filepath.Join(dir, cfg.Output),
		ImportPrefix: cfg.ImportPrefix,
		Meta:         meta,
	}
}

// PackageAt builds a descriptor for a single package root without workspace
// discovery, using its configuration file when present and defaults
// otherwise. Used by the one-shot and watch entry points.
func (s *Scanner) PackageAt(dir string) Package {
	cfg, _ := pkgconfig.Load(s.fs, dir)
	return s.describe(dir, cfg)
}

// ensureParentDir creates the parent directory of path if missing.
func (s *Scanner) ensureParentDir(path string) error {
	parent := filepath.Dir(path)
	if err := s.fs.MkdirAll(parent, os.FileMode(0o755)); err != nil {
		return fmt.Errorf("create output directory %q: %w", parent, err)
	}
	return nil
}
