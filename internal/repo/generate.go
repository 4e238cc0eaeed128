// SPDX-License-Identifier: MPL-2.0

package repo

import (
	"fmt"
	"path/filepath"
	"strings"

	"routegen-cli/internal/codegen"
	"routegen-cli/internal/convention"

	"github.com/spf13/afero"
)

// Generated module basenames emitted next to the route-map output in
// application mode.
const (
	ContextFileName = "context.gen.ts"
	AppFileName     = "app.gen.ts"
)

type (
	// GenResult reports one package's generation pass.
	GenResult struct {
		// Package is the descriptor the pass ran for.
		Package Package
		// OutputFiles lists every generated file written, in write order.
		OutputFiles []string
		// CommandFiles lists the discovered command files, relative to the
		// package's commands directory.
		CommandFiles []string
	}

	// GenerateAllOptions controls a workspace-wide generation pass.
	GenerateAllOptions struct {
		// Globs are the workspace globs to resolve; empty falls back to the
		// workspace file (or "packages/*" when that is absent too).
		Globs []string
		// Stub populates empty command/configuration files with starter
		// content before generating.
		Stub bool
		// OnPackage is invoked when a package is about to be generated.
		OnPackage func(pkg Package)
		// OnStub is invoked for every file populated with starter content.
		OnStub func(path string)
		// OnError is invoked when one package's generation fails; the pass
		// continues with the remaining packages.
		OnError func(pkg Package, err error)
	}
)

// GeneratePackage runs scan → generate → write for one package. The route
// tree is rebuilt from current disk state; output files are overwritten
// unconditionally (regeneration is byte-stable, so an unchanged tree writes
// identical bytes).
func (s *Scanner) GeneratePackage(pkg Package) (GenResult, error) {
	res, err := s.renderPackage(pkg)
	if err != nil {
		return GenResult{}, err
	}

	out := GenResult{Package: pkg, CommandFiles: res.CommandFiles}
	for _, mod := range s.outputModules(pkg, res) {
		if err := s.ensureParentDir(mod.path); err != nil {
			return GenResult{}, err
		}
		if err := afero.WriteFile(s.fs, mod.path, []byte(mod.text), 0o644); err != nil {
			return GenResult{}, fmt.Errorf("write %q: %w", mod.path, err)
		}
		out.OutputFiles = append(out.OutputFiles, mod.path)
	}
	return out, nil
}

// CheckPackage generates without writing and returns the output files whose
// on-disk content differs from the freshly generated text (missing files
// count as stale).
func (s *Scanner) CheckPackage(pkg Package) ([]string, error) {
	res, err := s.renderPackage(pkg)
	if err != nil {
		return nil, err
	}

	var stale []string
	for _, mod := range s.outputModules(pkg, res) {
		raw, err := afero.ReadFile(s.fs, mod.path)
		if err != nil || string(raw) != mod.text {
			stale = append(stale, mod.path)
		}
	}
	return stale, nil
}

// GenerateAll orchestrates workspace discovery, optional stub population,
// and per-package generation. The returned map holds one result per
// successfully generated package, keyed by package name.
func (s *Scanner) GenerateAll(root string, opts GenerateAllOptions) (map[string]GenResult, error) {
	globs := opts.Globs
	if len(globs) == 0 {
		globs = s.WorkspaceGlobs(root)
	}

	pkgs, err := s.FindPackages(root, globs)
	if err != nil {
		return nil, err
	}

	results := make(map[string]GenResult, len(pkgs))
	for _, pkg := range pkgs {
		if opts.OnPackage != nil {
			opts.OnPackage(pkg)
		}

		if opts.Stub {
			if err := s.stubPackage(pkg, opts.OnStub); err != nil {
				s.reportPackageError(pkg, err, opts.OnError)
				continue
			}
		}

		res, err := s.GeneratePackage(pkg)
		if err != nil {
			s.reportPackageError(pkg, err, opts.OnError)
			continue
		}
		results[pkg.Name] = res
	}
	return results, nil
}

// stubPackage populates every empty command/configuration file in one
// package.
func (s *Scanner) stubPackage(pkg Package, onStub func(path string)) error {
	empty, err := s.FindEmptyFiles(pkg.CommandsDir)
	if err != nil {
		return err
	}
	for _, path := range empty {
		if err := s.PopulateStubFile(path, pkg.CommandsDir); err != nil {
			return err
		}
		if onStub != nil {
			onStub(path)
		}
	}
	return nil
}

func (s *Scanner) reportPackageError(pkg Package, err error, onError func(Package, error)) {
	s.logger.Error("package generation failed", "package", pkg.Name, "err", err)
	if onError != nil {
		onError(pkg, err)
	}
}

// module pairs one generated file path with its text.
type module struct {
	path string
	text string
}

// renderPackage scans the package's commands directory and generates module
// text without writing anything.
func (s *Scanner) renderPackage(pkg Package) (codegen.Result, error) {
	tree, err := s.dirs.Scan(pkg.CommandsDir)
	if err != nil {
		return codegen.Result{}, err
	}

	opts := codegen.Options{
		ImportPrefix:   pkg.ImportPrefix,
		HasRoot:        s.dirs.HasRootConfig(pkg.CommandsDir),
		PackageName:    pkg.Meta.Name,
		PackageVersion: pkg.Meta.Version,
		RoutesImport:   routesImport(pkg.Output),
		HasGroupConfig: func(relDir string) bool {
			return s.dirs.HasGroupConfig(filepath.Join(pkg.CommandsDir, filepath.FromSlash(relDir)))
		},
	}
	return codegen.Generate(tree, opts), nil
}

// outputModules maps a generation result onto the files it produces for one
// package: the route map at the configured output path, and in application
// mode the context helper and bootstrap modules next to it.
func (s *Scanner) outputModules(pkg Package, res codegen.Result) []module {
	mods := []module{{path: pkg.Output, text: res.Routes}}
	if res.Context != "" {
		mods = append(mods, module{path: filepath.Join(filepath.Dir(pkg.Output), ContextFileName), text: res.Context})
	}
	if res.App != "" {
		mods = append(mods, module{path: filepath.Join(filepath.Dir(pkg.Output), AppFileName), text: res.App})
	}
	return mods
}

// routesImport derives the bootstrap module's import specifier for the route
// map from the output path basename ("src/routes.gen.ts" -> "./routes.gen.js").
func routesImport(output string) string {
	base := filepath.Base(output)
	return "./" + strings.TrimSuffix(base, convention.SourceExt) + convention.ModuleExt
}
