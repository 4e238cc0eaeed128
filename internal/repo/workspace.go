// SPDX-License-Identifier: MPL-2.0

package repo

import (
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// WorkspaceFileName is the workspace manifest consulted for package globs
// when the caller supplies none.
const WorkspaceFileName = "pnpm-workspace.yaml"

// defaultGlobs is the fallback when no workspace manifest is present.
var defaultGlobs = []string{"packages/*"}

// workspaceManifest is the subset of the workspace file we read.
type workspaceManifest struct {
	Packages []string `yaml:"packages"`
}

// WorkspaceGlobs returns the package globs declared in the workspace
// manifest under root. A missing or malformed manifest falls back to the
// default globs; this is never an error.
func (s *Scanner) WorkspaceGlobs(root string) []string {
	raw, err := afero.ReadFile(s.fs, filepath.Join(root, WorkspaceFileName))
	if err != nil {
		return defaultGlobs
	}

	var manifest workspaceManifest
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		s.logger.Debug("malformed workspace manifest, using default globs", "err", err)
		return defaultGlobs
	}
	if len(manifest.Packages) == 0 {
		return defaultGlobs
	}
	return manifest.Packages
}
