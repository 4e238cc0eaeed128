// SPDX-License-Identifier: MPL-2.0

package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"routegen-cli/internal/convention"
	"routegen-cli/internal/scaffold"

	"github.com/spf13/afero"
)

// PopulateStubFile overwrites an empty file with role-appropriate starter
// content. The role (root, group, lazy command, or ordinary command) is
// determined from the file's name. For a lazy command file the handler
// companion is stubbed as well, but only when that companion is itself
// empty.
//
// A file whose stripped content is non-empty is never altered; emptiness is
// re-checked immediately before every write.
func (s *Scanner) PopulateStubFile(path, commandsDir string) error {
	name := filepath.Base(path)
	if !convention.IsSourceFile(name) {
		return nil
	}

	wrote, err := s.writeStubIfEmpty(path, scaffold.RoleFor(name), name)
	if err != nil {
		return err
	}
	if wrote {
		s.logger.Debug("populated stub", "file", path, "commandsDir", commandsDir)
	}

	if !convention.IsLazyFile(name) {
		return nil
	}

	handlerName := convention.HandlerFileFor(name)
	handlerPath := filepath.Join(filepath.Dir(path), handlerName)
	wrote, err = s.writeStubIfEmpty(handlerPath, scaffold.RoleHandler, handlerName)
	if err != nil {
		return err
	}
	if wrote {
		s.logger.Debug("populated handler companion", "file", handlerPath)
	}
	return nil
}

// writeStubIfEmpty writes starter content to path when the file is missing
// or blank after comment stripping. It reports whether a write happened.
func (s *Scanner) writeStubIfEmpty(path string, role scaffold.Role, filename string) (bool, error) {
	raw, err := afero.ReadFile(s.fs, path)
	switch {
	case err == nil:
		if !isBlank(string(raw)) {
			return false, nil
		}
	case os.IsNotExist(err):
		// Missing companion files are created.
	default:
		return false, fmt.Errorf("read %q: %w", path, err)
	}

	content := s.templates.Render(role, filename)
	if err := s.ensureParentDir(path); err != nil {
		return false, err
	}
	if err := afero.WriteFile(s.fs, path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write stub %q: %w", path, err)
	}
	return true, nil
}
