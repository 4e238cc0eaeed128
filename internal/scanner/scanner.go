// SPDX-License-Identifier: MPL-2.0

// Package scanner walks a commands directory and produces the route tree
// used as code-generation input.
//
// The tree is rebuilt from scratch on every scan; nothing is diffed against
// a previous tree. Filesystem access goes through an injected afero.Fs so
// tests can run against an in-memory filesystem.
package scanner

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"routegen-cli/internal/convention"

	"github.com/spf13/afero"
)

type (
	// Node is one entry in the discovered route tree. A group node mirrors a
	// directory and carries children; a leaf node maps to exactly one
	// command source file.
	Node struct {
		// Name is the route segment. The empty string is the default route
		// at its directory level (from an index file).
		Name string
		// RelPath is the slash-separated path relative to the scanned root.
		RelPath string
		// AbsPath is the location on disk (or on the injected filesystem).
		AbsPath string
		// IsGroup marks directory-backed nodes with nested children.
		IsGroup bool
		// IsLazy marks leaves using the lazy-loaded naming suffix.
		IsLazy bool
		// Children holds nested nodes, present only on group nodes.
		Children []*Node
	}

	// Scanner discovers route trees on a filesystem.
	Scanner struct {
		fs afero.Fs
	}
)

// New returns a Scanner reading from the given filesystem.
func New(fsys afero.Fs) *Scanner {
	return &Scanner{fs: fsys}
}

// NewOS returns a Scanner reading from the host filesystem.
func NewOS() *Scanner {
	return New(afero.NewOsFs())
}

// Scan walks root recursively and returns the ordered route tree. A missing
// root directory is not an error; it yields an empty tree. Children appear
// in directory-listing order; the scanner does not re-sort.
func (s *Scanner) Scan(root string) ([]*Node, error) {
	exists, err := afero.DirExists(s.fs, root)
	if err != nil {
		return nil, fmt.Errorf("scan %q: %w", root, err)
	}
	if !exists {
		return nil, nil
	}
	return s.scanDir(root, "")
}

// scanDir lists one directory and recurses into subdirectories. rel is the
// slash-separated path of dir relative to the scan root ("" for the root).
func (s *Scanner) scanDir(root, rel string) ([]*Node, error) {
	dir := filepath.Join(root, filepath.FromSlash(rel))

	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %q: %w", dir, err)
	}

	var nodes []*Node
	for _, entry := range entries {
		entryRel := path.Join(rel, entry.Name())
		abs := filepath.Join(root, filepath.FromSlash(entryRel))

		if entry.IsDir() {
			children, err := s.scanDir(root, entryRel)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, &Node{
				Name:     entry.Name(),
				RelPath:  entryRel,
				AbsPath:  abs,
				IsGroup:  true,
				Children: children,
			})
			continue
		}

		// Configuration files, handler companions, and non-source files are
		// not part of the tree; callers probe for configuration presence
		// separately (HasGroupConfig / HasRootConfig).
		if !convention.IsCommandFile(entry.Name()) {
			continue
		}

		nodes = append(nodes, &Node{
			Name:    convention.FileToRouteName(entry.Name()),
			RelPath: entryRel,
			AbsPath: abs,
			IsLazy:  convention.IsLazyFile(entry.Name()),
		})
	}
	return nodes, nil
}

// HasGroupConfig reports whether dir contains a group configuration file.
func (s *Scanner) HasGroupConfig(dir string) bool {
	ok, err := afero.Exists(s.fs, filepath.Join(dir, convention.GroupFileName))
	return err == nil && ok
}

// HasRootConfig reports whether dir contains a root configuration file.
func (s *Scanner) HasRootConfig(dir string) bool {
	ok, err := afero.Exists(s.fs, filepath.Join(dir, convention.RootFileName))
	return err == nil && ok
}

// CommandFiles flattens the tree into the relative paths of every leaf, in
// tree order. The generator reports this list alongside its output.
func CommandFiles(nodes []*Node) []string {
	var out []string
	for _, n := range nodes {
		if n.IsGroup {
			out = append(out, CommandFiles(n.Children)...)
			continue
		}
		out = append(out, n.RelPath)
	}
	return out
}
