// SPDX-License-Identifier: MPL-2.0

package codegen

import (
	"routegen-cli/internal/convention"
	"routegen-cli/internal/scanner"
)

// binding is one import declaration in a generated module: an identifier, the
// module specifier it is bound to, and whether it imports a group
// configuration rather than a command.
type binding struct {
	ident      string
	modulePath string
	isConfig   bool
}

// render returns the import declaration for the binding. Leaves use the
// named route import shape; group configurations use the named configuration
// import shape.
func (bind binding) render() string {
	if bind.isConfig {
		return `import { group as ` + bind.ident + ` } from "` + bind.modulePath + `";`
	}
	return `import { command as ` + bind.ident + ` } from "` + bind.modulePath + `";`
}

// configSuffix is appended to a group's directory identifier to form its
// configuration binding identifier.
const configSuffix = "_config"

// configIdent derives the identifier for a group configuration binding from
// the group's tree-relative directory path. Path identifiers decode
// unambiguously back to paths, so a directory identifier plus the suffix can
// never equal the identifier of any command file.
func configIdent(relDir string) string {
	return convention.PathToIdentifier(relDir) + configSuffix
}

// collectBindings walks the tree in order and emits one binding per command
// file, plus one configuration binding per group that carries a group
// configuration file. Insertion order is preserved; identifiers are derived
// from relative paths and therefore unique within one tree.
func collectBindings(nodes []*scanner.Node, opts Options) []binding {
	var out []binding
	var walk func(nodes []*scanner.Node)
	walk = func(nodes []*scanner.Node) {
		for _, n := range nodes {
			if n.IsGroup {
				if opts.HasGroupConfig != nil && opts.HasGroupConfig(n.RelPath) {
					out = append(out, binding{
						ident:      configIdent(n.RelPath),
						modulePath: opts.ImportPrefix + n.RelPath + "/" + convention.GroupBaseName + convention.ModuleExt,
						isConfig:   true,
					})
				}
				walk(n.Children)
				continue
			}
			out = append(out, binding{
				ident:      convention.PathToIdentifier(n.RelPath),
				modulePath: opts.ImportPrefix + convention.SourceToModulePath(n.RelPath),
			})
		}
	}
	walk(nodes)
	return out
}
