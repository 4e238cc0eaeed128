// SPDX-License-Identifier: MPL-2.0

// Package convention classifies command-directory filenames and converts
// between filenames, route names, and generated identifiers.
//
// Every function in this package is pure and total: no I/O, no state, and no
// possible failure for any string input. Malformed input degenerates to a
// best-effort result rather than an error.
package convention

import (
	"fmt"
	"strings"
)

const (
	// SourceExt is the recognized source file extension.
	SourceExt = ".ts"
	// ModuleExt is the module-resolution extension used in generated import
	// specifiers (ESM imports reference compiled output, not source).
	ModuleExt = ".js"
	// LazySuffix marks a command file whose handler loading is deferred.
	// It sits between the route name and the source extension: "new.lazy.ts".
	LazySuffix = ".lazy"
	// HandlerSuffix marks the companion file paired with a lazy command file.
	HandlerSuffix = ".handler"
	// RootBaseName is the basename (without extension) of the root
	// configuration file. At most one per command tree, at the tree root.
	RootBaseName = "__root"
	// GroupBaseName is the basename (without extension) of a group
	// configuration file. At most one per directory.
	GroupBaseName = "__route"
	// IndexBaseName is the basename that maps to the default route (the
	// empty route name) at its directory level.
	IndexBaseName = "index"
)

// RootFileName is the full root configuration filename ("__root.ts").
const RootFileName = RootBaseName + SourceExt

// GroupFileName is the full group configuration filename ("__route.ts").
const GroupFileName = GroupBaseName + SourceExt

// IsSourceFile reports whether name carries the recognized source extension.
func IsSourceFile(name string) bool {
	return strings.HasSuffix(name, SourceExt)
}

// IsRootConfigFile reports whether name is the root configuration file.
func IsRootConfigFile(name string) bool {
	return name == RootFileName
}

// IsGroupConfigFile reports whether name is a group configuration file.
func IsGroupConfigFile(name string) bool {
	return name == GroupFileName
}

// IsLazyFile reports whether name is a lazy command file ("<name>.lazy.ts").
func IsLazyFile(name string) bool {
	return IsSourceFile(name) && strings.HasSuffix(strings.TrimSuffix(name, SourceExt), LazySuffix)
}

// IsHandlerFile reports whether name is the handler companion of a lazy
// command file ("<name>.handler.ts"). Handler files never become routes.
func IsHandlerFile(name string) bool {
	return IsSourceFile(name) && strings.HasSuffix(strings.TrimSuffix(name, SourceExt), HandlerSuffix)
}

// IsCommandFile reports whether name is a routable command file: a source
// file that is not a root/group configuration file and not a handler
// companion. Lazy command files are command files.
func IsCommandFile(name string) bool {
	if !IsSourceFile(name) {
		return false
	}
	if IsRootConfigFile(name) || IsGroupConfigFile(name) || IsHandlerFile(name) {
		return false
	}
	return true
}

// FileToRouteName strips the source extension and the lazy suffix from a
// command filename and maps the index basename to the empty string (the
// default route at that directory level).
func FileToRouteName(name string) string {
	base := strings.TrimSuffix(name, SourceExt)
	base = strings.TrimSuffix(base, LazySuffix)
	if base == IndexBaseName {
		return ""
	}
	return base
}

// HandlerFileFor returns the handler companion filename for a lazy command
// filename: "new.lazy.ts" -> "new.handler.ts". For non-lazy input it still
// returns a deterministic best-effort name.
func HandlerFileFor(name string) string {
	base := strings.TrimSuffix(name, SourceExt)
	base = strings.TrimSuffix(base, LazySuffix)
	return base + HandlerSuffix + SourceExt
}

// PathToIdentifier converts a slash-separated relative file path into a
// deterministic identifier-safe token. The source extension is dropped and
// the rest is escaped character by character: letters and digits stand for
// themselves, "/" becomes "__", "-" becomes "_d", "_" becomes "_u", "."
// becomes "_o", and any other rune becomes "_x<hex>_". The escape codes are
// unambiguous to decode, so distinct non-empty relative paths always produce
// distinct identifiers.
func PathToIdentifier(relPath string) string {
	p := strings.TrimSuffix(relPath, SourceExt)
	if p == "" {
		return IndexBaseName
	}
	var b strings.Builder
	b.Grow(len(p) + 2)
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '/':
			b.WriteString("__")
		case r == '-':
			b.WriteString("_d")
		case r == '_':
			b.WriteString("_u")
		case r == '.':
			b.WriteString("_o")
		default:
			fmt.Fprintf(&b, "_x%x_", r)
		}
	}
	out := b.String()
	// Identifiers cannot start with a digit; prefix instead of failing.
	if out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}

// RouteToImportName converts a hyphenated route name into a camel-joined
// identifier ("setup-scripts" -> "setupScripts"). The empty route name maps
// to the literal identifier "index".
func RouteToImportName(route string) string {
	if route == "" {
		return IndexBaseName
	}
	parts := strings.Split(route, "-")
	var b strings.Builder
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i == 0 || b.Len() == 0 {
			b.WriteString(part)
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	if b.Len() == 0 {
		return IndexBaseName
	}
	return b.String()
}

// IsBareKey reports whether a route name can appear unquoted as an
// object-literal key in generated output: it must start with a letter,
// underscore, or dollar sign, and continue with those characters or digits.
func IsBareKey(key string) bool {
	if key == "" {
		return false
	}
	for i, r := range key {
		head := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r == '$'
		if i == 0 {
			if !head {
				return false
			}
			continue
		}
		if !head && !(r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// SourceToModulePath rewrites a source-relative path into the specifier used
// in generated imports: forward slashes, source extension replaced with the
// module-resolution extension. The lazy suffix is preserved.
func SourceToModulePath(relPath string) string {
	p := strings.ReplaceAll(relPath, "\\", "/")
	return strings.TrimSuffix(p, SourceExt) + ModuleExt
}
