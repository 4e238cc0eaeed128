// SPDX-License-Identifier: MPL-2.0

// Package codegen renders a discovered route tree into generated TypeScript
// module text.
//
// Generation is pure: for a fixed tree and options the output is
// byte-identical across runs. There are no timestamps, no randomness, and
// ordering follows tree insertion order throughout. Writing the result to
// disk is the caller's job.
package codegen

import (
	"strings"

	"routegen-cli/internal/convention"
	"routegen-cli/internal/scanner"
)

// RuntimeModule is the module specifier of the external runtime package that
// consumes the generated route map.
const RuntimeModule = "@routegen/core"

// header is the first line of every generated module.
const header = "// Generated by routegen. DO NOT EDIT.\n"

type (
	// Options controls one generation pass.
	Options struct {
		// ImportPrefix is prepended to every generated module specifier,
		// e.g. "./commands/".
		ImportPrefix string

		// HasGroupConfig reports whether the directory at the given
		// tree-relative path contains a group configuration file. A nil
		// probe means no group has one.
		HasGroupConfig func(relDir string) bool

		// HasRoot switches generation into application mode: the context
		// helper and application bootstrap modules are rendered in addition
		// to the route map.
		HasRoot bool

		// PackageName and PackageVersion are the application-mode defaults,
		// overridable at runtime by the root configuration's own values.
		PackageName    string
		PackageVersion string

		// RoutesImport is the specifier the bootstrap module uses to import
		// the route map, e.g. "./routes.gen.js".
		RoutesImport string
	}

	// Result holds the generated module texts plus the list of command
	// source files the tree was built from.
	Result struct {
		// Routes is the route-map module. Always present.
		Routes string
		// Context is the typed route-creation helper module. Application
		// mode only; empty otherwise.
		Context string
		// App is the application bootstrap module. Application mode only;
		// empty otherwise.
		App string
		// CommandFiles lists the tree's command file paths, relative to the
		// commands directory, in tree order.
		CommandFiles []string
	}
)

// Generate renders all generated modules for the given route tree. It cannot
// fail on a well-formed tree.
func Generate(tree []*scanner.Node, opts Options) Result {
	res := Result{
		Routes:       renderRoutes(tree, opts),
		CommandFiles: scanner.CommandFiles(tree),
	}
	if opts.HasRoot {
		res.Context = renderContext(opts)
		res.App = renderApp(opts)
	}
	return res
}

// renderRoutes produces the route-map module: ordered import declarations
// followed by one exported nested route-map literal.
func renderRoutes(tree []*scanner.Node, opts Options) string {
	bindings := collectBindings(tree, opts)

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")

	if hasGroups(tree) {
		b.WriteString(`import { createGroup } from "` + RuntimeModule + `";` + "\n")
	}
	for _, bind := range bindings {
		b.WriteString(bind.render())
		b.WriteString("\n")
	}

	b.WriteString("\nexport const routeMap = {\n")
	renderMapEntries(&b, tree, opts, 1)
	b.WriteString("};\n")
	return b.String()
}

// renderMapEntries appends one "key: value," line per node at the given
// indentation depth, recursing into groups.
func renderMapEntries(b *strings.Builder, nodes []*scanner.Node, opts Options, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		b.WriteString(indent)
		b.WriteString(renderKey(n.Name))
		b.WriteString(": ")

		if !n.IsGroup {
			b.WriteString(convention.PathToIdentifier(n.RelPath))
			b.WriteString(",\n")
			continue
		}

		b.WriteString("createGroup({\n")
		renderMapEntries(b, n.Children, opts, depth+1)
		b.WriteString(indent)
		b.WriteString("}")
		if opts.HasGroupConfig != nil && opts.HasGroupConfig(n.RelPath) {
			b.WriteString(", ")
			b.WriteString(configIdent(n.RelPath))
		}
		b.WriteString("),\n")
	}
}

// renderKey quotes a route name unless it is a valid bare object-literal key.
func renderKey(name string) string {
	if convention.IsBareKey(name) {
		return name
	}
	return `"` + name + `"`
}

// hasGroups reports whether any node in the tree is a group, which decides
// whether the createGroup helper import is emitted.
func hasGroups(nodes []*scanner.Node) bool {
	for _, n := range nodes {
		if n.IsGroup {
			return true
		}
	}
	return false
}
