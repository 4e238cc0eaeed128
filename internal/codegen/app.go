// SPDX-License-Identifier: MPL-2.0

package codegen

import (
	"strings"

	"routegen-cli/internal/convention"
)

// rootImport returns the specifier of the root configuration module relative
// to the generated output.
func rootImport(opts Options) string {
	return opts.ImportPrefix + convention.RootBaseName + convention.ModuleExt
}

// renderContext produces the typed route-creation helper module: it derives
// the application context type from the root configuration and re-exports a
// command factory bound to that type, so hand-written command files get
// typed contexts without importing the root module themselves.
func renderContext(opts Options) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(`import { createCommandFactory, type InferContext } from "` + RuntimeModule + `";` + "\n")
	b.WriteString(`import { root } from "` + rootImport(opts) + `";` + "\n")
	b.WriteString("\n")
	b.WriteString("export type Context = InferContext<typeof root>;\n")
	b.WriteString("\n")
	b.WriteString("export const defineCommand = createCommandFactory<Context>();\n")
	return b.String()
}

// renderApp produces the application bootstrap module. The package's declared
// name and version are baked in as defaults; the root configuration's own
// values win when set. The root configuration's context hook is exposed as
// the context-construction entry point.
func renderApp(opts Options) string {
	routes := opts.RoutesImport
	if routes == "" {
		routes = "./routes.gen.js"
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(`import { createApp } from "` + RuntimeModule + `";` + "\n")
	b.WriteString(`import { root } from "` + rootImport(opts) + `";` + "\n")
	b.WriteString(`import { routeMap } from "` + routes + `";` + "\n")
	b.WriteString("\n")
	b.WriteString("export const app = createApp({\n")
	b.WriteString(`  name: root.name ?? ` + quote(opts.PackageName) + ",\n")
	b.WriteString(`  version: root.version ?? ` + quote(opts.PackageVersion) + ",\n")
	b.WriteString("  context: root.context,\n")
	b.WriteString("  routes: routeMap,\n")
	b.WriteString("});\n")
	b.WriteString("\n")
	b.WriteString("export const createContext = () => app.createContext();\n")
	return b.String()
}

// quote wraps s in double quotes, escaping embedded quotes and backslashes.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
