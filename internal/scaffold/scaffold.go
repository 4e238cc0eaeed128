// SPDX-License-Identifier: MPL-2.0

// Package scaffold provides role-appropriate starter content for newly
// created command files. Stub population (internal/repo) and the change
// watcher consume it through the Provider interface so alternate template
// sources can be injected.
package scaffold

import (
	"fmt"
	"strings"

	"routegen-cli/internal/convention"

	"github.com/lithammer/dedent"
)

// Role identifies which starter template applies to a file.
type Role int

const (
	// RoleCommand is an ordinary command file.
	RoleCommand Role = iota
	// RoleLazyCommand is a deferred-loading command file.
	RoleLazyCommand
	// RoleHandler is the companion handler of a lazy command file.
	RoleHandler
	// RoleGroup is a group configuration file.
	RoleGroup
	// RoleRoot is the root configuration file.
	RoleRoot
)

// Provider returns starter file text for a target file. filename is the
// file's basename; implementations derive route names from it.
type Provider interface {
	Render(role Role, filename string) string
}

// RoleFor classifies a filename into the template role used to stub it.
func RoleFor(filename string) Role {
	switch {
	case convention.IsRootConfigFile(filename):
		return RoleRoot
	case convention.IsGroupConfigFile(filename):
		return RoleGroup
	case convention.IsHandlerFile(filename):
		return RoleHandler
	case convention.IsLazyFile(filename):
		return RoleLazyCommand
	default:
		return RoleCommand
	}
}

// Default is the built-in template provider.
type Default struct{}

// Render implements Provider.
func (Default) Render(role Role, filename string) string {
	route := convention.FileToRouteName(filename)
	display := route
	if display == "" {
		display = convention.IndexBaseName
	}

	switch role {
	case RoleRoot:
		return trim(`
			import { defineRoot } from "@routegen/core";

			export const root = defineRoot({
				context: async () => ({}),
			});
		`)
	case RoleGroup:
		return trim(`
			import { defineRouteGroup } from "@routegen/core";

			export const group = defineRouteGroup({
				brief: "",
			});
		`)
	case RoleHandler:
		return trim(fmt.Sprintf(`
			import type { Handler } from "@routegen/core";

			export const handler: Handler = async (ctx) => {
				ctx.log.info("%s: not implemented");
			};

			export default handler;
		`, display))
	case RoleLazyCommand:
		base := strings.TrimSuffix(filename, convention.SourceExt)
		base = strings.TrimSuffix(base, convention.LazySuffix)
		return trim(fmt.Sprintf(`
			import { defineLazyCommand } from "@routegen/core";

			export const command = defineLazyCommand({
				description: "%s",
				load: () => import("./%s"),
			});
		`, display, base+convention.HandlerSuffix+convention.ModuleExt))
	default:
		return trim(fmt.Sprintf(`
			import { defineCommand } from "@routegen/core";

			export const command = defineCommand({
				description: "%s",
				run: async (ctx) => {
					ctx.log.info("%s: not implemented");
				},
			});
		`, display, display))
	}
}

// trim dedents a template literal, converts tab indentation to two-space
// indentation, and normalizes the surrounding blank lines to a single
// trailing newline.
func trim(s string) string {
	s = dedent.Dedent(s)
	s = strings.ReplaceAll(s, "\t", "  ")
	return strings.TrimSpace(s) + "\n"
}
