// SPDX-License-Identifier: MPL-2.0

package convention

import "testing"

func TestClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		isCommand   bool
		isLazy      bool
		isHandler   bool
		isGroupConf bool
		isRootConf  bool
	}{
		{name: "foo.ts", isCommand: true},
		{name: "foo.lazy.ts", isCommand: true, isLazy: true},
		{name: "foo.handler.ts", isHandler: true},
		{name: "__root.ts", isRootConf: true},
		{name: "__route.ts", isGroupConf: true},
		{name: "index.ts", isCommand: true},
		{name: "readme.md"},
		{name: "foo.ts.bak"},
		{name: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsCommandFile(tt.name); got != tt.isCommand {
				t.Errorf("IsCommandFile(%q) = %v, want %v", tt.name, got, tt.isCommand)
			}
			if got := IsLazyFile(tt.name); got != tt.isLazy {
				t.Errorf("IsLazyFile(%q) = %v, want %v", tt.name, got, tt.isLazy)
			}
			if got := IsHandlerFile(tt.name); got != tt.isHandler {
				t.Errorf("IsHandlerFile(%q) = %v, want %v", tt.name, got, tt.isHandler)
			}
			if got := IsGroupConfigFile(tt.name); got != tt.isGroupConf {
				t.Errorf("IsGroupConfigFile(%q) = %v, want %v", tt.name, got, tt.isGroupConf)
			}
			if got := IsRootConfigFile(tt.name); got != tt.isRootConf {
				t.Errorf("IsRootConfigFile(%q) = %v, want %v", tt.name, got, tt.isRootConf)
			}
		})
	}
}

func TestFileToRouteName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"index.ts", ""},
		{"new.ts", "new"},
		{"new.lazy.ts", "new"},
		{"setup-scripts.ts", "setup-scripts"},
		{"index.lazy.ts", ""},
	}

	for _, tt := range tests {
		if got := FileToRouteName(tt.in); got != tt.want {
			t.Errorf("FileToRouteName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHandlerFileFor(t *testing.T) {
	t.Parallel()

	if got := HandlerFileFor("new.lazy.ts"); got != "new.handler.ts" {
		t.Errorf("HandlerFileFor(new.lazy.ts) = %q, want new.handler.ts", got)
	}
	if got := HandlerFileFor("deep-dive.lazy.ts"); got != "deep-dive.handler.ts" {
		t.Errorf("HandlerFileFor(deep-dive.lazy.ts) = %q", got)
	}
}

func TestPathToIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"index.ts", "index"},
		{"new.lazy.ts", "new_olazy"},
		{"setup-scripts.ts", "setup_dscripts"},
		{"build/deploy.ts", "build__deploy"},
		{"build/__route.ts", "build___u_uroute"},
		{"__root.ts", "_u_uroot"},
		{"", "index"},
		{"1password.ts", "_1password"},
		{"naïve.ts", "na_xef_ve"},
	}

	for _, tt := range tests {
		if got := PathToIdentifier(tt.in); got != tt.want {
			t.Errorf("PathToIdentifier(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestPathToIdentifierInjective checks that distinct paths from one tree do
// not collapse to the same identifier. The set deliberately pairs paths that
// differ only in separator character: a naive "everything becomes an
// underscore" mapping collapses them.
func TestPathToIdentifierInjective(t *testing.T) {
	t.Parallel()

	paths := []string{
		"index.ts",
		"new.ts",
		"new.lazy.ts",
		"setup-scripts.ts",
		"build/index.ts",
		"build/deploy.ts",
		"build/deploy.lazy.ts",
		"build/release/index.ts",
		"a-b.ts",
		"a/b.ts",
		"a_b.ts",
		"a.b.ts",
		"a__b.ts",
		"a/b/c.ts",
		"a/b-c.ts",
		"a-b/c.ts",
	}

	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		id := PathToIdentifier(p)
		if prev, ok := seen[id]; ok {
			t.Errorf("identifier collision: %q and %q both map to %q", prev, p, id)
		}
		seen[id] = p
	}
}

func TestRouteToImportName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", "index"},
		{"new", "new"},
		{"setup-scripts", "setupScripts"},
		{"a-b-c", "aBC"},
		{"-", "index"},
		{"-leading", "leading"},
	}

	for _, tt := range tests {
		if got := RouteToImportName(tt.in); got != tt.want {
			t.Errorf("RouteToImportName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsBareKey(t *testing.T) {
	t.Parallel()

	bare := []string{"new", "build", "_hidden", "$x", "v2"}
	quoted := []string{"", "setup-scripts", "2fast", "has space", "dot.name"}

	for _, k := range bare {
		if !IsBareKey(k) {
			t.Errorf("IsBareKey(%q) = false, want true", k)
		}
	}
	for _, k := range quoted {
		if IsBareKey(k) {
			t.Errorf("IsBareKey(%q) = true, want false", k)
		}
	}
}

func TestSourceToModulePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"index.ts", "index.js"},
		{"new.lazy.ts", "new.lazy.js"},
		{"build/deploy.ts", "build/deploy.js"},
		{`build\deploy.ts`, "build/deploy.js"},
	}

	for _, tt := range tests {
		if got := SourceToModulePath(tt.in); got != tt.want {
			t.Errorf("SourceToModulePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
