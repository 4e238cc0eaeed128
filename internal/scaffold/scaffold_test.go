// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	"strings"
	"testing"
)

func TestRoleFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filename string
		want     Role
	}{
		{"__root.ts", RoleRoot},
		{"__route.ts", RoleGroup},
		{"new.lazy.ts", RoleLazyCommand},
		{"new.handler.ts", RoleHandler},
		{"new.ts", RoleCommand},
		{"index.ts", RoleCommand},
	}

	for _, tt := range tests {
		if got := RoleFor(tt.filename); got != tt.want {
			t.Errorf("RoleFor(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestRenderLazyPointsAtHandler(t *testing.T) {
	t.Parallel()

	out := Default{}.Render(RoleLazyCommand, "new.lazy.ts")
	if !strings.Contains(out, `import("./new.handler.js")`) {
		t.Errorf("lazy stub must load its handler companion:\n%s", out)
	}
}

func TestRenderStable(t *testing.T) {
	t.Parallel()

	var p Default
	for _, role := range []Role{RoleCommand, RoleLazyCommand, RoleHandler, RoleGroup, RoleRoot} {
		a := p.Render(role, "demo.ts")
		b := p.Render(role, "demo.ts")
		if a != b {
			t.Errorf("role %v renders are not deterministic", role)
		}
		if strings.TrimSpace(a) == "" {
			t.Errorf("role %v renders empty content", role)
		}
		if strings.HasPrefix(a, "\n") {
			t.Errorf("role %v starts with a blank line", role)
		}
	}
}

func TestRenderIndexDisplayName(t *testing.T) {
	t.Parallel()

	out := Default{}.Render(RoleCommand, "index.ts")
	if !strings.Contains(out, `description: "index"`) {
		t.Errorf("index stub should use the literal index display name:\n%s", out)
	}
}
