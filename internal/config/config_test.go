// SPDX-License-Identifier: MPL-2.0

package config

import (
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if cfg.Debounce != 100*time.Millisecond {
		t.Errorf("Debounce = %v, want 100ms", cfg.Debounce)
	}
	if !cfg.AutoStub {
		t.Error("AutoStub should default to true")
	}
	if len(cfg.Globs) != 0 {
		t.Errorf("Globs = %v, want empty", cfg.Globs)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("ROUTEGEN_DEBOUNCE", "250ms")
	t.Setenv("ROUTEGEN_AUTO_STUB", "false")

	cfg := Load()
	if cfg.Debounce != 250*time.Millisecond {
		t.Errorf("Debounce = %v, want 250ms", cfg.Debounce)
	}
	if cfg.AutoStub {
		t.Error("AutoStub should be overridden to false")
	}
}
