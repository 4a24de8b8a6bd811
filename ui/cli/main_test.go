// Copyright (c) 2026 Quillbox Team
// Confstore - profile-scoped configuration store
// This source code is licensed under the MIT license found in the LICENSE file.
package cli

import (
	"runtime/debug"
	"testing"
)

func TestParseAssignments(t *testing.T) {
	batch, err := parseAssignments([]string{"theme=dark", "pagination=25", "appLang="})
	if err != nil {
		t.Fatalf("parseAssignments failed: %v", err)
	}
	if batch["theme"] != "dark" || batch["pagination"] != "25" {
		t.Fatalf("unexpected batch: %v", batch)
	}
	// An explicit empty value is a valid assignment.
	if v, ok := batch["appLang"]; !ok || v != "" {
		t.Fatalf("empty assignment lost: %v", batch)
	}
}

func TestParseAssignments_RejectsMalformedPairs(t *testing.T) {
	for _, arg := range []string{"theme", "=dark"} {
		if _, err := parseAssignments([]string{arg}); err == nil {
			t.Fatalf("expected an error for %q", arg)
		}
	}
}

func TestResolveBuildVersion_UsesVCSSettings(t *testing.T) {
	info := &debug.BuildInfo{}
	info.Main.Version = "v1.2.3"
	info.Settings = []debug.BuildSetting{
		{Key: "vcs.revision", Value: "abc123"},
		{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
	}

	v, c, d := resolveBuildVersion(info)
	if v != "v1.2.3" || c != "abc123" || d != "2026-01-02T03:04:05Z" {
		t.Fatalf("unexpected build info: %q %q %q", v, c, d)
	}
}

func TestResolveBuildVersion_FallsBackToDefaults(t *testing.T) {
	info := &debug.BuildInfo{}
	info.Main.Version = "(devel)"

	v, c, _ := resolveBuildVersion(info)
	if v != version || c != gitCommit {
		t.Fatalf("expected linker defaults, got %q %q", v, c)
	}
}

func TestNewRootCmd_RegistersSubcommands(t *testing.T) {
	cmd := NewRootCmd()

	want := []string{"get", "show", "set", "use-defaults", "reset-encrypt",
		"profiles", "profile", "backup", "restore", "db-maintain", "version", "debug"}
	have := map[string]bool{}
	for _, sub := range cmd.Commands() {
		have[sub.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Fatalf("missing subcommand %q", name)
		}
	}
}
