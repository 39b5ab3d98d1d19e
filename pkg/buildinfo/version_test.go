package buildinfo

import (
	"strings"
	"testing"
)

func TestStamped(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)
	Version, Commit, Date = "v0.3.0", "abc123", "2026-10-18T00:00:00Z"

	if got, want := String(), "version: v0.3.0\ncommit: abc123\nbuilt: 2026-10-18T00:00:00Z"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := Template(); !strings.HasPrefix(got, "{{.Name}} version v0.3.0\n") {
		t.Errorf("Template() = %q", got)
	}
	if got := UserAgent(); got != "dotkit/v0.3.0" {
		t.Errorf("UserAgent() = %q, want dotkit/v0.3.0", got)
	}
}

func TestUnstamped(t *testing.T) {
	if Version != "dev" {
		t.Skipf("binary stamped with %s", Version)
	}
	if got := UserAgent(); got != "dotkit/dev" {
		t.Errorf("UserAgent() = %q, want dotkit/dev", got)
	}
}
