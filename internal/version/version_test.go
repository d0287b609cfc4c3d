package version

import (
	"testing"

	"github.com/fatih/color"
)

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate, origNoColor := Version, GitCommit, BuildDate, color.NoColor
	Version, GitCommit, BuildDate = v, commit, date
	color.NoColor = true
	t.Cleanup(func() {
		Version, GitCommit, BuildDate, color.NoColor = origVersion, origCommit, origDate, origNoColor
	})
}

func TestColoredPlainWhenDisabled(t *testing.T) {
	withVersion(t, "1.2.3-rc.1", "", "")
	if got := Colored(); got != "1.2.3-rc.1" {
		t.Fatalf("Colored() = %q", got)
	}
}

func TestColoredAddsEscapes(t *testing.T) {
	withVersion(t, "1.2.3", "", "")
	color.NoColor = false
	got := Colored()
	if got == "1.2.3" || len(got) <= len("1.2.3") {
		t.Fatalf("expected ANSI escapes, got %q", got)
	}
}

func TestInfo(t *testing.T) {
	tests := []struct {
		commit, date string
		want         string
	}{
		{"", "", "rxvar 0.1.0-dev"},
		{"abc123", "", "rxvar 0.1.0-dev (abc123)"},
		{"abc123", "2026-01-15", "rxvar 0.1.0-dev (abc123) built 2026-01-15"},
	}
	for _, tt := range tests {
		withVersion(t, "0.1.0-dev", tt.commit, tt.date)
		if got := Info(); got != tt.want {
			t.Errorf("Info() = %q, want %q", got, tt.want)
		}
	}
}
