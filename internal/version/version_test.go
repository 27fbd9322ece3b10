package version

import "testing"

func TestString(t *testing.T) {
	if String() != Version {
		t.Errorf("expected bare version without commit info, got %q", String())
	}

	oldCommit, oldTime := GitCommit, BuildTime
	t.Cleanup(func() { GitCommit, BuildTime = oldCommit, oldTime })
	GitCommit, BuildTime = "abc123", "2026-01-01"
	if got, want := String(), Version+" (commit abc123, built 2026-01-01)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
