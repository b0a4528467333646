package version

import "testing"

func TestGetInfo_ShortensCommit(t *testing.T) {
	oldVersion, oldCommit, oldBuild := Version, CommitHash, BuildTime
	t.Cleanup(func() { Version, CommitHash, BuildTime = oldVersion, oldCommit, oldBuild })

	Version = "v1.2.3"
	CommitHash = "0123456789abcdef"
	BuildTime = "2026-01-02T03:04:05Z"

	if got, want := GetInfo(), "v1.2.3 (0123456)"; got != want {
		t.Fatalf("GetInfo() = %q, want %q", got, want)
	}
	if got, want := Detailed(), "v1.2.3 (0123456) built 2026-01-02T03:04:05Z"; got != want {
		t.Fatalf("Detailed() = %q, want %q", got, want)
	}
}
