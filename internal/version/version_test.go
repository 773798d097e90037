package version

import "testing"

func TestShortCommit(t *testing.T) {
	t.Parallel()

	if got := shortCommit("0123456789abcdef"); got != "0123456789ab" {
		t.Fatalf("got %q", got)
	}
	if got := shortCommit("abc"); got != "abc" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveNeverEmpty(t *testing.T) {
	t.Parallel()

	if Resolve().Version == "" {
		t.Fatalf("version must not be empty")
	}
	if String() == "" {
		t.Fatalf("string must not be empty")
	}
}
