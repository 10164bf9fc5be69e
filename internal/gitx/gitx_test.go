package gitx

import (
	"strings"
	"testing"
)

func TestFormatCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"plain", []string{"git", "add", "a.txt"}, "git add a.txt"},
		{
			"quoted message",
			[]string{"git", "commit", "-m", "chore(ver): bump 1.0 → 1.1"},
			`git commit -m "chore(ver): bump 1.0 → 1.1"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCmd(tt.args); got != tt.want {
				t.Errorf("FormatCmd() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunner_DryRunEchoes(t *testing.T) {
	var sb strings.Builder
	r := &Runner{DryRun: true, Out: &sb}

	if err := r.Commit("chore(ver): bump 0.1.0 → 0.2.0", false); err != nil {
		t.Fatalf("dry-run commit should never fail: %v", err)
	}
	if err := r.Tag("foo-v0.2.0", "msg", true, "", false); err != nil {
		t.Fatalf("dry-run tag should never fail: %v", err)
	}

	out := sb.String()
	if !strings.Contains(out, "DRYRUN: git commit") {
		t.Errorf("missing commit echo: %q", out)
	}
	if !strings.Contains(out, "DRYRUN: git tag foo-v0.2.0") {
		t.Errorf("missing tag echo: %q", out)
	}
	if strings.Contains(out, "EXEC:") {
		t.Errorf("dry run must not claim execution: %q", out)
	}
}

func TestRunner_CheckoutArgs(t *testing.T) {
	var sb strings.Builder
	r := &Runner{DryRun: true, Out: &sb}

	if err := r.Checkout("HEAD", []string{"a/version.go", "b/version.go"}); err != nil {
		t.Fatal(err)
	}
	want := "DRYRUN: git checkout HEAD -- a/version.go b/version.go"
	if !strings.Contains(sb.String(), want) {
		t.Errorf("checkout echo missing %q: %q", want, sb.String())
	}
}

func TestRunner_TagArgs(t *testing.T) {
	var sb strings.Builder
	r := &Runner{DryRun: true, Out: &sb}

	if err := r.Tag("p-v1.0.0", "m", true, "dev@example.com", true); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, want := range []string{"-s", "-u dev@example.com", "--force"} {
		if !strings.Contains(out, want) {
			t.Errorf("tag echo missing %q: %q", want, out)
		}
	}
}
