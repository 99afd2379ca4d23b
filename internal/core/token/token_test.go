package token

import (
	"regexp"
	"strings"
	"testing"
)

var hexToken = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestIssue_Format(t *testing.T) {
	tok, err := Issue()
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !hexToken.MatchString(tok) {
		t.Fatalf("unexpected token format: %q", tok)
	}
	if !WellFormed(tok) {
		t.Fatalf("issued token reported malformed: %q", tok)
	}
}

func TestIssue_Distinct(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		tok, err := Issue()
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		if _, dup := seen[tok]; dup {
			t.Fatalf("duplicate token after %d issues", i)
		}
		seen[tok] = struct{}{}
	}
}

func TestEqual(t *testing.T) {
	tok, _ := Issue()
	if !Equal(tok, tok) {
		t.Error("token must equal itself")
	}
	other, _ := Issue()
	if Equal(tok, other) {
		t.Error("distinct tokens must not compare equal")
	}
	if Equal(tok, tok[:10]) {
		t.Error("prefix must not compare equal")
	}
}

func TestWellFormed(t *testing.T) {
	cases := map[string]bool{
		"":                       false,
		"abc":                    false,
		strings.Repeat("z", 64):  false,
		strings.Repeat("ab", 32): true,
	}
	for in, want := range cases {
		if got := WellFormed(in); got != want {
			t.Errorf("WellFormed(%q) = %v, want %v", in, got, want)
		}
	}
}
