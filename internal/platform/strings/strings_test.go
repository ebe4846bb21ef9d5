package strings

import (
	"testing"

	kit "liveness/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	t.Parallel()

	// non-empty slice should be returned as-is
	in := []int{1, 2, 3}
	def := []int{9}
	got := IfEmpty(in, def)
	if len(got) != 3 || got[0] != 1 {
		t.Fatalf("IfEmpty returned wrong slice: %#v", got)
	}

	// empty slice should fall back to default
	var empty []string
	got2 := IfEmpty(empty, []string{"x"})
	if len(got2) != 1 || got2[0] != "x" {
		t.Fatalf("IfEmpty did not return default: %#v", got2)
	}
}

func TestOr(t *testing.T) {
	t.Parallel()
	if Or("  ", "d") != "d" || Or("v", "d") != "v" {
		t.Fatal("Or")
	}
}

func TestMustString(t *testing.T) {
	t.Parallel()
	if MustString("ok", "name") != "ok" {
		t.Fatal("value changed")
	}
	kit.MustPanic(t, func() { _ = MustString(" \t", "name") })
}

func TestPrefix(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"":          "/",
		"/":         "/",
		"sessions":  "/sessions",
		" /tools/ ": "/tools",
		"//a/b//":   "/a/b",
	}
	for in, want := range cases {
		if got := Prefix(in); got != want {
			t.Fatalf("Prefix(%q) = %q, want %q", in, got, want)
		}
	}
}
