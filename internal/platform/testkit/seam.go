package testkit

import (
	"sync"
	"testing"
)

// process state shared by tests: env vars, the module registry, package level seams
var processMu sync.Mutex

// Swap replaces *target until the test ends
func Swap[T any](t testing.TB, target *T, replacement T) {
	t.Helper()
	orig := *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
}

// Serial holds the process lock until the test ends
// tests that touch process state take it so parallel tests cannot observe each other
func Serial(t testing.TB) {
	t.Helper()
	processMu.Lock()
	t.Cleanup(processMu.Unlock)
}

// Env sets key value pairs for the test; an empty value hides an inherited setting
func Env(t testing.TB, kv ...string) {
	t.Helper()
	if len(kv)%2 != 0 {
		t.Fatalf("testkit.Env: odd number of arguments %v", kv)
	}
	for i := 0; i < len(kv); i += 2 {
		t.Setenv(kv[i], kv[i+1])
	}
}
