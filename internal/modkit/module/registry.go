package module

import (
	"sort"
	"sync"
)

// process wide registry of mounted modules, filled once in main
// safe for tests and single process composition
var (
	mu  sync.RWMutex
	reg = map[string]Module{}
)

// Register stores a module under its name, a later module with the same name wins
func Register(m Module) {
	if m == nil {
		return
	}
	mu.Lock()
	reg[m.Name()] = m
	mu.Unlock()
}

// Lookup returns the module registered under name
func Lookup(name string) (Module, bool) {
	mu.RLock()
	defer mu.RUnlock()
	m, ok := reg[name]
	return m, ok
}

// Names returns the registered module names sorted
func Names() []string {
	mu.RLock()
	out := make([]string, 0, len(reg))
	for n := range reg {
		out = append(out, n)
	}
	mu.RUnlock()
	sort.Strings(out)
	return out
}

// PortsAs finds T on the ports of the module registered under name
func PortsAs[T any](name string) (T, bool) {
	m, ok := Lookup(name)
	if !ok {
		var zero T
		return zero, false
	}
	return PortsOf[T](m)
}

// Reset clears the registry for tests
func Reset() {
	mu.Lock()
	reg = map[string]Module{}
	mu.Unlock()
}
