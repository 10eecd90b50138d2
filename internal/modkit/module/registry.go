package module

import "sync"

// process-wide name-to-ports map, filled while main composes modules.
// The CLI binaries and the API server both register everything they build
var (
	regMu    sync.RWMutex
	registry = map[string]any{}
)

// Register stores the port bundle under the module's name, replacing any
// earlier registration
func Register(name string, ports any) {
	regMu.Lock()
	registry[name] = ports
	regMu.Unlock()
}

// PortsAs looks up name and asserts the bundle to T
func PortsAs[T any](name string) (T, bool) {
	regMu.RLock()
	v, found := registry[name]
	regMu.RUnlock()

	var zero T
	if !found {
		return zero, false
	}
	out, ok := v.(T)
	return out, ok
}

// Reset empties the registry between tests
func Reset() {
	regMu.Lock()
	registry = map[string]any{}
	regMu.Unlock()
}
