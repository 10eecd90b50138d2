package module

import "reflect"

// PortSet marks a module-defined bundle of ports. Concrete modules return
// their own struct (or single interface) from Ports
type PortSet = any

// PortsOf extracts an implementation of T from a module's Ports() value.
// The bundle itself is tried first, then each exported struct field.
// ok is false when nothing in the bundle implements T
func PortsOf[T any](m Module) (T, bool) {
	var zero T

	bundle := m.Ports()
	if bundle == nil {
		return zero, false
	}
	if direct, hit := bundle.(T); hit {
		return direct, true
	}

	rv := reflect.ValueOf(bundle)
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		if !field.CanInterface() {
			continue
		}
		if v, hit := field.Interface().(T); hit {
			return v, true
		}
	}
	return zero, false
}

// MustPortsOf panics when the module does not carry the requested port.
// Wiring mistakes should fail loudly at startup, not at first request
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		panic("module: requested port not found on module " + m.Name())
	}
	return v
}
