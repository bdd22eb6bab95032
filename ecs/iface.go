package ecs

import "unsafe"

// iface mirrors the runtime layout of an interface value so a component
// pointer stored as `any` can be written straight into a view struct field.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}
