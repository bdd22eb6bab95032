package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry knows how to build a storage column for each component type.
// Registries are per Storage so a headless simulation and the windowed game can
// run side by side with different component sets.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent makes T usable as a component. Spawning an entity with an
// unregistered type panics.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() iComponentStorage {
		return &blockStorage[T]{}
	}
}

// IsRegistered reports whether t has a storage factory.
func (r *ComponentRegistry) IsRegistered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const blockSize = 64

// blockStorage keeps components of one type in fixed-size blocks so that
// pointers handed out by Get stay valid while the column grows.
type blockStorage[T any] struct {
	blocks    []*[blockSize]T
	filled    []*[blockSize]bool
	freeSlots []int
	nextIndex int
	count     int
}

func (cs *blockStorage[T]) slot(index int) (int, int) {
	return index / blockSize, index % blockSize
}

// Append stores item (a T or *T) and returns its slot, or -1 on a type mismatch.
func (cs *blockStorage[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
	}

	b, s := cs.slot(index)
	for b >= len(cs.blocks) {
		cs.blocks = append(cs.blocks, new([blockSize]T))
		cs.filled = append(cs.filled, new([blockSize]bool))
	}

	cs.blocks[b][s] = value
	cs.filled[b][s] = true
	cs.count++
	return index
}

// Get returns a *T for the slot, or nil when the slot is empty.
func (cs *blockStorage[T]) Get(index int) any {
	if !cs.Has(index) {
		return nil
	}
	b, s := cs.slot(index)
	return &cs.blocks[b][s]
}

func (cs *blockStorage[T]) Delete(index int) {
	if !cs.Has(index) {
		return
	}
	b, s := cs.slot(index)
	var zero T
	cs.blocks[b][s] = zero
	cs.filled[b][s] = false
	cs.freeSlots = append(cs.freeSlots, index)
	cs.count--
}

func (cs *blockStorage[T]) Has(index int) bool {
	if index < 0 || index >= cs.nextIndex {
		return false
	}
	b, s := cs.slot(index)
	return cs.filled[b][s]
}

func (cs *blockStorage[T]) Len() int {
	return cs.count
}

// Iter yields occupied slots in ascending order.
func (cs *blockStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			b, s := cs.slot(i)
			if !cs.filled[b][s] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
