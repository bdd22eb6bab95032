package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/chasecam/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageSpawnAndGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1, Y: 2, Z: 3}, Name{Value: "player"})

	pos := ecs.ReadComponent[Position](storage, id)
	require.NotNil(t, pos)
	assert.Equal(t, Position{X: 1, Y: 2, Z: 3}, *pos)

	name := ecs.ReadComponent[Name](storage, id)
	require.NotNil(t, name)
	assert.Equal(t, "player", name.Value)

	assert.Nil(t, ecs.ReadComponent[Heading](storage, id))
	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Name]()))
	assert.False(t, storage.HasComponent(id, reflect.TypeFor[Heading]()))
}

func TestStorageSpawnPointerComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	src := &Position{X: 5}
	id := storage.Spawn(src)
	src.X = 99

	assert.Equal(t, float32(5), ecs.ReadComponent[Position](storage, id).X)
}

func TestStorageComponentOrderDoesNotMatter(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{}, Name{})
	b := storage.Spawn(Name{}, Position{})

	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
	assert.NotEqual(t, a.Index(), b.Index())
}

func TestStorageSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn() })
	assert.Panics(t, func() { storage.Spawn(map[string]int{}) })
	assert.Panics(t, func() { storage.Spawn(Moved{}) }, "unregistered component")
}

func TestStorageDeleteReusesSlot(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{X: 1})
	second := storage.Spawn(Position{X: 2})

	storage.Delete(first)
	assert.False(t, storage.Alive(first))
	assert.True(t, storage.Alive(second))
	assert.Nil(t, ecs.ReadComponent[Position](storage, first))

	third := storage.Spawn(Position{X: 3})
	assert.Equal(t, first, third)
	assert.Equal(t, float32(3), ecs.ReadComponent[Position](storage, third).X)

	storage.Delete(ecs.NewEntityId(12345, 0))
}

func TestStorageAddComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 7}, Name{Value: "cube"})
	other := storage.Spawn(Position{X: 8}, Name{Value: "plane"})

	moved := storage.AddComponent(id, Leader{})
	require.NotEqual(t, id, moved)

	assert.False(t, storage.Alive(id))
	assert.True(t, storage.Alive(moved))
	assert.Equal(t, float32(7), ecs.ReadComponent[Position](storage, moved).X)
	assert.Equal(t, "cube", ecs.ReadComponent[Name](storage, moved).Value)
	assert.NotNil(t, ecs.ReadComponent[Leader](storage, moved))

	assert.Equal(t, "plane", ecs.ReadComponent[Name](storage, other).Value)

	same := storage.AddComponent(moved, Name{Value: "box"})
	assert.Equal(t, moved, same)
	assert.Equal(t, "box", ecs.ReadComponent[Name](storage, same).Value)
}

func TestEntityRefFollowsMoves(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1})
	ref := storage.CreateEntityRef(id)
	require.NotNil(t, ref)
	assert.Same(t, ref, storage.CreateEntityRef(id))

	moved := storage.AddComponent(id, Leader{})
	resolved, ok := storage.ResolveEntityRef(ref)
	require.True(t, ok)
	assert.Equal(t, moved, resolved)

	storage.Delete(moved)
	_, ok = storage.ResolveEntityRef(ref)
	assert.False(t, ok)
}

func TestEntityRefInvalidate(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{})
	ref := storage.CreateEntityRef(id)

	assert.True(t, storage.InvalidateEntityRef(ref))
	assert.False(t, storage.InvalidateEntityRef(ref))
	_, ok := storage.ResolveEntityRef(ref)
	assert.False(t, ok)
	assert.True(t, storage.Alive(id))

	assert.Nil(t, storage.CreateEntityRef(ecs.NewEntityId(4242, 0)))
	_, ok = storage.ResolveEntityRef(nil)
	assert.False(t, ok)
}

func TestEntityIdPacking(t *testing.T) {
	id := ecs.NewEntityId(0xDEADBEEF, 42)
	assert.Equal(t, uint32(0xDEADBEEF), id.ArchetypeId())
	assert.Equal(t, uint32(42), id.Index())
}

func TestStorageArchetypesInCreationOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Name{})
	storage.Spawn(Position{})
	storage.Spawn(Position{}, Name{})

	var lens []int
	for a := range storage.Archetypes() {
		lens = append(lens, len(a.Types()))
	}
	assert.Equal(t, []int{1, 1, 2}, lens)

	arch := storage.GetArchetypeByTypes([]reflect.Type{reflect.TypeFor[Position](), reflect.TypeFor[Name]()})
	require.NotNil(t, arch)
	assert.Equal(t, 1, arch.Len())
	assert.Same(t, arch, storage.GetArchetype(Name{}, Position{}))
}
