package ecs_test

import (
	"testing"

	"github.com/plus3/chasecam/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewRequiredAndOptional(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	withName := storage.Spawn(Position{X: 1}, Name{Value: "a"})
	withoutName := storage.Spawn(Position{X: 2})
	storage.Spawn(Name{Value: "no position"})

	view := ecs.NewView[struct {
		*Position
		Name *Name `ecs:"optional"`
	}](storage)

	seen := map[ecs.EntityId]*Name{}
	for id, item := range view.Iter() {
		require.NotNil(t, item.Position)
		seen[id] = item.Name
	}

	require.Len(t, seen, 2)
	assert.Equal(t, "a", seen[withName].Value)
	assert.Nil(t, seen[withoutName])
}

func TestViewEntityIdField(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{X: 1}, Leader{})
	b := storage.Spawn(Position{X: 2}, Leader{})

	view := ecs.NewView[struct {
		ecs.EntityId
		*Position
		*Leader
	}](storage)

	var ids []ecs.EntityId
	for item := range view.Values() {
		ids = append(ids, item.EntityId)
	}
	assert.Equal(t, []ecs.EntityId{a, b}, ids)

	named := ecs.NewView[struct {
		Id ecs.EntityId
		*Position
	}](storage)
	item := named.Get(b)
	require.NotNil(t, item)
	assert.Equal(t, b, item.Id)
	assert.Equal(t, float32(2), item.Position.X)
}

func TestViewWritesThrough(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1})

	view := ecs.NewView[struct{ *Position }](storage)
	for item := range view.Values() {
		item.Position.X += 0.5
	}

	assert.Equal(t, float32(1.5), ecs.ReadComponent[Position](storage, id).X)
}

func TestViewGetMissing(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{})

	view := ecs.NewView[struct {
		*Position
		*Heading
	}](storage)

	assert.Nil(t, view.Get(id))
	assert.Nil(t, view.Get(ecs.NewEntityId(99, 0)))
	assert.Nil(t, view.GetRef(nil))
	assert.Equal(t, 0, view.Count())
}

func TestViewGetRef(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{Y: 4})
	ref := storage.CreateEntityRef(id)
	storage.AddComponent(id, Heading{Yaw: 1})

	view := ecs.NewView[struct {
		*Position
		*Heading
	}](storage)

	item := view.GetRef(ref)
	require.NotNil(t, item)
	assert.Equal(t, float32(4), item.Position.Y)
	assert.Equal(t, float32(1), item.Heading.Yaw)
}

func TestViewSpawn(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	view := ecs.NewView[struct {
		*Position
		Name *Name `ecs:"optional"`
	}](storage)

	id := view.Spawn(struct {
		*Position
		Name *Name `ecs:"optional"`
	}{Position: &Position{Z: 3}})

	assert.Equal(t, float32(3), ecs.ReadComponent[Position](storage, id).Z)
	assert.Nil(t, ecs.ReadComponent[Name](storage, id))

	assert.Panics(t, func() {
		view.Spawn(struct {
			*Position
			Name *Name `ecs:"optional"`
		}{})
	})
}

func TestViewInvalidShapes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { ecs.NewView[int](storage) })
	assert.Panics(t, func() { ecs.NewView[struct{ P Position }](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct {
			P *Position `ecs:"sometimes"`
		}](storage)
	})
}
