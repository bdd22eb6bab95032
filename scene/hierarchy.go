package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/chasecam/ecs"
)

// maxHierarchyDepth stops parent cycles from recursing forever.
const maxHierarchyDepth = 32

// HierarchySystem writes GlobalTransform for every node: the local matrix for
// roots, parent global times local for children. A child whose parent was
// deleted is treated as a root.
type HierarchySystem struct {
	Nodes ecs.Query[struct {
		*Transform
		*GlobalTransform
	}]

	resolved map[ecs.EntityId]mgl32.Mat4
}

func (s *HierarchySystem) Execute(frame *ecs.UpdateFrame) {
	if s.resolved == nil {
		s.resolved = make(map[ecs.EntityId]mgl32.Mat4)
	}
	clear(s.resolved)

	for id, node := range s.Nodes.Iter() {
		node.GlobalTransform.Matrix = s.resolve(frame.Storage, id, 0)
	}
}

func (s *HierarchySystem) resolve(storage *ecs.Storage, id ecs.EntityId, depth int) mgl32.Mat4 {
	if m, ok := s.resolved[id]; ok {
		return m
	}

	local := ecs.ReadComponent[Transform](storage, id)
	if local == nil {
		return mgl32.Ident4()
	}
	m := local.Matrix()

	if parent := ecs.ReadComponent[Parent](storage, id); parent != nil && depth < maxHierarchyDepth {
		if parentId, ok := storage.ResolveEntityRef(parent.Ref); ok && parentId != id {
			m = s.resolve(storage, parentId, depth+1).Mul4(m)
		}
	}

	s.resolved[id] = m
	return m
}
