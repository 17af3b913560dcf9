package region

import (
	"github.com/google/uuid"

	"github.com/memmaker/voxedit/engine/geom"
)

// CuboidRegion is the axis-aligned block box spanned by two corners.
type CuboidRegion struct {
	world uuid.UUID
	pos1  geom.Vector
	pos2  geom.Vector
}

func NewCuboidRegion(world uuid.UUID, pos1, pos2 geom.Vector) *CuboidRegion {
	return &CuboidRegion{world: world, pos1: pos1.ToBlockPoint(), pos2: pos2.ToBlockPoint()}
}

func (r *CuboidRegion) GetWorld() uuid.UUID {
	return r.world
}

func (r *CuboidRegion) GetMinimumPoint() geom.Vector {
	return geom.GetMinimum(r.pos1, r.pos2)
}

func (r *CuboidRegion) GetMaximumPoint() geom.Vector {
	return geom.GetMaximum(r.pos1, r.pos2)
}

func (r *CuboidRegion) GetArea() int {
	return r.GetWidth() * r.GetLength()
}

func (r *CuboidRegion) GetVolume() int {
	return r.GetArea() * r.GetHeight()
}

func (r *CuboidRegion) GetWidth() int {
	return r.GetMaximumPoint().BlockX() - r.GetMinimumPoint().BlockX() + 1
}

func (r *CuboidRegion) GetHeight() int {
	return r.GetMaximumPoint().BlockY() - r.GetMinimumPoint().BlockY() + 1
}

func (r *CuboidRegion) GetLength() int {
	return r.GetMaximumPoint().BlockZ() - r.GetMinimumPoint().BlockZ() + 1
}

func (r *CuboidRegion) Contains(pt geom.Vector) bool {
	return pt.ToBlockPoint().ContainedWithin(r.GetMinimumPoint(), r.GetMaximumPoint())
}

func (r *CuboidRegion) Iterate(fn func(pt geom.Vector) bool) {
	iterateBox(r, fn)
}

func (r *CuboidRegion) Shift(offset geom.Vector) *CuboidRegion {
	delta := offset.ToBlockPoint()
	return &CuboidRegion{world: r.world, pos1: r.pos1.Add(delta), pos2: r.pos2.Add(delta)}
}
