// Package mask decides which voxels an operation may touch and what they
// become.
package mask

import (
	"github.com/memmaker/voxedit/engine/edit"
	"github.com/memmaker/voxedit/engine/geom"
	"github.com/memmaker/voxedit/engine/voxel"
)

// Context is created once per operation by Mask.Prepare and passed to
// every Matches call of that operation. It must not be shared between
// operations.
type Context struct {
	Extent voxel.BlockReader
	Actor  edit.Actor
	Target geom.Vector
	state  any
}

func NewContext(extent voxel.BlockReader, actor edit.Actor, target geom.Vector) *Context {
	return &Context{Extent: extent, Actor: actor, Target: target}
}

// State is a slot for whatever the preparing mask wants to keep.
func (c *Context) State() any {
	return c.state
}

func (c *Context) SetState(state any) {
	c.state = state
}

type Mask interface {
	Prepare(extent voxel.BlockReader, actor edit.Actor, target geom.Vector) *Context
	Matches(ctx *Context, pos geom.Vector) bool
}

// BlockMask matches voxels whose block is in the set. An entry with
// voxel.DataWildcard as data matches every data value of its type.
type BlockMask struct {
	blocks map[voxel.Block]struct{}
}

func NewBlockMask(blocks ...voxel.Block) *BlockMask {
	m := &BlockMask{blocks: make(map[voxel.Block]struct{}, len(blocks))}
	m.AddAll(blocks)
	return m
}

func (m *BlockMask) Add(block voxel.Block) {
	m.blocks[block] = struct{}{}
}

func (m *BlockMask) AddAll(blocks []voxel.Block) {
	for _, block := range blocks {
		m.Add(block)
	}
}

func (m *BlockMask) Prepare(extent voxel.BlockReader, actor edit.Actor, target geom.Vector) *Context {
	return NewContext(extent, actor, target)
}

func (m *BlockMask) Matches(ctx *Context, pos geom.Vector) bool {
	block := ctx.Extent.GetBlock(pos)
	if _, ok := m.blocks[block]; ok {
		return true
	}
	_, ok := m.blocks[block.AnyData()]
	return ok
}

// RadiusMask matches positions within Radius of the operation target.
type RadiusMask struct {
	Radius float64
}

func (m RadiusMask) Prepare(extent voxel.BlockReader, actor edit.Actor, target geom.Vector) *Context {
	ctx := NewContext(extent, actor, target)
	ctx.SetState(target.ToBlockPoint())
	return ctx
}

func (m RadiusMask) Matches(ctx *Context, pos geom.Vector) bool {
	center, _ := ctx.State().(geom.Vector)
	return pos.ToBlockPoint().DistanceSq(center) <= m.Radius*m.Radius
}

// IntersectionMask matches where every child mask matches.
type IntersectionMask struct {
	Masks []Mask
}

func (m IntersectionMask) Prepare(extent voxel.BlockReader, actor edit.Actor, target geom.Vector) *Context {
	children := make([]*Context, len(m.Masks))
	for i, child := range m.Masks {
		children[i] = child.Prepare(extent, actor, target)
	}
	ctx := NewContext(extent, actor, target)
	ctx.SetState(children)
	return ctx
}

func (m IntersectionMask) Matches(ctx *Context, pos geom.Vector) bool {
	children := ctx.State().([]*Context)
	for i, child := range m.Masks {
		if !child.Matches(children[i], pos) {
			return false
		}
	}
	return true
}

type InvertedMask struct {
	Mask Mask
}

func (m InvertedMask) Prepare(extent voxel.BlockReader, actor edit.Actor, target geom.Vector) *Context {
	ctx := NewContext(extent, actor, target)
	ctx.SetState(m.Mask.Prepare(extent, actor, target))
	return ctx
}

func (m InvertedMask) Matches(ctx *Context, pos geom.Vector) bool {
	return !m.Mask.Matches(ctx.State().(*Context), pos)
}
