package voxel

import (
	"github.com/google/uuid"

	"github.com/memmaker/voxedit/engine/geom"
)

// BlockReader is read access to voxels. Positions are floored onto the
// block grid.
type BlockReader interface {
	GetBlockType(pos geom.Vector) int
	GetBlock(pos geom.Vector) Block
}

// World is the voxel accessor the editor works against. SetBlock reports
// whether the voxel actually changed.
type World interface {
	BlockReader
	GetID() uuid.UUID
	MaxHeight() int
	SetBlock(pos geom.Vector, block Block) bool
}
