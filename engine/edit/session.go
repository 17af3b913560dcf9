// Package edit is the mutation sink editing operations write through.
package edit

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/memmaker/voxedit/engine/geom"
	"github.com/memmaker/voxedit/engine/util"
	"github.com/memmaker/voxedit/engine/voxel"
)

var ErrMaxChangedBlocks = errors.New("max blocks change limit reached")

// Actor is whoever triggered an edit.
type Actor interface {
	GetName() string
	CanDestroyBedrock() bool
	Print(msg string)
	PrintError(msg string)
}

// Session counts the blocks an operation really changes and refuses
// further changes once maxBlocks is reached. A negative maxBlocks means
// no limit. Changes made before the limit stay in the world.
type Session struct {
	world     voxel.World
	maxBlocks int
	changed   int
}

func NewSession(world voxel.World, maxBlocks int) *Session {
	return &Session{world: world, maxBlocks: maxBlocks}
}

func (s *Session) GetWorld() voxel.World {
	return s.world
}

func (s *Session) GetBlockType(pos geom.Vector) int {
	return s.world.GetBlockType(pos)
}

func (s *Session) GetBlock(pos geom.Vector) voxel.Block {
	return s.world.GetBlock(pos)
}

// SetBlock reports whether the voxel changed. Writing the block a voxel
// already holds is not a change and never hits the limit.
func (s *Session) SetBlock(pos geom.Vector, block voxel.Block) (bool, error) {
	if s.maxBlocks >= 0 && s.changed >= s.maxBlocks {
		if s.world.GetBlock(pos) == block {
			return false, nil
		}
		util.LogVoxelDebug("change limit hit", zap.Int("limit", s.maxBlocks), zap.Stringer("pos", pos))
		return false, errors.Wrapf(ErrMaxChangedBlocks, "%d changes", s.maxBlocks)
	}
	if !s.world.SetBlock(pos, block) {
		return false, nil
	}
	s.changed++
	return true, nil
}

func (s *Session) ChangeCount() int {
	return s.changed
}

func (s *Session) MaxBlocks() int {
	return s.maxBlocks
}
