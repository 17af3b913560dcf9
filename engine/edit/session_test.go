package edit

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/memmaker/voxedit/engine/geom"
	"github.com/memmaker/voxedit/engine/voxel"
)

func TestSessionCountsRealChanges(t *testing.T) {
	world := voxel.NewMap(1, 1, 1)
	s := NewSession(world, -1)
	pos := geom.NewBlockVector(1, 2, 3)
	changed, err := s.SetBlock(pos, voxel.NewBlock(voxel.STONE))
	if err != nil || !changed {
		t.Fatalf("first write: changed=%v err=%v", changed, err)
	}
	changed, err = s.SetBlock(pos, voxel.NewBlock(voxel.STONE))
	if err != nil || changed {
		t.Fatalf("identical write: changed=%v err=%v", changed, err)
	}
	if s.ChangeCount() != 1 {
		t.Fatalf("ChangeCount=%d", s.ChangeCount())
	}
	if s.GetBlockType(pos) != voxel.STONE || s.GetBlock(pos) != voxel.NewBlock(voxel.STONE) {
		t.Fatalf("session does not read through to the world")
	}
}

func TestSessionLimit(t *testing.T) {
	world := voxel.NewMap(1, 1, 1)
	s := NewSession(world, 2)
	for x := 0; x < 2; x++ {
		if _, err := s.SetBlock(geom.NewBlockVector(x, 0, 0), voxel.NewBlock(voxel.DIRT)); err != nil {
			t.Fatalf("write %d: %v", x, err)
		}
	}
	if changed, err := s.SetBlock(geom.NewBlockVector(0, 0, 0), voxel.NewBlock(voxel.DIRT)); err != nil || changed {
		t.Fatalf("no-op write past the limit: changed=%v err=%v", changed, err)
	}
	_, err := s.SetBlock(geom.NewBlockVector(2, 0, 0), voxel.NewBlock(voxel.DIRT))
	if !errors.Is(err, ErrMaxChangedBlocks) {
		t.Fatalf("expected ErrMaxChangedBlocks, got %v", err)
	}
	if world.GetBlockType(geom.NewBlockVector(2, 0, 0)) != voxel.AIR {
		t.Fatalf("write past the limit reached the world")
	}
	if world.GetBlockType(geom.NewBlockVector(1, 0, 0)) != voxel.DIRT {
		t.Fatalf("changes before the limit were lost")
	}

	zero := NewSession(world, 0)
	if _, err := zero.SetBlock(geom.NewBlockVector(5, 5, 5), voxel.NewBlock(voxel.SAND)); !errors.Is(err, ErrMaxChangedBlocks) {
		t.Fatalf("limit 0 should refuse every change, got %v", err)
	}
}
