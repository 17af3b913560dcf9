package tool

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/memmaker/voxedit/engine/config"
	"github.com/memmaker/voxedit/engine/edit"
	"github.com/memmaker/voxedit/engine/geom"
	"github.com/memmaker/voxedit/engine/mask"
	"github.com/memmaker/voxedit/engine/util"
	"github.com/memmaker/voxedit/engine/voxel"
)

// FloodFill replaces the connected body of blocks sharing the clicked
// block's type, up to Radius blocks away from the click.
type FloodFill struct {
	Radius  int
	Pattern mask.Pattern
	// Mask further restricts the filled positions. Optional.
	Mask mask.Mask
	// Indestructible block types are only filled by actors that may
	// destroy bedrock. Nil means just bedrock.
	Indestructible []int
}

func (f *FloodFill) isIndestructible(blockType int) bool {
	if f.Indestructible == nil {
		return blockType == voxel.BEDROCK
	}
	for _, id := range f.Indestructible {
		if id == blockType {
			return true
		}
	}
	return false
}

// Apply fills from origin and returns the number of changed blocks. It
// does nothing for air and for indestructible blocks the actor may not
// break. A session limit error is returned together with the changes
// made so far, which stay in the world.
func (f *FloodFill) Apply(session *edit.Session, actor edit.Actor, origin geom.Vector) (int, error) {
	origin = origin.ToBlockPoint()
	initialType := session.GetBlockType(origin)
	if initialType == voxel.AIR {
		return 0, nil
	}
	if f.isIndestructible(initialType) && (actor == nil || !actor.CanDestroyBedrock()) {
		util.LogTraversalDebug("refusing to fill indestructible block", zap.Int("type", initialType), zap.Stringer("origin", origin))
		return 0, nil
	}

	var ctx *mask.Context
	if f.Mask != nil {
		ctx = f.Mask.Prepare(session.GetWorld(), actor, origin)
	}

	changed := 0
	err := Walk(origin, float64(f.Radius), func(pos geom.Vector) (bool, error) {
		if session.GetBlockType(pos) != initialType {
			return false, nil
		}
		if ctx != nil && !f.Mask.Matches(ctx, pos) {
			return false, nil
		}
		ok, err := session.SetBlock(pos, f.Pattern.Next(pos))
		if err != nil {
			return false, err
		}
		if ok {
			changed++
		}
		return true, nil
	})
	if err != nil {
		util.LogTraversalWarning("flood fill aborted", zap.Error(err), zap.Int("changed", changed))
		return changed, errors.Wrapf(err, "flood fill at %s", origin)
	}
	util.LogTraversalInfo("flood fill done", zap.Stringer("origin", origin), zap.Int("radius", f.Radius), zap.Int("changed", changed))
	return changed, nil
}

// FloodFillTool is the actor facing flood fill bound to a click.
type FloodFillTool struct {
	fill FloodFill
}

func NewFloodFillTool(radius int, pattern mask.Pattern) *FloodFillTool {
	return &FloodFillTool{fill: FloodFill{Radius: radius, Pattern: pattern}}
}

// FloodFillToolFromConfig uses the configured default radius when radius
// is zero and rejects radii above the configured maximum.
func FloodFillToolFromConfig(cfg *config.Config, radius int, pattern mask.Pattern) (*FloodFillTool, error) {
	if radius == 0 {
		radius = cfg.FloodFillRadius
	}
	if radius < 0 || radius > cfg.MaxFloodFillRadius {
		return nil, errors.Errorf("flood fill radius %d outside of [0, %d]", radius, cfg.MaxFloodFillRadius)
	}
	t := NewFloodFillTool(radius, pattern)
	t.fill.Indestructible = cfg.ProtectedBlocks
	return t, nil
}

func (t *FloodFillTool) GetName() string {
	return "Flood Fill"
}

func (t *FloodFillTool) SetMask(m mask.Mask) {
	t.fill.Mask = m
}

func (t *FloodFillTool) Radius() int {
	return t.fill.Radius
}

// ActPrimary fills from the clicked block. It always reports the click
// as handled; failures are printed to the actor.
func (t *FloodFillTool) ActPrimary(actor edit.Actor, session *edit.Session, clicked geom.WorldVector) bool {
	if clicked.World != session.GetWorld().GetID() {
		actor.PrintError("That block is in another world.")
		return true
	}
	_, err := t.fill.Apply(session, actor, clicked.Position)
	if errors.Is(err, edit.ErrMaxChangedBlocks) {
		actor.PrintError("Max blocks change limit reached.")
	} else if err != nil {
		actor.PrintError(err.Error())
	}
	return true
}
