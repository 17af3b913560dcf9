package tool

import (
	"github.com/pkg/errors"

	"github.com/memmaker/voxedit/engine/edit"
	"github.com/memmaker/voxedit/engine/geom"
	"github.com/memmaker/voxedit/engine/mask"
)

// BlockPlacer turns a mouse drag into the block positions to place.
type BlockPlacer interface {
	GetName() string
	StartDragAt(blockPos geom.Vector)
	DraggedOver(blockPos geom.Vector) []geom.Vector
	StopDragAt(blockPos geom.Vector) []geom.Vector
	SetFill(fill bool)
	GetFill() bool
	IsDragging() bool
}

// RectanglePlacer places a horizontal rectangle at the height the drag
// started, outlined unless fill is set.
type RectanglePlacer struct {
	start      geom.Vector
	fill       bool
	isDragging bool
}

func NewRectanglePlacer() *RectanglePlacer {
	return &RectanglePlacer{}
}

func (a *RectanglePlacer) GetName() string {
	return "Rectangle"
}

func (a *RectanglePlacer) SetFill(fill bool) {
	a.fill = fill
}

func (a *RectanglePlacer) GetFill() bool {
	return a.fill
}

func (a *RectanglePlacer) StartDragAt(blockPos geom.Vector) {
	a.start = blockPos.ToBlockPoint()
	a.isDragging = true
}

func (a *RectanglePlacer) DraggedOver(blockPos geom.Vector) []geom.Vector {
	return a.outlinedRectangle(a.start, blockPos.ToBlockPoint())
}

func (a *RectanglePlacer) IsDragging() bool {
	return a.isDragging
}

func (a *RectanglePlacer) StopDragAt(blockPos geom.Vector) []geom.Vector {
	a.isDragging = false
	return a.outlinedRectangle(a.start, blockPos.ToBlockPoint())
}

func (a *RectanglePlacer) outlinedRectangle(start, end geom.Vector) []geom.Vector {
	lo, hi := geom.GetMinimum(start, end), geom.GetMaximum(start, end)
	var result []geom.Vector
	for x := lo.BlockX(); x <= hi.BlockX(); x++ {
		for z := lo.BlockZ(); z <= hi.BlockZ(); z++ {
			if a.fill || x == lo.BlockX() || x == hi.BlockX() || z == lo.BlockZ() || z == hi.BlockZ() {
				result = append(result, geom.NewBlockVector(x, start.BlockY(), z))
			}
		}
	}
	return result
}

// Place writes pattern blocks at positions through the session and
// returns the number of changed blocks.
func Place(session *edit.Session, positions []geom.Vector, pattern mask.Pattern) (int, error) {
	changed := 0
	for _, pos := range positions {
		ok, err := session.SetBlock(pos, pattern.Next(pos))
		if err != nil {
			return changed, errors.Wrap(err, "place blocks")
		}
		if ok {
			changed++
		}
	}
	return changed, nil
}
