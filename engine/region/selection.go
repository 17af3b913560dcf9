package region

import (
	"github.com/google/uuid"

	"github.com/memmaker/voxedit/engine/geom"
)

// Selection binds a selector to the world it selects in.
type Selection struct {
	world    WorldBounds
	selector Selector
}

func NewSelection(world WorldBounds, selector Selector) *Selection {
	return &Selection{world: world, selector: selector}
}

func (s *Selection) GetWorld() uuid.UUID {
	return s.world.GetID()
}

func (s *Selection) Selector() Selector {
	return s.selector
}

func (s *Selection) Region() (Region, error) {
	return s.selector.GetRegion()
}

// Contains tests against the in-progress shape so previews work before
// the selection is complete. Points in other worlds are never contained.
func (s *Selection) Contains(pt geom.WorldVector) bool {
	if pt.World != s.world.GetID() {
		return false
	}
	return s.selector.GetIncompleteRegion().Contains(pt.Position)
}
