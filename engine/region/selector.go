package region

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/memmaker/voxedit/engine/geom"
	"github.com/memmaker/voxedit/engine/util"
)

// Polygon2DSelector collects polygon vertices in click order until it is
// marked complete. The vertical range is clamped into the world's height
// range when the selector is created.
type Polygon2DSelector struct {
	world    WorldBounds
	points   []geom.Vector2D
	minY     int
	maxY     int
	complete bool
}

// NewPolygon2DSelector clamps minY and maxY independently into
// [0, world.MaxHeight()] and fails with ErrInvertedRange if minY ends up
// above maxY.
func NewPolygon2DSelector(world WorldBounds, points []geom.Vector2D, minY, maxY int) (*Polygon2DSelector, error) {
	s := &Polygon2DSelector{world: world}
	if err := s.SetVerticalRange(minY, maxY); err != nil {
		return nil, err
	}
	for _, p := range points {
		s.points = append(s.points, p.Floor())
	}
	return s, nil
}

// SetVerticalRange applies the same clamping as NewPolygon2DSelector.
func (s *Polygon2DSelector) SetVerticalRange(minY, maxY int) error {
	top := s.world.MaxHeight()
	clampedMin, clampedMax := util.ClampInt(minY, 0, top), util.ClampInt(maxY, 0, top)
	if clampedMin > clampedMax {
		util.LogRegionWarning("rejected inverted vertical range",
			zap.Int("min_y", minY), zap.Int("max_y", maxY), zap.Int("world_max", top))
		return errors.Wrapf(ErrInvertedRange, "minY %d > maxY %d after clamping", clampedMin, clampedMax)
	}
	s.minY, s.maxY = clampedMin, clampedMax
	return nil
}

func (s *Polygon2DSelector) AddPoint(pt geom.Vector) error {
	if s.complete {
		return ErrSelectionComplete
	}
	s.points = append(s.points, pt.ToVector2D().Floor())
	util.LogRegionDebug("polygon point added", zap.Stringer("point", pt), zap.Int("points", len(s.points)))
	return nil
}

func (s *Polygon2DSelector) SetComplete() {
	s.complete = true
}

func (s *Polygon2DSelector) IsComplete() bool {
	return s.complete
}

// Points returns a copy of the accumulated vertices.
func (s *Polygon2DSelector) Points() []geom.Vector2D {
	return append([]geom.Vector2D(nil), s.points...)
}

func (s *Polygon2DSelector) MinY() int { return s.minY }
func (s *Polygon2DSelector) MaxY() int { return s.maxY }

func (s *Polygon2DSelector) GetRegion() (Region, error) {
	if !s.complete {
		return nil, ErrIncompleteRegion
	}
	if len(s.points) < 3 {
		return nil, errors.Wrapf(ErrIncompleteRegion, "polygon needs 3 points, has %d", len(s.points))
	}
	return s.GetIncompleteRegion(), nil
}

// GetIncompleteRegion snapshots the current points whether or not the
// selection is complete.
func (s *Polygon2DSelector) GetIncompleteRegion() Region {
	return newPolygon2DRegion(s.world.GetID(), s.points, s.minY, s.maxY)
}

// Clear drops all points and reopens the selector. The vertical range is
// kept.
func (s *Polygon2DSelector) Clear() {
	s.points = nil
	s.complete = false
}

// CuboidSelector takes two corners; it completes itself on the second.
type CuboidSelector struct {
	world WorldBounds
	pos1  *geom.Vector
	pos2  *geom.Vector
}

func NewCuboidSelector(world WorldBounds) *CuboidSelector {
	return &CuboidSelector{world: world}
}

func (s *CuboidSelector) clampY(pt geom.Vector) geom.Vector {
	return pt.ToBlockPoint().SetY(float64(util.ClampInt(pt.BlockY(), 0, s.world.MaxHeight())))
}

func (s *CuboidSelector) AddPoint(pt geom.Vector) error {
	pt = s.clampY(pt)
	switch {
	case s.pos1 == nil:
		s.pos1 = &pt
	case s.pos2 == nil:
		s.pos2 = &pt
	default:
		return ErrSelectionComplete
	}
	return nil
}

// SetComplete is a no-op: a cuboid is complete once both corners are set.
func (s *CuboidSelector) SetComplete() {}

func (s *CuboidSelector) IsComplete() bool {
	return s.pos1 != nil && s.pos2 != nil
}

func (s *CuboidSelector) GetRegion() (Region, error) {
	if !s.IsComplete() {
		return nil, ErrIncompleteRegion
	}
	return NewCuboidRegion(s.world.GetID(), *s.pos1, *s.pos2), nil
}

// GetIncompleteRegion uses the first corner for a missing second one.
// Without corners it is an empty region that contains nothing, like a
// polygon selection without points.
func (s *CuboidSelector) GetIncompleteRegion() Region {
	switch {
	case s.pos1 == nil:
		return newPolygon2DRegion(s.world.GetID(), nil, 0, s.world.MaxHeight())
	case s.pos2 == nil:
		return NewCuboidRegion(s.world.GetID(), *s.pos1, *s.pos1)
	}
	return NewCuboidRegion(s.world.GetID(), *s.pos1, *s.pos2)
}

func (s *CuboidSelector) Clear() {
	s.pos1, s.pos2 = nil, nil
}
