package region

import (
	"math"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/memmaker/voxedit/engine/geom"
)

// Polygon2DRegion is a 2D polygon on the X/Z plane extruded over the
// inclusive Y range [minY, maxY]. Points keep their click order; no
// convexity or winding is required.
type Polygon2DRegion struct {
	world  uuid.UUID
	points []geom.Vector2D
	minY   int
	maxY   int
	min2D  geom.Vector2D
	max2D  geom.Vector2D
}

func NewPolygon2DRegion(world uuid.UUID, points []geom.Vector2D, minY, maxY int) (*Polygon2DRegion, error) {
	if minY > maxY {
		return nil, errors.Wrapf(ErrInvertedRange, "minY %d > maxY %d", minY, maxY)
	}
	return newPolygon2DRegion(world, points, minY, maxY), nil
}

func newPolygon2DRegion(world uuid.UUID, points []geom.Vector2D, minY, maxY int) *Polygon2DRegion {
	r := &Polygon2DRegion{
		world:  world,
		points: make([]geom.Vector2D, len(points)),
		minY:   minY,
		maxY:   maxY,
	}
	for i, p := range points {
		r.points[i] = p.Floor()
	}
	r.recalculate()
	return r
}

func (r *Polygon2DRegion) recalculate() {
	if len(r.points) == 0 {
		r.min2D, r.max2D = geom.Vector2D{}, geom.Vector2D{}
		return
	}
	r.min2D, r.max2D = r.points[0], r.points[0]
	for _, p := range r.points[1:] {
		r.min2D.X = math.Min(r.min2D.X, p.X)
		r.min2D.Z = math.Min(r.min2D.Z, p.Z)
		r.max2D.X = math.Max(r.max2D.X, p.X)
		r.max2D.Z = math.Max(r.max2D.Z, p.Z)
	}
}

func (r *Polygon2DRegion) GetWorld() uuid.UUID {
	return r.world
}

// Points returns a copy of the polygon vertices.
func (r *Polygon2DRegion) Points() []geom.Vector2D {
	return append([]geom.Vector2D(nil), r.points...)
}

func (r *Polygon2DRegion) MinY() int { return r.minY }
func (r *Polygon2DRegion) MaxY() int { return r.maxY }

func (r *Polygon2DRegion) GetMinimumPoint() geom.Vector {
	return r.min2D.ToVector(float64(r.minY))
}

func (r *Polygon2DRegion) GetMaximumPoint() geom.Vector {
	return r.max2D.ToVector(float64(r.maxY))
}

// GetArea2D is the shoelace area of the polygon.
func (r *Polygon2DRegion) GetArea2D() float64 {
	area := 0.0
	j := len(r.points) - 1
	for i := range r.points {
		area += (r.points[j].X + r.points[i].X) * (r.points[j].Z - r.points[i].Z)
		j = i
	}
	return math.Abs(area * 0.5)
}

func (r *Polygon2DRegion) GetArea() int {
	return int(math.Floor(r.GetArea2D()))
}

func (r *Polygon2DRegion) GetVolume() int {
	return r.GetArea() * r.GetHeight()
}

func (r *Polygon2DRegion) GetWidth() int {
	if len(r.points) == 0 {
		return 0
	}
	return int(r.max2D.X-r.min2D.X) + 1
}

func (r *Polygon2DRegion) GetHeight() int {
	return r.maxY - r.minY + 1
}

func (r *Polygon2DRegion) GetLength() int {
	if len(r.points) == 0 {
		return 0
	}
	return int(r.max2D.Z-r.min2D.Z) + 1
}

// Contains runs the even-odd test on the block column of pt. Vertices and
// points on an edge are inside.
func (r *Polygon2DRegion) Contains(pt geom.Vector) bool {
	if len(r.points) < 3 {
		return false
	}
	y := pt.BlockY()
	if y < r.minY || y > r.maxY {
		return false
	}
	targetX, targetZ := int64(pt.BlockX()), int64(pt.BlockZ())

	inside := false
	last := r.points[len(r.points)-1]
	xOld, zOld := int64(last.BlockX()), int64(last.BlockZ())
	for _, p := range r.points {
		xNew, zNew := int64(p.BlockX()), int64(p.BlockZ())
		if xNew == targetX && zNew == targetZ {
			return true
		}
		var x1, z1, x2, z2 int64
		if xNew > xOld {
			x1, z1, x2, z2 = xOld, zOld, xNew, zNew
		} else {
			x1, z1, x2, z2 = xNew, zNew, xOld, zOld
		}
		if x1 <= targetX && targetX <= x2 {
			cross := (targetZ-z1)*(x2-x1) - (z2-z1)*(targetX-x1)
			if cross == 0 {
				if (z1 <= targetZ) == (targetZ <= z2) {
					return true
				}
			} else if cross < 0 && x1 != targetX {
				inside = !inside
			}
		}
		xOld, zOld = xNew, zNew
	}
	return inside
}

func (r *Polygon2DRegion) Iterate(fn func(pt geom.Vector) bool) {
	if len(r.points) < 3 {
		return
	}
	iterateBox(r, fn)
}

// Shift returns a copy moved by the block-floored offset.
func (r *Polygon2DRegion) Shift(offset geom.Vector) *Polygon2DRegion {
	delta := offset.ToBlockPoint()
	moved := make([]geom.Vector2D, len(r.points))
	for i, p := range r.points {
		moved[i] = p.Add(delta.ToVector2D())
	}
	return newPolygon2DRegion(r.world, moved, r.minY+int(delta.Y), r.maxY+int(delta.Y))
}
