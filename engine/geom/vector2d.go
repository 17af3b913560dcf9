package geom

import (
	"fmt"
	"math"

	"github.com/memmaker/voxedit/engine/util"
	"github.com/pkg/errors"
)

// Vector2D is a point on the horizontal X/Z plane, the vertex type of
// polygonal selections.
type Vector2D struct {
	X, Z float64
}

func NewBlockVector2D(x, z int) Vector2D {
	return Vector2D{X: float64(x), Z: float64(z)}
}

func (v Vector2D) BlockX() int { return util.FloorInt(v.X) }
func (v Vector2D) BlockZ() int { return util.FloorInt(v.Z) }

func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{v.X + other.X, v.Z + other.Z}
}

func (v Vector2D) Subtract(other Vector2D) Vector2D {
	return Vector2D{v.X - other.X, v.Z - other.Z}
}

func (v Vector2D) Scale(n float64) Vector2D {
	return Vector2D{v.X * n, v.Z * n}
}

func (v Vector2D) Length() float64 {
	return math.Sqrt(v.LengthSq())
}

func (v Vector2D) LengthSq() float64 {
	return v.X*v.X + v.Z*v.Z
}

func (v Vector2D) Distance(other Vector2D) float64 {
	return other.Subtract(v).Length()
}

func (v Vector2D) Normalize() (Vector2D, error) {
	length := v.Length()
	if length == 0 {
		return Vector2D{}, errors.Wrap(ErrDivisionByZero, "normalize zero vector")
	}
	return Vector2D{v.X / length, v.Z / length}, nil
}

func (v Vector2D) Floor() Vector2D {
	return Vector2D{math.Floor(v.X), math.Floor(v.Z)}
}

func (v Vector2D) Round() Vector2D {
	return Vector2D{util.RoundHalfUp(v.X), util.RoundHalfUp(v.Z)}
}

func (v Vector2D) ToVector(y float64) Vector {
	return Vector{X: v.X, Y: y, Z: v.Z}
}

func (v Vector2D) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Z)
}
