// Package geom holds the immutable value algebra the editor describes
// positions, bounds and transforms with. Every operation returns a new
// value; nothing mutates its receiver.
package geom

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/voxedit/engine/util"
	"github.com/pkg/errors"
)

// Vector is a point or direction in world space. Block positions are
// vectors with integral components.
type Vector struct {
	X, Y, Z float64
}

var Zero = Vector{}

func NewVector(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

func NewBlockVector(x, y, z int) Vector {
	return Vector{X: float64(x), Y: float64(y), Z: float64(z)}
}

func FromVec3(v mgl64.Vec3) Vector {
	return Vector{X: v[0], Y: v[1], Z: v[2]}
}

func (v Vector) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func (v Vector) SetX(x float64) Vector {
	v.X = x
	return v
}

func (v Vector) SetY(y float64) Vector {
	v.Y = y
	return v
}

func (v Vector) SetZ(z float64) Vector {
	v.Z = z
	return v
}

func (v Vector) BlockX() int { return util.FloorInt(v.X) }
func (v Vector) BlockY() int { return util.FloorInt(v.Y) }
func (v Vector) BlockZ() int { return util.FloorInt(v.Z) }

func (v Vector) Add(other Vector) Vector {
	return Vector{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

func (v Vector) AddXYZ(x, y, z float64) Vector {
	return Vector{v.X + x, v.Y + y, v.Z + z}
}

func (v Vector) Subtract(other Vector) Vector {
	return Vector{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

func (v Vector) SubtractXYZ(x, y, z float64) Vector {
	return Vector{v.X - x, v.Y - y, v.Z - z}
}

// Multiply is the componentwise product.
func (v Vector) Multiply(other Vector) Vector {
	return Vector{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

func (v Vector) Scale(n float64) Vector {
	return Vector{v.X * n, v.Y * n, v.Z * n}
}

// Divide is the componentwise quotient. Zero components in other follow
// IEEE rules; use DivideScalar when a checked division is needed.
func (v Vector) Divide(other Vector) Vector {
	return Vector{v.X / other.X, v.Y / other.Y, v.Z / other.Z}
}

func (v Vector) DivideScalar(n float64) (Vector, error) {
	if n == 0 {
		return Vector{}, errors.Wrapf(ErrDivisionByZero, "divide %s by 0", v)
	}
	return Vector{v.X / n, v.Y / n, v.Z / n}, nil
}

func (v Vector) Length() float64 {
	return math.Sqrt(v.LengthSq())
}

func (v Vector) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vector) Distance(other Vector) float64 {
	return math.Sqrt(v.DistanceSq(other))
}

func (v Vector) DistanceSq(other Vector) float64 {
	return other.Subtract(v).LengthSq()
}

// Normalize fails for the zero vector instead of producing NaNs.
func (v Vector) Normalize() (Vector, error) {
	length := v.Length()
	if length == 0 {
		return Vector{}, errors.Wrap(ErrDivisionByZero, "normalize zero vector")
	}
	return Vector{v.X / length, v.Y / length, v.Z / length}, nil
}

func (v Vector) Dot(other Vector) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

func (v Vector) Cross(other Vector) Vector {
	return FromVec3(v.Vec3().Cross(other.Vec3()))
}

// ContainedWithin is an inclusive componentwise range test.
func (v Vector) ContainedWithin(min, max Vector) bool {
	return v.X >= min.X && v.X <= max.X &&
		v.Y >= min.Y && v.Y <= max.Y &&
		v.Z >= min.Z && v.Z <= max.Z
}

func (v Vector) Floor() Vector {
	return Vector{math.Floor(v.X), math.Floor(v.Y), math.Floor(v.Z)}
}

func (v Vector) Ceil() Vector {
	return Vector{math.Ceil(v.X), math.Ceil(v.Y), math.Ceil(v.Z)}
}

// Round rounds half up per component.
func (v Vector) Round() Vector {
	return Vector{util.RoundHalfUp(v.X), util.RoundHalfUp(v.Y), util.RoundHalfUp(v.Z)}
}

func (v Vector) Positive() Vector {
	return Vector{math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)}
}

// ToBlockPoint floors every component onto the block grid.
func (v Vector) ToBlockPoint() Vector {
	return v.Floor()
}

func (v Vector) ToVector2D() Vector2D {
	return Vector2D{X: v.X, Z: v.Z}
}

func (v Vector) ToVector4D(w float64) Vector4D {
	return Vector4D{v.X, v.Y, v.Z, w}
}

func (v Vector) ApproxEqual(other Vector, tolerance float64) bool {
	return math.Abs(v.X-other.X) <= tolerance &&
		math.Abs(v.Y-other.Y) <= tolerance &&
		math.Abs(v.Z-other.Z) <= tolerance
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

func GetMinimum(v1, v2 Vector) Vector {
	return Vector{math.Min(v1.X, v2.X), math.Min(v1.Y, v2.Y), math.Min(v1.Z, v2.Z)}
}

func GetMaximum(v1, v2 Vector) Vector {
	return Vector{math.Max(v1.X, v2.X), math.Max(v1.Y, v2.Y), math.Max(v1.Z, v2.Z)}
}

func GetMidpoint(v1, v2 Vector) Vector {
	return Vector{(v1.X + v2.X) / 2, (v1.Y + v2.Y) / 2, (v1.Z + v2.Z) / 2}
}
