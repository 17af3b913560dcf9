package geom

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/voxedit/engine/util"
	"github.com/pkg/errors"
)

// Vector4D is the homogeneous counterpart of Vector. It is its own type
// rather than an extension of Vector; convert explicitly with ToVector.
type Vector4D struct {
	X, Y, Z, W float64
}

func NewVector4D(x, y, z, w float64) Vector4D {
	return Vector4D{X: x, Y: y, Z: z, W: w}
}

func FromVec4(v mgl64.Vec4) Vector4D {
	return Vector4D{v[0], v[1], v[2], v[3]}
}

func (v Vector4D) Vec4() mgl64.Vec4 {
	return mgl64.Vec4{v.X, v.Y, v.Z, v.W}
}

func (v Vector4D) SetX(x float64) Vector4D {
	v.X = x
	return v
}

func (v Vector4D) SetY(y float64) Vector4D {
	v.Y = y
	return v
}

func (v Vector4D) SetZ(z float64) Vector4D {
	v.Z = z
	return v
}

func (v Vector4D) SetW(w float64) Vector4D {
	v.W = w
	return v
}

func (v Vector4D) Add(others ...Vector4D) Vector4D {
	for _, o := range others {
		v = Vector4D{v.X + o.X, v.Y + o.Y, v.Z + o.Z, v.W + o.W}
	}
	return v
}

func (v Vector4D) Subtract(others ...Vector4D) Vector4D {
	for _, o := range others {
		v = Vector4D{v.X - o.X, v.Y - o.Y, v.Z - o.Z, v.W - o.W}
	}
	return v
}

func (v Vector4D) Multiply(others ...Vector4D) Vector4D {
	for _, o := range others {
		v = Vector4D{v.X * o.X, v.Y * o.Y, v.Z * o.Z, v.W * o.W}
	}
	return v
}

func (v Vector4D) Scale(n float64) Vector4D {
	return Vector4D{v.X * n, v.Y * n, v.Z * n, v.W * n}
}

func (v Vector4D) Divide(other Vector4D) Vector4D {
	return Vector4D{v.X / other.X, v.Y / other.Y, v.Z / other.Z, v.W / other.W}
}

func (v Vector4D) DivideScalar(n float64) (Vector4D, error) {
	if n == 0 {
		return Vector4D{}, errors.Wrapf(ErrDivisionByZero, "divide %s by 0", v)
	}
	return Vector4D{v.X / n, v.Y / n, v.Z / n, v.W / n}, nil
}

func (v Vector4D) Length() float64 {
	return math.Sqrt(v.LengthSq())
}

func (v Vector4D) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z + v.W*v.W
}

func (v Vector4D) Distance(other Vector4D) float64 {
	return math.Sqrt(v.DistanceSq(other))
}

func (v Vector4D) DistanceSq(other Vector4D) float64 {
	return other.Subtract(v).LengthSq()
}

func (v Vector4D) Normalize() (Vector4D, error) {
	length := v.Length()
	if length == 0 {
		return Vector4D{}, errors.Wrap(ErrDivisionByZero, "normalize zero vector")
	}
	return Vector4D{v.X / length, v.Y / length, v.Z / length, v.W / length}, nil
}

func (v Vector4D) Dot(other Vector4D) float64 {
	return v.Vec4().Dot(other.Vec4())
}

func (v Vector4D) ContainedWithin(min, max Vector4D) bool {
	return v.X >= min.X && v.X <= max.X &&
		v.Y >= min.Y && v.Y <= max.Y &&
		v.Z >= min.Z && v.Z <= max.Z &&
		v.W >= min.W && v.W <= max.W
}

func (v Vector4D) Floor() Vector4D {
	return Vector4D{math.Floor(v.X), math.Floor(v.Y), math.Floor(v.Z), math.Floor(v.W)}
}

func (v Vector4D) Ceil() Vector4D {
	return Vector4D{math.Ceil(v.X), math.Ceil(v.Y), math.Ceil(v.Z), math.Ceil(v.W)}
}

func (v Vector4D) Round() Vector4D {
	return Vector4D{util.RoundHalfUp(v.X), util.RoundHalfUp(v.Y), util.RoundHalfUp(v.Z), util.RoundHalfUp(v.W)}
}

// ToVector drops W without a perspective divide.
func (v Vector4D) ToVector() Vector {
	return Vector{v.X, v.Y, v.Z}
}

func (v Vector4D) ApproxEqual(other Vector4D, tolerance float64) bool {
	return math.Abs(v.X-other.X) <= tolerance &&
		math.Abs(v.Y-other.Y) <= tolerance &&
		math.Abs(v.Z-other.Z) <= tolerance &&
		math.Abs(v.W-other.W) <= tolerance
}

func (v Vector4D) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", v.X, v.Y, v.Z, v.W)
}

func GetMinimum4D(v1, v2 Vector4D) Vector4D {
	return Vector4D{math.Min(v1.X, v2.X), math.Min(v1.Y, v2.Y), math.Min(v1.Z, v2.Z), math.Min(v1.W, v2.W)}
}

func GetMaximum4D(v1, v2 Vector4D) Vector4D {
	return Vector4D{math.Max(v1.X, v2.X), math.Max(v1.Y, v2.Y), math.Max(v1.Z, v2.Z), math.Max(v1.W, v2.W)}
}

func GetMidpoint4D(v1, v2 Vector4D) Vector4D {
	return Vector4D{(v1.X + v2.X) / 2, (v1.Y + v2.Y) / 2, (v1.Z + v2.Z) / 2, (v1.W + v2.W) / 2}
}
