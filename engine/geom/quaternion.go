package geom

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// Quaternion is a general hypercomplex number. Unit quaternions describe
// rotations, but the full algebra (exp, log, pow, division) is available
// for any value.
type Quaternion struct {
	Real      float64
	Imaginary Vector
}

var (
	QuaternionOne = Quaternion{Real: 1}
	I             = Quaternion{Imaginary: Vector{X: 1}}
	J             = Quaternion{Imaginary: Vector{Y: 1}}
	K             = Quaternion{Imaginary: Vector{Z: 1}}
)

func NewQuaternion(real, i, j, k float64) Quaternion {
	return Quaternion{Real: real, Imaginary: Vector{i, j, k}}
}

func FromQuat(q mgl64.Quat) Quaternion {
	return Quaternion{Real: q.W, Imaginary: FromVec3(q.V)}
}

func (q Quaternion) Quat() mgl64.Quat {
	return mgl64.Quat{W: q.Real, V: q.Imaginary.Vec3()}
}

func (q Quaternion) I() float64 { return q.Imaginary.X }
func (q Quaternion) J() float64 { return q.Imaginary.Y }
func (q Quaternion) K() float64 { return q.Imaginary.Z }

func (q Quaternion) LengthSq() float64 {
	return q.Real*q.Real + q.Imaginary.LengthSq()
}

func (q Quaternion) Length() float64 {
	return math.Sqrt(q.LengthSq())
}

func (q Quaternion) Conjugated() Quaternion {
	return Quaternion{Real: q.Real, Imaginary: q.Imaginary.Scale(-1)}
}

// Inverse is the conjugate divided by the squared length.
func (q Quaternion) Inverse() (Quaternion, error) {
	lengthSq := q.LengthSq()
	if lengthSq == 0 {
		return Quaternion{}, errors.Wrap(ErrDivisionByZero, "invert zero quaternion")
	}
	return Quaternion{Real: q.Real / lengthSq, Imaginary: q.Imaginary.Scale(-1 / lengthSq)}, nil
}

func (q Quaternion) Add(other Quaternion) Quaternion {
	return Quaternion{Real: q.Real + other.Real, Imaginary: q.Imaginary.Add(other.Imaginary)}
}

func (q Quaternion) Subtract(other Quaternion) Quaternion {
	return Quaternion{Real: q.Real - other.Real, Imaginary: q.Imaginary.Subtract(other.Imaginary)}
}

// Multiply is the Hamilton product q·other. It does not commute.
func (q Quaternion) Multiply(other Quaternion) Quaternion {
	return Quaternion{
		Real: q.Real*other.Real - q.Imaginary.Dot(other.Imaginary),
		Imaginary: other.Imaginary.Scale(q.Real).
			Add(q.Imaginary.Scale(other.Real)).
			Add(q.Imaginary.Cross(other.Imaginary)),
	}
}

func (q Quaternion) Scale(scalar float64) Quaternion {
	return Quaternion{Real: q.Real * scalar, Imaginary: q.Imaginary.Scale(scalar)}
}

// Divide returns q·other⁻¹.
func (q Quaternion) Divide(other Quaternion) (Quaternion, error) {
	inverse, err := other.Inverse()
	if err != nil {
		return Quaternion{}, errors.Wrap(err, "divide by zero quaternion")
	}
	return q.Multiply(inverse), nil
}

func (q Quaternion) DivideScalar(scalar float64) (Quaternion, error) {
	if scalar == 0 {
		return Quaternion{}, errors.Wrap(ErrDivisionByZero, "divide quaternion by 0")
	}
	return q.Scale(1 / scalar), nil
}

func (q Quaternion) Exp() Quaternion {
	imagLen := q.Imaginary.Length()
	expReal := math.Exp(q.Real)
	if imagLen == 0 {
		return Quaternion{Real: expReal}
	}
	return Quaternion{
		Real:      expReal * math.Cos(imagLen),
		Imaginary: q.Imaginary.Scale(expReal * math.Sin(imagLen) / imagLen),
	}
}

// Log of the zero quaternion has a real part of -Inf. A purely real
// quaternion has a purely real logarithm.
func (q Quaternion) Log() Quaternion {
	l := q.Length()
	if l == 0 {
		return Quaternion{Real: math.Inf(-1)}
	}

	uReal := q.Real / l
	uImag := q.Imaginary.Scale(1 / l)

	m := uImag.Length()
	if m == 0 {
		return Quaternion{Real: math.Log(l)}
	}
	return Quaternion{Real: math.Log(l), Imaginary: uImag.Scale(math.Acos(uReal) / m)}
}

func (q Quaternion) Pow(exponent float64) Quaternion {
	return q.Log().Scale(exponent).Exp()
}

// Slerp computes q·(q⁻¹·other)^t. It does not pick the shorter arc and
// does not fix the sign of near antipodal inputs; callers that need that
// must normalise and flip other themselves.
func (q Quaternion) Slerp(other Quaternion, t float64) (Quaternion, error) {
	inverse, err := q.Inverse()
	if err != nil {
		return Quaternion{}, errors.Wrap(err, "slerp from zero quaternion")
	}
	return q.Multiply(inverse.Multiply(other).Pow(t)), nil
}

// Rotate applies the rotation of a unit quaternion to v.
func (q Quaternion) Rotate(v Vector) Vector {
	return FromVec3(q.Quat().Rotate(v.Vec3()))
}

// Mat4 is the rotation matrix of a unit quaternion in the row vector
// convention used by Matrix4D.MultiplyVector.
func (q Quaternion) Mat4() Matrix4D {
	return Matrix4D{data: q.Quat().Mat4()}
}

func (q Quaternion) ApproxEqual(other Quaternion, tolerance float64) bool {
	return math.Abs(q.Real-other.Real) <= tolerance && q.Imaginary.ApproxEqual(other.Imaginary, tolerance)
}

func (q Quaternion) String() string {
	var sb strings.Builder
	written := false
	if q.Real != 0 {
		sb.WriteString(formatFloat(q.Real))
		written = true
	}
	for _, part := range []struct {
		value float64
		unit  string
	}{{q.I(), "i"}, {q.J(), "j"}, {q.K(), "k"}} {
		if part.value == 0 {
			continue
		}
		appendElement(&sb, part.value, written)
		sb.WriteString(part.unit)
		written = true
	}
	if !written {
		return "0"
	}
	return sb.String()
}

func appendElement(sb *strings.Builder, element float64, written bool) {
	if element > 0 {
		if written {
			sb.WriteString(" + ")
		}
		if element != 1 {
			sb.WriteString(formatFloat(element))
		}
		return
	}
	if written {
		sb.WriteString(" - ")
		if element != -1 {
			sb.WriteString(formatFloat(-element))
		}
	} else if element == -1 {
		sb.WriteString("-")
	} else {
		sb.WriteString(formatFloat(element))
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// RotationQuaternion builds the rotation of degrees around axis. The
// axis does not need to be normalised but must not be zero.
func RotationQuaternion(degrees float64, axis Vector) (Quaternion, error) {
	unitAxis, err := axis.Normalize()
	if err != nil {
		return Quaternion{}, errors.Wrap(err, "rotation axis")
	}
	halfAngle := mgl64.DegToRad(degrees) / 2
	return Quaternion{
		Real:      math.Cos(halfAngle),
		Imaginary: unitAxis.Scale(math.Sin(halfAngle)),
	}, nil
}

// RotationQuaternionEuler composes yaw·(pitch·roll) from angles in degrees
// around X (pitch), Y (yaw) and Z (roll).
func RotationQuaternionEuler(pitch, yaw, roll float64) Quaternion {
	qp, _ := RotationQuaternion(pitch, Vector{X: 1})
	qy, _ := RotationQuaternion(yaw, Vector{Y: 1})
	qr, _ := RotationQuaternion(roll, Vector{Z: 1})
	return qy.Multiply(qp.Multiply(qr))
}
