package geom

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

const (
	matrixRows    = 4
	matrixColumns = 4
	matrixCells   = matrixRows * matrixColumns
)

// Matrix4D is a 4x4 matrix stored row-major. Vectors are treated as row
// vectors: MultiplyVector computes v·M, and a.Multiply(b) applies a
// before b.
//
// The row-major array of M is the column-major array of Mᵀ, which is what
// the mgl64 kernels below operate on.
type Matrix4D struct {
	data mgl64.Mat4
}

func NewMatrix4D(elements [matrixCells]float64) Matrix4D {
	return Matrix4D{data: elements}
}

func Matrix4DFromSlice(elements []float64) (Matrix4D, error) {
	if len(elements) != matrixCells {
		return Matrix4D{}, errors.Wrapf(ErrIndexOutOfRange, "matrix needs %d elements, got %d", matrixCells, len(elements))
	}
	var m Matrix4D
	copy(m.data[:], elements)
	return m, nil
}

func Identity4D() Matrix4D {
	return Matrix4D{data: mgl64.Ident4()}
}

// Translation4D moves points by offset (translation lives in the last row).
func Translation4D(offset Vector) Matrix4D {
	m := Identity4D()
	m.data[12], m.data[13], m.data[14] = offset.X, offset.Y, offset.Z
	return m
}

func Scaling4D(factors Vector) Matrix4D {
	m := Identity4D()
	m.data[0], m.data[5], m.data[10] = factors.X, factors.Y, factors.Z
	return m
}

// Elements returns a copy of the row-major cells.
func (m Matrix4D) Elements() [matrixCells]float64 {
	return m.data
}

func checkCell(row, column int) error {
	if row < 0 || row >= matrixRows {
		return errors.Wrapf(ErrIndexOutOfRange, "row %d outside 0..%d", row, matrixRows-1)
	}
	if column < 0 || column >= matrixColumns {
		return errors.Wrapf(ErrIndexOutOfRange, "column %d outside 0..%d", column, matrixColumns-1)
	}
	return nil
}

func (m Matrix4D) Element(row, column int) (float64, error) {
	if err := checkCell(row, column); err != nil {
		return 0, err
	}
	return m.data[row*matrixColumns+column], nil
}

func (m Matrix4D) SetElement(row, column int, value float64) (Matrix4D, error) {
	if err := checkCell(row, column); err != nil {
		return m, err
	}
	m.data[row*matrixColumns+column] = value
	return m, nil
}

func (m Matrix4D) Determinant() float64 {
	// det(Mᵀ) = det(M)
	return m.data.Det()
}

// Inverse fails with ErrSingularMatrix rather than returning mgl64's zero
// matrix for a singular input.
func (m Matrix4D) Inverse() (Matrix4D, error) {
	det := m.Determinant()
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Matrix4D{}, errors.Wrapf(ErrSingularMatrix, "determinant %g", det)
	}
	// (Mᵀ)⁻¹ = (M⁻¹)ᵀ, so the column-major inverse is the row-major answer.
	return Matrix4D{data: m.data.Inv()}, nil
}

func (m Matrix4D) Transposed() Matrix4D {
	return Matrix4D{data: m.data.Transpose()}
}

func (m Matrix4D) Add(other Matrix4D) Matrix4D {
	return Matrix4D{data: m.data.Add(other.data)}
}

func (m Matrix4D) Subtract(other Matrix4D) Matrix4D {
	return Matrix4D{data: m.data.Sub(other.data)}
}

func (m Matrix4D) Scale(scalar float64) Matrix4D {
	return Matrix4D{data: m.data.Mul(scalar)}
}

// MultiplyVector computes the row vector product v·M.
func (m Matrix4D) MultiplyVector(v Vector4D) Vector4D {
	return FromVec4(m.data.Mul4x1(v.Vec4()))
}

// Multiply computes m·other; (m·other)ᵀ = otherᵀ·mᵀ.
func (m Matrix4D) Multiply(other Matrix4D) Matrix4D {
	return Matrix4D{data: other.data.Mul4(m.data)}
}

func (m Matrix4D) ApproxEqual(other Matrix4D, tolerance float64) bool {
	for i := range m.data {
		if math.Abs(m.data[i]-other.data[i]) > tolerance {
			return false
		}
	}
	return true
}

func (m Matrix4D) String() string {
	var sb strings.Builder
	for row := 0; row < matrixRows; row++ {
		if row > 0 {
			sb.WriteString("; ")
		}
		for column := 0; column < matrixColumns; column++ {
			if column > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(fmt.Sprintf("%g", m.data[row*matrixColumns+column]))
		}
	}
	return "[" + sb.String() + "]"
}
