package geom

// Transform maps a position to a new position.
type Transform interface {
	Apply(v Vector) Vector
}

// AffineTransform applies a matrix to (x, y, z, 1).
type AffineTransform struct {
	Matrix Matrix4D
}

func NewAffineTransform(m Matrix4D) AffineTransform {
	return AffineTransform{Matrix: m}
}

func (t AffineTransform) Apply(v Vector) Vector {
	return t.Matrix.MultiplyVector(v.ToVector4D(1)).ToVector()
}

// Then returns the transform that applies t and afterwards next.
func (t AffineTransform) Then(next AffineTransform) AffineTransform {
	return AffineTransform{Matrix: t.Matrix.Multiply(next.Matrix)}
}

func (t AffineTransform) Inverse() (AffineTransform, error) {
	inverse, err := t.Matrix.Inverse()
	if err != nil {
		return AffineTransform{}, err
	}
	return AffineTransform{Matrix: inverse}, nil
}

// RotationAround rotates positions around Center.
type RotationAround struct {
	Rotation Quaternion
	Center   Vector
}

func (r RotationAround) Apply(v Vector) Vector {
	return r.Rotation.Rotate(v.Subtract(r.Center)).Add(r.Center)
}

// Affine expresses the rotation as a single matrix.
func (r RotationAround) Affine() AffineTransform {
	m := Translation4D(r.Center.Scale(-1)).
		Multiply(r.Rotation.Mat4()).
		Multiply(Translation4D(r.Center))
	return AffineTransform{Matrix: m}
}
