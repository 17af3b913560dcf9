package geom

import "github.com/pkg/errors"

var (
	ErrDivisionByZero  = errors.New("division by zero")
	ErrSingularMatrix  = errors.New("matrix is singular")
	ErrUnsupported     = errors.New("operation not supported")
	ErrIndexOutOfRange = errors.New("index out of range")
)
