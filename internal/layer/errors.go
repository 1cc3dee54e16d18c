package layer

import (
	"fmt"

	"github.com/pkg/errors"
)

// ShapeError reports a dimension mismatch between a vector or matrix and the
// layer sizes it was handed to. It is a contract violation by the caller, not
// a recoverable input error.
type ShapeError struct {
	Op   string
	Want []int
	Got  []int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: shape mismatch: want %v, got %v", e.Op, e.Want, e.Got)
}

// NewShapeError returns a *ShapeError for op.
func NewShapeError(op string, want, got []int) error {
	return &ShapeError{Op: op, Want: want, Got: got}
}

// IsShapeError reports whether any error in err's chain is a *ShapeError.
func IsShapeError(err error) bool {
	var se *ShapeError
	return errors.As(err, &se)
}
