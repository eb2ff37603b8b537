package motionplan

import (
	"github.com/pkg/errors"
)

// ErrInvalidConfig is matched (with errors.Is) by every error returned for bad planner
// construction parameters.
var ErrInvalidConfig = errors.New("invalid planner configuration")

var errNilFeasibilityChecker = errors.New("feasibility checker must not be nil")

type invalidConfigError struct {
	err error
}

func newInvalidConfigError(err error) error {
	return &invalidConfigError{err: err}
}

func (e *invalidConfigError) Error() string {
	return ErrInvalidConfig.Error() + ": " + e.err.Error()
}

func (e *invalidConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

func (e *invalidConfigError) Unwrap() error {
	return e.err
}

// NewUnknownAlgorithmError is returned when a planner is requested by an unsupported name.
func NewUnknownAlgorithmError(alg Algorithm) error {
	return newInvalidConfigError(errors.Errorf("unknown planning algorithm %q, must be one of %v", alg, Algorithms()))
}
