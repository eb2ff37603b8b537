package motionplan

import (
	"testing"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/test"
)

func TestInvalidConfigError(t *testing.T) {
	cause := multierr.Combine(errors.New("step_size is bad"), errors.New("max_iter is bad"))
	err := newInvalidConfigError(cause)

	test.That(t, errors.Is(err, ErrInvalidConfig), test.ShouldBeTrue)
	test.That(t, errors.Unwrap(err), test.ShouldEqual, cause)
	test.That(t, err.Error(), test.ShouldStartWith, "invalid planner configuration: ")
	test.That(t, err.Error(), test.ShouldContainSubstring, "step_size is bad")
	test.That(t, err.Error(), test.ShouldContainSubstring, "max_iter is bad")
	test.That(t, errors.Is(errors.Wrap(err, "building planner"), ErrInvalidConfig), test.ShouldBeTrue)
}

func TestNewUnknownAlgorithmError(t *testing.T) {
	err := NewUnknownAlgorithmError("prm")
	test.That(t, errors.Is(err, ErrInvalidConfig), test.ShouldBeTrue)
	test.That(t, err, test.ShouldBeError,
		errors.New(`invalid planner configuration: unknown planning algorithm "prm", must be one of [rrt rrt_star informed_rrt_star]`))
}
