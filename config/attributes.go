package config

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"

	"go.viam.com/rrtplan/motionplan"
	"go.viam.com/rrtplan/visualize"
)

// AttributeMap is a free-form set of options keyed by their JSON names.
type AttributeMap map[string]interface{}

// Has returns whether the given key is set.
func (am AttributeMap) Has(name string) bool {
	_, has := am[name]
	return has
}

// DecodePlannerOptions overlays attrs onto the default planner options. Unknown keys are an
// error. Numbers given as strings, as left by environment variable substitution, are accepted.
func DecodePlannerOptions(attrs AttributeMap) (*motionplan.PlannerOptions, error) {
	opts := motionplan.NewBasicPlannerOptions()
	if err := decodeAttributes(attrs, opts); err != nil {
		return nil, errors.Wrap(err, "failed to decode planner attributes")
	}
	return opts, nil
}

// DecodeAnimationOptions overlays attrs onto the default animation options.
func DecodeAnimationOptions(attrs AttributeMap) (*visualize.AnimationOptions, error) {
	opts := visualize.NewDefaultAnimationOptions()
	if err := decodeAttributes(attrs, opts); err != nil {
		return nil, errors.Wrap(err, "failed to decode animation attributes")
	}
	return opts, nil
}

func decodeAttributes(attrs AttributeMap, to interface{}) error {
	if len(attrs) == 0 {
		return nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           to,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(map[string]interface{}(attrs))
}
