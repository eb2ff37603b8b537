package config

import (
	"github.com/invopop/jsonschema"

	"go.viam.com/rrtplan/motionplan"
	"go.viam.com/rrtplan/visualize"
)

// Schemas of the scenario file and of the free-form attribute maps it carries, keyed by the name
// accepted by the schema command.
var Schemas = map[string]*jsonschema.Schema{
	"scenario":   jsonschema.Reflect(&Scenario{}),
	"attributes": jsonschema.Reflect(&motionplan.PlannerOptions{}),
	"animation":  jsonschema.Reflect(&visualize.AnimationOptions{}),
}
