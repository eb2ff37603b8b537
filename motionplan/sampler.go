package motionplan

import (
	"math/rand"

	"go.viam.com/rrtplan/spatialmath"
)

// uniformSampler draws goal-biased or uniform samples in the bounding box.
type uniformSampler struct {
	randseed       *rand.Rand
	low            []float64
	high           []float64
	goal           []float64
	goalSampleRate float64
}

// sample returns the goal with probability goalSampleRate and a uniform point in the bounding box
// otherwise. The returned slice is never shared with the sampler.
func (s *uniformSampler) sample() []float64 {
	if s.randseed.Float64() < s.goalSampleRate {
		return spatialmath.Clone(s.goal)
	}
	return s.uniform()
}

// uniform returns a point drawn uniformly in [low, high) on every axis.
func (s *uniformSampler) uniform() []float64 {
	position := make([]float64, len(s.low))
	for i := range position {
		position[i] = s.low[i] + s.randseed.Float64()*(s.high[i]-s.low[i])
	}
	return position
}

// sampleUnitBall draws a point uniformly in the dim-dimensional unit ball by rejection from the
// [-1, 1] hypercube.
func sampleUnitBall(randseed *rand.Rand, dim int) []float64 {
	position := make([]float64, dim)
	for {
		for i := range position {
			position[i] = randseed.Float64()*2 - 1
		}
		if spatialmath.Norm(position) <= 1 {
			return position
		}
	}
}
