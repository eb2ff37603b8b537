package motionplan

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/rrtplan/spatialmath"
)

// informedSampler draws samples from the hyperellipsoid with foci at the start and the goal whose
// points p satisfy |p-start| + |p-goal| <= costMax. Any path cheaper than costMax lies inside it.
type informedSampler struct {
	randseed *rand.Rand
	rotation *mat.Dense
	center   []float64
	costMin  float64
}

func newInformedSampler(randseed *rand.Rand, start, goal []float64) (*informedSampler, error) {
	rotation, err := rotationToWorldFrame(start, goal)
	if err != nil {
		return nil, err
	}
	return &informedSampler{
		randseed: randseed,
		rotation: rotation,
		center:   spatialmath.Midpoint(start, goal),
		costMin:  spatialmath.Distance(start, goal),
	}, nil
}

// rotationToWorldFrame returns the rotation taking the first basis vector onto the start-to-goal
// direction. It is computed from the SVD of a1·e1ᵀ as C = U·diag(1, …, 1, det U, det V)·Vᵀ, the
// last two entries making det C = +1 so C is never a reflection.
func rotationToWorldFrame(start, goal []float64) (*mat.Dense, error) {
	dim := len(start)
	dist := spatialmath.Distance(start, goal)
	if dim < 2 || dist == 0 {
		// no preferred direction; the ellipsoid is symmetric about its center
		return identity(dim), nil
	}
	a1 := spatialmath.Difference(start, goal)
	m := mat.NewDense(dim, dim, nil)
	for i, x := range a1 {
		m.Set(i, 0, x/dist)
	}

	var svd mat.SVD
	if ok := svd.Factorize(m, mat.SVDFull); !ok {
		return nil, errors.New("failed to factorize start to goal direction")
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	diag := make([]float64, dim)
	for i := range diag {
		diag[i] = 1
	}
	diag[dim-2] = mat.Det(&u)
	diag[dim-1] = mat.Det(&v)

	var ud, c mat.Dense
	ud.Mul(&u, mat.NewDiagDense(dim, diag))
	c.Mul(&ud, v.T())
	return &c, nil
}

func identity(dim int) *mat.Dense {
	eye := mat.NewDense(dim, dim, nil)
	for i := 0; i < dim; i++ {
		eye.Set(i, i, 1)
	}
	return eye
}

// radii returns the semi-axes of the ellipsoid for the given best cost: costMax/2 along the
// start-to-goal axis and sqrt(costMax²-costMin²)/2 along every other axis.
func (s *informedSampler) radii(costMax float64) []float64 {
	dim := len(s.center)
	radii := make([]float64, dim)
	radii[0] = costMax / 2
	minor := math.Sqrt(math.Max(0, costMax*costMax-s.costMin*s.costMin)) / 2
	for i := 1; i < dim; i++ {
		radii[i] = minor
	}
	return radii
}

// sample draws a point uniformly inside the ellipsoid for costMax.
func (s *informedSampler) sample(costMax float64) []float64 {
	dim := len(s.center)
	ball := mat.NewVecDense(dim, sampleUnitBall(s.randseed, dim))

	var scaled, rotated mat.VecDense
	scaled.MulVec(mat.NewDiagDense(dim, s.radii(costMax)), ball)
	rotated.MulVec(s.rotation, &scaled)

	position := make([]float64, dim)
	for i := range position {
		position[i] = rotated.AtVec(i) + s.center[i]
	}
	return position
}
