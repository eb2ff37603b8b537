package motionplan

import (
	"math"

	"go.viam.com/rrtplan/spatialmath"
)

// nearestNeighbor returns the handle of the node closest to target. All nodes are scanned; on a
// tie the lowest handle wins.
func (t *tree) nearestNeighbor(target []float64) int {
	best := 0
	bestDist := math.Inf(1)
	for i := range t.nodes {
		if dist := spatialmath.Distance(t.nodes[i].position, target); dist < bestDist {
			bestDist = dist
			best = i
		}
	}
	return best
}

// nearNeighbors returns the handles of every node within radius of target, in handle order.
func (t *tree) nearNeighbors(target []float64, radius float64) []int {
	near := make([]int, 0)
	for i := range t.nodes {
		if spatialmath.Distance(t.nodes[i].position, target) <= radius {
			near = append(near, i)
		}
	}
	return near
}

// minCostParent returns the node in candidates minimizing cost-to-come plus the edge length to
// target. The first of equally cheap candidates wins. If candidates is empty, fallback is
// returned.
func (t *tree) minCostParent(target []float64, candidates []int, fallback int) int {
	best := fallback
	minCost := math.Inf(1)
	for _, i := range candidates {
		if cost := t.nodes[i].cost + spatialmath.Distance(t.nodes[i].position, target); cost < minCost {
			minCost = cost
			best = i
		}
	}
	return best
}

// rewire reparents every node in near to newIdx when reaching it through newIdx is strictly
// cheaper than its current cost. It returns the number of reparented nodes.
func (t *tree) rewire(newIdx int, near []int) int {
	rewired := 0
	newNode := &t.nodes[newIdx]
	for _, i := range near {
		if i == newIdx {
			continue
		}
		cost := newNode.cost + spatialmath.Distance(newNode.position, t.nodes[i].position)
		if cost < t.nodes[i].cost && !t.isAncestor(i, newIdx) {
			t.reparent(i, newIdx)
			rewired++
		}
	}
	return rewired
}
