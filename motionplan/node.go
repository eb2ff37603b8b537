package motionplan

import (
	"sort"

	"go.viam.com/rrtplan/spatialmath"
)

// NoParent is the parent handle of the root node.
const NoParent = -1

// NodeState is a copy of a tree node: its position, the handle of its parent (NoParent for the
// root) and its cost from the root.
type NodeState struct {
	Position []float64 `json:"position"`
	Parent   int       `json:"parent"`
	Cost     float64   `json:"cost"`
}

// Snapshot is the state of every node of a tree after one accepted iteration.
type Snapshot []NodeState

// node is a vertex of the exploration tree. Nodes are addressed by their index in the tree.
type node struct {
	position []float64
	parent   int
	children map[int]struct{}
	cost     float64
}

// tree is an append-only arena of nodes rooted at index 0. Nodes are never removed; rewiring
// changes parent and children handles but never an index.
type tree struct {
	nodes []node
}

func newTree(root []float64) *tree {
	t := &tree{}
	t.nodes = append(t.nodes, node{
		position: spatialmath.Clone(root),
		parent:   NoParent,
		children: map[int]struct{}{},
	})
	return t
}

func (t *tree) size() int {
	return len(t.nodes)
}

func (t *tree) position(idx int) []float64 {
	return t.nodes[idx].position
}

func (t *tree) cost(idx int) float64 {
	return t.nodes[idx].cost
}

func (t *tree) parent(idx int) int {
	return t.nodes[idx].parent
}

// add appends a node at position as a child of parent and returns its handle.
func (t *tree) add(position []float64, parent int) int {
	idx := len(t.nodes)
	p := &t.nodes[parent]
	p.children[idx] = struct{}{}
	t.nodes = append(t.nodes, node{
		position: position,
		parent:   parent,
		children: map[int]struct{}{},
		cost:     p.cost + spatialmath.Distance(p.position, position),
	})
	return idx
}

// isAncestor reports whether ancestor lies on the path from idx to the root, idx included.
func (t *tree) isAncestor(ancestor, idx int) bool {
	for cur := idx; cur != NoParent; cur = t.nodes[cur].parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// reparent moves idx under newParent and updates the cost of idx and all of its descendants.
// newParent must not be a descendant of idx.
func (t *tree) reparent(idx, newParent int) {
	n := &t.nodes[idx]
	delete(t.nodes[n.parent].children, idx)
	n.parent = newParent
	t.nodes[newParent].children[idx] = struct{}{}
	t.propagateCost(idx)
}

// propagateCost recomputes the cost of idx and every node below it from their parents, so each
// cost is exactly its parent's cost plus the edge length. The subtree is walked with an explicit
// stack since tree depth grows with the iteration count.
func (t *tree) propagateCost(idx int) {
	stack := []int{idx}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[cur]
		if n.parent != NoParent {
			p := &t.nodes[n.parent]
			n.cost = p.cost + spatialmath.Distance(p.position, n.position)
		}
		for child := range n.children {
			stack = append(stack, child)
		}
	}
}

// pathTo walks parent handles from idx back to the root and returns the positions root first.
func (t *tree) pathTo(idx int) Path {
	reversePath := Path{}
	for cur := idx; cur != NoParent; cur = t.nodes[cur].parent {
		reversePath = append(reversePath, spatialmath.Clone(t.nodes[cur].position))
	}
	for i, j := 0, len(reversePath)-1; i < j; i, j = i+1, j-1 {
		reversePath[i], reversePath[j] = reversePath[j], reversePath[i]
	}
	return reversePath
}

// children returns the sorted child handles of idx.
func (t *tree) children(idx int) []int {
	out := make([]int, 0, len(t.nodes[idx].children))
	for child := range t.nodes[idx].children {
		out = append(out, child)
	}
	sort.Ints(out)
	return out
}

// states returns a deep copy of every node.
func (t *tree) states() Snapshot {
	out := make(Snapshot, 0, len(t.nodes))
	for _, n := range t.nodes {
		out = append(out, NodeState{Position: spatialmath.Clone(n.position), Parent: n.parent, Cost: n.cost})
	}
	return out
}
