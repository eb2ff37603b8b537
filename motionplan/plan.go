package motionplan

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"go.viam.com/rrtplan/spatialmath"
)

// Path is an ordered sequence of positions from the start to the goal, both included. An empty
// Path means no solution was found within the iteration budget.
type Path [][]float64

// Empty reports whether the path holds no waypoints.
func (path Path) Empty() bool {
	return len(path) == 0
}

// Cost returns the sum of the Euclidean lengths of the path's edges.
func (path Path) Cost() float64 {
	cost := 0.
	for i := 1; i < len(path); i++ {
		cost += spatialmath.Distance(path[i-1], path[i])
	}
	return cost
}

// MaxEdgeLength returns the length of the longest edge of the path.
func (path Path) MaxEdgeLength() float64 {
	longest := 0.
	for i := 1; i < len(path); i++ {
		if d := spatialmath.Distance(path[i-1], path[i]); d > longest {
			longest = d
		}
	}
	return longest
}

// String returns a human-readable table of the waypoints, suitable for debugging.
func (path Path) String() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Position", "Edge", "Cost"})
	cost := 0.
	for i, waypoint := range path {
		edge := 0.
		if i > 0 {
			edge = spatialmath.Distance(path[i-1], waypoint)
			cost += edge
		}
		t.AppendRow(table.Row{i, formatPosition(waypoint), fmt.Sprintf("%.3f", edge), fmt.Sprintf("%.3f", cost)})
	}
	return t.Render()
}

func formatPosition(position []float64) string {
	parts := make([]string, 0, len(position))
	for _, x := range position {
		parts = append(parts, fmt.Sprintf("%.3f", x))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
