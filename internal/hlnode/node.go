// Package hlnode defines the CBS high-level search tree node: a constraint
// set plus one replanned path per agent, and the deep-copy/branch
// operations the high-level search performs on it.
package hlnode

import (
	"github.com/elektrokombinacija/mapf-cbs/internal/conflict"
	"github.com/elektrokombinacija/mapf-cbs/internal/constraint"
	"github.com/elektrokombinacija/mapf-cbs/internal/instance"
)

// Node is a CBS tree node. Invariant: for every agent a, Paths[a] respects
// every constraint in Constraints whose Agent is a or Universal.
type Node struct {
	ID          int64
	ParentID    int64
	Depth       int
	Cost        float64
	Constraints constraint.Set
	Paths       []instance.AgentPath
}

// NewRoot builds the root node from a set of already-planned, unconstrained
// paths.
func NewRoot(paths []instance.AgentPath) *Node {
	return &Node{
		Cost:  float64(instance.SumOfCosts(paths)),
		Paths: instance.ClonePaths(paths),
	}
}

// Clone returns a deep copy of n: its own constraint set and its own copy
// of every agent's path, sharing no backing storage with n.
func (n *Node) Clone() *Node {
	return &Node{
		ID:          n.ID,
		ParentID:    n.ParentID,
		Depth:       n.Depth,
		Cost:        n.Cost,
		Constraints: n.Constraints.Clone(),
		Paths:       instance.ClonePaths(n.Paths),
	}
}

// ChildConstraints returns the two constraints CBS branches into for c: one
// targeting each of the conflicting agents, a vertex constraint
// for a vertex conflict or an edge constraint (keyed on that agent's own
// direction of travel) for an edge conflict.
func ChildConstraints(c *conflict.Conflict, paths []instance.AgentPath) [2]constraint.Constraint {
	agents := [2]int{c.AgentA, c.AgentB}
	var out [2]constraint.Constraint

	for i, agent := range agents {
		if c.Kind == conflict.Vertex {
			out[i] = constraint.Constraint{
				Agent: agent, Time: c.Time, Kind: constraint.Vertex, Vertex: c.Position,
			}
			continue
		}

		from, _ := paths[agent].At(c.Time)
		to, _ := paths[agent].At(c.Time + 1)
		out[i] = constraint.Constraint{
			Agent: agent, Time: c.Time, Kind: constraint.Edge, Vertex: from, EdgeTo: to,
		}
	}
	return out
}

// NewChild returns a deep copy of n with c appended to its constraint set
// and depth incremented; the caller is responsible for replanning the
// affected agent's path before using the child.
func (n *Node) NewChild(c constraint.Constraint) *Node {
	child := n.Clone()
	child.Constraints = n.Constraints.Append(c)
	child.Depth = n.Depth + 1
	return child
}

// Recost recomputes Cost from Paths; drivers call this after replanning an
// agent's path in place.
func (n *Node) Recost() {
	n.Cost = float64(instance.SumOfCosts(n.Paths))
}
