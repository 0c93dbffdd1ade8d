package hlnode

import (
	"fmt"

	"github.com/elektrokombinacija/mapf-cbs/internal/constraint"
	"github.com/elektrokombinacija/mapf-cbs/internal/gridmap"
	"github.com/elektrokombinacija/mapf-cbs/internal/instance"
	"github.com/elektrokombinacija/mapf-cbs/internal/xport"
)

// Encode serialises n into a wire frame: an int header, the cost, the
// per-agent path ints, and the constraint ints, in that order. aux carries
// the tag-specific extra value (e.g. the current incumbent cost on a
// TagTask send).
func Encode(n *Node, aux int64) xport.Frame {
	pathInts := make([]int, 0, len(n.Paths)*2+len(n.Paths))
	for _, p := range n.Paths {
		pathInts = append(pathInts, len(p))
		for _, c := range p {
			pathInts = append(pathInts, c.X, c.Y)
		}
	}

	constraintInts := make([]int, 0, len(n.Constraints)*7)
	for _, c := range n.Constraints {
		kind := 0
		if c.Kind == constraint.Edge {
			kind = 1
		}
		constraintInts = append(constraintInts,
			c.Agent, c.Time, kind, c.Vertex.X, c.Vertex.Y, c.EdgeTo.X, c.EdgeTo.Y)
	}

	return xport.Frame{
		NodeID:          n.ID,
		ParentID:        n.ParentID,
		Depth:           n.Depth,
		NumAgents:       len(n.Paths),
		ConstraintCount: len(n.Constraints),
		Cost:            n.Cost,
		PathInts:        pathInts,
		ConstraintInts:  constraintInts,
		Aux:             aux,
	}
}

// Decode reconstructs a Node from a Frame produced by Encode, returning the
// frame's Aux value alongside it. It errors on header/body mismatches:
// malformed frames are a programmer error, not a runtime condition to
// recover from.
func Decode(f xport.Frame) (*Node, int64, error) {
	if got, want := len(f.ConstraintInts), 7*f.ConstraintCount; got != want {
		return nil, 0, fmt.Errorf("hlnode: constraint_int_count = %d, want %d", got, want)
	}

	n := &Node{ID: f.NodeID, ParentID: f.ParentID, Depth: f.Depth, Cost: f.Cost}

	n.Paths = make([]instance.AgentPath, f.NumAgents)
	pos := 0
	for a := 0; a < f.NumAgents; a++ {
		if pos >= len(f.PathInts) {
			return nil, 0, fmt.Errorf("hlnode: path ints truncated before agent %d", a)
		}
		length := f.PathInts[pos]
		pos++
		path := make(instance.AgentPath, length)
		for i := 0; i < length; i++ {
			if pos+1 >= len(f.PathInts) {
				return nil, 0, fmt.Errorf("hlnode: path ints truncated mid-coordinate for agent %d", a)
			}
			path[i] = gridmap.Coord{X: f.PathInts[pos], Y: f.PathInts[pos+1]}
			pos += 2
		}
		n.Paths[a] = path
	}
	if pos != len(f.PathInts) {
		return nil, 0, fmt.Errorf("hlnode: path_int_count = %d, consumed %d", len(f.PathInts), pos)
	}

	n.Constraints = make(constraint.Set, f.ConstraintCount)
	for i := 0; i < f.ConstraintCount; i++ {
		base := i * 7
		kind := constraint.Vertex
		if f.ConstraintInts[base+2] == 1 {
			kind = constraint.Edge
		}
		n.Constraints[i] = constraint.Constraint{
			Agent:  f.ConstraintInts[base],
			Time:   f.ConstraintInts[base+1],
			Kind:   kind,
			Vertex: gridmap.Coord{X: f.ConstraintInts[base+3], Y: f.ConstraintInts[base+4]},
			EdgeTo: gridmap.Coord{X: f.ConstraintInts[base+5], Y: f.ConstraintInts[base+6]},
		}
	}

	return n, f.Aux, nil
}
