package hlnode

import (
	"reflect"
	"testing"

	"github.com/elektrokombinacija/mapf-cbs/internal/conflict"
	"github.com/elektrokombinacija/mapf-cbs/internal/constraint"
	"github.com/elektrokombinacija/mapf-cbs/internal/gridmap"
	"github.com/elektrokombinacija/mapf-cbs/internal/instance"
)

func sampleNode() *Node {
	root := NewRoot([]instance.AgentPath{
		{{X: 0, Y: 0}, {X: 1, Y: 0}},
		{{X: 0, Y: 1}},
	})
	root.ID = 7
	root.ParentID = 3
	root.Depth = 2
	root.Constraints = constraint.Set{
		{Agent: 0, Time: 1, Kind: constraint.Vertex, Vertex: gridmap.Coord{X: 1, Y: 0}},
		{Agent: 1, Time: 0, Kind: constraint.Edge, Vertex: gridmap.Coord{X: 0, Y: 1}, EdgeTo: gridmap.Coord{X: 1, Y: 1}},
	}
	return root
}

func TestCloneIsIndependent(t *testing.T) {
	n := sampleNode()
	clone := n.Clone()

	clone.Paths[0][0] = gridmap.Coord{X: 9, Y: 9}
	clone.Constraints = clone.Constraints.Append(constraint.Constraint{Agent: 1})

	if n.Paths[0][0] != (gridmap.Coord{X: 0, Y: 0}) {
		t.Errorf("Clone aliased parent's path storage")
	}
	if len(n.Constraints) != 2 {
		t.Errorf("Clone aliased parent's constraint storage: len = %d", len(n.Constraints))
	}
}

func TestNewChildAppendsOneConstraint(t *testing.T) {
	n := sampleNode()
	c := constraint.Constraint{Agent: 0, Time: 5, Kind: constraint.Vertex, Vertex: gridmap.Coord{X: 2, Y: 2}}
	child := n.NewChild(c)

	if len(child.Constraints) != len(n.Constraints)+1 {
		t.Fatalf("child has %d constraints, want %d", len(child.Constraints), len(n.Constraints)+1)
	}
	if child.Depth != n.Depth+1 {
		t.Errorf("child depth = %d, want %d", child.Depth, n.Depth+1)
	}
	if len(n.Constraints) != 2 {
		t.Errorf("NewChild mutated parent's constraint set")
	}
}

func TestChildConstraintsVertexConflict(t *testing.T) {
	paths := []instance.AgentPath{
		{{X: 0, Y: 0}, {X: 1, Y: 1}},
		{{X: 2, Y: 2}, {X: 1, Y: 1}},
	}
	c := &conflict.Conflict{AgentA: 0, AgentB: 1, Time: 1, Position: gridmap.Coord{X: 1, Y: 1}, Kind: conflict.Vertex}

	out := ChildConstraints(c, paths)
	for i, agent := range [2]int{0, 1} {
		if out[i].Agent != agent || out[i].Kind != constraint.Vertex || out[i].Vertex != c.Position || out[i].Time != 1 {
			t.Errorf("child constraint %d = %+v", i, out[i])
		}
	}
}

func TestChildConstraintsEdgeConflictUsesEachAgentsOwnDirection(t *testing.T) {
	paths := []instance.AgentPath{
		{{X: 0, Y: 0}, {X: 1, Y: 0}},
		{{X: 1, Y: 0}, {X: 0, Y: 0}},
	}
	c := &conflict.Conflict{AgentA: 0, AgentB: 1, Time: 0, Position: gridmap.Coord{X: 0, Y: 0}, Kind: conflict.Edge, EdgeTo: gridmap.Coord{X: 1, Y: 0}}

	out := ChildConstraints(c, paths)

	if out[0].Vertex != (gridmap.Coord{X: 0, Y: 0}) || out[0].EdgeTo != (gridmap.Coord{X: 1, Y: 0}) {
		t.Errorf("agent 0's constraint should follow its own move, got %+v", out[0])
	}
	if out[1].Vertex != (gridmap.Coord{X: 1, Y: 0}) || out[1].EdgeTo != (gridmap.Coord{X: 0, Y: 0}) {
		t.Errorf("agent 1's constraint should follow its own (reverse) move, got %+v", out[1])
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	n := sampleNode()

	frame := Encode(n, 42)
	got, aux, err := Decode(frame)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if aux != 42 {
		t.Errorf("aux = %d, want 42", aux)
	}
	if got.ID != n.ID || got.ParentID != n.ParentID || got.Depth != n.Depth || got.Cost != n.Cost {
		t.Errorf("round-trip header mismatch: got %+v", got)
	}
	if !reflect.DeepEqual(got.Paths, n.Paths) {
		t.Errorf("round-trip paths mismatch: got %v, want %v", got.Paths, n.Paths)
	}
	if !reflect.DeepEqual(got.Constraints, n.Constraints) {
		t.Errorf("round-trip constraints mismatch: got %v, want %v", got.Constraints, n.Constraints)
	}
}

func TestDecodeRejectsMalformedConstraintCount(t *testing.T) {
	f := Encode(sampleNode(), 0)
	f.ConstraintCount++ // now disagrees with len(ConstraintInts)

	if _, _, err := Decode(f); err == nil {
		t.Fatal("expected Decode to reject a mismatched constraint count")
	}
}
