package xport

// Frame is the Go rendition of a multi-part serialised high-level-node wire
// format: an int header, one cost value, the per-agent path ints, and the
// constraint ints, kept together as a single struct so encode/decode can
// never mismatch a multi-send pairing the way a hand-synchronised
// multi-message protocol could.
//
// Header layout: {NodeID, ParentID, Depth, NumAgents, ConstraintCount,
// PathIntCount, ConstraintIntCount, Aux}.
type Frame struct {
	NodeID             int64
	ParentID           int64
	Depth              int
	NumAgents          int
	ConstraintCount    int
	Cost               float64
	PathInts           []int // per agent: (L, x0, y0, x1, y1, ...)
	ConstraintInts     []int // per constraint: (agent, time, kind, vx, vy, ex, ey)
	Aux                int64
}

// PathIntCount returns the header's path_int_count field.
func (f Frame) PathIntCount() int { return len(f.PathInts) }

// ConstraintIntCount returns the header's constraint_int_count field; it is
// always 7*ConstraintCount.
func (f Frame) ConstraintIntCount() int { return len(f.ConstraintInts) }

// Message is one in-flight send: a tagged Frame (or, for control messages
// like TagTerminate, an empty Frame) travelling between two ranks.
type Message struct {
	Tag   Tag
	Frame Frame
	Aux   int64 // standalone int payload for tags that don't carry a Frame (e.g. TagChildren's count)
}
