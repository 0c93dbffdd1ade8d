// Package llmanager implements the low-level manager service: a pool of
// size ranks that cooperate, via lowlevel.Planner.PlanParallel, on one
// replan request at a time on behalf of whichever high-level driver is
// configured to share them. Requests travel as TagLLRequest/TagLLResponse
// frames conceptually; in Go they are plain typed values on a shared
// channel, since there is no serialisation boundary between goroutines in
// the same process.
package llmanager

import (
	"github.com/elektrokombinacija/mapf-cbs/internal/constraint"
	"github.com/elektrokombinacija/mapf-cbs/internal/gridmap"
	"github.com/elektrokombinacija/mapf-cbs/internal/instance"
	"github.com/elektrokombinacija/mapf-cbs/internal/lowlevel"
)

type request struct {
	agent      int
	cs         constraint.Set
	start, goal gridmap.Coord
	reply      chan response
}

type response struct {
	path instance.AgentPath
	ok   bool
}

// Pool is a shared low-level replanning service. All size ranks of the pool
// cooperate on each incoming request via PlanParallel rather than each
// carrying an independent request off the queue; this keeps a single
// Planner's open set and best-g table free of races while still spreading
// successor expansion across the pool's width. The zero value is not
// usable; build one with NewPool.
type Pool struct {
	requests chan request
	size     int
}

// NewPool starts the pool's coordinator goroutine, which runs every
// incoming request through PlanParallel with size-wide expansion against
// grid.
func NewPool(grid *gridmap.Grid, size int) *Pool {
	if size < 1 {
		size = 1
	}
	p := &Pool{
		requests: make(chan request),
		size:     size,
	}
	go p.coordinator(grid)
	return p
}

func (p *Pool) coordinator(grid *gridmap.Grid) {
	planner := lowlevel.New(grid)
	for req := range p.requests {
		// agent == -1 is the shutdown sentinel.
		if req.agent == -1 {
			req.reply <- response{}
			return
		}
		path, ok := planner.PlanParallel(req.agent, req.cs, req.start, req.goal, p.size)
		req.reply <- response{path: path, ok: ok}
	}
}

// Plan submits a replan request to the pool and blocks for the result.
func (p *Pool) Plan(agent int, cs constraint.Set, start, goal gridmap.Coord) (instance.AgentPath, bool) {
	reply := make(chan response, 1)
	p.requests <- request{agent: agent, cs: cs, start: start, goal: goal, reply: reply}
	r := <-reply
	return r.path, r.ok
}

// Close shuts the coordinator goroutine down via the agent_id = -1 sentinel
// and waits for it to acknowledge before returning.
func (p *Pool) Close() {
	reply := make(chan response, 1)
	p.requests <- request{agent: -1, reply: reply}
	<-reply
}
