// Package centralized implements the coordinator/worker CBS driver: one
// coordinator goroutine dispatches plateaus of equal-cost frontier nodes to
// a fixed pool of stateless worker goroutines, with an MPI "rank" rendered
// as a goroutine.
package centralized

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/elektrokombinacija/mapf-cbs/internal/conflict"
	"github.com/elektrokombinacija/mapf-cbs/internal/hlnode"
	"github.com/elektrokombinacija/mapf-cbs/internal/instance"
	"github.com/elektrokombinacija/mapf-cbs/internal/limits"
	"github.com/elektrokombinacija/mapf-cbs/internal/llmanager"
	"github.com/elektrokombinacija/mapf-cbs/internal/lowlevel"
	"github.com/elektrokombinacija/mapf-cbs/internal/pqueue"
	"github.com/elektrokombinacija/mapf-cbs/internal/solver"
	"github.com/elektrokombinacija/mapf-cbs/internal/stats"
	"github.com/elektrokombinacija/mapf-cbs/internal/xport"
)

// Config configures the centralised driver.
type Config struct {
	Timeout time.Duration
	// Expanders is the number of worker goroutines; 0 means
	// runtime-appropriate default chosen by the caller (the CLI defaults it
	// to GOMAXPROCS-1, the Go rendition of "world_size - 1").
	Expanders int
	// LowLevelPool, if > 0, routes every worker's low-level replans through
	// a shared llmanager.Pool instead of planning locally.
	LowLevelPool int
}

// Driver is the coordinator/worker CBS solver.
type Driver struct {
	Config Config
}

// New returns a centralised Driver.
func New(cfg Config) *Driver {
	if cfg.Expanders < 1 {
		cfg.Expanders = 1
	}
	return &Driver{Config: cfg}
}

func (d *Driver) Name() string { return "centralized" }

type workerLink struct {
	in  chan xport.Message
	out chan xport.Message
}

// Solve implements solver.Solver.
func (d *Driver) Solve(ctx context.Context, prob *instance.Problem) (solver.Result, stats.Stats) {
	start := time.Now()
	st := stats.New()

	if d.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Config.Timeout)
		defer cancel()
	}

	planner := lowlevel.New(prob.Grid)

	var pool *llmanager.Pool
	if d.Config.LowLevelPool > 0 {
		pool = llmanager.NewPool(prob.Grid, d.Config.LowLevelPool)
		defer pool.Close()
	}

	root, ok := planRoot(planner, prob)
	if !ok {
		log.Printf("[WARN] centralized: root planning failed for %d agents, unsolvable", prob.NumAgents())
		st.Finalize(start, 0)
		return solver.Result{}, st
	}

	log.Printf("[INFO] centralized: starting %d worker goroutines", d.Config.Expanders)
	links := make([]workerLink, d.Config.Expanders)
	workerCommNs := make([]int64, d.Config.Expanders)
	var workers sync.WaitGroup
	workers.Add(d.Config.Expanders)
	for i := range links {
		links[i] = workerLink{in: make(chan xport.Message, 1), out: make(chan xport.Message, 1)}
		go runWorker(links[i], planner, pool, prob, &workerCommNs[i], &workers)
	}

	var coordinatorCommNs int64
	open := pqueue.New()
	open.Push(root.Cost, root)
	st.NodesGenerated = 1

	var nextID int64 = 1
	incumbent := &hlnode.Node{}
	haveIncumbent := false

	for open.Len() > 0 {
		if expired(ctx) {
			log.Printf("[WARN] centralized: deadline exceeded after %d expansions, draining workers", st.NodesExpanded)
			st.TimedOut = true
			drain(ctx, links, d.Config.Expanders)
			break
		}

		plateau := popPlateau(open, d.Config.Expanders)

		replies := dispatchAndCollect(ctx, links, plateau, incumbentCost(haveIncumbent, incumbent), &coordinatorCommNs)
		for i, rep := range replies {
			st.NodesExpanded++
			switch rep.kind {
			case replySolution:
				if !haveIncumbent || rep.node.Cost < incumbent.Cost {
					incumbent = rep.node
					haveIncumbent = true
				}
			case replyChildren:
				st.ConflictsDetected++
				for _, child := range rep.children {
					child.ParentID = plateau[i].ID
					child.ID = nextID
					nextID++
					if haveIncumbent && child.Cost >= incumbent.Cost {
						continue
					}
					open.Push(child.Cost, child)
					st.NodesGenerated++
				}
			}
		}

		if haveIncumbent {
			if _, top, ok := open.Peek(); !ok || top >= incumbent.Cost-limits.PlateauEpsilon {
				break
			}
		}
	}

	shutdownWorkers(links)
	waitForWorkers(&workers, limits.DrainTimeout)
	st.Finalize(start, meanCommSec(coordinatorCommNs, workerCommNs))
	if !haveIncumbent {
		return solver.Result{}, st
	}
	st.SolutionFound = true
	st.BestCost = incumbent.Cost
	return solver.Result{Paths: incumbent.Paths, Cost: incumbent.Cost, Found: true}, st
}

// shutdownWorkers asks every worker goroutine to exit via TagTerminate.
func shutdownWorkers(links []workerLink) {
	for _, l := range links {
		l.in <- xport.Message{Tag: xport.TagTerminate}
	}
}

// waitForWorkers waits up to timeout for every worker to acknowledge
// shutdown. A worker still mid-send on a full link.out from the round that
// was abandoned at the deadline could otherwise block forever; in that rare
// case we give up and let the goroutine leak rather than hang the caller.
func waitForWorkers(workers *sync.WaitGroup, timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		workers.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		log.Printf("[WARN] centralized: workers did not exit within drain timeout")
	}
}

// meanCommSec averages the coordinator's and every worker's time spent
// blocked waiting on a channel operation, giving the mean communication
// time across ranks that Finalize subtracts from wall-clock runtime.
func meanCommSec(coordinatorCommNs int64, workerCommNs []int64) float64 {
	total := coordinatorCommNs
	for _, ns := range workerCommNs {
		total += ns
	}
	ranks := len(workerCommNs) + 1
	return float64(total) / float64(ranks) / float64(time.Second)
}

func incumbentCost(have bool, n *hlnode.Node) float64 {
	if !have {
		return -1
	}
	return n.Cost
}

// popPlateau pops the cheapest node, then drains every other frontier node
// within limits.PlateauEpsilon of it, up to max entries; leftovers beyond
// max are pushed back.
func popPlateau(open *pqueue.Queue, max int) []*hlnode.Node {
	if open.Len() == 0 {
		return nil
	}
	v, minCost, _ := open.Pop()
	plateau := []*hlnode.Node{v.(*hlnode.Node)}

	var leftover []*hlnode.Node
	for open.Len() > 0 {
		nv, cost, _ := open.Peek()
		if cost-minCost > limits.PlateauEpsilon {
			break
		}
		open.Pop()
		node := nv.(*hlnode.Node)
		if len(plateau) < max {
			plateau = append(plateau, node)
		} else {
			leftover = append(leftover, node)
		}
	}
	for _, n := range leftover {
		open.Push(n.Cost, n)
	}
	return plateau
}

type replyKind int

const (
	replySolution replyKind = iota
	replyChildren
)

type reply struct {
	kind     replyKind
	node     *hlnode.Node
	children []*hlnode.Node
}

func dispatchAndCollect(ctx context.Context, links []workerLink, plateau []*hlnode.Node, incumbent float64, commNs *int64) []reply {
	for i, node := range plateau {
		links[i].in <- xport.Message{Tag: xport.TagTask, Frame: hlnode.Encode(node, int64(incumbent))}
	}

	replies := make([]reply, 0, len(plateau))
	for i := range plateau {
		replies = append(replies, receiveReply(ctx, links[i], commNs))
	}
	return replies
}

// receiveReply blocks on the worker's reply, attributing the wait to
// commNs -- the coordinator's side of the round-trip communication cost,
// same as time spent in a blocking MPI_Recv.
func receiveReply(ctx context.Context, link workerLink, commNs *int64) reply {
	t0 := time.Now()
	select {
	case msg := <-link.out:
		*commNs += int64(time.Since(t0))
		switch msg.Tag {
		case xport.TagSolution:
			node, _, _ := hlnode.Decode(msg.Frame)
			return reply{kind: replySolution, node: node}
		case xport.TagChildren:
			count := int(msg.Aux)
			children := make([]*hlnode.Node, 0, count)
			for i := 0; i < count; i++ {
				t1 := time.Now()
				childMsg := <-link.out
				*commNs += int64(time.Since(t1))
				node, _, _ := hlnode.Decode(childMsg.Frame)
				children = append(children, node)
			}
			return reply{kind: replyChildren, children: children}
		}
	case <-ctx.Done():
		*commNs += int64(time.Since(t0))
	}
	return reply{kind: replyChildren}
}

// drain discards worker replies that are already waiting on the links after
// a timeout, sweeping every link repeatedly until a sweep finds nothing
// ready or limits.DrainTimeout passes. It does not wait for replies that
// are still being computed and does not terminate workers; Solve sends
// TagTerminate afterwards via shutdownWorkers.
func drain(ctx context.Context, links []workerLink, pending int) {
	deadline := time.Now().Add(limits.DrainTimeout)
	for time.Now().Before(deadline) {
		drained := false
		for _, l := range links {
			select {
			case <-l.out:
				drained = true
			default:
			}
		}
		if !drained {
			break
		}
	}
}

// runWorker processes tasks until it receives TagTerminate. commNs
// accumulates the time this worker spends blocked waiting for its next
// task -- this rank's side of the coordinator/worker communication cost.
func runWorker(link workerLink, planner *lowlevel.Planner, pool *llmanager.Pool, prob *instance.Problem, commNs *int64, wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		t0 := time.Now()
		msg := <-link.in
		*commNs += int64(time.Since(t0))
		if msg.Tag == xport.TagTerminate {
			return
		}
		node, incumbentRaw, _ := hlnode.Decode(msg.Frame)
		incumbent := float64(incumbentRaw)
		haveIncumbent := incumbent >= 0
		node.Recost()

		c := conflict.First(node.Paths)
		if c == nil {
			link.out <- xport.Message{Tag: xport.TagSolution, Frame: hlnode.Encode(node, 0)}
			continue
		}

		var children []*hlnode.Node
		for _, cstr := range hlnode.ChildConstraints(c, node.Paths) {
			agent := cstr.Agent
			child := node.NewChild(cstr)

			var path instance.AgentPath
			var ok bool
			if pool != nil {
				path, ok = pool.Plan(agent, child.Constraints, prob.Starts[agent], prob.Goals[agent])
			} else {
				path, ok = planner.Plan(agent, child.Constraints, prob.Starts[agent], prob.Goals[agent])
			}
			if !ok {
				continue
			}
			child.Paths[agent] = path
			child.Recost()

			if haveIncumbent && child.Cost >= incumbent {
				continue // worker-side pruning
			}
			children = append(children, child)
		}

		link.out <- xport.Message{Tag: xport.TagChildren, Aux: int64(len(children))}
		for _, child := range children {
			link.out <- xport.Message{Tag: xport.TagChildren, Frame: hlnode.Encode(child, 0)}
		}
	}
}

func planRoot(planner *lowlevel.Planner, prob *instance.Problem) (*hlnode.Node, bool) {
	paths := make([]instance.AgentPath, prob.NumAgents())
	for a := 0; a < prob.NumAgents(); a++ {
		path, ok := planner.Plan(a, nil, prob.Starts[a], prob.Goals[a])
		if !ok {
			return nil, false
		}
		paths[a] = path
	}
	return hlnode.NewRoot(paths), true
}

func expired(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
