// Package decentral implements the fully peer-to-peer CBS driver: P
// symmetric goroutines, each with its own open set, synchronised once per
// loop iteration by three Allreduce collectives (timeout, lower bound,
// incumbent) and handing children off round-robin.
package decentral

import (
	"context"
	"log"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/elektrokombinacija/mapf-cbs/internal/conflict"
	"github.com/elektrokombinacija/mapf-cbs/internal/hlnode"
	"github.com/elektrokombinacija/mapf-cbs/internal/instance"
	"github.com/elektrokombinacija/mapf-cbs/internal/limits"
	"github.com/elektrokombinacija/mapf-cbs/internal/lowlevel"
	"github.com/elektrokombinacija/mapf-cbs/internal/pqueue"
	"github.com/elektrokombinacija/mapf-cbs/internal/solver"
	"github.com/elektrokombinacija/mapf-cbs/internal/stats"
	"github.com/elektrokombinacija/mapf-cbs/internal/xport"
)

// Config configures the decentralised driver.
type Config struct {
	Timeout time.Duration
	// Peers is the number of symmetric peer goroutines (the Go rendition of
	// MPI world size P).
	Peers int
	// Suboptimality is w >= 1: the admission gate accepts any node whose
	// cost is within a factor w of the current global lower bound. 1.0
	// gives strict optimality.
	Suboptimality float64
}

// Driver is the decentralised CBS solver.
type Driver struct {
	Config Config
}

// New returns a decentralised Driver.
func New(cfg Config) *Driver {
	if cfg.Peers < 1 {
		cfg.Peers = 1
	}
	if cfg.Suboptimality < 1 {
		cfg.Suboptimality = 1
	}
	return &Driver{Config: cfg}
}

func (d *Driver) Name() string { return "decentralized" }

type peerState struct {
	id            int
	open          *pqueue.Queue
	inbox         chan xport.Message
	rr            int
	localSeq      int64
	localBest     *hlnode.Node
	localBestCost float64

	nodesExpanded, nodesGenerated, conflictsDetected int
	// commNs accumulates this peer's time blocked inside the three
	// Allreduce.Contribute calls each loop iteration makes -- its share of
	// the round's communication cost.
	commNs int64
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
	root, ok := planRoot(planner, prob)
	if !ok {
		log.Printf("[WARN] decentral: root planning failed for %d agents, unsolvable", prob.NumAgents())
		st.Finalize(start, 0)
		return solver.Result{}, st
	}

	peers := d.Config.Peers
	w := d.Config.Suboptimality
	log.Printf("[INFO] decentral: starting %d peer goroutines, w=%.2f", peers, w)

	states := make([]*peerState, peers)
	inboxes := make([]chan xport.Message, peers)
	for i := 0; i < peers; i++ {
		inboxes[i] = make(chan xport.Message, 64)
		open := pqueue.New()
		rootCopy := root.Clone()
		open.Push(rootCopy.Cost, rootCopy)
		states[i] = &peerState{
			id: i, open: open, inbox: inboxes[i], rr: (i + 1) % peers,
			localBestCost: math.Inf(1),
		}
	}

	timeoutAR := xport.NewAllreduce(peers, xport.Max)
	lbAR := xport.NewAllreduce(peers, xport.Min)
	incumbentAR := xport.NewAllreduce(peers, xport.Min)
	sendPool := xport.NewSendPool(limits.SendPoolCapacity)
	defer func() {
		timeoutAR.Close()
		lbAR.Close()
		incumbentAR.Close()
	}()

	resultCh := make(chan *hlnode.Node, 1)
	var resultOnce sync.Once
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < peers; i++ {
		ps := states[i]
		g.Go(func() error {
			runPeer(gctx, ps, planner, prob, peers, inboxes, sendPool, timeoutAR, lbAR, incumbentAR, w, &resultOnce, resultCh)
			return nil
		})
	}
	g.Wait()
	sendPool.Drain()

	var totalCommNs int64
	for _, ps := range states {
		st.NodesExpanded += ps.nodesExpanded
		st.NodesGenerated += ps.nodesGenerated
		st.ConflictsDetected += ps.conflictsDetected
		totalCommNs += ps.commNs
	}
	meanCommSec := float64(totalCommNs) / float64(peers) / float64(time.Second)
	st.Finalize(start, meanCommSec)

	select {
	case node := <-resultCh:
		st.SolutionFound = true
		st.BestCost = node.Cost
		return solver.Result{Paths: node.Paths, Cost: node.Cost, Found: true}, st
	default:
		return solver.Result{}, st
	}
}

func runPeer(
	ctx context.Context, ps *peerState, planner *lowlevel.Planner, prob *instance.Problem,
	peers int, inboxes []chan xport.Message, sendPool *xport.SendPool,
	timeoutAR, lbAR, incumbentAR *xport.Allreduce, w float64,
	resultOnce *sync.Once, resultCh chan *hlnode.Node,
) {
	for {
		localTimeout := 0.0
		if expired(ctx) {
			localTimeout = 1.0
		}
		t0 := time.Now()
		timeoutResult := timeoutAR.Contribute(localTimeout)
		ps.commNs += int64(time.Since(t0))
		if timeoutResult > 0 {
			if ps.id == 0 {
				log.Printf("[WARN] decentral: peer deadline exceeded, all peers exiting")
			}
			return
		}

		drainInbox(ps)

		localTop := math.Inf(1)
		if _, cost, ok := ps.open.Peek(); ok {
			localTop = cost
		}
		t1 := time.Now()
		lb := lbAR.Contribute(localTop)
		ps.commNs += int64(time.Since(t1))

		t2 := time.Now()
		globalIncumbent := incumbentAR.Contribute(ps.localBestCost)
		ps.commNs += int64(time.Since(t2))
		if !math.IsInf(globalIncumbent, 1) {
			if ps.localBest != nil && math.Abs(ps.localBestCost-globalIncumbent) < limits.PlateauEpsilon {
				resultOnce.Do(func() { resultCh <- ps.localBest })
			}
			return
		}

		if math.IsInf(lb, 1) {
			if ps.id == 0 {
				log.Printf("[WARN] decentral: global lower bound is +Inf, no solution exists")
			}
			return // no solution exists anywhere in the system
		}

		if ps.open.Len() == 0 {
			continue // no local work; it will arrive via round-robin hand-off
		}

		bound := w * lb
		_, topCost, _ := ps.open.Peek()
		if topCost > bound+limits.PlateauEpsilon {
			continue // wait for the global lower bound to catch up
		}

		v, _, _ := ps.open.Pop()
		node := v.(*hlnode.Node)
		ps.nodesExpanded++

		c := conflict.First(node.Paths)
		if c == nil {
			if node.Cost < ps.localBestCost {
				ps.localBestCost = node.Cost
				ps.localBest = node
			}
			continue
		}
		ps.conflictsDetected++

		drainInbox(ps) // drain before dispatching to avoid a send deadlock

		for _, cstr := range hlnode.ChildConstraints(c, node.Paths) {
			agent := cstr.Agent
			child := node.NewChild(cstr)
			child.ParentID = node.ID

			path, ok := planner.Plan(agent, child.Constraints, prob.Starts[agent], prob.Goals[agent])
			if !ok {
				continue
			}
			child.Paths[agent] = path
			child.Recost()
			child.ID = int64(ps.id)*1_000_000 + ps.localSeq
			ps.localSeq++
			ps.nodesGenerated++

			dest := ps.rr
			ps.rr = (ps.rr + 1) % peers

			if dest == ps.id {
				ps.open.Push(child.Cost, child)
				continue
			}
			sendPool.Send(inboxes[dest], xport.Message{Tag: xport.TagDPNode, Frame: hlnode.Encode(child, 0)})
		}
	}
}

func drainInbox(ps *peerState) {
	for {
		select {
		case msg := <-ps.inbox:
			node, _, err := hlnode.Decode(msg.Frame)
			if err != nil {
				continue // malformed frame: a protocol bug elsewhere, not recoverable here
			}
			node.Recost()
			ps.open.Push(node.Cost, node)
			ps.nodesGenerated++
		default:
			return
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
