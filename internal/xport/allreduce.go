package xport

// ReduceOp selects the reduction applied across peers in an Allreduce call.
type ReduceOp int

const (
	Min ReduceOp = iota
	Max
)

// Allreduce is a rendezvous barrier standing in for an MPI_Allreduce across
// a fixed set of P peer goroutines: every peer calls Contribute with its
// local value and the same op, blocks until all P peers have contributed,
// and then every peer's Contribute call returns the same reduced value. The
// decentralised driver's three per-loop collectives (timeout-max,
// lower-bound-min, incumbent-min) are each one Allreduce instance reused
// every iteration.
type Allreduce struct {
	peers int
	op    ReduceOp

	in  chan float64
	out chan float64
}

// NewAllreduce returns a reusable barrier for peers goroutines combining
// values with op.
func NewAllreduce(peers int, op ReduceOp) *Allreduce {
	a := &Allreduce{peers: peers, op: op, in: make(chan float64), out: make(chan float64)}
	go a.run()
	return a
}

func (a *Allreduce) run() {
	for {
		values := make([]float64, 0, a.peers)
		for i := 0; i < a.peers; i++ {
			v, ok := <-a.in
			if !ok {
				return
			}
			values = append(values, v)
		}
		reduced := values[0]
		for _, v := range values[1:] {
			switch a.op {
			case Min:
				if v < reduced {
					reduced = v
				}
			case Max:
				if v > reduced {
					reduced = v
				}
			}
		}
		for i := 0; i < a.peers; i++ {
			a.out <- reduced
		}
	}
}

// Contribute submits v as this peer's value for the current round and
// blocks until every peer has contributed, returning the reduced result.
func (a *Allreduce) Contribute(v float64) float64 {
	a.in <- v
	return <-a.out
}

// Close releases the barrier's background goroutine. Call once after every
// peer has stopped calling Contribute.
func (a *Allreduce) Close() {
	close(a.in)
}
