package xport

import "sync"

// SendPool tracks a bounded number of in-flight asynchronous sends. An MPI
// non-blocking send must keep its buffer alive until completion; channel
// sends in Go don't have that problem, but bounded-pool backpressure (a
// fixed capacity of 256 in-flight entries, sender blocks when full) is still
// the right behaviour under a bursty peer-to-peer workload, so SendPool
// reproduces it with a counting semaphore rather than letting goroutines
// pile up unbounded (see _examples/orange-dot-mapf-het/ek-roj/roj-node-go/
// transport's poll-then-reclaim idiom, which this generalises from one UDP
// socket to an N-peer mesh).
type SendPool struct {
	tokens chan struct{}
	wg     sync.WaitGroup
}

// NewSendPool returns a SendPool allowing up to capacity in-flight sends.
func NewSendPool(capacity int) *SendPool {
	return &SendPool{tokens: make(chan struct{}, capacity)}
}

// Send enqueues msg for delivery to dest. It blocks only if the pool is at
// capacity, and then only until one in-flight send completes; it does not
// wait for all pending sends to drain. Otherwise it returns immediately and
// delivery happens on a background goroutine, i.e. it is non-blocking with
// respect to the destination being ready to receive.
func (p *SendPool) Send(dest chan<- Message, msg Message) {
	p.tokens <- struct{}{}
	p.wg.Add(1)
	go func() {
		defer func() {
			<-p.tokens
			p.wg.Done()
		}()
		dest <- msg
	}()
}

// Drain blocks until every in-flight send this pool has issued has been
// delivered. Drivers call this during shutdown/timeout handling so no
// goroutine is left sending into a channel nobody will ever read from
// again.
func (p *SendPool) Drain() {
	p.wg.Wait()
}
