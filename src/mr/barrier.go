package mr

import "sync"

// ------------------------
// Phase barrier
// ------------------------

// ReusableBarrier lets a fixed number of goroutines wait for each other at
// every phase boundary. It can be reused immediately: each release starts a
// new generation, and a waiter only leaves once the generation it arrived in
// has been released.
type ReusableBarrier struct {
	mu   sync.Mutex
	cond *sync.Cond

	numThreadsToBeSyncWith int
	arrived                int
	generation             uint64
}

func NewReusableBarrier(numThreads int) *ReusableBarrier {
	if numThreads <= 0 {
		panic("mr: barrier requires at least one thread")
	}

	b := &ReusableBarrier{
		numThreadsToBeSyncWith: numThreads,
	}
	b.cond = sync.NewCond(&b.mu)

	return b
}

// Wait blocks until numThreads goroutines, the caller included, have called
// Wait in the current generation.
func (b *ReusableBarrier) Wait() {
	b.mu.Lock()
	defer b.mu.Unlock()

	gen := b.generation
	b.arrived++

	if b.arrived == b.numThreadsToBeSyncWith {
		// Last arrival opens the next generation before waking anyone.
		b.arrived = 0
		b.generation++
		b.cond.Broadcast()
		return
	}

	for gen == b.generation {
		b.cond.Wait()
	}
}

// Generation reports how many times the barrier has released.
func (b *ReusableBarrier) Generation() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.generation
}

// ------------------------
// Lifecycle barrier between the owning goroutine and its workers
// ------------------------

// lifecycleBarrier synchronizes the goroutine that owns a job with the
// worker goroutines it spawns: workers are released only once all of them
// are running, and the owner can wait for all of them to return.
type lifecycleBarrier struct {
	ready                  sync.WaitGroup
	done                   sync.WaitGroup
	start                  chan struct{}
	joined                 sync.Once
	numThreadsToBeSyncWith int
}

func newLifecycleBarrier(numThreads int) *lifecycleBarrier {
	b := lifecycleBarrier{
		start:                  make(chan struct{}),
		numThreadsToBeSyncWith: numThreads,
	}

	b.ready.Add(b.numThreadsToBeSyncWith)
	b.done.Add(b.numThreadsToBeSyncWith)

	return &b
}

// readySig is called by a worker once it runs. It blocks until the owner releases all workers.
func (b *lifecycleBarrier) readySig() {
	b.ready.Done()
	<-b.start
}

// doneSig is called by a worker right before it returns.
func (b *lifecycleBarrier) doneSig() {
	b.done.Done()
}

// releaseWhenReady waits for every worker to be scheduled, then lets them run.
func (b *lifecycleBarrier) releaseWhenReady() {
	b.ready.Wait()
	close(b.start)
}

// join blocks until every worker has returned. It reports whether this call
// was the first one to observe the join.
func (b *lifecycleBarrier) join() bool {
	b.done.Wait()

	first := false
	b.joined.Do(func() { first = true })

	return first
}
