package mr

import "sync"

// ------------------------
// Type definitions for user-defined map and reduce logic
// ------------------------

// KeyValue is the pair type of the input, the intermediate pairs and the output of a job.
type KeyValue[K, V any] struct {
	Key   K
	Value V
}

// MapReduceClient is the user-supplied computation a job drives.
//
// Map and Reduce are called concurrently from different workers, each with
// its own ThreadContext. They must not touch shared state other than
// through the ThreadContext's emit methods.
type MapReduceClient[K1, V1, K2, V2, K3, V3 any] interface {
	Map(key K1, value V1, tc *ThreadContext[K2, V2, K3, V3])
	Reduce(group []KeyValue[K2, V2], tc *ThreadContext[K2, V2, K3, V3])
}

// mapFunc and reduceFunc are the function forms of the two callbacks.
type mapFunc[K1, V1, K2, V2, K3, V3 any] func(K1, V1, *ThreadContext[K2, V2, K3, V3])
type reduceFunc[K2, V2, K3, V3 any] func([]KeyValue[K2, V2], *ThreadContext[K2, V2, K3, V3])

// ClientFuncs adapts a pair of plain functions to a MapReduceClient.
type ClientFuncs[K1, V1, K2, V2, K3, V3 any] struct {
	MapFunc    mapFunc[K1, V1, K2, V2, K3, V3]
	ReduceFunc reduceFunc[K2, V2, K3, V3]
}

func (c ClientFuncs[K1, V1, K2, V2, K3, V3]) Map(key K1, value V1, tc *ThreadContext[K2, V2, K3, V3]) {
	c.MapFunc(key, value, tc)
}

func (c ClientFuncs[K1, V1, K2, V2, K3, V3]) Reduce(group []KeyValue[K2, V2], tc *ThreadContext[K2, V2, K3, V3]) {
	c.ReduceFunc(group, tc)
}

// ------------------------
// Per-worker context
// ------------------------

// ThreadContext is the state a single worker owns: its index and its
// private intermediate buffer. The buffer is filled by Emit2 during Map,
// sorted in place, then drained by the shuffle.
type ThreadContext[K2, V2, K3, V3 any] struct {
	id           int
	intermediate []KeyValue[K2, V2]
	output       *outputSink[K3, V3]
}

func newThreadContext[K2, V2, K3, V3 any](id int, output *outputSink[K3, V3]) *ThreadContext[K2, V2, K3, V3] {
	return &ThreadContext[K2, V2, K3, V3]{
		id:     id,
		output: output,
	}
}

// ID is the worker index, in [0, multiThreadLevel).
func (tc *ThreadContext[K2, V2, K3, V3]) ID() int {
	return tc.id
}

// Emit2 records one intermediate pair. Only valid inside Map.
func (tc *ThreadContext[K2, V2, K3, V3]) Emit2(key K2, value V2) {
	tc.intermediate = append(tc.intermediate, KeyValue[K2, V2]{Key: key, Value: value})
}

// Emit3 appends one pair to the job output. Only valid inside Reduce.
func (tc *ThreadContext[K2, V2, K3, V3]) Emit3(key K3, value V3) {
	tc.output.append(KeyValue[K3, V3]{Key: key, Value: value})
}

// outputSink is the caller's output slice, shared by all workers during Reduce.
type outputSink[K3, V3 any] struct {
	mu  sync.Mutex
	vec *[]KeyValue[K3, V3]
}

func (s *outputSink[K3, V3]) append(kv KeyValue[K3, V3]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	*s.vec = append(*s.vec, kv)
}
