// Package mr is an in-process MapReduce engine. A job drives a user-supplied
// MapReduceClient through the Mapping, Shuffling and Reducing stages on a
// fixed pool of worker goroutines.
package mr

import (
	"cmp"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/exp/constraints"
)

// ------------------------
// Configuration
// ------------------------

// JobConfig holds the settings of a single job. K2 is the intermediate key type.
type JobConfig[K2 any] struct {
	// MultiThreadLevel is the number of worker goroutines. Must be positive.
	MultiThreadLevel int

	// Compare orders intermediate keys: negative when a < b, zero when equal, positive when a > b.
	Compare func(a, b K2) int

	// JobID names the job in logs. A random UUID is used when empty.
	JobID string

	// LogOutput receives the job log. Defaults to os.Stderr.
	LogOutput io.Writer
}

// ------------------------
// Job type definitions
// ------------------------

// JobHandle is the caller's view of a running job.
type JobHandle interface {
	ID() string
	Wait()
	State() JobState
	Close()
}

// Job owns everything a running MapReduce job shares between its workers.
// It is created by one of the Start functions and lives until Close.
type Job[K1, V1, K2, V2, K3, V3 any] struct {
	id     string
	logger *log.Logger

	client  MapReduceClient[K1, V1, K2, V2, K3, V3]
	input   []KeyValue[K1, V1]
	output  *outputSink[K3, V3]
	compare func(a, b K2) int

	threads  int
	contexts []*ThreadContext[K2, V2, K3, V3]

	barrier   *ReusableBarrier
	lifecycle *lifecycleBarrier

	progress  progress
	nextInput atomic.Uint64 // work-claim counter of the Mapping stage

	// Built by worker 0 during Shuffling, drained by all workers during Reducing.
	groups *groupStack[[]KeyValue[K2, V2]]

	closeOnce sync.Once
}

// StartMapReduceJob starts a job whose intermediate keys are ordered by their natural order.
// It returns as soon as the workers are running.
func StartMapReduceJob[K1, V1 any, K2 constraints.Ordered, V2, K3, V3 any](
	client MapReduceClient[K1, V1, K2, V2, K3, V3],
	input []KeyValue[K1, V1],
	output *[]KeyValue[K3, V3],
	multiThreadLevel int,
) (*Job[K1, V1, K2, V2, K3, V3], error) {
	return StartMapReduceJobWithConfig(client, input, output, JobConfig[K2]{
		MultiThreadLevel: multiThreadLevel,
		Compare:          cmp.Compare[K2],
	})
}

// StartMapReduceJobFunc starts a job whose intermediate keys are ordered by compare.
func StartMapReduceJobFunc[K1, V1, K2, V2, K3, V3 any](
	client MapReduceClient[K1, V1, K2, V2, K3, V3],
	input []KeyValue[K1, V1],
	output *[]KeyValue[K3, V3],
	multiThreadLevel int,
	compare func(a, b K2) int,
) (*Job[K1, V1, K2, V2, K3, V3], error) {
	return StartMapReduceJobWithConfig(client, input, output, JobConfig[K2]{
		MultiThreadLevel: multiThreadLevel,
		Compare:          compare,
	})
}

// StartMapReduceJobWithConfig validates cfg, spawns cfg.MultiThreadLevel
// workers and returns the job handle. The input must not be modified and
// the output must not be read until Wait returns.
func StartMapReduceJobWithConfig[K1, V1, K2, V2, K3, V3 any](
	client MapReduceClient[K1, V1, K2, V2, K3, V3],
	input []KeyValue[K1, V1],
	output *[]KeyValue[K3, V3],
	cfg JobConfig[K2],
) (*Job[K1, V1, K2, V2, K3, V3], error) {
	if cfg.MultiThreadLevel <= 0 {
		return nil, fmt.Errorf("start job with %d threads: %w", cfg.MultiThreadLevel, ErrInvalidThreadLevel)
	}
	if client == nil {
		return nil, fmt.Errorf("start job: %w", ErrNilClient)
	}
	if output == nil {
		return nil, fmt.Errorf("start job: %w", ErrNilOutput)
	}
	if cfg.Compare == nil {
		return nil, fmt.Errorf("start job: %w", ErrNilComparator)
	}

	if cfg.JobID == "" {
		cfg.JobID = uuid.NewString()
	}
	if cfg.LogOutput == nil {
		cfg.LogOutput = os.Stderr
	}

	// Logger initialization
	prefix := fmt.Sprintf("[ JOB | ID: %s ] ", cfg.JobID)

	j := &Job[K1, V1, K2, V2, K3, V3]{
		id:        cfg.JobID,
		logger:    log.New(cfg.LogOutput, prefix, DefaultLogFlags),
		client:    client,
		input:     input,
		output:    &outputSink[K3, V3]{vec: output},
		compare:   cfg.Compare,
		threads:   cfg.MultiThreadLevel,
		contexts:  make([]*ThreadContext[K2, V2, K3, V3], cfg.MultiThreadLevel),
		barrier:   NewReusableBarrier(cfg.MultiThreadLevel),
		lifecycle: newLifecycleBarrier(cfg.MultiThreadLevel),
	}

	for i := range j.contexts {
		j.contexts[i] = newThreadContext[K2, V2, K3, V3](i, j.output)
	}

	for _, tc := range j.contexts {
		go j.runWorker(tc)
	}

	j.lifecycle.releaseWhenReady()

	j.logger.Printf("<INFO> Main thread: Started %d worker threads\n", cfg.MultiThreadLevel)

	return j, nil
}

// ID is the job identifier used in its log prefix.
func (j *Job[K1, V1, K2, V2, K3, V3]) ID() string {
	return j.id
}

// Wait blocks until every worker has returned. It may be called any number of times.
func (j *Job[K1, V1, K2, V2, K3, V3]) Wait() {
	if j.lifecycle.join() {
		j.logger.Printf("<INFO> Main thread: Joined %d worker threads\n", j.threads)
	}
}

// State returns a consistent snapshot of the current stage and its progress.
// Safe to call at any time before Close, concurrently with the workers.
func (j *Job[K1, V1, K2, V2, K3, V3]) State() JobState {
	return j.progress.state()
}

// Close waits for the job and marks it closed. The job must not be used afterwards.
func (j *Job[K1, V1, K2, V2, K3, V3]) Close() {
	j.Wait()

	j.closeOnce.Do(func() {
		j.logger.Println("<INFO> Main thread: Job closed")
	})
}

// ------------------------
// Handle functions
// ------------------------

// WaitForJob blocks until job has finished.
func WaitForJob(job JobHandle) {
	job.Wait()
}

// GetJobState snapshots the stage and progress of job.
func GetJobState(job JobHandle) JobState {
	return job.State()
}

// CloseJobHandle waits for job and releases it.
func CloseJobHandle(job JobHandle) {
	job.Close()
}
