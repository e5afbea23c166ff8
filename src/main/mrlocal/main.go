// mrlocal runs a MapReduce application over local files on the in-process engine.
//
//	go run ./src/main/mrlocal wc pg-*.txt
//	go run ./src/main/mrlocal indexer pg-*.txt
//
// The number of worker threads is taken from MR_THREADS (default: number of CPUs).
package main

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/exp/slices"

	"github.com/jeffbukk00/mrengine/src/mr"
	"github.com/jeffbukk00/mrengine/src/mrapps"
)

// progressInterval is how often the main thread polls the job state.
const progressInterval = 100 * time.Millisecond

func main() {
	// Logger initialization
	prefix := fmt.Sprintf("[ MRLOCAL | PID: %d ] ", os.Getpid())
	log.SetOutput(os.Stderr)
	log.SetFlags(mr.DefaultLogFlags)
	log.SetPrefix(prefix)

	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "Usage: mrlocal wc|indexer inputfiles...\n")
		os.Exit(1)
	}

	threads := threadLevel()

	input, err := mrapps.LoadFiles(os.Args[2:])
	if err != nil {
		log.Fatalf("<FATAL> Main thread: Failed to load input: %v\n", err)
	}

	switch os.Args[1] {
	case "wc":
		output := make([]mr.KeyValue[string, int], 0)
		job, err := mr.StartMapReduceJob(mrapps.WordCount{}, input, &output, threads)
		if err != nil {
			log.Fatalf("<FATAL> Main thread: Failed to start job: %v\n", err)
		}
		run(job)
		printSorted(output)
	case "indexer":
		output := make([]mr.KeyValue[string, string], 0)
		job, err := mr.StartMapReduceJob(mrapps.Indexer{}, input, &output, threads)
		if err != nil {
			log.Fatalf("<FATAL> Main thread: Failed to start job: %v\n", err)
		}
		run(job)
		printSorted(output)
	default:
		log.Fatalf("<FATAL> Main thread: Unknown application %q\n", os.Args[1])
	}
}

func threadLevel() int {
	s := os.Getenv("MR_THREADS")
	if s == "" {
		return runtime.NumCPU()
	}

	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		log.Fatalf("<FATAL> Main thread: MR_THREADS must be a positive integer, got %q\n", s)
	}

	return n
}

// run polls the job until it is done, logging every stage change, then releases it.
func run(job mr.JobHandle) {
	defer mr.CloseJobHandle(job)

	last := mr.JobState{Stage: mr.Idle, Percentage: -1}
	for {
		state := mr.GetJobState(job)
		if state != last {
			log.Printf("<INFO> Main thread: Job %s at stage %v, %.2f%%\n", job.ID(), state.Stage, state.Percentage)
			last = state
		}
		if state.Stage == mr.Done {
			break
		}
		time.Sleep(progressInterval)
	}

	mr.WaitForJob(job)
}

func printSorted[V any](output []mr.KeyValue[string, V]) {
	slices.SortFunc(output, func(a, b mr.KeyValue[string, V]) int {
		switch {
		case a.Key < b.Key:
			return -1
		case a.Key > b.Key:
			return 1
		}
		return 0
	})

	for _, kv := range output {
		fmt.Printf("%v %v\n", kv.Key, kv.Value)
	}
}
