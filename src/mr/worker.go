package mr

import "golang.org/x/exp/slices"

// ------------------------
// Worker protocol
// ------------------------

// runWorker is the body of every worker goroutine. All workers execute the
// same phases in strict order, separated by barrier waits. Worker 0 alone
// performs the stage transitions and the shuffle while its peers are parked
// at a barrier.
func (j *Job[K1, V1, K2, V2, K3, V3]) runWorker(tc *ThreadContext[K2, V2, K3, V3]) {
	defer j.lifecycle.doneSig()

	j.lifecycle.readySig()

	isMaster := tc.id == masterWorker

	if isMaster {
		j.progress.enter(Mapping, uint64(len(j.input)))
		j.logger.Printf("<INFO> Worker %d thread: Entered the Mapping stage with %d input pairs\n", tc.id, len(j.input))
	}
	j.barrier.Wait()

	tc.intermediate = make([]KeyValue[K2, V2], 0)
	j.barrier.Wait()

	j.mapPhase(tc)
	j.sortPhase(tc)
	j.barrier.Wait()

	if isMaster {
		j.shufflePhase(tc.id)
	}
	j.barrier.Wait()

	if isMaster {
		numGroups := j.groups.Len()
		j.progress.enter(Reducing, uint64(numGroups))
		j.logger.Printf("<INFO> Worker %d thread: Entered the Reducing stage with %d groups\n", tc.id, numGroups)
	}
	j.barrier.Wait()

	j.reducePhase(tc)
	j.barrier.Wait()

	if isMaster {
		j.progress.finish()
		j.logger.Printf("<INFO> Worker %d thread: Job is done\n", tc.id)
	}
}

// mapPhase claims input indices one at a time until the input is exhausted.
// The claim counter is separate from the progress counter, so each index is
// handed to exactly one worker.
func (j *Job[K1, V1, K2, V2, K3, V3]) mapPhase(tc *ThreadContext[K2, V2, K3, V3]) {
	total := uint64(len(j.input))
	mapped := 0

	for {
		idx := j.nextInput.Add(1) - 1
		if idx >= total {
			break
		}

		kv := j.input[idx]
		j.client.Map(kv.Key, kv.Value, tc)
		j.progress.advance(1)
		mapped++
	}

	j.logger.Printf("<INFO> Worker %d thread: Mapped %d input pairs into %d intermediate pairs\n", tc.id, mapped, len(tc.intermediate))
}

func (j *Job[K1, V1, K2, V2, K3, V3]) sortPhase(tc *ThreadContext[K2, V2, K3, V3]) {
	slices.SortFunc(tc.intermediate, func(a, b KeyValue[K2, V2]) int {
		return j.compare(a.Key, b.Key)
	})
}

// shufflePhase runs on worker 0 only, while every other worker waits at the barrier.
func (j *Job[K1, V1, K2, V2, K3, V3]) shufflePhase(id int) {
	buffers := make([]*[]KeyValue[K2, V2], len(j.contexts))
	var total uint64
	for i, tc := range j.contexts {
		buffers[i] = &tc.intermediate
		total += uint64(len(tc.intermediate))
	}

	j.progress.enter(Shuffling, total)
	j.logger.Printf("<INFO> Worker %d thread: Entered the Shuffling stage with %d intermediate pairs\n", id, total)

	var moved uint64
	groups := shuffle(buffers, j.compare, func(size int) {
		moved += uint64(size)
		j.progress.advance(uint64(size))
	})

	if moved != total {
		// Groups no longer cover the emitted pairs; nothing downstream can be trusted.
		j.logger.Fatalf("<FATAL> Worker %d thread: Shuffle moved %d pairs, %d were emitted\n", id, moved, total)
	}

	j.groups = newGroupStack(groups)

	j.logger.Printf("<INFO> Worker %d thread: Shuffle finished with %d groups\n", id, len(groups))
}

// reducePhase pops groups from the shared pool until it is drained.
func (j *Job[K1, V1, K2, V2, K3, V3]) reducePhase(tc *ThreadContext[K2, V2, K3, V3]) {
	reduced := 0

	for {
		group, ok := j.groups.TryPop()
		if !ok {
			break
		}

		j.client.Reduce(group, tc)
		j.progress.advance(1)
		reduced++
	}

	j.logger.Printf("<INFO> Worker %d thread: Reduced %d groups\n", tc.id, reduced)
}
