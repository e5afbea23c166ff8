package mr

import "sync"

// JobState is a snapshot of a job's progress as seen by an external observer.
type JobState struct {
	Stage      Stage
	Percentage float64 // completed work units of the current stage, in [0, 100]
}

// progress is the shared stage/total/completed triple of a job.
// All three fields change under one lock, so a reader never pairs the total
// of one stage with the completed count of another.
type progress struct {
	mu        sync.Mutex
	stage     Stage
	total     uint64
	completed uint64
}

// enter moves the job into stage with a fresh work-unit count.
// A stage never regresses: entering an earlier stage is ignored.
func (p *progress) enter(stage Stage, total uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if stage < p.stage {
		return
	}

	p.stage = stage
	p.total = total
	p.completed = 0
}

// advance records n finished work units of the current stage.
func (p *progress) advance(n uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.completed += n
	if p.completed > p.total {
		p.completed = p.total
	}
}

// finish moves the job into Done with every unit of the last stage accounted for.
func (p *progress) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stage = Done
	p.completed = p.total
}

func (p *progress) snapshot() (stage Stage, total, completed uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.stage, p.total, p.completed
}

func (p *progress) state() JobState {
	stage, total, completed := p.snapshot()

	return JobState{
		Stage:      stage,
		Percentage: percentage(completed, total),
	}
}

// percentage is 0 for a stage with no work units.
func percentage(completed, total uint64) float64 {
	if total == 0 {
		return 0
	}

	return float64(completed) / float64(total) * fullPercentage
}
