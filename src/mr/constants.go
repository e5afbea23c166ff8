package mr

import "log"

// Stage is an enum for the coarse phases of a job: Idle, Mapping, Shuffling, Reducing, Done.
// Stages only ever advance in this order.
type Stage int

const (
	Idle Stage = iota
	Mapping
	Shuffling
	Reducing
	Done
)

func StageToString(stage Stage) string {
	switch stage {
	case Idle:
		return "Idle"
	case Mapping:
		return "Mapping"
	case Shuffling:
		return "Shuffling"
	case Reducing:
		return "Reducing"
	case Done:
		return "Done"
	}

	return "Unknown"
}

func (s Stage) String() string {
	return StageToString(s)
}

// ------------------------
// Defaults
// ------------------------

// DefaultLogFlags is the flag set of every job logger.
const DefaultLogFlags = log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile

// masterWorker is the index of the worker that performs stage transitions and the shuffle.
const masterWorker = 0

// fullPercentage is the percentage reported for a stage whose work units are all completed.
const fullPercentage = 100.0
