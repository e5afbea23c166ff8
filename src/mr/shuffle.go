package mr

// shuffle merges the sorted per-worker buffers into one group per distinct key.
//
// Every buffer is consumed from its tail, largest key first. Each round finds
// the largest tail key across all buffers, then pops every tail pair equal to
// it, from every buffer, into a single group. Buffers are empty on return.
// onGroup is called with the size of each group as soon as it is complete.
func shuffle[K, V any](buffers []*[]KeyValue[K, V], compare func(a, b K) int, onGroup func(size int)) [][]KeyValue[K, V] {
	groups := make([][]KeyValue[K, V], 0)

	for {
		found := false
		var maxKey K

		// On equal tail keys the lowest buffer index wins; every equal pair is popped below anyway.
		for _, buf := range buffers {
			b := *buf
			if len(b) == 0 {
				continue
			}
			if tail := b[len(b)-1].Key; !found || compare(tail, maxKey) > 0 {
				maxKey = tail
				found = true
			}
		}

		if !found {
			break
		}

		group := make([]KeyValue[K, V], 0)
		for _, buf := range buffers {
			b := *buf
			n := len(b)
			for n > 0 && compare(b[n-1].Key, maxKey) == 0 {
				group = append(group, b[n-1])
				n--
			}
			clear(b[n:])
			*buf = b[:n]
		}

		groups = append(groups, group)
		if onGroup != nil {
			onGroup(len(group))
		}
	}

	for _, buf := range buffers {
		*buf = nil
	}

	return groups
}
