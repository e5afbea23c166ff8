package mr

import (
	"cmp"
	"fmt"
	"sort"
	"testing"
)

func kvs(pairs ...any) []KeyValue[string, int] {
	out := make([]KeyValue[string, int], 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, KeyValue[string, int]{Key: pairs[i].(string), Value: pairs[i+1].(int)})
	}
	return out
}

func TestShuffleGroupsByKey(t *testing.T) {
	fmt.Printf("Test: Shuffle merges sorted buffers into one group per key ...\n")

	w0 := kvs("a", 1, "b", 2, "b", 3)
	w1 := kvs("b", 4, "c", 5)
	var w2 []KeyValue[string, int]
	w3 := kvs("a", 6, "d", 7, "d", 8)
	buffers := []*[]KeyValue[string, int]{&w0, &w1, &w2, &w3}

	moved := 0
	groups := shuffle(buffers, cmp.Compare[string], func(size int) { moved += size })

	if moved != 8 {
		t.Fatalf("onGroup saw %d pairs; expected 8", moved)
	}
	for i, buf := range buffers {
		if len(*buf) != 0 {
			t.Fatalf("buffer %d still holds %v", i, *buf)
		}
	}

	// Largest key first, since buffers are consumed from their tails.
	wantOrder := []string{"d", "c", "b", "a"}
	if len(groups) != len(wantOrder) {
		t.Fatalf("got %d groups; expected %d", len(groups), len(wantOrder))
	}

	want := map[string][]int{
		"a": {1, 6},
		"b": {2, 3, 4},
		"c": {5},
		"d": {7, 8},
	}
	for i, g := range groups {
		key := g[0].Key
		if key != wantOrder[i] {
			t.Fatalf("group %d has key %q; expected %q", i, key, wantOrder[i])
		}
		values := make([]int, 0, len(g))
		for _, kv := range g {
			if kv.Key != key {
				t.Fatalf("group %q contains pair with key %q", key, kv.Key)
			}
			values = append(values, kv.Value)
		}
		sort.Ints(values)
		if fmt.Sprint(values) != fmt.Sprint(want[key]) {
			t.Fatalf("group %q = %v; expected %v", key, values, want[key])
		}
	}

	fmt.Printf("  ... Passed\n")
}

func TestShuffleEmpty(t *testing.T) {
	var a, b []KeyValue[string, int]
	groups := shuffle([]*[]KeyValue[string, int]{&a, &b}, cmp.Compare[string], nil)
	if len(groups) != 0 {
		t.Fatalf("got %d groups from empty buffers", len(groups))
	}
}

func TestShuffleCustomOrder(t *testing.T) {
	// Buffers sorted descending under a reversed comparator.
	reverse := func(a, b int) int { return cmp.Compare(b, a) }
	w0 := []KeyValue[int, string]{{3, "x"}, {1, "y"}}
	w1 := []KeyValue[int, string]{{2, "z"}, {1, "w"}}

	groups := shuffle([]*[]KeyValue[int, string]{&w0, &w1}, reverse, nil)

	keys := make([]int, 0, len(groups))
	for _, g := range groups {
		keys = append(keys, g[0].Key)
	}
	if fmt.Sprint(keys) != "[1 2 3]" {
		t.Fatalf("group keys = %v; expected [1 2 3]", keys)
	}
	if len(groups[0]) != 2 {
		t.Fatalf("group for key 1 has %d pairs; expected 2", len(groups[0]))
	}
}
