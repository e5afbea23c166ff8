package mrapps

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/jeffbukk00/mrengine/src/mr"
)

// Indexer builds an inverted index.
// Input pairs are (document name, contents); output pairs are
// (word, "<number of documents> <comma-separated sorted document names>").
type Indexer struct{}

func (Indexer) Map(document string, contents string, tc *mr.ThreadContext[string, string, string, string]) {
	seen := make(map[string]struct{})
	for _, w := range splitWords(contents) {
		seen[w] = struct{}{}
	}

	words := maps.Keys(seen)
	slices.Sort(words)
	for _, w := range words {
		tc.Emit2(w, document)
	}
}

func (Indexer) Reduce(group []mr.KeyValue[string, string], tc *mr.ThreadContext[string, string, string, string]) {
	docs := make(map[string]struct{}, len(group))
	for _, kv := range group {
		docs[kv.Value] = struct{}{}
	}

	names := maps.Keys(docs)
	slices.Sort(names)
	tc.Emit3(group[0].Key, fmt.Sprintf("%d %s", len(names), strings.Join(names, ",")))
}
