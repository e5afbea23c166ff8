// Package mrapps holds MapReduce applications for the mr engine.
package mrapps

import (
	"strings"
	"unicode"

	"github.com/jeffbukk00/mrengine/src/mr"
)

// WordCount counts word occurrences across documents.
// Input pairs are (document name, contents); output pairs are (word, count).
type WordCount struct{}

func (WordCount) Map(document string, contents string, tc *mr.ThreadContext[string, int, string, int]) {
	for _, w := range splitWords(contents) {
		tc.Emit2(w, 1)
	}
}

func (WordCount) Reduce(group []mr.KeyValue[string, int], tc *mr.ThreadContext[string, int, string, int]) {
	sum := 0
	for _, kv := range group {
		sum += kv.Value
	}
	tc.Emit3(group[0].Key, sum)
}

// splitWords breaks contents into words made of letters only.
func splitWords(contents string) []string {
	return strings.FieldsFunc(contents, func(r rune) bool { return !unicode.IsLetter(r) })
}
