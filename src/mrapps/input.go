package mrapps

import (
	"errors"
	"fmt"
	"os"
	"sync"

	cmap "github.com/orcaman/concurrent-map"
	"golang.org/x/exp/slices"

	"github.com/jeffbukk00/mrengine/src/mr"
)

// LoadFiles reads every file concurrently and returns one (file name, contents)
// input pair per file, ordered by file name.
func LoadFiles(filenames []string) ([]mr.KeyValue[string, string], error) {
	contents := cmap.New()

	var wg sync.WaitGroup
	errs := make([]error, len(filenames))

	for i, filename := range filenames {
		wg.Add(1)
		go func(i int, filename string) {
			defer wg.Done()

			data, err := os.ReadFile(filename)
			if err != nil {
				errs[i] = fmt.Errorf("cannot read %v: %w", filename, err)
				return
			}
			contents.Set(filename, string(data))
		}(i, filename)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	names := contents.Keys()
	slices.Sort(names)

	input := make([]mr.KeyValue[string, string], 0, len(names))
	for _, name := range names {
		v, _ := contents.Get(name)
		input = append(input, mr.KeyValue[string, string]{Key: name, Value: v.(string)})
	}

	return input, nil
}
