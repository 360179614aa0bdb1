package schemafile

import (
	"errors"
	"slices"
)

var errCycle = errors.New("inheritance cycle")

// buildOrder returns type indexes ordered so that every type comes after
// its parents. Among types that are ready at the same time the one
// declared first wins, so the order is stable across runs. On a cycle the
// indexes of the types that could not be ordered are returned with
// errCycle.
func buildOrder(f *File) ([]int, []int, error) {
	index := make(map[string]int, len(f.Types))
	for i, t := range f.Types {
		if _, dup := index[t.Name]; !dup {
			index[t.Name] = i
		}
	}

	n := len(f.Types)
	pending := make([]int, n)
	children := make([][]int, n)

	for i, t := range f.Types {
		for _, parent := range t.Extends {
			p, ok := index[parent]
			if !ok {
				continue
			}

			pending[i]++
			children[p] = append(children[p], i)
		}
	}

	var ready []int

	for i := range n {
		if pending[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]
		order = append(order, i)

		for _, c := range children[i] {
			pending[c]--
			if pending[c] == 0 {
				at, _ := slices.BinarySearch(ready, c)
				ready = slices.Insert(ready, at, c)
			}
		}
	}

	if len(order) == n {
		return order, nil, nil
	}

	var stuck []int

	for i := range n {
		if pending[i] > 0 {
			stuck = append(stuck, i)
		}
	}

	return nil, stuck, errCycle
}
