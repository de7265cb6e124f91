package repositories

import (
	"errors"
	"iter"
)

// ErrSequenceConsumed is yielded when a one-shot sequence is ranged over twice.
var ErrSequenceConsumed = errors.New("sequence already consumed")

// Seq is a lazily evaluated, one-shot sequence of records. The underlying
// query runs when iteration starts; a failure is yielded as the last element.
type Seq[T any] = iter.Seq2[T, error]

// Collect drains seq into a slice, stopping at the first error.
func Collect[T any](seq Seq[T]) ([]T, error) {
	out := make([]T, 0)
	for item, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// SortDirection orders a listing on its sort field
type SortDirection int

// Sort directions
const (
	SortAscending  SortDirection = 1
	SortDescending SortDirection = -1
)
