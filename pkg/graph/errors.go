package graph

import (
	"errors"
	"reflect"
)

var (
	// ErrEmptySequence is returned by [Graph.AddSequence] when the sequence
	// has no elements. A single-element sequence is valid.
	ErrEmptySequence = errors.New("sequence must contain at least one value")

	// ErrNilValue is returned when a nil pointer, channel or interface is
	// used as a node value.
	ErrNilValue = errors.New("node value must not be nil")

	// ErrCyclicGraph is returned by [Graph.Sort] and by every level-dependent
	// read when the graph contains a cycle. The cycle members are not reported.
	ErrCyclicGraph = errors.New("topological sort failed due to loops in the graph")
)

func isNil[T comparable](v T) bool {
	a := any(v)
	if a == nil {
		return true
	}
	rv := reflect.ValueOf(a)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
