package graph

import "fmt"

// Node is a handle to a value stored in a [Graph]. It is cheap to copy and
// compares equal to another handle for the same value in the same graph.
//
// The zero Node is not attached to any graph; only handles obtained from a
// Graph are usable.
type Node[T comparable] struct {
	g  *Graph[T]
	id int
}

// Value returns the value the node was created for.
func (n Node[T]) Value() T { return n.g.nodes[n.id].value }

// Valid reports whether n refers to a graph.
func (n Node[T]) Valid() bool { return n.g != nil }

// String formats the node's value.
func (n Node[T]) String() string {
	if n.g == nil {
		return "<nil>"
	}
	return fmt.Sprint(n.Value())
}

// Level returns the node's normalized level, recomputing levels if the graph
// changed since the last computation.
func (n Node[T]) Level() (int, error) {
	if err := n.g.computeLevels(); err != nil {
		return 0, err
	}
	return n.g.level(n.id), nil
}

// IsRoot reports whether the node has no parents.
func (n Node[T]) IsRoot() bool { return len(n.g.nodes[n.id].parents) == 0 }

// IsLeaf reports whether the node has no children.
func (n Node[T]) IsLeaf() bool { return len(n.g.nodes[n.id].children) == 0 }

// ImmediatePrecedents returns the direct parents of n.
func (n Node[T]) ImmediatePrecedents() Result[T] {
	return n.g.query(func() []int {
		return append([]int(nil), n.g.nodes[n.id].parents...)
	})
}

// ImmediateDescendants returns the direct children of n.
func (n Node[T]) ImmediateDescendants() Result[T] {
	return n.g.query(func() []int {
		return append([]int(nil), n.g.nodes[n.id].children...)
	})
}

// Precedents returns every transitive ancestor of n.
func (n Node[T]) Precedents() Result[T] {
	return n.g.query(func() []int { return n.g.walk(n.id, up) })
}

// Descendants returns every transitive descendant of n.
func (n Node[T]) Descendants() Result[T] {
	return n.g.query(func() []int { return n.g.walk(n.id, down) })
}

// TerminatingPrecedents returns the ancestors of n that have no parents.
func (n Node[T]) TerminatingPrecedents() Result[T] {
	return n.g.query(func() []int {
		return n.g.filter(n.g.walk(n.id, up), func(id int) bool {
			return len(n.g.nodes[id].parents) == 0
		})
	})
}

// TerminatingDescendants returns the descendants of n that have no children.
func (n Node[T]) TerminatingDescendants() Result[T] {
	return n.g.query(func() []int {
		return n.g.filter(n.g.walk(n.id, down), func(id int) bool {
			return len(n.g.nodes[id].children) == 0
		})
	})
}

// Neighbours returns the relatives of n whose level lies in
// [level(n)+from, level(n)+to]. Only ancestors are searched when both bounds
// are negative and only descendants when both are positive; otherwise both
// sides are searched. n itself is never included. An inverted window yields
// an empty result.
func (n Node[T]) Neighbours(from, to int) Result[T] {
	var dir direction
	switch {
	case from < 0 && to < 0:
		dir = up
	case from > 0 && to > 0:
		dir = down
	default:
		dir = up | down
	}
	return n.g.query(func() []int {
		if from > to {
			return nil
		}
		lo, hi := n.g.nodes[n.id].rel+from, n.g.nodes[n.id].rel+to
		return n.g.filter(n.g.walk(n.id, dir), func(id int) bool {
			rel := n.g.nodes[id].rel
			return rel >= lo && rel <= hi
		})
	})
}

// Related returns the union of the ancestors and descendants of n.
func (n Node[T]) Related() Result[T] {
	return n.g.query(func() []int { return n.g.walk(n.id, up|down) })
}
