package graph

import (
	"cmp"
	"iter"
	"slices"
)

// Result is a lazy, restartable query over a graph. Nothing is computed
// until the result is enumerated, and every enumeration recomputes levels
// (if stale) and re-runs the traversal. Nodes are ordered by ascending level;
// nodes on the same level keep traversal order.
//
// The graph must not be mutated while a Result is being enumerated.
type Result[T comparable] struct {
	produce func() ([]Node[T], error)
}

// All returns an iterator over the result. If the query fails (the graph is
// cyclic) the iterator yields a single zero Node with the error.
func (r Result[T]) All() iter.Seq2[Node[T], error] {
	return func(yield func(Node[T], error) bool) {
		nodes, err := r.Collect()
		if err != nil {
			yield(Node[T]{}, err)
			return
		}
		for _, n := range nodes {
			if !yield(n, nil) {
				return
			}
		}
	}
}

// Collect runs the query and returns its nodes.
func (r Result[T]) Collect() ([]Node[T], error) {
	if r.produce == nil {
		return nil, nil
	}
	return r.produce()
}

// Values runs the query and returns the node values.
func (r Result[T]) Values() ([]T, error) {
	nodes, err := r.Collect()
	if err != nil {
		return nil, err
	}
	out := make([]T, len(nodes))
	for i, n := range nodes {
		out[i] = n.Value()
	}
	return out, nil
}

// Len runs the query and returns the number of nodes.
func (r Result[T]) Len() (int, error) {
	nodes, err := r.Collect()
	return len(nodes), err
}

type direction uint8

const (
	up direction = 1 << iota
	down
)

// query wraps an id-collecting traversal into a Result. collect runs after
// levels are fresh, so it may read rel and countLevels.
func (g *Graph[T]) query(collect func() []int) Result[T] {
	return Result[T]{produce: func() ([]Node[T], error) {
		if err := g.computeLevels(); err != nil {
			return nil, err
		}
		ids := collect()
		slices.SortStableFunc(ids, func(a, b int) int {
			return cmp.Compare(g.nodes[a].rel, g.nodes[b].rel)
		})
		return g.handles(ids), nil
	}}
}

// walk collects the ancestors (up), descendants (down) or both of start,
// excluding start. Each side follows only its own links.
func (g *Graph[T]) walk(start int, dir direction) []int {
	visited := make([]bool, len(g.nodes))
	visited[start] = true
	var out []int
	if dir&up != 0 {
		out = g.reach(start, visited, out, func(id int) []int { return g.nodes[id].parents })
	}
	if dir&down != 0 {
		out = g.reach(start, visited, out, func(id int) []int { return g.nodes[id].children })
	}
	return out
}

func (g *Graph[T]) reach(start int, visited []bool, out []int, next func(int) []int) []int {
	stack := []int{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, id := range next(cur) {
			if !visited[id] {
				visited[id] = true
				out = append(out, id)
				stack = append(stack, id)
			}
		}
	}
	return out
}

func (g *Graph[T]) filter(ids []int, keep func(int) bool) []int {
	return slices.DeleteFunc(ids, func(id int) bool { return !keep(id) })
}

// idsBetween returns the ids whose level lies in [from, to], in creation
// order. Levels must be fresh.
func (g *Graph[T]) idsBetween(from, to int) []int {
	var out []int
	for id := range g.nodes {
		if l := g.level(id); l >= from && l <= to {
			out = append(out, id)
		}
	}
	return out
}

// NodesAt returns the nodes on the given level.
func (g *Graph[T]) NodesAt(level int) Result[T] {
	return g.query(func() []int { return g.idsBetween(level, level) })
}

// NodesBetween returns the nodes whose level lies in [from, to].
func (g *Graph[T]) NodesBetween(from, to int) Result[T] {
	return g.query(func() []int { return g.idsBetween(from, to) })
}

// RootNodes returns the nodes on level 0.
func (g *Graph[T]) RootNodes() Result[T] { return g.NodesAt(0) }

// LeafNodes returns the nodes on the highest level.
func (g *Graph[T]) LeafNodes() Result[T] {
	return g.query(func() []int {
		return g.idsBetween(g.countLevels-1, g.countLevels-1)
	})
}

// NodesRelatedTo returns the ancestors and descendants of the node holding v.
// An absent value yields an empty result.
func (g *Graph[T]) NodesRelatedTo(v T) Result[T] {
	n, ok := g.Find(v)
	if !ok {
		return Result[T]{}
	}
	return n.Related()
}

// CountLevels returns the number of distinct levels, which is one more than
// the highest level. An empty graph has zero levels.
func (g *Graph[T]) CountLevels() (int, error) {
	if err := g.computeLevels(); err != nil {
		return 0, err
	}
	return g.countLevels, nil
}

// Levels returns every node bucketed by level. Within a level, nodes keep
// creation order.
func (g *Graph[T]) Levels() ([][]Node[T], error) {
	if err := g.computeLevels(); err != nil {
		return nil, err
	}
	out := make([][]Node[T], g.countLevels)
	for id := range g.nodes {
		l := g.level(id)
		out[l] = append(out[l], Node[T]{g: g, id: id})
	}
	return out, nil
}
