package graph

import "github.com/matzehuels/levelgraph/pkg/observability"

// topoOrder runs Kahn's algorithm over the arena. Roots are seeded in
// creation order and children are released in insertion order, so ties are
// broken first-inserted-first-out.
func (g *Graph[T]) topoOrder() ([]int, error) {
	indeg := make([]int, len(g.nodes))
	queue := make([]int, 0, len(g.nodes))
	for id, n := range g.nodes {
		indeg[id] = len(n.parents)
		if indeg[id] == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]int, 0, len(g.nodes))
	for head := 0; head < len(queue); head++ {
		id := queue[head]
		order = append(order, id)
		for _, c := range g.nodes[id].children {
			indeg[c]--
			if indeg[c] == 0 {
				queue = append(queue, c)
			}
		}
	}

	if len(order) != len(g.nodes) {
		return nil, ErrCyclicGraph
	}
	return order, nil
}

// Sort returns every node in topological order: each parent precedes all of
// its children. It returns [ErrCyclicGraph] if the graph has a cycle; the
// graph itself is never modified.
func (g *Graph[T]) Sort() ([]Node[T], error) {
	order, err := g.topoOrder()
	observability.Graph().OnSort(len(g.nodes), err)
	if err != nil {
		return nil, err
	}
	return g.handles(order), nil
}

// CanSort reports whether the graph is acyclic.
func (g *Graph[T]) CanSort() bool {
	_, err := g.topoOrder()
	return err == nil
}

// CanSortWith reports whether the graph would still be acyclic after adding
// seq. The check runs on a clone, so g is left untouched; it costs O(V+E).
// An invalid sequence (empty or containing nil) reports false.
func (g *Graph[T]) CanSortWith(seq ...T) bool {
	c := g.Clone()
	if err := c.AddSequence(seq...); err != nil {
		return false
	}
	return c.CanSort()
}
