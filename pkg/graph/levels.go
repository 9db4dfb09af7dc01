package graph

import (
	"slices"
	"time"

	"github.com/matzehuels/levelgraph/pkg/observability"
)

// computeLevels refreshes every node's level if the graph changed since the
// last successful computation. On a cyclic graph it returns [ErrCyclicGraph]
// and the graph stays dirty, so every later read fails the same way.
func (g *Graph[T]) computeLevels() error {
	if !g.dirty {
		return nil
	}
	start := time.Now()

	order, err := g.topoOrder()
	if err != nil {
		observability.Graph().OnLevelsComputed(len(g.nodes), 0, time.Since(start), err)
		return err
	}
	if len(order) == 0 {
		g.referencePoint, g.countLevels = 0, 0
		g.dirty = false
		return nil
	}

	deepest := g.rankLongestPath(order)
	reached := g.propagate(deepest)
	g.relax(order)
	g.anchor(reached)
	g.compact()

	lo, hi := g.nodes[0].rel, g.nodes[0].rel
	for i := range g.nodes {
		lo = min(lo, g.nodes[i].rel)
		hi = max(hi, g.nodes[i].rel)
	}
	g.referencePoint = -lo
	g.countLevels = hi - lo + 1
	g.dirty = false

	g.logger.Debug("computed levels",
		"nodes", len(g.nodes),
		"edges", len(g.edges),
		"levels", g.countLevels,
		"deepest", g.nodes[deepest].value,
		"elapsed", time.Since(start))
	observability.Graph().OnLevelsComputed(len(g.nodes), g.countLevels, time.Since(start), nil)
	return nil
}

// rankLongestPath assigns each node 1 + the maximum rank of its parents
// (0 for roots), walking in topological order, and returns the first node
// reaching the maximum rank.
func (g *Graph[T]) rankLongestPath(order []int) int {
	for _, id := range order {
		g.nodes[id].rel = 0
	}
	deepest := order[0]
	for _, id := range order {
		rank := g.nodes[id].rel
		for _, c := range g.nodes[id].children {
			g.nodes[c].rel = max(g.nodes[c].rel, rank+1)
		}
		if rank > g.nodes[deepest].rel {
			deepest = id
		}
	}
	return deepest
}

// propagate re-anchors the deepest node's component on the deepest node's
// rank: each node reached through a parent link sits one level below the node
// it was reached from, each node reached through a child link one level
// above. Nodes are placed when first discovered. Nodes outside the component
// keep their longest-path rank. It reports which nodes it reached.
func (g *Graph[T]) propagate(deepest int) []bool {
	visited := make([]bool, len(g.nodes))
	visited[deepest] = true
	stack := []int{deepest}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		rel := g.nodes[cur].rel
		for _, p := range g.nodes[cur].parents {
			if !visited[p] {
				visited[p] = true
				g.nodes[p].rel = rel - 1
				stack = append(stack, p)
			}
		}
		for _, c := range g.nodes[cur].children {
			if !visited[c] {
				visited[c] = true
				g.nodes[c].rel = rel + 1
				stack = append(stack, c)
			}
		}
	}
	return visited
}

// relax lifts children that propagation left at or below a parent. Walking
// in topological order settles every edge in one pass.
func (g *Graph[T]) relax(order []int) {
	for _, id := range order {
		rel := g.nodes[id].rel
		for _, c := range g.nodes[id].children {
			if g.nodes[c].rel <= rel {
				g.nodes[c].rel = rel + 1
			}
		}
	}
}

// anchor shifts the reached component so its lowest node sits at rank 0,
// the same origin the longest-path ranks of the other components use.
func (g *Graph[T]) anchor(reached []bool) {
	lo, found := 0, false
	for id, ok := range reached {
		if ok && (!found || g.nodes[id].rel < lo) {
			lo, found = g.nodes[id].rel, true
		}
	}
	if !found || lo == 0 {
		return
	}
	for id, ok := range reached {
		if ok {
			g.nodes[id].rel -= lo
		}
	}
}

// compact closes gaps between occupied ranks, keeping their order, so every
// level from 0 to the highest holds at least one node.
func (g *Graph[T]) compact() {
	ranks := make([]int, 0, len(g.nodes))
	for i := range g.nodes {
		ranks = append(ranks, g.nodes[i].rel)
	}
	slices.Sort(ranks)
	ranks = slices.Compact(ranks)
	if len(ranks) == 0 || ranks[len(ranks)-1]-ranks[0] == len(ranks)-1 {
		return
	}
	for i := range g.nodes {
		g.nodes[i].rel, _ = slices.BinarySearch(ranks, g.nodes[i].rel)
	}
}
