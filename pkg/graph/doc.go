// Package graph provides a levelled dependency graph built from precedence
// sequences.
//
// # Overview
//
// A sequence such as {"fetch", "build", "test"} states that fetch comes before
// build and build before test. Sequences are merged into a single directed
// graph: every value becomes a node (created on first sight) and every pair of
// consecutive values becomes an edge. Edges are de-duplicated, so adding the
// same sequence twice is a no-op.
//
//	g := graph.New[string]()
//	_ = g.AddSequence("fetch", "build", "test")
//	_ = g.AddSequence("lint", "test")
//
// # Levels
//
// Every node carries an integer level: its rank along the longest chain of
// prerequisites, normalized so the lowest node sits at level 0. Levels are
// computed lazily. Any mutation marks the graph dirty, and the next read that
// depends on levels ([Graph.CountLevels], [Graph.NodesAt], [Node.Level] or any
// relation query) recomputes them in a single O(V+E) pass:
//
//  1. Kahn's topological sort; a cycle aborts with [ErrCyclicGraph]
//  2. Longest-path ranks in topological order, tracking the deepest node
//  3. A bidirectional walk from the deepest node that places every node of
//     its component on one shared integer line
//  4. A forward relaxation so that level(child) > level(parent) holds for
//     every edge
//  5. Normalization so the minimum level is 0
//
// For every edge p→c of an acyclic graph, level(c) > level(p), and
// [Graph.CountLevels] is one more than the highest level.
//
// # Queries
//
// Relation queries ([Node.Precedents], [Node.Descendants], [Node.Neighbours],
// [Graph.NodesBetween], ...) return a [Result]. A Result is lazy: nothing runs
// until it is enumerated, and every enumeration re-runs the traversal from
// scratch. Results are ordered by ascending level; nodes on the same level
// keep traversal order.
//
//	n, _ := g.Find("build")
//	for d, err := range n.Descendants().All() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(d.Value())
//	}
//
// # Sorting
//
// [Graph.Sort] returns the nodes in topological order, or [ErrCyclicGraph].
// Ties are broken first-inserted-first-out, so the order is reproducible.
// [Graph.CanSort] reports the same outcome as a boolean, and
// [Graph.CanSortWith] answers "would the graph still be acyclic after adding
// this sequence?" on a structural clone, leaving the graph untouched. The
// clone costs O(V+E); keep CanSortWith out of hot paths.
//
// # Representation
//
// Nodes live in an arena owned by the Graph and refer to each other by index.
// [Node] is a small handle (graph pointer plus index), so comparing two nodes
// is an integer comparison and handles stay valid for the graph's lifetime.
// Nodes are never deleted.
//
// # Concurrency
//
// A Graph is not safe for concurrent use. Level recomputation mutates internal
// state even on read paths, so callers must serialize all access, and must not
// mutate the graph while a Result is being enumerated.
package graph
