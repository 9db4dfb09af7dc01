package graph

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/levelgraph/pkg/observability"
)

const defaultCapacity = 4

// node is an arena entry. Parents and children are insertion-ordered index
// sets into Graph.nodes.
type node[T comparable] struct {
	value    T
	parents  []int
	children []int
	rel      int // level relative to Graph.referencePoint
}

type edge struct{ from, to int }

// Graph is a directed graph assembled from precedence sequences, with lazily
// computed node levels.
//
// The zero value is not usable - use [New], [FromSequence] or [FromSequences].
// Graph is not safe for concurrent use without external synchronization.
type Graph[T comparable] struct {
	index map[T]int
	nodes []node[T]
	edges map[edge]struct{}

	// dirty is set by every mutation and cleared only at the end of a
	// successful level computation.
	dirty          bool
	referencePoint int
	countLevels    int

	logger *log.Logger
}

// Option configures a Graph at construction time.
type Option func(*options)

type options struct {
	capacity int
	logger   *log.Logger
}

// WithCapacity pre-sizes the node store for n values.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithLogger sets the logger used for debug output during level computation.
// A nil logger is ignored.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates an empty graph.
func New[T comparable](opts ...Option) *Graph[T] {
	o := options{capacity: defaultCapacity}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Graph[T]{
		index:  make(map[T]int, o.capacity),
		nodes:  make([]node[T], 0, o.capacity),
		edges:  make(map[edge]struct{}, o.capacity),
		logger: o.logger,
	}
}

// FromSequence creates a graph pre-populated with a single sequence.
func FromSequence[T comparable](seq []T, opts ...Option) (*Graph[T], error) {
	g := New[T](opts...)
	if err := g.AddSequence(seq...); err != nil {
		return nil, err
	}
	return g, nil
}

// FromSequences creates a graph pre-populated with several sequences.
func FromSequences[T comparable](seqs [][]T, opts ...Option) (*Graph[T], error) {
	g := New[T](opts...)
	if err := g.AddSequences(seqs...); err != nil {
		return nil, err
	}
	return g, nil
}

// AddSequence merges a precedence chain into the graph. Each value is looked
// up or created, and every consecutive pair (items[i], items[i+1]) becomes an
// edge unless it already exists.
//
// Returns [ErrEmptySequence] for an empty sequence and [ErrNilValue] if any
// element is nil; in both cases the graph is left unchanged. Cycles are not
// detected here - they surface on the next sort or level-dependent read.
func (g *Graph[T]) AddSequence(items ...T) error {
	if len(items) == 0 {
		return ErrEmptySequence
	}
	for i, v := range items {
		if isNil(v) {
			return fmt.Errorf("element %d: %w", i, ErrNilValue)
		}
	}

	ids := make([]int, len(items))
	for i, v := range items {
		ids[i] = g.getOrCreate(v)
	}
	added := 0
	for i := 0; i < len(ids)-1; i++ {
		if g.addEdge(ids[i], ids[i+1]) {
			added++
		}
	}

	observability.Graph().OnSequenceAdded(len(items), added)
	return nil
}

// AddSequences adds each sequence in turn. It stops at the first invalid
// sequence; sequences before it remain applied.
func (g *Graph[T]) AddSequences(seqs ...[]T) error {
	for i, seq := range seqs {
		if err := g.AddSequence(seq...); err != nil {
			return fmt.Errorf("sequence %d: %w", i, err)
		}
	}
	return nil
}

func (g *Graph[T]) getOrCreate(v T) int {
	if id, ok := g.index[v]; ok {
		return id
	}
	id := len(g.nodes)
	g.nodes = append(g.nodes, node[T]{value: v})
	g.index[v] = id
	g.dirty = true
	return id
}

// addEdge links from→to and reports whether the edge is new.
func (g *Graph[T]) addEdge(from, to int) bool {
	e := edge{from: from, to: to}
	if _, ok := g.edges[e]; ok {
		return false
	}
	g.edges[e] = struct{}{}
	g.nodes[from].children = append(g.nodes[from].children, to)
	g.nodes[to].parents = append(g.nodes[to].parents, from)
	g.dirty = true
	return true
}

// Find returns the node holding v. The boolean is false if v was never added;
// absence is not an error.
func (g *Graph[T]) Find(v T) (Node[T], bool) {
	id, ok := g.index[v]
	if !ok {
		return Node[T]{}, false
	}
	return Node[T]{g: g, id: id}, true
}

// Contains reports whether v has been added to the graph.
func (g *Graph[T]) Contains(v T) bool {
	_, ok := g.index[v]
	return ok
}

// CountNodes returns the number of distinct values ever added.
func (g *Graph[T]) CountNodes() int { return len(g.nodes) }

// CountEdges returns the number of distinct edges.
func (g *Graph[T]) CountEdges() int { return len(g.edges) }

// Nodes returns all nodes in creation order.
func (g *Graph[T]) Nodes() []Node[T] {
	out := make([]Node[T], len(g.nodes))
	for id := range g.nodes {
		out[id] = Node[T]{g: g, id: id}
	}
	return out
}

// Edges returns every edge as a {parent, child} pair, grouped by parent in
// creation order and by child in insertion order.
func (g *Graph[T]) Edges() [][2]Node[T] {
	out := make([][2]Node[T], 0, len(g.edges))
	for id, n := range g.nodes {
		for _, c := range n.children {
			out = append(out, [2]Node[T]{{g: g, id: id}, {g: g, id: c}})
		}
	}
	return out
}

// Clone returns a structural copy of the graph: the same nodes and edges in
// the same order, with levels left to be recomputed. Mutating the clone does
// not affect g. Cloning is O(V+E).
func (g *Graph[T]) Clone() *Graph[T] {
	c := &Graph[T]{
		index:  maps.Clone(g.index),
		nodes:  make([]node[T], len(g.nodes), max(len(g.nodes), defaultCapacity)),
		edges:  maps.Clone(g.edges),
		dirty:  true,
		logger: g.logger,
	}
	for i, n := range g.nodes {
		c.nodes[i] = node[T]{
			value:    n.value,
			parents:  slices.Clone(n.parents),
			children: slices.Clone(n.children),
		}
	}
	return c
}

func (g *Graph[T]) level(id int) int { return g.referencePoint + g.nodes[id].rel }

func (g *Graph[T]) handles(ids []int) []Node[T] {
	out := make([]Node[T], len(ids))
	for i, id := range ids {
		out[i] = Node[T]{g: g, id: id}
	}
	return out
}
