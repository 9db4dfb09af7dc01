package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exampleSequences builds a 20-node DAG on six levels: roots {11, 12},
// leaves {61, 62}. Node values encode the expected level in the tens digit.
var exampleSequences = [][]int{
	{51, 61},
	{51, 62},
	{41, 51},
	{42, 51},
	{43, 51},
	{44, 51},
	{45, 51},
	{46, 51},
	{31, 41},
	{31, 42},
	{31, 43},
	{32, 46},
	{21, 31},
	{22, 31},
	{23, 31},
	{24, 31},
	{25, 32},
	{26, 32},
	{11, 27, 32, 46, 51, 61},
	{12, 27, 32, 46, 51, 61},
}

func exampleGraph(t *testing.T) *Graph[int] {
	t.Helper()
	g, err := FromSequences(exampleSequences)
	require.NoError(t, err)
	return g
}

func mustFind[T comparable](t *testing.T, g *Graph[T], v T) Node[T] {
	t.Helper()
	n, ok := g.Find(v)
	require.Truef(t, ok, "node %v not found", v)
	return n
}

func values[T comparable](t *testing.T, r Result[T]) []T {
	t.Helper()
	vs, err := r.Values()
	require.NoError(t, err)
	return vs
}

func TestAddSequence_CreatesNodesAndEdges(t *testing.T) {
	g := New[int]()
	require.NoError(t, g.AddSequence(41, 51, 61, 100))
	require.NoError(t, g.AddSequence(42, 52, 62, 100))

	assert.Equal(t, 7, g.CountNodes())
	assert.Equal(t, 6, g.CountEdges())
	assert.Equal(t, []int{51}, values(t, mustFind(t, g, 41).ImmediateDescendants()))
	assert.Equal(t, []int{100}, values(t, mustFind(t, g, 61).ImmediateDescendants()))
}

func TestAddSequence_Idempotent(t *testing.T) {
	g := New[int]()
	require.NoError(t, g.AddSequence(41, 51, 61, 100))
	require.NoError(t, g.AddSequence(42, 52, 62, 100))

	_, err := g.CountLevels()
	require.NoError(t, err)
	require.False(t, g.dirty)

	require.NoError(t, g.AddSequence(42, 52, 62, 100))
	assert.Equal(t, 7, g.CountNodes())
	assert.Equal(t, 6, g.CountEdges())
	assert.False(t, g.dirty, "re-adding known edges must not invalidate levels")
	assert.Len(t, g.Edges(), 6)
}

func TestAddSequence_SingleValue(t *testing.T) {
	g, err := FromSequence([]int{1})
	require.NoError(t, err)

	assert.Equal(t, 1, g.CountNodes())
	assert.Equal(t, 0, g.CountEdges())
	assert.Equal(t, []int{1}, values(t, g.RootNodes()))
	assert.Equal(t, []int{1}, values(t, g.LeafNodes()))

	levels, err := g.CountLevels()
	require.NoError(t, err)
	assert.Equal(t, 1, levels)
}

func TestAddSequence_InvalidInput(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		g := New[string]()
		assert.ErrorIs(t, g.AddSequence(), ErrEmptySequence)
		assert.Zero(t, g.CountNodes())
	})

	t.Run("nil pointer", func(t *testing.T) {
		x := 1
		g := New[*int]()
		err := g.AddSequence(&x, nil)
		assert.ErrorIs(t, err, ErrNilValue)
		assert.Zero(t, g.CountNodes(), "a rejected sequence must not mutate the graph")
	})

	t.Run("nil interface", func(t *testing.T) {
		g := New[any]()
		assert.ErrorIs(t, g.AddSequence("a", nil), ErrNilValue)
		assert.Zero(t, g.CountNodes())
	})

	t.Run("partial sequences", func(t *testing.T) {
		g := New[string]()
		err := g.AddSequences([]string{"a", "b"}, nil, []string{"c"})
		require.ErrorIs(t, err, ErrEmptySequence)
		assert.Contains(t, err.Error(), "sequence 1")
		assert.Equal(t, 2, g.CountNodes(), "sequences before the failure stay applied")
		assert.False(t, g.Contains("c"))
	})
}

func TestFind(t *testing.T) {
	g := exampleGraph(t)

	n, ok := g.Find(32)
	require.True(t, ok)
	assert.Equal(t, 32, n.Value())
	assert.Equal(t, "32", n.String())
	assert.True(t, n.Valid())

	n, ok = g.Find(99)
	assert.False(t, ok)
	assert.False(t, n.Valid())
	assert.Equal(t, "<nil>", n.String())
}

func TestNodes_CreationOrder(t *testing.T) {
	g := New[string](WithCapacity(16))
	require.NoError(t, g.AddSequence("c", "a", "b"))
	require.NoError(t, g.AddSequence("d", "a"))

	var got []string
	for _, n := range g.Nodes() {
		got = append(got, n.Value())
	}
	assert.Equal(t, []string{"c", "a", "b", "d"}, got)

	var edges [][2]string
	for _, e := range g.Edges() {
		edges = append(edges, [2]string{e[0].Value(), e[1].Value()})
	}
	assert.Equal(t, [][2]string{{"c", "a"}, {"a", "b"}, {"d", "a"}}, edges)
}

func TestNode_RootAndLeaf(t *testing.T) {
	g := exampleGraph(t)

	assert.True(t, mustFind(t, g, 11).IsRoot())
	assert.False(t, mustFind(t, g, 11).IsLeaf())
	assert.True(t, mustFind(t, g, 62).IsLeaf())
	assert.False(t, mustFind(t, g, 51).IsRoot())
}

func TestClone_IsIndependent(t *testing.T) {
	g := exampleGraph(t)
	c := g.Clone()

	require.NoError(t, c.AddSequence(61, 11))
	assert.False(t, c.CanSort())
	assert.True(t, g.CanSort())
	assert.Equal(t, 20, c.CountNodes())
	assert.Equal(t, g.CountEdges()+1, c.CountEdges())

	require.NoError(t, c.AddSequence(70))
	assert.False(t, g.Contains(70))
	assert.Empty(t, values(t, mustFind(t, g, 61).ImmediateDescendants()))
}
