package io

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/levelgraph/pkg/graph"
)

func TestWriteJSON(t *testing.T) {
	g, err := graph.FromSequences([][]string{{"a", "b", "c"}, {"x", "c"}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(g, &buf))

	var doc document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, 3, doc.Levels)
	assert.Equal(t, []nodeJSON{
		{ID: "a", Level: 0},
		{ID: "b", Level: 1},
		{ID: "c", Level: 2},
		{ID: "x", Level: 1},
	}, doc.Nodes)
	assert.Equal(t, []edgeJSON{
		{From: "a", To: "b"},
		{From: "b", To: "c"},
		{From: "x", To: "c"},
	}, doc.Edges)
}

func TestWriteJSON_Cyclic(t *testing.T) {
	g, err := graph.FromSequence([]int{1, 2, 1})
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.ErrorIs(t, WriteJSON(g, &buf), graph.ErrCyclicGraph)
}

func TestExportJSON(t *testing.T) {
	g, err := graph.FromSequence([]int{1, 2})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, ExportJSON(g, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id": "2"`)
}

func TestWriteCSV(t *testing.T) {
	g, err := graph.FromSequences([][]int{{41, 51, 61}, {42, 51}, {7}})
	require.NoError(t, err)

	var edges, props bytes.Buffer
	require.NoError(t, WriteCSV(g, &edges, &props))

	assert.Equal(t, "From,To\n0,1\n1,2\n3,1", edges.String())
	assert.Equal(t, "ID,Property,Value\n0,Order,41\n1,Order,51\n2,Order,61\n3,Order,42", props.String())
}

func TestWriteCSV_QuotesValues(t *testing.T) {
	g, err := graph.FromSequence([]string{"a,b", "c"})
	require.NoError(t, err)

	var edges, props bytes.Buffer
	require.NoError(t, WriteCSV(g, &edges, &props))
	assert.Equal(t, "ID,Property,Value\n0,Order,\"a,b\"\n1,Order,c", props.String())

	g, err = graph.FromSequence([]string{`say "hi"`, "plain"})
	require.NoError(t, err)
	props.Reset()
	require.NoError(t, WriteCSV(g, &edges, &props))
	assert.Equal(t, "ID,Property,Value\n0,Order,\"say \"\"hi\"\"\"\n1,Order,plain", props.String())
}

func TestExportCSV(t *testing.T) {
	g, err := graph.FromSequence([]string{"a", "b"})
	require.NoError(t, err)
	require.NoError(t, g.AddSequence("b", "a"))

	dir := t.TempDir()
	path := filepath.Join(dir, "graph.csv")
	require.NoError(t, ExportCSV(g, path), "the debug export must not need levels")

	edges, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "From,To\n0,1\n1,0", string(edges))

	props, err := os.ReadFile(filepath.Join(dir, PropertiesFile))
	require.NoError(t, err)
	assert.Equal(t, "ID,Property,Value\n0,Order,a\n1,Order,b", string(props))
}
