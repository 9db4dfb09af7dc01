package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/levelgraph/pkg/graph"
)

type document struct {
	Levels int        `json:"levels"`
	Nodes  []nodeJSON `json:"nodes"`
	Edges  []edgeJSON `json:"edges"`
}

type nodeJSON struct {
	ID    string `json:"id"`
	Level int    `json:"level"`
}

type edgeJSON struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// WriteJSON encodes g with computed levels and writes it to w. Nodes appear
// in creation order. Values are formatted with fmt.Sprint.
func WriteJSON[T comparable](g *graph.Graph[T], w io.Writer) error {
	count, err := g.CountLevels()
	if err != nil {
		return err
	}

	out := document{
		Levels: count,
		Nodes:  make([]nodeJSON, 0, g.CountNodes()),
		Edges:  make([]edgeJSON, 0, g.CountEdges()),
	}
	for _, n := range g.Nodes() {
		l, err := n.Level()
		if err != nil {
			return err
		}
		out.Nodes = append(out.Nodes, nodeJSON{ID: n.String(), Level: l})
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, edgeJSON{From: e[0].String(), To: e[1].String()})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON[T comparable](g *graph.Graph[T], path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}
