package io

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/matzehuels/levelgraph/pkg/graph"
)

// PropertiesFile is the name of the property table written by [ExportCSV].
const PropertiesFile = "Properties.csv"

// WriteCSV writes the edge table of g to edges and the property table to
// props. It does not require levels, so it also works on cyclic graphs.
// Values holding commas, quotes or newlines are quoted.
func WriteCSV[T comparable](g *graph.Graph[T], edges, props io.Writer) error {
	ids := make(map[string]int)
	var names []string
	id := func(n graph.Node[T]) string {
		key := n.String()
		v, ok := ids[key]
		if !ok {
			v = len(names)
			ids[key] = v
			names = append(names, key)
		}
		return strconv.Itoa(v)
	}

	rows := [][]string{{"From", "To"}}
	for _, e := range g.Edges() {
		rows = append(rows, []string{id(e[0]), id(e[1])})
	}
	if err := writeTable(edges, rows); err != nil {
		return fmt.Errorf("edges: %w", err)
	}

	rows = [][]string{{"ID", "Property", "Value"}}
	for i, name := range names {
		rows = append(rows, []string{strconv.Itoa(i), "Order", name})
	}
	if err := writeTable(props, rows); err != nil {
		return fmt.Errorf("properties: %w", err)
	}
	return nil
}

// ExportCSV writes the edge table to path and the property table to
// Properties.csv in the same directory.
func ExportCSV[T comparable](g *graph.Graph[T], path string) error {
	ef, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer ef.Close()

	propsPath := filepath.Join(filepath.Dir(path), PropertiesFile)
	pf, err := os.Create(propsPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", propsPath, err)
	}
	defer pf.Close()

	return WriteCSV(g, ef, pf)
}

// writeTable encodes rows as CSV without the final line terminator.
func writeTable(w io.Writer, rows [][]string) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	_, err := w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	return err
}
