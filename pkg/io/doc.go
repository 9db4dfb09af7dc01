// Package io reads sequence files into graphs and writes graphs back out.
//
// # Sequence Files
//
// A sequence file lists precedence chains. Each chain becomes a call to
// [graph.Graph.AddSequence]. Four formats are supported and detected from
// the file extension by [DetectFormat]:
//
// JSON (.json):
//
//	{
//	  "sequences": [
//	    ["fetch", "build", "test"],
//	    ["lint", "test"]
//	  ]
//	}
//
// TOML (.toml):
//
//	[[sequence]]
//	nodes = ["fetch", "build", "test"]
//
//	[[sequence]]
//	nodes = ["lint", "test"]
//
// HCL (.hcl):
//
//	sequence {
//	  nodes = ["fetch", "build", "test"]
//	}
//
// Text (any other extension): one chain per line, values separated by
// commas, whitespace or "->". Everything after "#" is a comment and blank
// lines are skipped:
//
//	# build pipeline
//	fetch -> build -> test
//	lint, test
//
// Numbers and booleans in structured formats are converted to their string
// form, so [1, 2] and ["1", "2"] describe the same nodes. Every value is
// checked with [errors.ValidateNodeName]; errors name the offending sequence
// (or line, for text files).
//
// Use [ImportSequences] for files, [ReadSequences] for any io.Reader, and
// [ImportGraph] / [ReadGraph] to build a [graph.Graph] directly.
//
// # JSON Export
//
// [WriteJSON] and [ExportJSON] write nodes with their computed level, plus the
// edge list:
//
//	{
//	  "levels": 2,
//	  "nodes": [{"id": "a", "level": 0}, {"id": "b", "level": 1}],
//	  "edges": [{"from": "a", "to": "b"}]
//	}
//
// Exporting a cyclic graph fails with [graph.ErrCyclicGraph].
//
// # CSV Export
//
// [WriteCSV] and [ExportCSV] produce a debug export made of two tables. The
// edge table has the header "From,To" and one row per edge, with each node
// replaced by an integer id. Ids start at 0 and are assigned in first-seen
// order per distinct formatted value. The property table, written to
// Properties.csv next to the edge file, has the header "ID,Property,Value"
// and maps every id back to its value under the property name "Order".
// Neither table ends with a newline. Nodes without edges are not listed.
//
// Values are written verbatim unless they contain a comma, a double quote or
// a line break. Those are quoted RFC 4180 style with inner quotes doubled, so
// a value such as `a,b` reads back as one field with any CSV reader.
//
// [errors.ValidateNodeName]: github.com/matzehuels/levelgraph/pkg/errors.ValidateNodeName
package io
