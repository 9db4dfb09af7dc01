package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/matzehuels/levelgraph/pkg/errors"
	"github.com/matzehuels/levelgraph/pkg/graph"
)

// Format identifies a sequence file syntax.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatHCL  Format = "hcl"
	FormatText Format = "text"
)

// Formats lists every supported input format.
var Formats = []string{string(FormatJSON), string(FormatTOML), string(FormatHCL), string(FormatText)}

// DetectFormat picks a format from the file extension. Unknown extensions
// are read as text.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	case ".hcl":
		return FormatHCL
	default:
		return FormatText
	}
}

type jsonFile struct {
	Sequences [][]any `json:"sequences"`
}

type tomlFile struct {
	Sequence []struct {
		Nodes []any `toml:"nodes"`
	} `toml:"sequence"`
}

type hclFile struct {
	Sequences []*hclSequence `hcl:"sequence,block"`
}

type hclSequence struct {
	Nodes []string `hcl:"nodes"`
}

// ReadSequences decodes sequences from r in the given format.
//
// ReadSequences returns an error if the input is malformed, if a sequence is
// empty, or if a value fails [errors.ValidateNodeName]. It does not close r.
func ReadSequences(r io.Reader, format Format) ([][]string, error) {
	switch format {
	case FormatJSON:
		return readJSON(r)
	case FormatTOML:
		return readTOML(r)
	case FormatHCL:
		return readHCL(r, "sequences.hcl")
	case FormatText:
		return readText(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported input format %q", format)
	}
}

// ImportSequences reads the sequence file at path, choosing the format with
// [DetectFormat].
func ImportSequences(path string) ([][]string, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	format := DetectFormat(path)
	if format == FormatHCL {
		return readHCL(f, path)
	}
	return ReadSequences(f, format)
}

// ReadGraph decodes sequences from r and merges them into a new graph.
func ReadGraph(r io.Reader, format Format, opts ...graph.Option) (*graph.Graph[string], error) {
	seqs, err := ReadSequences(r, format)
	if err != nil {
		return nil, err
	}
	return graph.FromSequences(seqs, opts...)
}

// ImportGraph reads the sequence file at path into a new graph.
func ImportGraph(path string, opts ...graph.Option) (*graph.Graph[string], error) {
	seqs, err := ImportSequences(path)
	if err != nil {
		return nil, err
	}
	return graph.FromSequences(seqs, opts...)
}

func readJSON(r io.Reader) ([][]string, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var data jsonFile
	if err := dec.Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
	}
	return normalize(data.Sequences)
}

func readTOML(r io.Reader) ([][]string, error) {
	var data tomlFile
	if _, err := toml.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml")
	}
	raw := make([][]any, len(data.Sequence))
	for i, s := range data.Sequence {
		raw[i] = s.Nodes
	}
	return normalize(raw)
}

func readHCL(r io.Reader, filename string) ([][]string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, diags, "parse hcl")
	}
	var data hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &data); diags.HasErrors() {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, diags, "decode hcl")
	}

	out := make([][]string, len(data.Sequences))
	for i, s := range data.Sequences {
		seq, err := checkSequence(s.Nodes)
		if err != nil {
			return nil, fmt.Errorf("sequence %d: %w", i, err)
		}
		out[i] = seq
	}
	return out, nil
}

func readText(r io.Reader) ([][]string, error) {
	var out [][]string
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.FieldsFunc(strings.ReplaceAll(text, "->", ","), func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if len(fields) == 0 {
			continue
		}
		seq, err := checkSequence(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, seq)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return out, nil
}

// normalize converts decoded sequences to strings.
func normalize(raw [][]any) ([][]string, error) {
	out := make([][]string, len(raw))
	for i, items := range raw {
		seq := make([]string, len(items))
		for j, v := range items {
			switch v := v.(type) {
			case nil:
				return nil, errors.New(errors.ErrCodeInvalidInput, "sequence %d: element %d is null", i, j)
			case string:
				seq[j] = v
			case json.Number, int64, float64, bool:
				seq[j] = fmt.Sprint(v)
			default:
				return nil, errors.New(errors.ErrCodeInvalidInput, "sequence %d: element %d has unsupported type %T", i, j, v)
			}
		}
		checked, err := checkSequence(seq)
		if err != nil {
			return nil, fmt.Errorf("sequence %d: %w", i, err)
		}
		out[i] = checked
	}
	return out, nil
}

func checkSequence(seq []string) ([]string, error) {
	if len(seq) == 0 {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, graph.ErrEmptySequence, "empty sequence")
	}
	for i, v := range seq {
		v = strings.TrimSpace(v)
		if err := errors.ValidateNodeName(v); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		seq[i] = v
	}
	return seq, nil
}
