// Package pipeline provides the load → render pipeline for levelgraph.
//
// This package turns a sequence file into a levelled graph and the graph into
// output artifacts. The CLI commands all go through it, so caching, logging
// and observability hooks behave the same regardless of the entry point.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Load: Read sequences from a JSON, TOML, HCL or text file and merge them
//     into a [graph.Graph]
//  2. Render: Generate output in various formats (JSON, CSV, DOT, SVG, PNG, PDF)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  "build.toml",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	g, err := runner.Load(ctx, opts)
//	artifacts, err := runner.Render(ctx, g, opts)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/levelgraph/pkg/cache"
	"github.com/matzehuels/levelgraph/pkg/errors"
	"github.com/matzehuels/levelgraph/pkg/graph"
	graphio "github.com/matzehuels/levelgraph/pkg/io"
)

const (
	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// DefaultRankDir draws levels top to bottom.
	DefaultRankDir = "TB"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// DefaultFormat is the output format used when none is requested.
const DefaultFormat = FormatSVG

// PropertiesArtifact is the artifact key of the CSV property table. It is
// produced alongside the "csv" edge table.
const PropertiesArtifact = "csv.properties"

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatCSV:  true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// Options contains all configuration for the pipeline.
type Options struct {
	// Load options
	Source  string `json:"source" validate:"required"`
	Input   string `json:"input,omitempty" validate:"omitempty,oneof=json toml hcl text"`
	Refresh bool   `json:"refresh,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty" validate:"dive,oneof=json csv dot svg png pdf"`
	Detailed  bool     `json:"detailed,omitempty"`
	RankDir   string   `json:"rank_dir,omitempty" validate:"omitempty,oneof=TB LR BT RL"`
	Highlight []string `json:"highlight,omitempty"`
	Scale     float64  `json:"scale,omitempty" validate:"gte=0,lte=8"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the loaded graph with levels computed.
	Graph *graph.Graph[string]

	// SourceHash is the content hash of the source file.
	SourceHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LevelCount int
	LoadTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool
	RenderHit bool
}

// ValidateAndSetDefaults validates the options and fills in defaults for
// every stage. It is safe to call more than once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks the options needed by the load stage.
func (o *Options) ValidateForLoad() error {
	if err := errors.ValidatePath(o.Source); err != nil {
		return err
	}
	return errors.ValidateStruct(o)
}

// ValidateForRender applies render defaults, then checks the render options.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := errors.ValidateStruct(renderOptions{
		Formats: o.Formats,
		RankDir: o.RankDir,
		Scale:   o.Scale,
	}); err != nil {
		return err
	}
	for _, id := range o.Highlight {
		if err := errors.ValidateNodeName(id); err != nil {
			return err
		}
	}
	return nil
}

// renderOptions is the subset of Options checked before rendering an
// already loaded graph, where Source may be unset.
type renderOptions struct {
	Formats []string `json:"formats" validate:"required,dive,oneof=json csv dot svg png pdf"`
	RankDir string   `json:"rank_dir" validate:"oneof=TB LR BT RL"`
	Scale   float64  `json:"scale" validate:"gt=0,lte=8"`
}

// SetRenderDefaults fills in render defaults for zero values.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.RankDir == "" {
		o.RankDir = DefaultRankDir
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// InputFormat returns the explicit input format, or the one detected from
// the source extension.
func (o *Options) InputFormat() graphio.Format {
	if o.Input != "" {
		return graphio.Format(o.Input)
	}
	return graphio.DetectFormat(o.Source)
}

// ArtifactKeyOpts returns the cache key options for one output format.
// Scale only affects PNG output.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// IsVisual reports whether format requires Graphviz rendering.
func IsVisual(format string) bool {
	return format == FormatSVG || format == FormatPNG || format == FormatPDF
}
