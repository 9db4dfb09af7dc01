package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/levelgraph/pkg/cache"
	"github.com/matzehuels/levelgraph/pkg/errors"
	"github.com/matzehuels/levelgraph/pkg/graph"
	graphio "github.com/matzehuels/levelgraph/pkg/io"
	"github.com/matzehuels/levelgraph/pkg/observability"
	"github.com/matzehuels/levelgraph/pkg/render/nodelink"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. It doesn't store
// pipeline results, so multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	loadStart := time.Now()
	g, hash, loadHit, err := r.load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Graph = g
	result.SourceHash = hash
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = g.CountNodes()
	result.Stats.EdgeCount = g.CountEdges()
	result.CacheInfo.LoadHit = loadHit

	r.Logger.Info("loaded sequences",
		"nodes", g.CountNodes(),
		"edges", g.CountEdges(),
		"duration", result.Stats.LoadTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit
	// Rendering succeeded, so levels are computed and this cannot fail.
	result.Stats.LevelCount, _ = g.CountLevels()

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"levels", result.Stats.LevelCount,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo reads the source file into a graph and reports whether
// the parsed sequences came from the cache.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (*graph.Graph[string], bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	g, _, hit, err := r.load(ctx, opts)
	return g, hit, err
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (*graph.Graph[string], error) {
	g, _, err := r.LoadWithCacheInfo(ctx, opts)
	return g, err
}

func (r *Runner) load(ctx context.Context, opts Options) (g *graph.Graph[string], hash string, hit bool, err error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Source)
	start := time.Now()
	defer func() {
		n := 0
		if g != nil {
			n = g.CountNodes()
		}
		hooks.OnLoadComplete(ctx, opts.Source, n, time.Since(start), err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, "", false, err
	}

	data, err := os.ReadFile(opts.Source)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", false, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", opts.Source)
		}
		return nil, "", false, fmt.Errorf("read %s: %w", opts.Source, err)
	}

	format := opts.InputFormat()
	hash = cache.Hash(append([]byte(string(format)+"\x00"), data...))
	cacheKey := r.Keyer.SequencesKey(hash)

	seqs, hit := r.cachedSequences(ctx, cacheKey, opts.Refresh)
	if !hit {
		seqs, err = graphio.ReadSequences(bytes.NewReader(data), format)
		if err != nil {
			return nil, hash, false, fmt.Errorf("%s: %w", opts.Source, err)
		}
		if encoded, err := json.Marshal(seqs); err == nil {
			if r.Cache.Set(ctx, cacheKey, encoded, cache.SequencesTTL) == nil {
				observability.Cache().OnCacheSet(ctx, "sequences", len(encoded))
			}
		}
	}

	opts.Logger.Debug("parsed sequences", "source", opts.Source, "format", format, "count", len(seqs), "cached", hit)

	g = graph.New[string](graph.WithCapacity(len(seqs)), graph.WithLogger(opts.Logger))
	if err := g.AddSequences(seqs...); err != nil {
		return nil, hash, hit, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", opts.Source)
	}
	return g, hash, hit, nil
}

func (r *Runner) cachedSequences(ctx context.Context, key string, refresh bool) ([][]string, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "sequences")
		return nil, false
	}
	var seqs [][]string
	if err := json.Unmarshal(data, &seqs); err != nil {
		observability.Cache().OnCacheMiss(ctx, "sequences")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "sequences")
	return seqs, true
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info. Only Graphviz output is cached, keyed by the DOT source; the other
// formats are cheap to regenerate. The hit flag is true when every requested
// visual format came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *graph.Graph[string], opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	dot, err := nodelink.ToDOT(g, nodelink.Options{
		Detailed:  opts.Detailed,
		RankDir:   opts.RankDir,
		Highlight: opts.Highlight,
	})
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeCyclicGraph, err, "compute levels")
	}
	dotHash := cache.Hash([]byte(dot))

	artifacts := make(map[string][]byte)
	allCached := true
	visual := 0

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		if !IsVisual(format) {
			if err := renderFormat(ctx, g, dot, format, opts, artifacts); err != nil {
				return nil, false, err
			}
			continue
		}

		visual++
		cacheKey := r.Keyer.ArtifactKey(dotHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		allCached = false

		if err := renderFormat(ctx, g, dot, format, opts, artifacts); err != nil {
			return nil, false, err
		}
		if err := r.Cache.Set(ctx, cacheKey, artifacts[format], cache.ArtifactTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(artifacts[format]))
		} else {
			opts.Logger.Warn("cache write failed", "format", format, "error", err)
		}
	}

	return artifacts, visual > 0 && allCached, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g *graph.Graph[string], opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
