package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/levelgraph/pkg/cache"
	"github.com/matzehuels/levelgraph/pkg/errors"
	"github.com/matzehuels/levelgraph/pkg/render/nodelink"
)

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const buildTOML = `
[[sequence]]
nodes = ["fetch", "build", "test", "release"]

[[sequence]]
nodes = ["fetch", "lint", "test"]
`

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Source: "build.toml"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != DefaultFormat {
		t.Errorf("Formats = %v, want [%s]", opts.Formats, DefaultFormat)
	}
	if opts.RankDir != DefaultRankDir {
		t.Errorf("RankDir = %q, want %q", opts.RankDir, DefaultRankDir)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"missing source", Options{}, errors.ErrCodeInvalidPath},
		{"bad format", Options{Source: "a.json", Formats: []string{"gif"}}, errors.ErrCodeInvalidValue},
		{"bad input", Options{Source: "a.json", Input: "yaml"}, errors.ErrCodeInvalidValue},
		{"bad rankdir", Options{Source: "a.json", RankDir: "XX"}, errors.ErrCodeInvalidValue},
		{"bad scale", Options{Source: "a.json", Scale: 20}, errors.ErrCodeInvalidValue},
		{"bad highlight", Options{Source: "a.json", Highlight: []string{" "}}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Source: "a.json", Formats: []string{"json", "csv"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if len(opts.Formats) != 2 {
		t.Errorf("Formats changed: %v", opts.Formats)
	}
}

func TestInputFormat(t *testing.T) {
	if got := (&Options{Source: "x.hcl"}).InputFormat(); got != "hcl" {
		t.Errorf("InputFormat(x.hcl) = %q", got)
	}
	if got := (&Options{Source: "x.hcl", Input: "text"}).InputFormat(); got != "text" {
		t.Errorf("explicit input ignored: %q", got)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Scale: 3}
	if k := opts.ArtifactKeyOpts(FormatSVG); k.Scale != 0 {
		t.Errorf("svg key should ignore scale, got %v", k.Scale)
	}
	if k := opts.ArtifactKeyOpts(FormatPNG); k.Scale != 3 {
		t.Errorf("png key scale = %v, want 3", k.Scale)
	}
}

func TestRunnerLoad(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	src := writeSource(t, "build.toml", buildTOML)

	g, hit, err := r.LoadWithCacheInfo(ctx, Options{Source: src})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if hit {
		t.Error("first load should miss the cache")
	}
	if g.CountNodes() != 5 || g.CountEdges() != 5 {
		t.Errorf("graph = %d nodes / %d edges, want 5 / 5", g.CountNodes(), g.CountEdges())
	}
	if c.sets != 1 {
		t.Errorf("cache sets = %d, want 1", c.sets)
	}

	g2, hit, err := r.LoadWithCacheInfo(ctx, Options{Source: src})
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if !hit {
		t.Error("second load should hit the cache")
	}
	if g2.CountNodes() != g.CountNodes() {
		t.Errorf("cached graph has %d nodes, want %d", g2.CountNodes(), g.CountNodes())
	}

	if _, hit, _ := r.LoadWithCacheInfo(ctx, Options{Source: src, Refresh: true}); hit {
		t.Error("refresh should bypass the cache")
	}
}

func TestRunnerLoadErrors(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)

	_, err := r.Load(ctx, Options{Source: filepath.Join(t.TempDir(), "missing.json")})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: got %v, want %s", err, errors.ErrCodeFileNotFound)
	}

	src := writeSource(t, "bad.json", `{"sequences": [["a"], []]}`)
	if _, err := r.Load(ctx, Options{Source: src}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty sequence: got %v, want %s", err, errors.ErrCodeInvalidInput)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := r.Load(cancelled, Options{Source: src}); err != context.Canceled {
		t.Errorf("cancelled load: got %v, want context.Canceled", err)
	}
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	src := writeSource(t, "build.txt", "fetch -> build -> test\nfetch -> lint -> test\n")

	res, err := r.Execute(ctx, Options{Source: src, Formats: []string{"json", "csv", "dot"}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Stats.NodeCount != 4 || res.Stats.EdgeCount != 4 || res.Stats.LevelCount != 3 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.SourceHash == "" {
		t.Error("SourceHash should be set")
	}
	if res.CacheInfo.RenderHit {
		t.Error("non-visual formats never report a render hit")
	}

	for _, key := range []string{"json", "csv", PropertiesArtifact, "dot"} {
		if len(res.Artifacts[key]) == 0 {
			t.Errorf("artifact %q missing", key)
		}
	}
	if got := string(res.Artifacts["csv"]); got != "From,To\n0,1\n0,2\n1,3\n2,3" {
		t.Errorf("csv artifact = %q", got)
	}
	if !strings.Contains(string(res.Artifacts["json"]), `"levels": 3`) {
		t.Errorf("json artifact missing level count:\n%s", res.Artifacts["json"])
	}
	if !strings.HasPrefix(string(res.Artifacts["dot"]), "digraph G {") {
		t.Errorf("dot artifact = %q", res.Artifacts["dot"])
	}
}

func TestRunnerExecuteCyclic(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	src := writeSource(t, "loop.txt", "a -> b -> a\n")

	_, err := r.Execute(context.Background(), Options{Source: src, Formats: []string{"dot"}})
	if !errors.Is(err, errors.ErrCodeCyclicGraph) {
		t.Errorf("Execute(cyclic) = %v, want %s", err, errors.ErrCodeCyclicGraph)
	}
}

func TestRenderUsesArtifactCache(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	src := writeSource(t, "build.toml", buildTOML)

	g, err := r.Load(ctx, Options{Source: src})
	if err != nil {
		t.Fatal(err)
	}

	opts := Options{Formats: []string{"svg"}}
	opts.SetRenderDefaults()
	dot, err := nodelink.ToDOT(g, nodelink.Options{RankDir: opts.RankDir})
	if err != nil {
		t.Fatal(err)
	}
	key := cache.NewDefaultKeyer().ArtifactKey(cache.Hash([]byte(dot)), opts.ArtifactKeyOpts("svg"))
	c.data[key] = []byte("<svg>cached</svg>")

	artifacts, hit, err := r.RenderWithCacheInfo(ctx, g, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !hit {
		t.Error("seeded artifact should be a cache hit")
	}
	if string(artifacts["svg"]) != "<svg>cached</svg>" {
		t.Errorf("svg = %q, want cached bytes", artifacts["svg"])
	}
}

func TestIsVisual(t *testing.T) {
	for format := range ValidFormats {
		want := format == FormatSVG || format == FormatPNG || format == FormatPDF
		if IsVisual(format) != want {
			t.Errorf("IsVisual(%q) = %v, want %v", format, !want, want)
		}
	}
}
