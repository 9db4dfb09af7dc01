// Package observability lets host programs watch the graph engine, the
// pipeline and the cache without those packages importing a logging or
// metrics backend.
//
// Every hook starts as a no-op. levelgraph's CLI installs log-backed hooks
// when run with --verbose:
//
//	observability.SetGraphHooks(hooks)
//	observability.SetPipelineHooks(hooks)
//	observability.SetCacheHooks(hooks)
//
// Emitting packages call through the accessors:
//
//	observability.Graph().OnSort(nodeCount, err)
//	observability.Pipeline().OnLoadComplete(ctx, path, nodeCount, duration, err)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// =============================================================================
// Graph Hooks
// =============================================================================

// GraphHooks receives events from the graph engine. The engine has no
// context, so these hooks take none.
type GraphHooks interface {
	// OnSequenceAdded records a successful sequence insertion and how many
	// of its edges were new.
	OnSequenceAdded(items, newEdges int)

	// OnLevelsComputed records a level recomputation. err is non-nil when
	// the graph is cyclic.
	OnLevelsComputed(nodes, levels int, duration time.Duration, err error)

	// OnSort records a topological sort.
	OnSort(nodes int, err error)
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the load/render pipeline.
type PipelineHooks interface {
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, nodeCount int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGraphHooks is a no-op implementation of GraphHooks.
type NoopGraphHooks struct{}

func (NoopGraphHooks) OnSequenceAdded(int, int)                      {}
func (NoopGraphHooks) OnLevelsComputed(int, int, time.Duration, error) {}
func (NoopGraphHooks) OnSort(int, error)                             {}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string) {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnRenderStart(context.Context, string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Registry
// =============================================================================

// slot holds one registered hook implementation. Reads are lock-free so the
// graph engine can fire events on hot paths.
type slot[H any] struct {
	p   atomic.Pointer[H]
	def H
}

func (s *slot[H]) get() H {
	if h := s.p.Load(); h != nil {
		return *h
	}
	return s.def
}

func (s *slot[H]) set(h H) { s.p.Store(&h) }

func (s *slot[H]) reset() { s.p.Store(nil) }

var (
	graphSlot    = slot[GraphHooks]{def: NoopGraphHooks{}}
	pipelineSlot = slot[PipelineHooks]{def: NoopPipelineHooks{}}
	cacheSlot    = slot[CacheHooks]{def: NoopCacheHooks{}}
)

// SetGraphHooks registers graph hooks. A nil h is ignored.
func SetGraphHooks(h GraphHooks) {
	if h != nil {
		graphSlot.set(h)
	}
}

// SetPipelineHooks registers pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineSlot.set(h)
	}
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.set(h)
	}
}

// Graph returns the registered graph hooks.
func Graph() GraphHooks { return graphSlot.get() }

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return pipelineSlot.get() }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return cacheSlot.get() }

// Reset restores every hook to its no-op default. Tests call it in cleanup.
func Reset() {
	graphSlot.reset()
	pipelineSlot.reset()
	cacheSlot.reset()
}
