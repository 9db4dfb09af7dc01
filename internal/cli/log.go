package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/levelgraph/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, rounded to the millisecond.
// Example output: "Rendered 3 artifacts (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// logHooks reports graph, pipeline and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.GraphHooks    = (*logHooks)(nil)
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.CacheHooks    = (*logHooks)(nil)
)

func (h *logHooks) OnSequenceAdded(items, newEdges int) {
	h.logger.Debug("sequence added", "items", items, "new_edges", newEdges)
}

func (h *logHooks) OnLevelsComputed(nodes, levels int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("levels failed", "nodes", nodes, "error", err)
		return
	}
	h.logger.Debug("levels computed", "nodes", nodes, "levels", levels, "duration", d)
}

func (h *logHooks) OnSort(nodes int, err error) {
	h.logger.Debug("sorted", "nodes", nodes, "error", err)
}

func (h *logHooks) OnLoadStart(_ context.Context, source string) {
	h.logger.Debug("load started", "source", source)
}

func (h *logHooks) OnLoadComplete(_ context.Context, source string, nodes int, d time.Duration, err error) {
	h.logger.Debug("load finished", "source", source, "nodes", nodes, "duration", d, "error", err)
}

func (h *logHooks) OnRenderStart(_ context.Context, format string) {
	h.logger.Debug("render started", "format", format)
}

func (h *logHooks) OnRenderComplete(_ context.Context, format string, d time.Duration, err error) {
	h.logger.Debug("render finished", "format", format, "duration", d, "error", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
