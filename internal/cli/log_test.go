package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))

			if gotLog := buf.Len() > 0; gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))

	time.Sleep(10 * time.Millisecond)
	prog.done("Exported 2 file(s)")

	if !strings.Contains(buf.String(), "Exported 2 file(s) (") {
		t.Errorf("progress.done() output = %q", buf.String())
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := &logHooks{logger: newLogger(&buf, log.DebugLevel)}
	ctx := context.Background()

	h.OnSequenceAdded(3, 2)
	h.OnLevelsComputed(5, 3, time.Millisecond, nil)
	h.OnLevelsComputed(5, 0, 0, errors.New("loop"))
	h.OnSort(5, nil)
	h.OnLoadStart(ctx, "build.toml")
	h.OnLoadComplete(ctx, "build.toml", 5, time.Millisecond, nil)
	h.OnRenderStart(ctx, "svg")
	h.OnRenderComplete(ctx, "svg", time.Millisecond, nil)
	h.OnCacheHit(ctx, "artifact")
	h.OnCacheMiss(ctx, "sequences")
	h.OnCacheSet(ctx, "sequences", 42)

	out := buf.String()
	for _, want := range []string{
		"sequence added", "levels computed", "levels failed", "sorted",
		"load started", "load finished", "render started", "render finished",
		"cache hit", "cache miss", "cache set",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("hook output missing %q", want)
		}
	}
}

func TestLogHooksQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := &logHooks{logger: newLogger(&buf, log.InfoLevel)}
	h.OnCacheHit(context.Background(), "artifact")
	if buf.Len() != 0 {
		t.Errorf("debug hooks should be silent at info level, got %q", buf.String())
	}
}
