package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level events to
// a charm logger. The CLI registers it under --verbose.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger, or to log.Default() if nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnGenerateStart(_ context.Context, algorithm string, width, height int) {
	h.logger.Debug("carving maze", "algorithm", algorithm, "width", width, "height", height)
}

func (h *LogHooks) OnGenerateComplete(_ context.Context, algorithm string, cells int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("carving failed", "algorithm", algorithm, "err", err)
		return
	}
	h.logger.Debug("carved maze", "algorithm", algorithm, "cells", cells, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("rendering", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "err", err)
		return
	}
	h.logger.Debug("rendered", "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, kind string)  { h.logger.Debug("cache hit", "kind", kind) }
func (h *LogHooks) OnCacheMiss(_ context.Context, kind string) { h.logger.Debug("cache miss", "kind", kind) }

func (h *LogHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.logger.Debug("cache set", "kind", kind, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, path string, err error) {
	h.logger.Debug("request error", "method", method, "path", path, "err", err)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
