package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event as a debug-level log line.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that write to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnParseStart(_ context.Context, filename string) {
	h.logger.Debug("parse start", "file", filename)
}

func (h *LogHooks) OnParseComplete(_ context.Context, filename string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("parse failed", "file", filename, "duration", d, "err", err)
		return
	}
	h.logger.Debug("parse done", "file", filename, "duration", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, filename string, width int) {
	h.logger.Debug("layout start", "file", filename, "width", width)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, filename string, candidates int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout failed", "file", filename, "duration", d, "err", err)
		return
	}
	h.logger.Debug("layout done", "file", filename, "candidates", candidates, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ FormatHooks = (*LogHooks)(nil)
	_ CacheHooks  = (*LogHooks)(nil)
	_ ServerHooks = (*LogHooks)(nil)
)
