package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level, with failures
// at warn level. The CLI installs it in verbose mode.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks writing to logger, or to the default logger
// when logger is nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{Logger: logger}
}

// Install registers h for all event categories.
func (h *LogHooks) Install() {
	SetChartHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnBuildStart(_ context.Context, chart string) {
	h.Logger.Debug("build start", "chart", chart)
}

func (h *LogHooks) OnBuildComplete(_ context.Context, chart string, series int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("build failed", "chart", chart, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("build complete", "chart", chart, "series", series, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, chart string, formats []string) {
	h.Logger.Debug("render start", "chart", chart, "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, chart string, formats []string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("render failed", "chart", chart, "formats", formats, "err", err)
		return
	}
	h.Logger.Debug("render complete", "chart", chart, "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.Logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.Logger.Debug("response", "method", method, "route", route, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, route string, err error) {
	h.Logger.Warn("request failed", "method", method, "route", route, "err", err)
}

var (
	_ ChartHooks = (*LogHooks)(nil)
	_ CacheHooks = (*LogHooks)(nil)
	_ HTTPHooks  = (*LogHooks)(nil)
)
