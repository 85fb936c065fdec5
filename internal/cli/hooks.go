package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pinmagik/pinmagik/pkg/observability"
)

// logHooks reports project events as debug log entries.
type logHooks struct {
	logger *log.Logger
}

// NewLogHooks returns project hooks that log to l at debug level.
func NewLogHooks(l *log.Logger) observability.ProjectHooks {
	return &logHooks{logger: l}
}

func (h *logHooks) event(msg string, duration time.Duration, err error, keyvals ...any) {
	keyvals = append(keyvals, "duration", duration.Round(time.Microsecond))
	if err != nil {
		keyvals = append(keyvals, "error", err)
	}
	h.logger.Debug(msg, keyvals...)
}

func (h *logHooks) OnLoad(_ context.Context, path string, nodes int, d time.Duration, err error) {
	h.event("load", d, err, "path", path, "nodes", nodes)
}

func (h *logHooks) OnSave(_ context.Context, path string, nodes int, d time.Duration, err error) {
	h.event("save", d, err, "path", path, "nodes", nodes)
}

func (h *logHooks) OnCompile(_ context.Context, target string, size int, d time.Duration, err error) {
	h.event("compile", d, err, "target", target, "bytes", size)
}

func (h *logHooks) OnRender(_ context.Context, format string, size int, d time.Duration, err error) {
	h.event("render", d, err, "format", format, "bytes", size)
}
