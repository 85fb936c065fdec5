// Package observability provides hooks for metrics, tracing, and logging.
//
// Core packages stay free of any observability backend. Commands report
// project events through the registered [ProjectHooks]; the default
// implementation discards them.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetProjectHooks(&myHooks{})
//	    // ... run application
//	}
//
// Callers emit events around the operation they measure:
//
//	start := time.Now()
//	p, err := project.Open(path, reg)
//	observability.Project().OnLoad(ctx, path, len(p.Nodes()), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// ProjectHooks receives events about project documents and their outputs.
type ProjectHooks interface {
	// OnLoad records a document load. nodes is 0 when err is set.
	OnLoad(ctx context.Context, path string, nodes int, duration time.Duration, err error)

	// OnSave records a document save.
	OnSave(ctx context.Context, path string, nodes int, duration time.Duration, err error)

	// OnCompile records script generation. size is the script length in bytes.
	OnCompile(ctx context.Context, target string, size int, duration time.Duration, err error)

	// OnRender records a wiring diagram render.
	OnRender(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// NoopProjectHooks is a no-op implementation of ProjectHooks.
type NoopProjectHooks struct{}

func (NoopProjectHooks) OnLoad(context.Context, string, int, time.Duration, error)    {}
func (NoopProjectHooks) OnSave(context.Context, string, int, time.Duration, error)    {}
func (NoopProjectHooks) OnCompile(context.Context, string, int, time.Duration, error) {}
func (NoopProjectHooks) OnRender(context.Context, string, int, time.Duration, error)  {}

var (
	projectHooks ProjectHooks = NoopProjectHooks{}
	hooksMu      sync.RWMutex
)

// SetProjectHooks registers custom project hooks. A nil h is ignored.
func SetProjectHooks(h ProjectHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		projectHooks = h
	}
}

// Project returns the registered project hooks.
func Project() ProjectHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return projectHooks
}

// Reset restores the no-op hooks.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	projectHooks = NoopProjectHooks{}
}
