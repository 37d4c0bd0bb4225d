// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries emit events through the registered hooks; the binary decides
// what to do with them. Nothing here depends on a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetEngineHooks(&myEngineHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnEstimate(ctx, itemCount, ok)
//	observability.Engine().OnResponse(ctx, "/api/shipping/calculate/dimensions", 200, elapsed)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the preview pipeline.
type PipelineHooks interface {
	// OnEstimate records a local envelope estimate. ok is false for an empty cart.
	OnEstimate(ctx context.Context, itemCount int, ok bool)

	// OnSceneBuilt records a finished scene. fallback is true when the scene
	// was built from the local estimate instead of engine placements.
	OnSceneBuilt(ctx context.Context, placements int, scale float64, fallback bool, duration time.Duration)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Engine Hooks
// =============================================================================

// EngineHooks receives events from packing engine calls.
type EngineHooks interface {
	// OnRequest records an outgoing request.
	OnRequest(ctx context.Context, path string)

	// OnResponse records a response.
	OnResponse(ctx context.Context, path string, statusCode int, duration time.Duration)

	// OnError records a transport failure or timeout.
	OnError(ctx context.Context, path string, err error)

	// OnStale records a response dropped because a newer request superseded it.
	OnStale(ctx context.Context, seq uint64)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnEstimate(context.Context, int, bool) {}
func (NoopPipelineHooks) OnSceneBuilt(context.Context, int, float64, bool, time.Duration) {
}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnRequest(context.Context, string)                      {}
func (NoopEngineHooks) OnResponse(context.Context, string, int, time.Duration) {}
func (NoopEngineHooks) OnError(context.Context, string, error)                 {}
func (NoopEngineHooks) OnStale(context.Context, uint64)                        {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	engineHooks   EngineHooks   = NoopEngineHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetEngineHooks registers custom engine hooks.
func SetEngineHooks(h EngineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		engineHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Engine returns the registered engine hooks.
func Engine() EngineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return engineHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	engineHooks = NoopEngineHooks{}
}
