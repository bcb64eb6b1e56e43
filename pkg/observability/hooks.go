// Package observability provides hooks for metrics and tracing.
//
// Libraries emit events through a global registry of hook interfaces with
// no-op defaults. The command-line entry point registers a concrete
// implementation at startup (see [NewPrometheusHooks]); library code never
// depends on a metrics backend directly.
//
// # Usage
//
// Register hooks at application startup:
//
//	hooks := observability.NewPrometheusHooks()
//	observability.SetAuditHooks(hooks)
//	observability.SetHTTPHooks(hooks)
//
// Libraries call hooks to emit events:
//
//	observability.Audit().OnAuditStart(ctx, target)
//	// ... run the audit ...
//	observability.Audit().OnAuditComplete(ctx, target, result)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Audit Hooks
// =============================================================================

// AuditResult summarizes one compatibility check for hook consumers.
type AuditResult struct {
	FrameworkFindings int
	SkikoFindings     int
	Skipped           bool // disabled, nothing computed
	Recovered         int  // finding classes dropped after an internal failure
	Duration          time.Duration
}

// AuditHooks receives events from the compatibility checker.
type AuditHooks interface {
	// OnAuditStart records the start of a check for target
	// ("<projectPath> <configuration>").
	OnAuditStart(ctx context.Context, target string)

	// OnAuditComplete records the outcome of a check.
	OnAuditComplete(ctx context.Context, target string, res AuditResult)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopAuditHooks is a no-op implementation of AuditHooks.
type NoopAuditHooks struct{}

func (NoopAuditHooks) OnAuditStart(context.Context, string)                 {}
func (NoopAuditHooks) OnAuditComplete(context.Context, string, AuditResult) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	auditHooks AuditHooks = NoopAuditHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetAuditHooks registers custom audit hooks.
// This should be called once at application startup before any check runs.
func SetAuditHooks(h AuditHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		auditHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Audit returns the registered audit hooks.
func Audit() AuditHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return auditHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	auditHooks = NoopAuditHooks{}
	httpHooks = NoopHTTPHooks{}
}
