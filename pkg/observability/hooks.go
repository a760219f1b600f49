// Package observability provides hooks for logging and instrumenting the
// layout tree.
//
// The layout core has no logger and no metrics backend. Instead it reports
// what it does to a small set of hook interfaces that default to no-ops;
// frontends register real implementations at startup.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the core stays free of
// logging dependencies and import cycles.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetViewHooks(&myViewHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	leaves, err := split(c)
//	observability.Layout().OnRestructure("split horizontal", c.Name, len(leaves), time.Since(start), err)
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from the container tree.
type LayoutHooks interface {
	// OnUpdate records a full structure and geometry pass.
	OnUpdate(root string, nodes, leaves int, duration time.Duration)

	// OnRestructure records a split or close operation. err is non-nil when
	// the operation was rejected and the tree left unchanged.
	OnRestructure(action, target string, leaves int, duration time.Duration, err error)

	// OnRatioChanged records an interactive split-handle drag.
	OnRatioChanged(split string, ratio float64)
}

// =============================================================================
// View Hooks
// =============================================================================

// ViewHooks receives events from view registries.
type ViewHooks interface {
	// OnViewCreated records a new view instance attached to a leaf.
	OnViewCreated(viewType, container string)

	// OnViewMigrated records a view moving to a new leaf after a split.
	OnViewMigrated(viewType, from, to string)

	// OnViewDiscarded records a view dropped from the registry.
	OnViewDiscarded(viewType, container string)

	// OnBatchCreated records the first use of a view type's shared batch.
	OnBatchCreated(viewType string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnUpdate(string, int, int, time.Duration)                {}
func (NoopLayoutHooks) OnRestructure(string, string, int, time.Duration, error) {}
func (NoopLayoutHooks) OnRatioChanged(string, float64)                          {}

// NoopViewHooks is a no-op implementation of ViewHooks.
type NoopViewHooks struct{}

func (NoopViewHooks) OnViewCreated(string, string)          {}
func (NoopViewHooks) OnViewMigrated(string, string, string) {}
func (NoopViewHooks) OnViewDiscarded(string, string)        {}
func (NoopViewHooks) OnBatchCreated(string)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	viewHooks   ViewHooks   = NoopViewHooks{}
	hooksMu     sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any tree is built.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetViewHooks registers custom view hooks.
// This should be called once at application startup before any view is attached.
func SetViewHooks(h ViewHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		viewHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// View returns the registered view hooks.
func View() ViewHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return viewHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	viewHooks = NoopViewHooks{}
}
