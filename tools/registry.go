package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/xid"
	"go.uber.org/atomic"
)

// Registry is the dispatch table tool invocations are routed through by
// name. It is safe for concurrent use: a platform may fan independent
// pipeline branches out and call back into several tools at once.
type Registry struct {
	mtx     *sync.RWMutex
	entries map[string]*registryEntry
}

type registryEntry struct {
	tool  AnonymousTool
	calls *atomic.Int64
}

func NewRegistry() *Registry {
	return &Registry{
		mtx:     new(sync.RWMutex),
		entries: make(map[string]*registryEntry),
	}
}

// Register adds tool under name, replacing any previous registration, and
// returns the registry for chaining.
func (r *Registry) Register(name string, tool AnonymousTool) *Registry {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.entries[name] = &registryEntry{
		tool:  tool,
		calls: atomic.NewInt64(0),
	}
	return r
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (AnonymousTool, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	entry, found := r.entries[name]
	if !found {
		return nil, false
	}
	return entry.tool, true
}

// Names returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invocations returns how many times the named tool has been dispatched.
func (r *Registry) Invocations(name string) int64 {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	entry, found := r.entries[name]
	if !found {
		return 0
	}
	return entry.calls.Load()
}

// Invoke dispatches an argument value to the named tool. Every dispatch is
// stamped with a fresh invocation ID retrievable through InvocationID.
func (r *Registry) Invoke(ctx context.Context, name string, input any) (any, error) {
	r.mtx.RLock()
	entry, found := r.entries[name]
	r.mtx.RUnlock()
	if !found {
		return nil, fmt.Errorf("unknown tool %q", name)
	}
	entry.calls.Inc()
	return entry.tool.RunAnonymous(withInvocationID(ctx), input)
}

type invocationIDKey struct{}

func withInvocationID(ctx context.Context) context.Context {
	return context.WithValue(ctx, invocationIDKey{}, xid.New().String())
}

// InvocationID returns the dispatch ID stamped by Invoke, or an empty
// string when ctx does not carry one.
func InvocationID(ctx context.Context) string {
	id, _ := ctx.Value(invocationIDKey{}).(string)
	return id
}
