package channel

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Registry holds the registered platform adapters and dispatches capability lookups.
// It must be created via NewRegistry and passed explicitly to components that need it.
type Registry struct {
	mu       sync.RWMutex
	adapters map[Type]Adapter
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		adapters: map[Type]Adapter{},
	}
}

// Register adds an adapter to the registry.
func (r *Registry) Register(adapter Adapter) error {
	if adapter == nil {
		return errors.New("adapter is nil")
	}
	ct := normalizeType(adapter.Type().String())
	if ct == "" {
		return errors.New("channel type is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.adapters[ct]; exists {
		return fmt.Errorf("channel type already registered: %s", ct)
	}
	r.adapters[ct] = adapter
	return nil
}

// MustRegister calls Register and panics on error.
func (r *Registry) MustRegister(adapter Adapter) {
	if err := r.Register(adapter); err != nil {
		panic(err)
	}
}

// Get returns the adapter for the given channel type.
func (r *Registry) Get(channelType Type) (Adapter, bool) {
	ct := normalizeType(channelType.String())
	r.mu.RLock()
	defer r.mu.RUnlock()
	adapter, ok := r.adapters[ct]
	return adapter, ok
}

// Types returns all registered channel types, sorted.
func (r *Registry) Types() []Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]Type, 0, len(r.adapters))
	for ct := range r.adapters {
		items = append(items, ct)
	}
	sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })
	return items
}

// ParseType validates and normalizes a raw string into a registered Type.
func (r *Registry) ParseType(raw string) (Type, error) {
	ct := normalizeType(raw)
	if ct == "" {
		return "", fmt.Errorf("unsupported channel type: %s", raw)
	}
	if _, ok := r.Get(ct); !ok {
		return "", fmt.Errorf("unsupported channel type: %s", raw)
	}
	return ct, nil
}

// GetDescriptor returns the descriptor for the given channel type.
func (r *Registry) GetDescriptor(channelType Type) (Descriptor, bool) {
	adapter, ok := r.Get(channelType)
	if !ok {
		return Descriptor{}, false
	}
	return adapter.Descriptor(), true
}

// ListDescriptors returns descriptors for all registered channel types, sorted by type.
func (r *Registry) ListDescriptors() []Descriptor {
	types := r.Types()
	items := make([]Descriptor, 0, len(types))
	for _, ct := range types {
		if desc, ok := r.GetDescriptor(ct); ok {
			items = append(items, desc)
		}
	}
	return items
}

// Directory returns the peer directory for the given channel type if the adapter provides one.
func (r *Registry) Directory(channelType Type) (PeerLister, bool) {
	adapter, ok := r.Get(channelType)
	if !ok {
		return nil, false
	}
	dir, ok := adapter.(PeerLister)
	return dir, ok
}

// TargetResolver returns the target resolver for the given channel type if supported.
func (r *Registry) TargetResolver(channelType Type) (TargetResolver, bool) {
	adapter, ok := r.Get(channelType)
	if !ok {
		return nil, false
	}
	resolver, ok := adapter.(TargetResolver)
	return resolver, ok
}

// FormatTarget renders target with the platform formatter, falling back to the prefixed form.
func (r *Registry) FormatTarget(channelType Type, target Target) string {
	adapter, ok := r.Get(channelType)
	if !ok {
		return target.String()
	}
	if formatter, ok := adapter.(TargetFormatter); ok {
		return formatter.FormatTarget(target)
	}
	return target.String()
}
