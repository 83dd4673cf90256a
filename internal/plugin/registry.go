package plugin

import (
	"errors"
	"fmt"

	"github.com/tjjh89017/fxsandbox/internal/dom"
	"github.com/tjjh89017/fxsandbox/internal/entity"
)

var (
	ErrInvalidDescriptor = errors.New("invalid plugin descriptor")
	ErrDuplicatePlugin   = errors.New("duplicate plugin")
	ErrUnknownAttachment = errors.New("selector is not an attachment point")
)

// Entry pairs a descriptor with the plugin that implements it.
type Entry struct {
	entity.Descriptor
	Plugin Plugin
}

// Registry is an immutable catalogue of plugins keyed by id.
type Registry struct {
	entries map[entity.PluginId]Entry
	order   []entity.PluginId
}

type registryOptions struct {
	attachments map[string]bool
}

type RegistryOption func(*registryOptions)

// WithAttachmentPoints restricts target selectors to the given set.
func WithAttachmentPoints(selectors ...string) RegistryOption {
	return func(o *registryOptions) {
		if o.attachments == nil {
			o.attachments = make(map[string]bool)
		}
		for _, s := range selectors {
			o.attachments[s] = true
		}
	}
}

func NewRegistry(entries []Entry, opts ...RegistryOption) (*Registry, error) {
	var options registryOptions
	for _, opt := range opts {
		opt(&options)
	}

	r := &Registry{
		entries: make(map[entity.PluginId]Entry, len(entries)),
		order:   make([]entity.PluginId, 0, len(entries)),
	}

	for _, e := range entries {
		if err := validate(e, &options); err != nil {
			return nil, err
		}
		if _, exists := r.entries[e.Id]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlugin, e.Id)
		}

		r.entries[e.Id] = e
		r.order = append(r.order, e.Id)
	}

	return r, nil
}

func validate(e Entry, options *registryOptions) error {
	if e.Id == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidDescriptor)
	}
	if e.Plugin == nil {
		return fmt.Errorf("%w: %s has no plugin", ErrInvalidDescriptor, e.Id)
	}
	if _, err := entity.ParseCategory(string(e.Category)); err != nil {
		return fmt.Errorf("plugin %s: %w", e.Id, err)
	}
	if _, err := dom.CompileSelector(e.TargetSelector); err != nil {
		return fmt.Errorf("plugin %s: %w", e.Id, err)
	}
	if options.attachments != nil && !options.attachments[e.TargetSelector] {
		return fmt.Errorf("%w: plugin %s targets %s", ErrUnknownAttachment, e.Id, e.TargetSelector)
	}
	return nil
}

func (r *Registry) Get(id entity.PluginId) (*Entry, bool) {
	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	return &e, true
}

// ListByCategory returns descriptors of category in registration order.
func (r *Registry) ListByCategory(category entity.Category) []entity.Descriptor {
	descriptors := make([]entity.Descriptor, 0)
	for _, id := range r.order {
		if e := r.entries[id]; e.Category == category {
			descriptors = append(descriptors, e.Descriptor)
		}
	}
	return descriptors
}

func (r *Registry) AllIds() []entity.PluginId {
	ids := make([]entity.PluginId, len(r.order))
	copy(ids, r.order)
	return ids
}

func (r *Registry) Descriptors() []entity.Descriptor {
	descriptors := make([]entity.Descriptor, 0, len(r.order))
	for _, id := range r.order {
		descriptors = append(descriptors, r.entries[id].Descriptor)
	}
	return descriptors
}

// CleanupAll releases every instance of every plugin. It is the global
// teardown used when the sandbox goes away entirely and must run on the
// document loop.
func (r *Registry) CleanupAll() error {
	var errs []error
	for i := len(r.order) - 1; i >= 0; i-- {
		if err := r.entries[r.order[i]].Plugin.CleanupAll(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) Len() int {
	return len(r.order)
}
