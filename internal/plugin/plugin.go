package plugin

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tjjh89017/fxsandbox/internal/dom"
	"github.com/tjjh89017/fxsandbox/internal/entity"
	"golang.org/x/net/html"
)

var (
	ErrApplyPanic   = errors.New("plugin apply panicked")
	ErrCleanupPanic = errors.New("plugin cleanup panicked")
)

// Target is the node an instance is applied to, with the document that owns
// it.
type Target struct {
	Document *dom.Document
	Element  *html.Node
}

// Plugin is the uniform contract every effect is driven through.
type Plugin interface {
	// Apply attaches a new instance to target and returns its id. A failed
	// apply records nothing.
	Apply(target Target) (entity.InstanceId, error)
	// Cleanup releases the instance. Unknown ids are a no-op.
	Cleanup(id entity.InstanceId) error
	// CleanupAll releases every tracked instance, newest first.
	CleanupAll() error
	// Instances returns the number of tracked instances.
	Instances() int
}

// ApplyFunc does the actual mutation and returns the resource bundle that
// cleanup needs.
type ApplyFunc[T any] func(target Target, id entity.InstanceId) (T, error)

type CleanupFunc[T any] func(id entity.InstanceId, target Target, resources T) error

type record[T any] struct {
	target    Target
	resources T
}

type factoryPlugin[T any] struct {
	apply   ApplyFunc[T]
	cleanup CleanupFunc[T]

	mu        sync.Mutex
	instances map[entity.InstanceId]record[T]
	order     []entity.InstanceId
}

// New wraps an apply/cleanup pair into a Plugin that tracks one resource
// bundle per instance.
func New[T any](apply ApplyFunc[T], cleanup CleanupFunc[T]) Plugin {
	return &factoryPlugin[T]{
		apply:     apply,
		cleanup:   cleanup,
		instances: make(map[entity.InstanceId]record[T]),
	}
}

func (p *factoryPlugin[T]) freshId() (entity.InstanceId, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for {
		id, err := entity.GenerateInstanceId()
		if err != nil {
			return "", err
		}
		if _, exists := p.instances[id]; !exists {
			return id, nil
		}
	}
}

func (p *factoryPlugin[T]) Apply(target Target) (entity.InstanceId, error) {
	id, err := p.freshId()
	if err != nil {
		return "", err
	}

	resources, err := p.invokeApply(target, id)
	if err != nil {
		return "", err
	}

	p.mu.Lock()
	p.instances[id] = record[T]{target: target, resources: resources}
	p.order = append(p.order, id)
	p.mu.Unlock()

	return id, nil
}

func (p *factoryPlugin[T]) invokeApply(target Target, id entity.InstanceId) (resources T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrApplyPanic, r)
		}
	}()

	return p.apply(target, id)
}

func (p *factoryPlugin[T]) Cleanup(id entity.InstanceId) error {
	p.mu.Lock()
	rec, ok := p.instances[id]
	if ok {
		delete(p.instances, id)
		for i, other := range p.order {
			if other == id {
				p.order = append(p.order[:i], p.order[i+1:]...)
				break
			}
		}
	}
	p.mu.Unlock()

	if !ok {
		return nil
	}

	return p.invokeCleanup(id, rec)
}

func (p *factoryPlugin[T]) invokeCleanup(id entity.InstanceId, rec record[T]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: instance %s: %v", ErrCleanupPanic, id, r)
		}
	}()

	if err := p.cleanup(id, rec.target, rec.resources); err != nil {
		return fmt.Errorf("cleanup instance %s: %w", id, err)
	}
	return nil
}

func (p *factoryPlugin[T]) CleanupAll() error {
	p.mu.Lock()
	ids := make([]entity.InstanceId, len(p.order))
	copy(ids, p.order)
	p.mu.Unlock()

	var errs []error
	for i := len(ids) - 1; i >= 0; i-- {
		if err := p.Cleanup(ids[i]); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (p *factoryPlugin[T]) Instances() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.instances)
}
