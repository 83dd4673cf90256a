package repo

import (
	"context"
	"sync"

	"github.com/tjjh89017/fxsandbox/internal/ctrl"
	"github.com/tjjh89017/fxsandbox/internal/entity"
)

var _ ctrl.CompositionRepository = &Compositions{}

type composition struct {
	order     []entity.InstanceId
	instances map[entity.InstanceId]*entity.Instance
}

// Compositions keeps the active instances of every container in the order
// they were saved.
type Compositions struct {
	mutex    sync.RWMutex
	entities map[entity.ContainerId]*composition
	index    map[entity.InstanceId]entity.ContainerId
}

func NewCompositions() *Compositions {
	return &Compositions{
		entities: make(map[entity.ContainerId]*composition),
		index:    make(map[entity.InstanceId]entity.ContainerId),
	}
}

func (r *Compositions) ListByContainer(ctx context.Context, container entity.ContainerId) ([]*entity.Instance, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	c, ok := r.entities[container]
	if !ok {
		return []*entity.Instance{}, nil
	}

	instances := make([]*entity.Instance, 0, len(c.order))
	for _, id := range c.order {
		instances = append(instances, c.instances[id])
	}

	return instances, nil
}

// Save appends instance to its container. Saving an id again replaces the
// stored instance without changing its position.
func (r *Compositions) Save(ctx context.Context, instance *entity.Instance) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	c, ok := r.entities[instance.Container()]
	if !ok {
		c = &composition{instances: make(map[entity.InstanceId]*entity.Instance)}
		r.entities[instance.Container()] = c
	}

	if _, exists := c.instances[instance.Id()]; !exists {
		c.order = append(c.order, instance.Id())
	}
	c.instances[instance.Id()] = instance
	r.index[instance.Id()] = instance.Container()
}

func (r *Compositions) Delete(ctx context.Context, id entity.InstanceId) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	container, ok := r.index[id]
	if !ok {
		return
	}
	delete(r.index, id)

	c := r.entities[container]
	delete(c.instances, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}

	if len(c.order) == 0 {
		delete(r.entities, container)
	}
}

func (r *Compositions) Count(ctx context.Context, container entity.ContainerId) int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	c, ok := r.entities[container]
	if !ok {
		return 0
	}
	return len(c.order)
}
