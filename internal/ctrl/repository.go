package ctrl

import (
	"context"

	"github.com/tjjh89017/fxsandbox/internal/entity"
)

type CompositionRepository interface {
	ListByContainer(ctx context.Context, container entity.ContainerId) ([]*entity.Instance, error)
	Save(ctx context.Context, instance *entity.Instance)
	Delete(ctx context.Context, id entity.InstanceId)
	Count(ctx context.Context, container entity.ContainerId) int
}
