//go:generate mockgen -destination=./mock/mock_api.go -package=mock_ctrl . PluginResolver,CompositionRepository,CompositionMetrics

package ctrl

import (
	"time"

	"github.com/tjjh89017/fxsandbox/internal/entity"
	"github.com/tjjh89017/fxsandbox/internal/plugin"
)

type PluginResolver interface {
	Get(id entity.PluginId) (*plugin.Entry, bool)
}

type CompositionMetrics interface {
	ObserveComposition(report *entity.CompositionReport, elapsed time.Duration)
	SetActive(container entity.ContainerId, active int)
}
