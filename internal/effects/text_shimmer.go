package effects

import (
	"fmt"
	"time"

	"github.com/tjjh89017/fxsandbox/internal/dom"
	"github.com/tjjh89017/fxsandbox/internal/entity"
	"github.com/tjjh89017/fxsandbox/internal/plugin"
	"github.com/tjjh89017/fxsandbox/internal/scaffold"
	pluginapi "github.com/tjjh89017/fxsandbox/pluginapi"
)

const shimmerClass = "fx-shimmer"

const textShimmerStyle = `@keyframes fx-shimmer-sweep { from { background-position: -200% 0; } to { background-position: 200% 0; } }
.fx-shimmer { background-image: linear-gradient(90deg, currentColor 40%, #fff 50%, currentColor 60%); background-size: 200% 100%; color: transparent; animation: fx-shimmer-sweep var(--fx-shimmer-duration, 2.4s) linear infinite; }`

type TextShimmerOptions struct {
	Duration time.Duration `mapstructure:"duration"`
}

type textShimmer struct {
	options TextShimmerOptions
}

type shimmerResources struct {
	saved      []dom.SavedStyle
	addedClass bool
}

func newTextShimmer(id entity.PluginId, config pluginapi.PluginConfig) (plugin.Entry, error) {
	options := TextShimmerOptions{Duration: 2400 * time.Millisecond}
	if err := plugin.DecodeOptions(config, &options); err != nil {
		return plugin.Entry{}, err
	}
	if options.Duration < 100*time.Millisecond {
		return plugin.Entry{}, fmt.Errorf("duration must be at least 100ms, got %s", options.Duration)
	}

	s := &textShimmer{options: options}
	return plugin.Entry{
		Descriptor: descriptor(id, "Text shimmer", entity.CategoryText, scaffold.Heading),
		Plugin:     plugin.New(s.apply, s.cleanup),
	}, nil
}

func (s *textShimmer) apply(target plugin.Target, id entity.InstanceId) (*shimmerResources, error) {
	target.Document.EnsureStyle(TextShimmer, textShimmerStyle)

	el := target.Element
	res := &shimmerResources{
		saved: []dom.SavedStyle{
			dom.SaveStyle(el, "background-clip"),
			dom.SaveStyle(el, "--fx-shimmer-duration"),
		},
		addedClass: dom.AddClass(el, shimmerClass),
	}

	dom.SetStyle(el, "background-clip", "text")
	dom.SetStyle(el, "--fx-shimmer-duration", fmt.Sprintf("%.2fs", s.options.Duration.Seconds()))

	return res, nil
}

func (s *textShimmer) cleanup(id entity.InstanceId, target plugin.Target, res *shimmerResources) error {
	for i := len(res.saved) - 1; i >= 0; i-- {
		res.saved[i].Restore(target.Element)
	}
	if res.addedClass {
		dom.RemoveClass(target.Element, shimmerClass)
	}
	return nil
}
