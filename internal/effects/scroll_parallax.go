package effects

import (
	"fmt"

	"github.com/tjjh89017/fxsandbox/internal/dom"
	"github.com/tjjh89017/fxsandbox/internal/entity"
	"github.com/tjjh89017/fxsandbox/internal/plugin"
	"github.com/tjjh89017/fxsandbox/internal/scaffold"
	pluginapi "github.com/tjjh89017/fxsandbox/pluginapi"
)

type ScrollParallaxOptions struct {
	Factor float64 `mapstructure:"factor"`
}

type scrollParallax struct {
	options ScrollParallaxOptions
}

func newScrollParallax(id entity.PluginId, config pluginapi.PluginConfig) (plugin.Entry, error) {
	options := ScrollParallaxOptions{Factor: 0.4}
	if err := plugin.DecodeOptions(config, &options); err != nil {
		return plugin.Entry{}, err
	}
	if err := inRange("factor", options.Factor, -2, 2); err != nil {
		return plugin.Entry{}, err
	}

	s := &scrollParallax{options: options}
	return plugin.Entry{
		Descriptor: descriptor(id, "Scroll parallax", entity.CategoryBackground, scaffold.Hero),
		Plugin:     plugin.New(s.apply, s.cleanup),
	}, nil
}

// apply listens on the document body, the source of scroll events, and
// positions the target background relative to where the target currently is.
func (s *scrollParallax) apply(target plugin.Target, id entity.InstanceId) (*pointerResources, error) {
	doc := target.Document
	res := &pointerResources{saved: dom.SaveStyle(target.Element, "background-position")}

	scroll := doc.AddEventListener(doc.Body(), dom.Scroll, func(ev *dom.Event) {
		rect := doc.BoundingRect(target.Element)
		offset := (ev.ScrollY - rect.Y) * s.options.Factor
		res.set(target, fmt.Sprintf("center %.1fpx", offset))
	})

	res.listeners = []dom.ListenerId{scroll}
	return res, nil
}

func (s *scrollParallax) cleanup(id entity.InstanceId, target plugin.Target, res *pointerResources) error {
	res.release(target)
	return nil
}
