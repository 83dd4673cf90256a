package effects

import (
	"fmt"

	"github.com/tjjh89017/fxsandbox/internal/dom"
	"github.com/tjjh89017/fxsandbox/internal/entity"
	"github.com/tjjh89017/fxsandbox/internal/plugin"
	"github.com/tjjh89017/fxsandbox/internal/scaffold"
	pluginapi "github.com/tjjh89017/fxsandbox/pluginapi"
)

type TiltHoverOptions struct {
	MaxAngle    float64 `mapstructure:"max_angle"`
	Perspective float64 `mapstructure:"perspective"`
}

type tiltHover struct {
	options TiltHoverOptions
}

func newTiltHover(id entity.PluginId, config pluginapi.PluginConfig) (plugin.Entry, error) {
	options := TiltHoverOptions{MaxAngle: 8, Perspective: 800}
	if err := plugin.DecodeOptions(config, &options); err != nil {
		return plugin.Entry{}, err
	}
	if err := inRange("max_angle", options.MaxAngle, 0, 45); err != nil {
		return plugin.Entry{}, err
	}
	if err := inRange("perspective", options.Perspective, 100, 5000); err != nil {
		return plugin.Entry{}, err
	}

	th := &tiltHover{options: options}
	return plugin.Entry{
		Descriptor: descriptor(id, "Tilt on hover", entity.CategoryHover, scaffold.Hero),
		Plugin:     plugin.New(th.apply, th.cleanup),
	}, nil
}

func (th *tiltHover) apply(target plugin.Target, id entity.InstanceId) (*pointerResources, error) {
	doc := target.Document
	res := &pointerResources{saved: dom.SaveStyle(target.Element, "transform")}

	move := doc.AddEventListener(target.Element, dom.PointerMove, func(ev *dom.Event) {
		rect := doc.BoundingRect(target.Element)
		dx, dy := rect.Offset(ev.ClientX, ev.ClientY)

		res.set(target, fmt.Sprintf("perspective(%.0fpx) rotateX(%.2fdeg) rotateY(%.2fdeg)",
			th.options.Perspective, -dy*th.options.MaxAngle, dx*th.options.MaxAngle))
	})
	leave := doc.AddEventListener(target.Element, dom.PointerLeave, func(*dom.Event) {
		res.restore(target)
	})

	res.listeners = []dom.ListenerId{move, leave}
	return res, nil
}

func (th *tiltHover) cleanup(id entity.InstanceId, target plugin.Target, res *pointerResources) error {
	res.release(target)
	return nil
}
