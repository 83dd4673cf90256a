package effects

import (
	"fmt"

	"github.com/tjjh89017/fxsandbox/internal/dom"
	"github.com/tjjh89017/fxsandbox/internal/entity"
	"github.com/tjjh89017/fxsandbox/internal/plugin"
	"github.com/tjjh89017/fxsandbox/internal/scaffold"
	pluginapi "github.com/tjjh89017/fxsandbox/pluginapi"
)

const glowClass = "fx-glow"

const glowOutlineStyle = `@keyframes fx-glow-pulse { 0%, 100% { filter: brightness(1); } 50% { filter: brightness(1.25); } }
.fx-glow { animation: fx-glow-pulse 1.6s ease-in-out infinite; }`

type GlowOutlineOptions struct {
	Color  string  `mapstructure:"color"`
	Radius float64 `mapstructure:"radius"`
}

type glowOutline struct {
	options GlowOutlineOptions
}

type glowResources struct {
	pointerResources
	addedClass bool
}

func newGlowOutline(id entity.PluginId, config pluginapi.PluginConfig) (plugin.Entry, error) {
	options := GlowOutlineOptions{Color: "rgba(120, 115, 245, 0.85)", Radius: 18}
	if err := plugin.DecodeOptions(config, &options); err != nil {
		return plugin.Entry{}, err
	}
	if options.Color == "" {
		return plugin.Entry{}, fmt.Errorf("color is required")
	}
	if err := inRange("radius", options.Radius, 1, 200); err != nil {
		return plugin.Entry{}, err
	}

	g := &glowOutline{options: options}
	return plugin.Entry{
		Descriptor: descriptor(id, "Glow outline", entity.CategoryHover, scaffold.CTA),
		Plugin:     plugin.New(g.apply, g.cleanup),
	}, nil
}

func (g *glowOutline) apply(target plugin.Target, id entity.InstanceId) (*glowResources, error) {
	doc := target.Document
	doc.EnsureStyle(GlowOutline, glowOutlineStyle)

	res := &glowResources{
		pointerResources: pointerResources{saved: dom.SaveStyle(target.Element, "box-shadow")},
	}

	enter := doc.AddEventListener(target.Element, dom.PointerEnter, func(*dom.Event) {
		res.set(target, fmt.Sprintf("0 0 %.0fpx %s", g.options.Radius, g.options.Color))
		if dom.AddClass(target.Element, glowClass) {
			res.addedClass = true
		}
	})
	leave := doc.AddEventListener(target.Element, dom.PointerLeave, func(*dom.Event) {
		res.restore(target)
		res.dropClass(target)
	})

	res.listeners = []dom.ListenerId{enter, leave}
	return res, nil
}

func (g *glowOutline) cleanup(id entity.InstanceId, target plugin.Target, res *glowResources) error {
	res.release(target)
	res.dropClass(target)
	return nil
}

func (r *glowResources) dropClass(target plugin.Target) {
	if !r.addedClass {
		return
	}
	dom.RemoveClass(target.Element, glowClass)
	r.addedClass = false
}
