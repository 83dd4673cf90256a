package effects

import (
	"fmt"

	"github.com/tjjh89017/fxsandbox/internal/dom"
	"github.com/tjjh89017/fxsandbox/internal/entity"
	"github.com/tjjh89017/fxsandbox/internal/plugin"
	"github.com/tjjh89017/fxsandbox/internal/scaffold"
	pluginapi "github.com/tjjh89017/fxsandbox/pluginapi"
	"golang.org/x/net/html"
)

const gradientLayersStyle = `@keyframes fx-gradient-shift { 0% { background-position: 0% 50%; } 50% { background-position: 100% 50%; } 100% { background-position: 0% 50%; } }
.fx-gradient-layer { position: absolute; inset: 0; background-size: 300% 300%; mix-blend-mode: screen; pointer-events: none; animation: fx-gradient-shift 12s ease infinite; }`

type GradientLayersOptions struct {
	Layers int      `mapstructure:"layers"`
	Colors []string `mapstructure:"colors"`
}

type gradientLayers struct {
	options GradientLayersOptions
}

func newGradientLayers(id entity.PluginId, config pluginapi.PluginConfig) (plugin.Entry, error) {
	options := GradientLayersOptions{
		Layers: 3,
		Colors: []string{"#ff6ec4", "#7873f5", "#4ade80", "#facc15"},
	}
	if err := plugin.DecodeOptions(config, &options); err != nil {
		return plugin.Entry{}, err
	}
	if err := inRange("layers", float64(options.Layers), 1, 8); err != nil {
		return plugin.Entry{}, err
	}
	if len(options.Colors) < 2 {
		return plugin.Entry{}, fmt.Errorf("colors needs at least 2 entries, got %d", len(options.Colors))
	}

	g := &gradientLayers{options: options}
	return plugin.Entry{
		Descriptor: descriptor(id, "Gradient layers", entity.CategoryBackground, scaffold.Hero),
		Plugin:     plugin.New(g.apply, g.cleanup),
	}, nil
}

func (g *gradientLayers) apply(target plugin.Target, id entity.InstanceId) (int, error) {
	target.Document.EnsureStyle(GradientLayers, gradientLayersStyle)

	colors := g.options.Colors
	for i := 0; i < g.options.Layers; i++ {
		from := colors[i%len(colors)]
		to := colors[(i+1)%len(colors)]

		layer := own(dom.CreateElement("div",
			html.Attribute{Key: "class", Val: "fx-gradient-layer"},
			html.Attribute{Key: "aria-hidden", Val: "true"},
		), id)
		dom.SetStyle(layer, "background-image", fmt.Sprintf("linear-gradient(%ddeg, %s, %s)", 45+i*60, from, to))
		dom.SetStyle(layer, "animation-delay", fmt.Sprintf("-%ds", i*4))
		dom.SetStyle(layer, "opacity", fmt.Sprintf("%.2f", 0.6/float64(i+1)))

		target.Element.AppendChild(layer)
	}

	return g.options.Layers, nil
}

func (g *gradientLayers) cleanup(id entity.InstanceId, target plugin.Target, layers int) error {
	removed, err := removeOwned(target, id)
	if err != nil {
		return err
	}
	if removed != layers {
		return fmt.Errorf("removed %d gradient layers, expected %d", removed, layers)
	}
	return nil
}
