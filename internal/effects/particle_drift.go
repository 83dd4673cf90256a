package effects

import (
	"fmt"
	"math"
	"time"

	"github.com/tjjh89017/fxsandbox/internal/dom"
	"github.com/tjjh89017/fxsandbox/internal/entity"
	"github.com/tjjh89017/fxsandbox/internal/plugin"
	"github.com/tjjh89017/fxsandbox/internal/scaffold"
	pluginapi "github.com/tjjh89017/fxsandbox/pluginapi"
	"golang.org/x/net/html"
)

const particleDriftStyle = `.fx-particles { position: absolute; inset: 0; overflow: hidden; pointer-events: none; }
.fx-particle { position: absolute; width: 4px; height: 4px; border-radius: 50%; background: currentColor; opacity: .6; }`

type ParticleDriftOptions struct {
	Count int     `mapstructure:"count"`
	Speed float64 `mapstructure:"speed"`
}

type particle struct {
	node   *html.Node
	x, y   float64
	vx, vy float64
}

type particleDrift struct {
	options ParticleDriftOptions
}

type particleResources struct {
	particles []*particle
	frame     dom.FrameHandle
	last      time.Duration
}

func newParticleDrift(id entity.PluginId, config pluginapi.PluginConfig) (plugin.Entry, error) {
	options := ParticleDriftOptions{Count: 24, Speed: 1}
	if err := plugin.DecodeOptions(config, &options); err != nil {
		return plugin.Entry{}, err
	}
	if err := inRange("count", float64(options.Count), 1, 500); err != nil {
		return plugin.Entry{}, err
	}
	if err := inRange("speed", options.Speed, 0.01, 20); err != nil {
		return plugin.Entry{}, err
	}

	p := &particleDrift{options: options}
	return plugin.Entry{
		Descriptor: descriptor(id, "Particle drift", entity.CategoryBackground, scaffold.Hero),
		Plugin:     plugin.New(p.apply, p.cleanup),
	}, nil
}

func (p *particleDrift) apply(target plugin.Target, id entity.InstanceId) (*particleResources, error) {
	doc := target.Document
	doc.EnsureStyle(ParticleDrift, particleDriftStyle)

	rng := instanceRand(id)
	layer := own(dom.CreateElement("div",
		html.Attribute{Key: "class", Val: "fx-particles"},
		html.Attribute{Key: "aria-hidden", Val: "true"},
	), id)

	res := &particleResources{particles: make([]*particle, 0, p.options.Count)}
	for i := 0; i < p.options.Count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		pt := &particle{
			node: dom.CreateElement("span", html.Attribute{Key: "class", Val: "fx-particle"}),
			x:    rng.Float64() * 100,
			y:    rng.Float64() * 100,
			vx:   math.Cos(angle) * p.options.Speed * 2,
			vy:   math.Sin(angle) * p.options.Speed * 2,
		}
		pt.render()
		layer.AppendChild(pt.node)
		res.particles = append(res.particles, pt)
	}
	target.Element.AppendChild(layer)

	var step dom.FrameCallback
	step = func(ts time.Duration) {
		dt := 16 * time.Millisecond
		if res.last != 0 && ts > res.last {
			dt = ts - res.last
		}
		res.last = ts

		for _, pt := range res.particles {
			pt.advance(dt.Seconds())
			pt.render()
		}
		res.frame = doc.RequestAnimationFrame(step)
	}
	res.frame = doc.RequestAnimationFrame(step)

	return res, nil
}

func (p *particleDrift) cleanup(id entity.InstanceId, target plugin.Target, res *particleResources) error {
	target.Document.CancelAnimationFrame(res.frame)
	_, err := removeOwned(target, id)
	return err
}

// advance moves the particle in percent-per-second units, wrapping at the
// layer edges.
func (pt *particle) advance(seconds float64) {
	pt.x = wrap(pt.x + pt.vx*seconds)
	pt.y = wrap(pt.y + pt.vy*seconds)
}

func (pt *particle) render() {
	dom.SetStyle(pt.node, "left", fmt.Sprintf("%.2f%%", pt.x))
	dom.SetStyle(pt.node, "top", fmt.Sprintf("%.2f%%", pt.y))
}

func wrap(v float64) float64 {
	v = math.Mod(v, 100)
	if v < 0 {
		v += 100
	}
	return v
}
