package effects

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/tjjh89017/fxsandbox/internal/dom"
	"github.com/tjjh89017/fxsandbox/internal/entity"
	"github.com/tjjh89017/fxsandbox/internal/plugin"
	"github.com/tjjh89017/fxsandbox/internal/scaffold"
	pluginapi "github.com/tjjh89017/fxsandbox/pluginapi"
	"golang.org/x/net/html"
)

type TwinkleStarsOptions struct {
	Count    int           `mapstructure:"count"`
	Interval time.Duration `mapstructure:"interval"`
}

type twinkleStars struct {
	options TwinkleStarsOptions
}

type twinkleResources struct {
	stars []*html.Node
	timer dom.TimerHandle
}

func newTwinkleStars(id entity.PluginId, config pluginapi.PluginConfig) (plugin.Entry, error) {
	options := TwinkleStarsOptions{Count: 40, Interval: 120 * time.Millisecond}
	if err := plugin.DecodeOptions(config, &options); err != nil {
		return plugin.Entry{}, err
	}
	if err := inRange("count", float64(options.Count), 1, 400); err != nil {
		return plugin.Entry{}, err
	}
	if options.Interval < 10*time.Millisecond {
		return plugin.Entry{}, fmt.Errorf("interval must be at least 10ms, got %s", options.Interval)
	}

	s := &twinkleStars{options: options}
	return plugin.Entry{
		Descriptor: descriptor(id, "Twinkling stars", entity.CategoryBackground, scaffold.Hero),
		Plugin:     plugin.New(s.apply, s.cleanup),
	}, nil
}

func (s *twinkleStars) apply(target plugin.Target, id entity.InstanceId) (*twinkleResources, error) {
	doc := target.Document
	rng := instanceRand(id)

	res := &twinkleResources{stars: make([]*html.Node, 0, s.options.Count)}
	for i := 0; i < s.options.Count; i++ {
		star := own(dom.CreateElement("span",
			html.Attribute{Key: "class", Val: "fx-star"},
			html.Attribute{Key: "aria-hidden", Val: "true"},
		), id)
		dom.SetStyle(star, "left", fmt.Sprintf("%.2f%%", rng.Float64()*100))
		dom.SetStyle(star, "top", fmt.Sprintf("%.2f%%", rng.Float64()*100))
		dom.SetStyle(star, "opacity", opacity(rng))

		target.Element.AppendChild(star)
		res.stars = append(res.stars, star)
	}

	res.timer = doc.SetInterval(s.options.Interval, func() {
		star := res.stars[rng.IntN(len(res.stars))]
		dom.SetStyle(star, "opacity", opacity(rng))
	})

	return res, nil
}

func (s *twinkleStars) cleanup(id entity.InstanceId, target plugin.Target, res *twinkleResources) error {
	target.Document.ClearTimer(res.timer)
	_, err := removeOwned(target, id)
	return err
}

func opacity(rng *rand.Rand) string {
	return fmt.Sprintf("%.2f", 0.2+rng.Float64()*0.8)
}
