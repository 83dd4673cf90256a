package effects

import (
	"fmt"
	"time"

	"github.com/tjjh89017/fxsandbox/internal/dom"
	"github.com/tjjh89017/fxsandbox/internal/entity"
	"github.com/tjjh89017/fxsandbox/internal/plugin"
	"github.com/tjjh89017/fxsandbox/internal/scaffold"
	pluginapi "github.com/tjjh89017/fxsandbox/pluginapi"
	"golang.org/x/net/html"
)

type TypewriterOptions struct {
	Interval time.Duration `mapstructure:"interval"`
}

type typewriter struct {
	options TypewriterOptions
}

type typewriterResources struct {
	original []*html.Node
	text     []rune
	typed    int
	line     *html.Node
	timer    dom.TimerHandle
	running  bool
}

func newTypewriter(id entity.PluginId, config pluginapi.PluginConfig) (plugin.Entry, error) {
	options := TypewriterOptions{Interval: 60 * time.Millisecond}
	if err := plugin.DecodeOptions(config, &options); err != nil {
		return plugin.Entry{}, err
	}
	if options.Interval < 5*time.Millisecond {
		return plugin.Entry{}, fmt.Errorf("interval must be at least 5ms, got %s", options.Interval)
	}

	tw := &typewriter{options: options}
	return plugin.Entry{
		Descriptor: descriptor(id, "Typewriter", entity.CategoryText, scaffold.Heading),
		Plugin:     plugin.New(tw.apply, tw.cleanup),
	}, nil
}

// apply moves the original children of the target aside and types their text
// into an owned span, one rune per tick.
func (tw *typewriter) apply(target plugin.Target, id entity.InstanceId) (*typewriterResources, error) {
	doc := target.Document
	el := target.Element

	res := &typewriterResources{
		text: []rune(dom.TextContent(el)),
		line: own(dom.CreateElement("span", html.Attribute{Key: "class", Val: "fx-typewriter"}), id),
	}
	if len(res.text) == 0 {
		return nil, fmt.Errorf("typewriter target has no text")
	}

	for c := el.FirstChild; c != nil; {
		next := c.NextSibling
		el.RemoveChild(c)
		res.original = append(res.original, c)
		c = next
	}

	res.line.AppendChild(dom.CreateText(""))
	el.AppendChild(res.line)

	res.running = true
	res.timer = doc.SetInterval(tw.options.Interval, func() {
		res.typed++
		res.line.FirstChild.Data = string(res.text[:res.typed])
		if res.typed >= len(res.text) {
			doc.ClearTimer(res.timer)
			res.running = false
		}
	})

	return res, nil
}

func (tw *typewriter) cleanup(id entity.InstanceId, target plugin.Target, res *typewriterResources) error {
	if res.running {
		target.Document.ClearTimer(res.timer)
		res.running = false
	}
	if _, err := removeOwned(target, id); err != nil {
		return err
	}

	for _, c := range res.original {
		target.Element.AppendChild(c)
	}
	res.original = nil

	return nil
}
