package effects

import (
	"fmt"

	"github.com/tjjh89017/fxsandbox/internal/dom"
	"github.com/tjjh89017/fxsandbox/internal/entity"
	"github.com/tjjh89017/fxsandbox/internal/plugin"
	"github.com/tjjh89017/fxsandbox/internal/scaffold"
	pluginapi "github.com/tjjh89017/fxsandbox/pluginapi"
)

type MagneticCursorOptions struct {
	Strength float64 `mapstructure:"strength"`
}

type magneticCursor struct {
	options MagneticCursorOptions
}

// pointerResources is shared by the effects that react to the pointer by
// writing a single inline property of their target.
type pointerResources struct {
	listeners []dom.ListenerId
	saved     dom.SavedStyle
	wrote     bool
}

func (r *pointerResources) set(target plugin.Target, value string) {
	dom.SetStyle(target.Element, r.saved.Property, value)
	r.wrote = true
}

// restore puts back the value seen at apply time, only if this instance
// changed it.
func (r *pointerResources) restore(target plugin.Target) {
	if !r.wrote {
		return
	}
	r.saved.Restore(target.Element)
	r.wrote = false
}

func (r *pointerResources) release(target plugin.Target) {
	removeListeners(target.Document, r.listeners)
	r.restore(target)
}

func newMagneticCursor(id entity.PluginId, config pluginapi.PluginConfig) (plugin.Entry, error) {
	options := MagneticCursorOptions{Strength: 0.3}
	if err := plugin.DecodeOptions(config, &options); err != nil {
		return plugin.Entry{}, err
	}
	if err := inRange("strength", options.Strength, 0, 1); err != nil {
		return plugin.Entry{}, err
	}

	m := &magneticCursor{options: options}
	return plugin.Entry{
		Descriptor: descriptor(id, "Magnetic cursor", entity.CategoryHover, scaffold.CTA),
		Plugin:     plugin.New(m.apply, m.cleanup),
	}, nil
}

func (m *magneticCursor) apply(target plugin.Target, id entity.InstanceId) (*pointerResources, error) {
	doc := target.Document
	res := &pointerResources{saved: dom.SaveStyle(target.Element, "transform")}

	move := doc.AddEventListener(target.Element, dom.PointerMove, func(ev *dom.Event) {
		// geometry is read per event, the layout may have moved since apply
		rect := doc.BoundingRect(target.Element)
		dx, dy := rect.Offset(ev.ClientX, ev.ClientY)

		tx := dx * m.options.Strength * rect.Width / 2
		ty := dy * m.options.Strength * rect.Height / 2
		res.set(target, fmt.Sprintf("translate(%.1fpx, %.1fpx)", tx, ty))
	})
	leave := doc.AddEventListener(target.Element, dom.PointerLeave, func(*dom.Event) {
		res.restore(target)
	})

	res.listeners = []dom.ListenerId{move, leave}
	return res, nil
}

func (m *magneticCursor) cleanup(id entity.InstanceId, target plugin.Target, res *pointerResources) error {
	res.release(target)
	return nil
}
