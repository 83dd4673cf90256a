package scaffold

import (
	"fmt"

	"github.com/tjjh89017/fxsandbox/internal/dom"
)

// Attachment point selectors. The markup below always exposes each of them
// exactly once, whatever plugins are active.
const (
	Hero    = `[data-attach="hero"]`
	CTA     = `[data-attach="cta"]`
	Heading = `[data-attach="heading"]`
)

const Markup = `<section class="sandbox-hero" data-attach="hero">
  <h1 class="sandbox-heading" data-attach="heading">Make your site move</h1>
  <p class="sandbox-copy">Try every effect before you buy it.</p>
  <button class="sandbox-cta" data-attach="cta" type="button">Get started</button>
</section>`

// AttachmentPoints lists every selector plugins may target.
func AttachmentPoints() []string {
	return []string{Hero, CTA, Heading}
}

var layout = map[string]dom.Rect{
	Hero:    {X: 0, Y: 0, Width: 1200, Height: 640},
	Heading: {X: 120, Y: 160, Width: 960, Height: 96},
	CTA:     {X: 120, Y: 420, Width: 220, Height: 56},
}

// Mount mounts the scaffold into doc under id and lays out its attachment
// points.
func Mount(doc *dom.Document, id string) (*dom.Container, error) {
	c, err := doc.Mount(id, Markup)
	if err != nil {
		return nil, err
	}

	var layoutErr error
	doc.Exclusive(func() {
		layoutErr = Layout(c, 0)
	})
	if layoutErr != nil {
		c.Unmount()
		return nil, layoutErr
	}

	return c, nil
}

// Layout assigns the fixed layout boxes, shifted down by offsetY. It must run
// on the document loop.
func Layout(c *dom.Container, offsetY float64) error {
	for selector, rect := range layout {
		nodes, err := c.Query(selector)
		if err != nil {
			return err
		}
		if len(nodes) != 1 {
			return fmt.Errorf("scaffold attachment point %s matched %d nodes", selector, len(nodes))
		}

		rect.Y += offsetY
		c.Document().SetRect(nodes[0], rect)
	}
	return nil
}
