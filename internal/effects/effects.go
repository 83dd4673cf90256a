// Package effects holds the builtin visual effects of the sandbox. Every
// effect is an apply/cleanup pair wrapped by plugin.New; cleanup releases
// exactly the listeners, frames, timers, nodes and inline styles its own
// apply created.
package effects

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"

	"github.com/tjjh89017/fxsandbox/internal/dom"
	"github.com/tjjh89017/fxsandbox/internal/entity"
	"github.com/tjjh89017/fxsandbox/internal/plugin"
	"golang.org/x/net/html"
)

const (
	ParticleDrift  = "particle-drift"
	TwinkleStars   = "twinkle-stars"
	GradientLayers = "gradient-layers"
	ScrollParallax = "scroll-parallax"
	MagneticCursor = "magnetic-cursor"
	GlowOutline    = "glow-outline"
	TiltHover      = "tilt-hover"
	TextShimmer    = "text-shimmer"
	Typewriter     = "typewriter"
)

// Builtins returns a catalog with every builtin effect.
func Builtins() *plugin.Catalog {
	c := plugin.NewCatalog()

	c.Register(ParticleDrift, newParticleDrift)
	c.Register(TwinkleStars, newTwinkleStars)
	c.Register(GradientLayers, newGradientLayers)
	c.Register(ScrollParallax, newScrollParallax)
	c.Register(MagneticCursor, newMagneticCursor)
	c.Register(GlowOutline, newGlowOutline)
	c.Register(TiltHover, newTiltHover)
	c.Register(TextShimmer, newTextShimmer)
	c.Register(Typewriter, newTypewriter)

	return c
}

func descriptor(id entity.PluginId, name string, category entity.Category, selector string) entity.Descriptor {
	return entity.Descriptor{
		Id:             id,
		DisplayName:    name,
		Category:       category,
		TargetSelector: selector,
	}
}

// own tags n as created by instance id.
func own(n *html.Node, id entity.InstanceId) *html.Node {
	dom.SetAttr(n, dom.OwnerAttr, string(id))
	return n
}

func ownerSelector(id entity.InstanceId) string {
	return fmt.Sprintf(`[%s="%s"]`, dom.OwnerAttr, id)
}

// removeOwned detaches every node below target tagged with id.
func removeOwned(target plugin.Target, id entity.InstanceId) (int, error) {
	nodes, err := dom.QueryAll(target.Element, ownerSelector(id))
	if err != nil {
		return 0, err
	}
	for _, n := range nodes {
		dom.Remove(n)
	}
	return len(nodes), nil
}

func removeListeners(doc *dom.Document, ids []dom.ListenerId) {
	for _, id := range ids {
		doc.RemoveEventListener(id)
	}
}

// instanceRand is seeded from the instance id so a given instance always
// lays out the same way.
func instanceRand(id entity.InstanceId) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	seed := h.Sum64()
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

func inRange(name string, value, min, max float64) error {
	if value < min || value > max {
		return fmt.Errorf("%s must be between %g and %g, got %g", name, min, max, value)
	}
	return nil
}
