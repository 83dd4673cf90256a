package dom_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tjjh89017/fxsandbox/internal/dom"
	"golang.org/x/net/html"
)

const markup = `<section data-attach="hero"><h1 data-attach="heading">Hi</h1><button data-attach="cta" class="btn">Go</button></section>`

func mount(t *testing.T) (*dom.Document, *dom.Container) {
	t.Helper()

	doc := dom.NewDocument()
	c, err := doc.Mount("sandbox", markup)
	require.NoError(t, err)

	return doc, c
}

func queryOne(t *testing.T, c *dom.Container, selector string) *html.Node {
	t.Helper()

	nodes, err := c.Query(selector)
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	return nodes[0]
}

func TestMount_DuplicateId(t *testing.T) {
	doc, _ := mount(t)

	_, err := doc.Mount("sandbox", markup)
	assert.ErrorIs(t, err, dom.ErrContainerExists)
}

func TestContainer_Query(t *testing.T) {
	_, c := mount(t)

	cta := queryOne(t, c, `[data-attach="cta"]`)
	assert.Equal(t, "button", cta.Data)

	_, err := c.Query("[[")
	assert.ErrorIs(t, err, dom.ErrInvalidSelector)
}

func TestContainer_Unmount(t *testing.T) {
	doc, c := mount(t)

	c.Unmount()
	c.Unmount()

	_, ok := doc.Container("sandbox")
	assert.False(t, ok)

	var buf bytes.Buffer
	require.NoError(t, doc.Render(&buf))
	assert.NotContains(t, buf.String(), "data-attach")
}

func TestDispatch_BubblingAndPreciseRemoval(t *testing.T) {
	doc, c := mount(t)
	hero := queryOne(t, c, `[data-attach="hero"]`)
	cta := queryOne(t, c, `[data-attach="cta"]`)

	var calls []string
	var first, second dom.ListenerId
	doc.Exclusive(func() {
		first = doc.AddEventListener(cta, dom.PointerMove, func(*dom.Event) { calls = append(calls, "first") })
		second = doc.AddEventListener(cta, dom.PointerMove, func(*dom.Event) { calls = append(calls, "second") })
		doc.AddEventListener(hero, dom.PointerMove, func(*dom.Event) { calls = append(calls, "hero") })
		doc.AddEventListener(hero, dom.PointerEnter, func(*dom.Event) { calls = append(calls, "hero-enter") })
	})

	n := doc.Dispatch(&dom.Event{Type: dom.PointerMove, Target: cta})
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"first", "second", "hero"}, calls)

	calls = nil
	doc.Dispatch(&dom.Event{Type: dom.PointerEnter, Target: cta})
	assert.Empty(t, calls, "enter must not bubble")

	doc.Exclusive(func() {
		assert.True(t, doc.RemoveEventListener(first))
		assert.False(t, doc.RemoveEventListener(first))
		assert.Equal(t, 1, doc.ListenerCount(cta))
	})

	calls = nil
	doc.Dispatch(&dom.Event{Type: dom.PointerMove, Target: cta})
	assert.Equal(t, []string{"second", "hero"}, calls)

	doc.Exclusive(func() { doc.RemoveEventListener(second) })
	assert.Equal(t, 2, doc.Stats().Listeners)
}

func TestTick_RunsPendingFramesOnce(t *testing.T) {
	doc := dom.NewDocument()

	count := 0
	var loop dom.FrameCallback
	loop = func(time.Duration) {
		count++
		doc.RequestAnimationFrame(loop)
	}

	var cancelled dom.FrameHandle
	doc.Exclusive(func() {
		doc.RequestAnimationFrame(loop)
		cancelled = doc.RequestAnimationFrame(func(time.Duration) { t.Error("cancelled frame ran") })
		assert.True(t, doc.CancelAnimationFrame(cancelled))
	})

	assert.Equal(t, 1, doc.Tick(16*time.Millisecond))
	assert.Equal(t, 1, doc.Tick(32*time.Millisecond))
	assert.Equal(t, 2, count)
	assert.Equal(t, 1, doc.Stats().Frames)
}

func TestAdvance_FiresTimersInOrder(t *testing.T) {
	doc := dom.NewDocument()

	var fired []string
	var interval dom.TimerHandle
	doc.Exclusive(func() {
		interval = doc.SetInterval(100*time.Millisecond, func() { fired = append(fired, "tick") })
		doc.SetTimeout(150*time.Millisecond, func() { fired = append(fired, "once") })
	})

	assert.Equal(t, 3, doc.Advance(200*time.Millisecond))
	assert.Equal(t, []string{"tick", "once", "tick"}, fired)
	assert.Equal(t, 200*time.Millisecond, doc.Now())

	doc.Exclusive(func() {
		assert.True(t, doc.ClearTimer(interval))
	})
	assert.Equal(t, 0, doc.Advance(time.Second))
	assert.Equal(t, 0, doc.Stats().Timers)
}

func TestEnsureStyle_CreatesOnce(t *testing.T) {
	doc := dom.NewDocument()

	doc.Exclusive(func() {
		assert.True(t, doc.EnsureStyle("fx-glow", "@keyframes glow {}"))
		assert.False(t, doc.EnsureStyle("fx-glow", "@keyframes glow {}"))
		assert.True(t, doc.HasStyle("fx-glow"))
	})

	assert.Equal(t, 1, doc.Stats().SharedStyles)
}

func TestStyle_SetRestore(t *testing.T) {
	n := dom.CreateElement("div", html.Attribute{Key: "style", Val: "color: red; transform: scale(2)"})

	saved := dom.SaveStyle(n, "transform")
	dom.SetStyle(n, "transform", "translate(1px, 2px)")

	v, ok := dom.Style(n, "transform")
	require.True(t, ok)
	assert.Equal(t, "translate(1px, 2px)", v)

	saved.Restore(n)
	style, _ := dom.Attr(n, "style")
	assert.Equal(t, "color: red; transform: scale(2)", style)

	missing := dom.SaveStyle(n, "box-shadow")
	dom.SetStyle(n, "box-shadow", "0 0 4px blue")
	missing.Restore(n)
	_, ok = dom.Style(n, "box-shadow")
	assert.False(t, ok)
}

func TestClass_AddRemove(t *testing.T) {
	n := dom.CreateElement("span", html.Attribute{Key: "class", Val: "a"})

	assert.True(t, dom.AddClass(n, "b"))
	assert.False(t, dom.AddClass(n, "b"))
	assert.True(t, dom.HasClass(n, "b"))

	dom.RemoveClass(n, "a")
	dom.RemoveClass(n, "b")
	_, ok := dom.Attr(n, "class")
	assert.False(t, ok)
}

func TestRect_Offset(t *testing.T) {
	r := dom.Rect{X: 100, Y: 100, Width: 200, Height: 100}

	x, y := r.Offset(200, 150)
	assert.Zero(t, x)
	assert.Zero(t, y)

	x, y = r.Offset(300, 100)
	assert.Equal(t, 1.0, x)
	assert.Equal(t, -1.0, y)

	x, y = r.Offset(1000, 1000)
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 1.0, y)

	x, y = dom.Rect{}.Offset(10, 10)
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestExclusive_ReentersOnLoop(t *testing.T) {
	doc := dom.NewDocument()
	assert.False(t, doc.OnLoop())

	nested := false
	doc.Exclusive(func() {
		assert.True(t, doc.OnLoop())
		doc.Exclusive(func() {
			nested = doc.OnLoop()
		})

		other := make(chan bool)
		go func() {
			other <- doc.OnLoop()
		}()
		assert.False(t, <-other)
	})

	assert.True(t, nested)
	assert.False(t, doc.OnLoop())
}

func TestDispatch_ListenerMayUseLockingMethods(t *testing.T) {
	doc := dom.NewDocument()

	stats := make(chan dom.Stats, 1)
	doc.Exclusive(func() {
		doc.AddEventListener(doc.Body(), dom.Scroll, func(*dom.Event) {
			stats <- doc.Stats()
		})
	})

	assert.Equal(t, 1, doc.Dispatch(&dom.Event{Type: dom.Scroll, Target: doc.Body()}))
	assert.Equal(t, 1, (<-stats).Listeners)
}

func TestStyle_ValuesWithSemicolons(t *testing.T) {
	const original = `background-image: url(data:image/png;base64,AAAA); content: "a;b"; transform: scale(1)`
	n := dom.CreateElement("div", html.Attribute{Key: "style", Val: original})

	v, ok := dom.Style(n, "background-image")
	require.True(t, ok)
	assert.Equal(t, "url(data:image/png;base64,AAAA)", v)

	v, ok = dom.Style(n, "content")
	require.True(t, ok)
	assert.Equal(t, `"a;b"`, v)

	saved := dom.SaveStyle(n, "transform")
	dom.SetStyle(n, "transform", "translate(4px, 0px)")
	dom.SetStyle(n, "box-shadow", "0 0 8px var(--glow, rgb(0 0 0 / 50%))")
	dom.RemoveStyle(n, "box-shadow")
	saved.Restore(n)

	style, _ := dom.Attr(n, "style")
	assert.Equal(t, original, style)
}
