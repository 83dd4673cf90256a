package dom

import (
	"golang.org/x/net/html"
)

type EventType string

const (
	PointerMove  EventType = "pointermove"
	PointerEnter EventType = "pointerenter"
	PointerLeave EventType = "pointerleave"
	Scroll       EventType = "scroll"
)

// bubbles reports whether listeners on ancestors of the target see the event.
func (t EventType) bubbles() bool {
	return t != PointerEnter && t != PointerLeave
}

type Event struct {
	Type    EventType
	Target  *html.Node
	ClientX float64
	ClientY float64
	ScrollY float64
}

type Listener func(ev *Event)

type ListenerId uint64

type listener struct {
	id   ListenerId
	node *html.Node
	typ  EventType
	fn   Listener
}

// AddEventListener registers fn on n and returns the handle needed to remove
// exactly this registration.
func (d *Document) AddEventListener(n *html.Node, typ EventType, fn Listener) ListenerId {
	id := ListenerId(d.handle())
	d.listeners[id] = &listener{id: id, node: n, typ: typ, fn: fn}
	d.byNode[n] = append(d.byNode[n], id)

	return id
}

func (d *Document) RemoveEventListener(id ListenerId) bool {
	l, ok := d.listeners[id]
	if !ok {
		return false
	}
	delete(d.listeners, id)

	ids := d.byNode[l.node]
	for i, other := range ids {
		if other == id {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(d.byNode, l.node)
	} else {
		d.byNode[l.node] = ids
	}

	return true
}

// ListenerCount returns the number of listeners registered directly on n.
func (d *Document) ListenerCount(n *html.Node) int {
	return len(d.byNode[n])
}

// Dispatch delivers ev to listeners on the target, then to its ancestors for
// bubbling event types. It returns the number of listeners invoked.
func (d *Document) Dispatch(ev *Event) int {
	defer d.acquire()()

	path := []*html.Node{ev.Target}
	if ev.Type.bubbles() {
		for p := ev.Target.Parent; p != nil; p = p.Parent {
			path = append(path, p)
		}
	}

	invoked := 0
	for _, n := range path {
		ids := append([]ListenerId(nil), d.byNode[n]...)
		for _, id := range ids {
			l, ok := d.listeners[id]
			if !ok || l.typ != ev.Type {
				continue
			}
			l.fn(ev)
			invoked++
		}
	}

	return invoked
}
