package dom

import (
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/net/html"
)

const (
	// OwnerAttr tags nodes injected by a plugin instance with its instance id.
	OwnerAttr = "data-fx-owner"
	// ContainerAttr marks the wrapper node of a mounted container.
	ContainerAttr = "data-fx-container"
	// SharedStyleAttr marks a shared style block in the document head.
	SharedStyleAttr = "data-fx-shared"
)

var (
	ErrInvalidSelector = errors.New("invalid selector")
	ErrContainerExists = errors.New("container already mounted")
	ErrParseMarkup     = errors.New("failed to parse markup")
)

// Document is a node tree with a single logical UI thread. Exclusive, Tick,
// Advance, Dispatch, Mount, Unmount, Stats and Render acquire the loop lock
// themselves and may be nested on the loop; every other method must run on
// the loop, either inside Exclusive or from a listener, frame or timer
// callback.
type Document struct {
	mu    sync.Mutex
	owner atomic.Uint64

	root *html.Node
	head *html.Node
	body *html.Node

	containers map[string]*Container

	nextHandle uint64
	listeners  map[ListenerId]*listener
	byNode     map[*html.Node][]ListenerId
	frames     map[FrameHandle]FrameCallback
	frameOrder []FrameHandle
	timers     map[TimerHandle]*timer
	now        time.Duration
	rects      map[*html.Node]Rect
	shared     map[string]*html.Node
}

func NewDocument() *Document {
	root := &html.Node{Type: html.DocumentNode}
	htmlEl := CreateElement("html")
	head := CreateElement("head")
	body := CreateElement("body")
	htmlEl.AppendChild(head)
	htmlEl.AppendChild(body)
	root.AppendChild(htmlEl)

	return &Document{
		root:       root,
		head:       head,
		body:       body,
		containers: make(map[string]*Container),
		listeners:  make(map[ListenerId]*listener),
		byNode:     make(map[*html.Node][]ListenerId),
		frames:     make(map[FrameHandle]FrameCallback),
		timers:     make(map[TimerHandle]*timer),
		rects:      make(map[*html.Node]Rect),
		shared:     make(map[string]*html.Node),
	}
}

// Exclusive runs fn on the document loop. Called from the loop it runs fn
// directly.
func (d *Document) Exclusive(fn func()) {
	defer d.acquire()()

	fn()
}

func (d *Document) Head() *html.Node {
	return d.head
}

func (d *Document) Body() *html.Node {
	return d.body
}

func (d *Document) handle() uint64 {
	d.nextHandle++
	return d.nextHandle
}

// SetRect records the layout box of n.
func (d *Document) SetRect(n *html.Node, r Rect) {
	d.rects[n] = r
}

// BoundingRect returns the current layout box of n, the zero Rect when n has
// not been laid out.
func (d *Document) BoundingRect(n *html.Node) Rect {
	return d.rects[n]
}

// EnsureStyle appends a shared style block keyed by id to the head unless
// one already exists. It reports whether a block was created.
func (d *Document) EnsureStyle(id string, css string) bool {
	if _, ok := d.shared[id]; ok {
		return false
	}

	style := CreateElement("style", html.Attribute{Key: SharedStyleAttr, Val: id})
	style.AppendChild(&html.Node{Type: html.TextNode, Data: css})
	d.head.AppendChild(style)
	d.shared[id] = style

	return true
}

func (d *Document) HasStyle(id string) bool {
	_, ok := d.shared[id]
	return ok
}

type Stats struct {
	Listeners    int
	Frames       int
	Timers       int
	SharedStyles int
	OwnedNodes   int
}

// Stats counts live resources across the whole document.
func (d *Document) Stats() Stats {
	defer d.acquire()()

	owned, _ := QueryAll(d.root, "["+OwnerAttr+"]")

	return Stats{
		Listeners:    len(d.listeners),
		Frames:       len(d.frames),
		Timers:       len(d.timers),
		SharedStyles: len(d.shared),
		OwnedNodes:   len(owned),
	}
}

func (d *Document) Render(w io.Writer) error {
	defer d.acquire()()

	return html.Render(w, d.root)
}

// forget drops per-node bookkeeping for the subtree rooted at n.
func (d *Document) forget(n *html.Node) {
	delete(d.rects, n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.forget(c)
	}
}
