package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Container is a mounted subtree of a Document. Orchestration state is kept
// per container.
type Container struct {
	id   string
	doc  *Document
	root *html.Node
}

// Mount parses markup as a body fragment and appends it, wrapped in a node
// tagged with the container id, to the document body.
func (d *Document) Mount(id string, markup string) (*Container, error) {
	defer d.acquire()()

	if _, ok := d.containers[id]; ok {
		return nil, fmt.Errorf("%w: %s", ErrContainerExists, id)
	}

	nodes, err := html.ParseFragment(strings.NewReader(markup), d.body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseMarkup, err)
	}

	root := CreateElement("div", html.Attribute{Key: ContainerAttr, Val: id})
	for _, n := range nodes {
		root.AppendChild(n)
	}
	d.body.AppendChild(root)

	c := &Container{id: id, doc: d, root: root}
	d.containers[id] = c

	return c, nil
}

func (d *Document) Container(id string) (*Container, bool) {
	defer d.acquire()()

	c, ok := d.containers[id]
	return c, ok
}

func (c *Container) Id() string {
	return c.id
}

func (c *Container) Root() *html.Node {
	return c.root
}

func (c *Container) Document() *Document {
	return c.doc
}

// Query must run on the document loop.
func (c *Container) Query(selector string) ([]*html.Node, error) {
	return QueryAll(c.root, selector)
}

// Owned returns the plugin-injected nodes currently inside the container.
func (c *Container) Owned() []*html.Node {
	nodes, _ := QueryAll(c.root, "["+OwnerAttr+"]")
	return nodes
}

// Unmount detaches the container from the document. Plugin resources must be
// torn down before this is called.
func (c *Container) Unmount() {
	defer c.doc.acquire()()

	if _, ok := c.doc.containers[c.id]; !ok {
		return
	}
	delete(c.doc.containers, c.id)
	Remove(c.root)
	c.doc.forget(c.root)
}
