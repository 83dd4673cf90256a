package dom

import (
	"fmt"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	selectorMu    sync.RWMutex
	selectorCache = make(map[string]cascadia.SelectorGroup)
)

// CompileSelector parses selector and caches the result.
func CompileSelector(selector string) (cascadia.SelectorGroup, error) {
	selectorMu.RLock()
	sel, ok := selectorCache[selector]
	selectorMu.RUnlock()
	if ok {
		return sel, nil
	}

	sel, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSelector, selector, err)
	}

	selectorMu.Lock()
	selectorCache[selector] = sel
	selectorMu.Unlock()

	return sel, nil
}

func QueryAll(root *html.Node, selector string) ([]*html.Node, error) {
	sel, err := CompileSelector(selector)
	if err != nil {
		return nil, err
	}
	return cascadia.QueryAll(root, sel), nil
}

func CreateElement(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

func CreateText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// Remove detaches n from its parent. Detached nodes are left untouched.
func Remove(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func SetAttr(n *html.Node, key, value string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

func RemoveAttr(n *html.Node, key string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

func HasClass(n *html.Node, class string) bool {
	value, _ := Attr(n, "class")
	for _, c := range strings.Fields(value) {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass reports whether class was added, false when already present.
func AddClass(n *html.Node, class string) bool {
	if HasClass(n, class) {
		return false
	}

	value, _ := Attr(n, "class")
	classes := append(strings.Fields(value), class)
	SetAttr(n, "class", strings.Join(classes, " "))

	return true
}

func RemoveClass(n *html.Node, class string) {
	value, ok := Attr(n, "class")
	if !ok {
		return
	}

	kept := make([]string, 0)
	for _, c := range strings.Fields(value) {
		if c != class {
			kept = append(kept, c)
		}
	}

	if len(kept) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(kept, " "))
}

// TextContent concatenates all text below n.
func TextContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return sb.String()
}
