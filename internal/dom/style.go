package dom

import (
	"strings"

	"golang.org/x/net/html"
)

type declaration struct {
	property string
	value    string
}

func parseStyle(n *html.Node) []declaration {
	raw, _ := Attr(n, "style")

	decls := make([]declaration, 0)
	for _, part := range splitDeclarations(raw) {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(prop)
		if prop == "" {
			continue
		}
		decls = append(decls, declaration{property: prop, value: strings.TrimSpace(value)})
	}

	return decls
}

// splitDeclarations splits raw on semicolons outside parentheses and quoted
// strings, so values like url(data:image/png;base64,...) stay whole.
func splitDeclarations(raw string) []string {
	parts := make([]string, 0)

	depth := 0
	var quote rune
	escaped := false
	start := 0
	for i, r := range raw {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case r == ';' && depth == 0:
			parts = append(parts, raw[start:i])
			start = i + 1
		}
	}

	return append(parts, raw[start:])
}

func writeStyle(n *html.Node, decls []declaration) {
	if len(decls) == 0 {
		RemoveAttr(n, "style")
		return
	}

	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.property + ": " + d.value
	}
	SetAttr(n, "style", strings.Join(parts, "; "))
}

// Style returns the inline value of property on n.
func Style(n *html.Node, property string) (string, bool) {
	for _, d := range parseStyle(n) {
		if d.property == property {
			return d.value, true
		}
	}
	return "", false
}

// SetStyle sets one inline property, keeping the position of an existing
// declaration.
func SetStyle(n *html.Node, property, value string) {
	decls := parseStyle(n)
	for i := range decls {
		if decls[i].property == property {
			decls[i].value = value
			writeStyle(n, decls)
			return
		}
	}
	writeStyle(n, append(decls, declaration{property: property, value: value}))
}

func RemoveStyle(n *html.Node, property string) {
	decls := parseStyle(n)
	for i := range decls {
		if decls[i].property == property {
			writeStyle(n, append(decls[:i], decls[i+1:]...))
			return
		}
	}
}

// SavedStyle is the inline value of a property captured before an effect
// overwrote it.
type SavedStyle struct {
	Property string
	Value    string
	Present  bool
}

func SaveStyle(n *html.Node, property string) SavedStyle {
	value, ok := Style(n, property)
	return SavedStyle{Property: property, Value: value, Present: ok}
}

// Restore puts the captured value back, or removes the property when it was
// absent.
func (s SavedStyle) Restore(n *html.Node) {
	if s.Present {
		SetStyle(n, s.Property, s.Value)
		return
	}
	RemoveStyle(n, s.Property)
}
