package scaffold_test

import (
	"testing"

	"github.com/tjjh89017/fxsandbox/internal/dom"
	"github.com/tjjh89017/fxsandbox/internal/scaffold"
)

func TestMount_ExposesAttachmentPoints(t *testing.T) {
	doc := dom.NewDocument()

	c, err := scaffold.Mount(doc, "sandbox")
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	doc.Exclusive(func() {
		for _, selector := range scaffold.AttachmentPoints() {
			nodes, err := c.Query(selector)
			if err != nil {
				t.Fatalf("Query(%s) error = %v", selector, err)
			}
			if len(nodes) != 1 {
				t.Errorf("Query(%s) matched %d nodes, want 1", selector, len(nodes))
				continue
			}
			if r := doc.BoundingRect(nodes[0]); r.Width == 0 || r.Height == 0 {
				t.Errorf("attachment point %s has empty layout %+v", selector, r)
			}
		}
	})
}

func TestLayout_Offset(t *testing.T) {
	doc := dom.NewDocument()

	c, err := scaffold.Mount(doc, "sandbox")
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	doc.Exclusive(func() {
		if err := scaffold.Layout(c, 300); err != nil {
			t.Fatalf("Layout() error = %v", err)
		}

		nodes, _ := c.Query(scaffold.CTA)
		if got := doc.BoundingRect(nodes[0]).Y; got != 720 {
			t.Errorf("CTA Y = %v, want 720", got)
		}
	})
}

func TestMount_Twice(t *testing.T) {
	doc := dom.NewDocument()

	if _, err := scaffold.Mount(doc, "a"); err != nil {
		t.Fatalf("Mount(a) error = %v", err)
	}
	if _, err := scaffold.Mount(doc, "b"); err != nil {
		t.Fatalf("Mount(b) error = %v", err)
	}
	if _, err := scaffold.Mount(doc, "a"); err == nil {
		t.Error("Mount(a) twice should fail")
	}
}
