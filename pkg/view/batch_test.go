package view

import (
	"image/color"
	"testing"

	"github.com/ioxu/boxer/pkg/geom"
)

func TestBatch(t *testing.T) {
	b := NewBatch("test")
	r := b.AddRect(geom.R(0, 0, 10, 10), color.RGBA{A: 255})
	c := b.AddCircle(geom.V(5, 5), 2, color.RGBA{})
	l := b.AddLabel("hi", geom.V(1, 1), color.RGBA{A: 40})

	if b.Len() != 3 || b.Name() != "test" {
		t.Fatalf("Len() = %d Name() = %q", b.Len(), b.Name())
	}
	if c.Visible() || !l.Visible() {
		t.Errorf("Visible: circle=%v label=%v", c.Visible(), l.Visible())
	}

	b.Remove(c, &Primitive{})
	got := b.Primitives()
	if len(got) != 2 || got[0] != r || got[1] != l {
		t.Errorf("after Remove: %v", got)
	}

	got[0] = nil
	if b.Primitives()[0] != r {
		t.Error("Primitives() exposed internal storage")
	}
}
