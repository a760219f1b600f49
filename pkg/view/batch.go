package view

import (
	"image/color"
	"slices"

	"github.com/ioxu/boxer/pkg/geom"
)

// PrimitiveKind selects how a Primitive is drawn.
type PrimitiveKind int

const (
	PrimitiveRect PrimitiveKind = iota
	PrimitiveCircle
	PrimitiveLabel
)

// Primitive is one drawable shape in a Batch. Views keep the pointers they
// get from the Batch and update the fields in place.
type Primitive struct {
	Kind   PrimitiveKind
	Rect   geom.Rect // PrimitiveRect
	Center geom.Vec2 // PrimitiveCircle, PrimitiveLabel anchor
	Radius float64   // PrimitiveCircle
	Text   string    // PrimitiveLabel
	Color  color.RGBA
}

// Visible reports whether the primitive has any opacity.
func (p *Primitive) Visible() bool { return p.Color.A > 0 }

// Batch is the drawing list shared by every view of one type. Renderers draw
// all primitives of all batches in order.
type Batch struct {
	name  string
	prims []*Primitive
}

// NewBatch creates an empty batch.
func NewBatch(name string) *Batch { return &Batch{name: name} }

// Name returns the view type name the batch was created for.
func (b *Batch) Name() string { return b.name }

func (b *Batch) add(p *Primitive) *Primitive {
	b.prims = append(b.prims, p)
	return p
}

// AddRect appends a filled rectangle.
func (b *Batch) AddRect(r geom.Rect, c color.RGBA) *Primitive {
	return b.add(&Primitive{Kind: PrimitiveRect, Rect: r, Color: c})
}

// AddCircle appends a filled circle.
func (b *Batch) AddCircle(center geom.Vec2, radius float64, c color.RGBA) *Primitive {
	return b.add(&Primitive{Kind: PrimitiveCircle, Center: center, Radius: radius, Color: c})
}

// AddLabel appends a text label anchored at its bottom-left corner.
func (b *Batch) AddLabel(text string, at geom.Vec2, c color.RGBA) *Primitive {
	return b.add(&Primitive{Kind: PrimitiveLabel, Text: text, Center: at, Color: c})
}

// Remove deletes primitives from the batch. Unknown primitives are ignored.
func (b *Batch) Remove(prims ...*Primitive) {
	b.prims = slices.DeleteFunc(b.prims, func(p *Primitive) bool {
		return slices.Contains(prims, p)
	})
}

// Primitives returns the primitives in draw order.
func (b *Batch) Primitives() []*Primitive { return slices.Clone(b.prims) }

// Len returns the number of primitives.
func (b *Batch) Len() int { return len(b.prims) }
