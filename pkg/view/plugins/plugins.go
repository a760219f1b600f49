// Package plugins provides the stock views offered by boxer frontends.
package plugins

import (
	"image/color"

	"github.com/ioxu/boxer/pkg/container"
	"github.com/ioxu/boxer/pkg/geom"
	"github.com/ioxu/boxer/pkg/input"
	"github.com/ioxu/boxer/pkg/view"
)

// Catalog names of the stock views.
const (
	GraphName      = "graph"
	ParametersName = "parameters"
)

// Register adds the stock views to catalog in menu order.
func Register(catalog *view.Catalog) error {
	if err := catalog.Register(GraphName, (*GraphView)(nil)); err != nil {
		return err
	}
	return catalog.Register(ParametersName, (*ParameterView)(nil))
}

// NewCatalog returns a catalog holding the stock views.
func NewCatalog() *view.Catalog {
	c := view.NewCatalog()
	if err := Register(c); err != nil {
		panic(err)
	}
	return c
}

// cornerInset places the status dot this far from the bottom-right corner.
const cornerInset = 18.0

// panel is the part shared by the stock views: a background filling the
// leaf, a status dot in its bottom-right corner and a pointer marker shown
// while the pointer is over the leaf.
type panel struct {
	batch   *view.Batch
	margin  float64
	entered bool

	bg     *view.Primitive
	dot    *view.Primitive
	marker *view.Primitive

	motion input.HandlerID
}

func (p *panel) init(b *view.Batch, bg, dot, marker color.RGBA, markerRadius float64) {
	p.batch = b
	p.bg = b.AddRect(geom.R(0, 0, 0, 0), bg)
	p.dot = b.AddCircle(geom.V(0, 0), 10, dot)
	marker.A = 0
	p.marker = b.AddCircle(geom.V(0, 0), markerRadius, marker)
}

func (p *panel) fit(c *container.Container) {
	pos := c.Position()
	m := p.margin
	p.bg.Rect = geom.R(pos.X+m, pos.Y+m, c.Width()-2*m, c.Height()-2*m)
	p.dot.Center = geom.V(pos.X+c.Width()-cornerInset, pos.Y+cornerInset)
}

func (p *panel) connect(src input.Source) {
	p.entered = true
	p.marker.Color.A = 100
	src.Remove(p.motion)
	p.motion = src.OnMouseMotion(func(x, y, _, _ float64) {
		p.marker.Center = geom.V(x, y)
	})
}

func (p *panel) disconnect(src input.Source) {
	p.entered = false
	p.marker.Color.A = 0
	src.Remove(p.motion)
	p.motion = 0
}

func (p *panel) release(extra ...*view.Primitive) {
	if p.batch == nil {
		return
	}
	p.batch.Remove(append([]*view.Primitive{p.bg, p.dot, p.marker}, extra...)...)
	p.batch = nil
}

// Entered reports whether the pointer is over the view's leaf.
func (p *panel) Entered() bool { return p.entered }

// Background returns the background primitive.
func (p *panel) Background() *view.Primitive { return p.bg }

// Marker returns the pointer marker primitive.
func (p *panel) Marker() *view.Primitive { return p.marker }
