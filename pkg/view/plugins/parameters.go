package plugins

import (
	"image/color"

	"github.com/ioxu/boxer/pkg/container"
	"github.com/ioxu/boxer/pkg/geom"
	"github.com/ioxu/boxer/pkg/input"
	"github.com/ioxu/boxer/pkg/view"
)

const (
	parametersLabel = "parameters"
	labelOffsetX    = 10.0
	labelHeight     = 15.0
)

// ParameterView is a dark panel with a red status dot and a caption.
type ParameterView struct {
	panel
	label *view.Primitive
}

// Init implements view.Initializer.
func (p *ParameterView) Init(b *view.Batch) {
	p.init(b,
		color.RGBA{30, 30, 30, 180},
		color.RGBA{255, 30, 30, 200},
		color.RGBA{30, 255, 30, 100},
		5,
	)
	p.label = b.AddLabel(parametersLabel, geom.V(0, 0), color.RGBA{255, 255, 255, 40})
}

// UpdateGeometries implements view.View.
func (p *ParameterView) UpdateGeometries(c *container.Container) {
	p.fit(c)
	pos := c.Position()
	p.label.Center = geom.V(pos.X+labelOffsetX, pos.Y+labelHeight/2)
}

// Label returns the caption primitive.
func (p *ParameterView) Label() *view.Primitive { return p.label }

// ConnectHandlers implements view.Interactive.
func (p *ParameterView) ConnectHandlers(src input.Source) { p.connect(src) }

// DisconnectHandlers implements view.Interactive.
func (p *ParameterView) DisconnectHandlers(src input.Source) { p.disconnect(src) }

// Release implements view.Releaser.
func (p *ParameterView) Release() { p.release(p.label) }

var (
	_ view.Initializer = (*ParameterView)(nil)
	_ view.Interactive = (*ParameterView)(nil)
	_ view.Releaser    = (*ParameterView)(nil)
)
