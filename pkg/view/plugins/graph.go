package plugins

import (
	"image/color"

	"github.com/ioxu/boxer/pkg/container"
	"github.com/ioxu/boxer/pkg/input"
	"github.com/ioxu/boxer/pkg/view"
)

// GraphView is a light panel with a green status dot.
type GraphView struct {
	panel
}

// Init implements view.Initializer.
func (g *GraphView) Init(b *view.Batch) {
	g.init(b,
		color.RGBA{210, 210, 210, 90},
		color.RGBA{30, 255, 30, 200},
		color.RGBA{255, 30, 30, 100},
		20,
	)
}

// UpdateGeometries implements view.View.
func (g *GraphView) UpdateGeometries(c *container.Container) { g.fit(c) }

// ConnectHandlers implements view.Interactive.
func (g *GraphView) ConnectHandlers(src input.Source) { g.connect(src) }

// DisconnectHandlers implements view.Interactive.
func (g *GraphView) DisconnectHandlers(src input.Source) { g.disconnect(src) }

// Release implements view.Releaser.
func (g *GraphView) Release() { g.release() }

var (
	_ view.Initializer = (*GraphView)(nil)
	_ view.Interactive = (*GraphView)(nil)
	_ view.Releaser    = (*GraphView)(nil)
)
