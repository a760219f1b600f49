package container

import (
	"math"

	"github.com/ioxu/boxer/pkg/geom"
	"github.com/ioxu/boxer/pkg/handle"
	"github.com/ioxu/boxer/pkg/observability"
)

const (
	// DefaultRatio splits a container in half.
	DefaultRatio = 0.5
	// DefaultHandleMargin is the closest, in pixels, a split handle may be
	// dragged to either edge of its container.
	DefaultHandleMargin = 20.0
)

// Split handle sizes across and along the seam.
const (
	handleHitAcross     = 12.0
	handleHitAlong      = 48.0
	handleDisplayAcross = 4.0
	handleDisplayAlong  = 32.0
)

// SplitOptions configure the split part of a split container.
type SplitOptions struct {
	// Ratio is the share of the area given to child 0. Zero means
	// DefaultRatio; use SetRatio for an explicit zero.
	Ratio float64

	// DefaultChildren creates two plain leaf children named after the split.
	DefaultChildren bool

	// HandleMargin keeps the dragged handle this many pixels away from the
	// edges. Zero means DefaultHandleMargin. On small panes the margin
	// shrinks to a quarter of the container's extent.
	HandleMargin float64
}

func (o SplitOptions) withDefaults() SplitOptions {
	if o.Ratio == 0 {
		o.Ratio = DefaultRatio
	}
	o.Ratio = geom.Clamp(o.Ratio, 0, 1)
	if o.HandleMargin <= 0 {
		o.HandleMargin = DefaultHandleMargin
	}
	return o
}

type splitter struct {
	kind   Kind
	ratio  float64
	margin float64
	handle *handle.BoxHandle
	sub    handle.Subscription
}

// NewSplit creates a split container without an axis. Both children receive
// the full area. Default children are named "<name>_cone" and "<name>_ctwo".
func NewSplit(opts Options, sopts SplitOptions) *Container {
	return newSplit(KindSplit, opts, sopts)
}

// NewHSplit creates a split container that divides its width. Default
// children are named "<name>_cleft" and "<name>_cright".
func NewHSplit(opts Options, sopts SplitOptions) *Container {
	return newSplit(KindHSplit, opts, sopts)
}

// NewVSplit creates a split container that divides its height. Default
// children are named "<name>_cbottom" and "<name>_ctop".
func NewVSplit(opts Options, sopts SplitOptions) *Container {
	return newSplit(KindVSplit, opts, sopts)
}

func newSplit(kind Kind, opts Options, sopts SplitOptions) *Container {
	sopts = sopts.withDefaults()
	c := New(opts)
	c.split = &splitter{kind: kind, ratio: sopts.Ratio, margin: sopts.HandleMargin}

	switch kind {
	case KindHSplit:
		c.split.handle = handle.New(handle.Options{
			Name:          c.Name + "_handle",
			HitWidth:      handleHitAcross,
			HitHeight:     handleHitAlong,
			DisplayWidth:  handleDisplayAcross,
			DisplayHeight: handleDisplayAlong,
		})
	case KindVSplit:
		c.split.handle = handle.New(handle.Options{
			Name:          c.Name + "_handle",
			HitWidth:      handleHitAlong,
			HitHeight:     handleHitAcross,
			DisplayWidth:  handleDisplayAlong,
			DisplayHeight: handleDisplayAcross,
		})
	}
	if c.split.handle != nil {
		c.split.handle.OnPositionUpdated(c.onHandleMoved)
	}

	if sopts.DefaultChildren {
		first, second := "_cone", "_ctwo"
		switch kind {
		case KindHSplit:
			first, second = "_cleft", "_cright"
		case KindVSplit:
			first, second = "_cbottom", "_ctop"
		}
		for i, suffix := range []string{first, second} {
			c.SetChild(New(Options{
				Name:   c.Name + suffix,
				Source: c.source,
				Color:  c.Color,
				Batch:  c.Batch,
			}), i)
		}
	}
	return c
}

// Ratio returns the split ratio, or 0 for a non-split container.
func (c *Container) Ratio() float64 {
	if c.split == nil {
		return 0
	}
	return c.split.ratio
}

// SetRatio changes the split ratio, clamped to [0, 1]. It has no effect on a
// non-split container. Run UpdateGeometries to apply it.
func (c *Container) SetRatio(r float64) {
	if c.split == nil {
		return
	}
	c.split.ratio = geom.Clamp(r, 0, 1)
}

// Handle returns the draggable split handle, or nil.
func (c *Container) Handle() *handle.BoxHandle {
	if c.split == nil {
		return nil
	}
	return c.split.handle
}

// HandleMargin returns the effective clamp margin for the split handle.
func (c *Container) HandleMargin() float64 {
	if c.split == nil {
		return 0
	}
	extent := c.width
	if c.split.kind == KindVSplit {
		extent = c.height
	}
	return math.Min(c.split.margin, extent/4)
}

// SetSplitDefaults sets the options used for splits created by
// ChangeContainer anywhere below this root.
func (c *Container) SetSplitDefaults(o SplitOptions) {
	o.DefaultChildren = false
	c.splitDefaults = o
}

// SplitDefaults returns the options set with SetSplitDefaults.
func (c *Container) SplitDefaults() SplitOptions { return c.splitDefaults }

func (c *Container) isFirst(child *Container) bool {
	return len(c.slots) > 0 && c.slots[0] == child
}

// ChildSize implements LayoutParent. Split containers give child 0
// floor(extent*ratio)-1 along their axis and the rest, minus the one unit
// seam, to child 1.
func (c *Container) ChildSize(child *Container) (float64, float64) {
	if c.split == nil {
		return c.width, c.height
	}
	switch c.split.kind {
	case KindHSplit:
		cut := math.Floor(c.width * c.split.ratio)
		if c.isFirst(child) {
			return math.Max(0, cut-1), c.height
		}
		return c.width - cut, c.height
	case KindVSplit:
		cut := math.Floor(c.height * c.split.ratio)
		if c.isFirst(child) {
			return c.width, math.Max(0, cut-1)
		}
		return c.width, c.height - cut
	}
	return c.width, c.height
}

// ChildPosition implements LayoutParent.
func (c *Container) ChildPosition(child *Container) geom.Vec2 {
	if c.split == nil || c.isFirst(child) {
		return c.position
	}
	switch c.split.kind {
	case KindHSplit:
		return c.position.Add(geom.V(math.Floor(c.width*c.split.ratio), 0))
	case KindVSplit:
		return c.position.Add(geom.V(0, math.Floor(c.height*c.split.ratio)))
	}
	return c.position
}

// pinHandle centres the handle on the seam.
func (c *Container) pinHandle() {
	s := c.split
	if s == nil || s.handle == nil {
		return
	}
	var p geom.Vec2
	if s.kind == KindHSplit {
		p = geom.V(c.position.X+c.width*s.ratio, c.position.Y+c.height/2)
	} else {
		p = geom.V(c.position.X+c.width/2, c.position.Y+c.height*s.ratio)
	}
	s.handle.SetPosition(p, false)
}

// onHandleMoved turns a dragged handle position into a ratio and lays out
// this subtree again.
func (c *Container) onHandleMoved(p geom.Vec2) {
	s := c.split
	m := c.HandleMargin()
	switch s.kind {
	case KindHSplit:
		if c.width <= 0 {
			return
		}
		x := geom.Clamp(p.X, c.position.X+m, c.position.X+c.width-m)
		s.ratio = (x - c.position.X) / c.width
	case KindVSplit:
		if c.height <= 0 {
			return
		}
		y := geom.Clamp(p.Y, c.position.Y+m, c.position.Y+c.height-m)
		s.ratio = (y - c.position.Y) / c.height
	default:
		return
	}
	c.UpdateGeometries()
	observability.Layout().OnRatioChanged(c.Name, s.ratio)
}

func (c *Container) connectHandle() {
	s := c.split
	if s == nil || s.handle == nil {
		return
	}
	s.sub.Cancel()
	if c.source != nil {
		s.sub = s.handle.Connect(c.source)
	}
}
