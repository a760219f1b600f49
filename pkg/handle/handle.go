// Package handle implements draggable box handles.
//
// A BoxHandle is a rectangular hit area centred on its position. It
// highlights while the pointer hovers over it, becomes selected when pressed
// with the left button while highlighted, follows the pointer while selected,
// and reports every position change to its observers. Split containers use
// one handle each to let the user drag the split ratio.
package handle

import (
	"github.com/ioxu/boxer/pkg/geom"
	"github.com/ioxu/boxer/pkg/input"
)

// Default sizes in pixels.
const (
	DefaultHitWidth      = 75.0
	DefaultHitHeight     = 45.0
	DefaultDisplayWidth  = 50.0
	DefaultDisplayHeight = 20.0
)

// BoxHandle is a rectangular draggable handle. Construct with New; the zero
// value has no hit area.
type BoxHandle struct {
	Name string

	HitWidth, HitHeight         float64
	DisplayWidth, DisplayHeight float64

	position    geom.Vec2
	hilighted   bool
	selected    bool
	positionFns []func(geom.Vec2)
	draggedFns  []func()
	releasedFns []func()
}

// Options configure a BoxHandle. Zero sizes take the package defaults.
type Options struct {
	Name          string
	Position      geom.Vec2
	HitWidth      float64
	HitHeight     float64
	DisplayWidth  float64
	DisplayHeight float64
}

// New creates a handle.
func New(opts Options) *BoxHandle {
	h := &BoxHandle{
		Name:          opts.Name,
		position:      opts.Position,
		HitWidth:      orDefault(opts.HitWidth, DefaultHitWidth),
		HitHeight:     orDefault(opts.HitHeight, DefaultHitHeight),
		DisplayWidth:  orDefault(opts.DisplayWidth, DefaultDisplayWidth),
		DisplayHeight: orDefault(opts.DisplayHeight, DefaultDisplayHeight),
	}
	if h.Name == "" {
		h.Name = "BoxHandle"
	}
	return h
}

func orDefault(v, d float64) float64 {
	if v <= 0 {
		return d
	}
	return v
}

// Position returns the handle centre.
func (h *BoxHandle) Position() geom.Vec2 { return h.position }

// Hilighted reports whether the pointer is over the hit area.
func (h *BoxHandle) Hilighted() bool { return h.hilighted }

// Selected reports whether the handle is being dragged.
func (h *BoxHandle) Selected() bool { return h.selected }

// HitBox returns the interactive area.
func (h *BoxHandle) HitBox() geom.Rect {
	return geom.Centered(h.position, h.HitWidth, h.HitHeight)
}

// DisplayBox returns the visible area.
func (h *BoxHandle) DisplayBox() geom.Rect {
	return geom.Centered(h.position, h.DisplayWidth, h.DisplayHeight)
}

// IsInside reports whether p lies in the hit area.
func (h *BoxHandle) IsInside(p geom.Vec2) bool {
	return h.HitBox().Contains(p)
}

// SetPosition moves the handle. With notify set, position observers run
// first and may constrain the position by calling SetPosition(p, false).
func (h *BoxHandle) SetPosition(p geom.Vec2, notify bool) {
	h.position = p
	if notify {
		for _, fn := range h.positionFns {
			fn(h.position)
		}
	}
}

// OnPositionUpdated registers fn to run whenever the handle is moved with
// notification.
func (h *BoxHandle) OnPositionUpdated(fn func(geom.Vec2)) {
	h.positionFns = append(h.positionFns, fn)
}

// OnDragged registers fn to run at every drag step, before the move.
func (h *BoxHandle) OnDragged(fn func()) {
	h.draggedFns = append(h.draggedFns, fn)
}

// OnReleased registers fn to run when a drag ends over the handle.
func (h *BoxHandle) OnReleased(fn func()) {
	h.releasedFns = append(h.releasedFns, fn)
}

// OnMouseMotion updates the hover state.
func (h *BoxHandle) OnMouseMotion(x, y, _, _ float64) {
	h.hilighted = h.IsInside(geom.V(x, y))
}

// OnMousePress selects the handle on a left press over it.
func (h *BoxHandle) OnMousePress(x, y float64, buttons input.Buttons, _ input.Modifiers) {
	h.hilighted = h.IsInside(geom.V(x, y))
	h.selected = h.hilighted && buttons.Has(input.ButtonLeft)
}

// OnMouseRelease ends a drag.
func (h *BoxHandle) OnMouseRelease(_, _ float64, buttons input.Buttons, _ input.Modifiers) {
	if h.hilighted && buttons.Has(input.ButtonLeft) {
		for _, fn := range h.releasedFns {
			fn()
		}
	}
	h.selected = false
}

// OnMouseDrag moves a selected handle by the pointer delta.
func (h *BoxHandle) OnMouseDrag(_, _, dx, dy float64, _ input.Buttons, _ input.Modifiers) {
	if !h.selected {
		return
	}
	for _, fn := range h.draggedFns {
		fn()
	}
	h.SetPosition(h.position.Add(geom.V(dx, dy)), true)
}

// Subscription holds the ids of a handle's registrations on a Source.
type Subscription struct {
	src input.Source
	ids [3]input.HandlerID
}

// Connect subscribes the handle to press, release and drag events of src.
// Hover state is refreshed on press, so motion is left to the frontend.
func (h *BoxHandle) Connect(src input.Source) Subscription {
	return Subscription{
		src: src,
		ids: [3]input.HandlerID{
			src.OnMousePress(h.OnMousePress),
			src.OnMouseRelease(h.OnMouseRelease),
			src.OnMouseDrag(h.OnMouseDrag),
		},
	}
}

// Active reports whether s holds live registrations.
func (s Subscription) Active() bool { return s.src != nil }

// Cancel removes every registration in s. Cancelling an inactive
// subscription is a no-op.
func (s *Subscription) Cancel() {
	if s.src == nil {
		return
	}
	for _, id := range s.ids {
		s.src.Remove(id)
	}
	*s = Subscription{}
}
