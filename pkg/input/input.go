// Package input defines the window-side input contract consumed by the
// layout tree, and a Dispatcher that implements it in-process.
//
// A Source is whatever owns the event loop: a native window, a terminal, or a
// test. Subscribers receive mouse events in window coordinates with the origin
// at the bottom-left. Subscriptions are identified by a HandlerID so they can
// be removed again; Go func values are not comparable.
package input

import "slices"

// Buttons is a bit set of mouse buttons.
type Buttons int

// Mouse buttons.
const (
	ButtonLeft Buttons = 1 << iota
	ButtonMiddle
	ButtonRight
)

// Has reports whether b contains all buttons in o.
func (b Buttons) Has(o Buttons) bool { return b&o == o }

// Modifiers is a bit set of keyboard modifiers held during a mouse event.
type Modifiers int

// Keyboard modifiers.
const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
)

// MotionFunc receives pointer motion.
type MotionFunc func(x, y, dx, dy float64)

// ButtonFunc receives a button press or release.
type ButtonFunc func(x, y float64, buttons Buttons, mods Modifiers)

// DragFunc receives pointer motion while buttons are held.
type DragFunc func(x, y, dx, dy float64, buttons Buttons, mods Modifiers)

// HandlerID identifies a subscription on a Source. The zero value is never
// issued and is safe to pass to Remove.
type HandlerID uint64

// Source delivers mouse input and reports the available drawing area.
type Source interface {
	// Size returns the available area, e.g. the window size in pixels.
	Size() (width, height float64)

	OnMouseMotion(fn MotionFunc) HandlerID
	OnMousePress(fn ButtonFunc) HandlerID
	OnMouseRelease(fn ButtonFunc) HandlerID
	OnMouseDrag(fn DragFunc) HandlerID

	// Remove cancels a subscription. Unknown ids are ignored.
	Remove(id HandlerID)
}

type entry[F any] struct {
	id HandlerID
	fn F
}

// Dispatcher is an in-process Source. Frontends feed it events through the
// MouseMotion, MousePress, MouseRelease and MouseDrag methods.
//
// Dispatcher is not safe for concurrent use; it is driven from the goroutine
// that owns the event loop.
type Dispatcher struct {
	width, height float64

	next    HandlerID
	motion  []entry[MotionFunc]
	press   []entry[ButtonFunc]
	release []entry[ButtonFunc]
	drag    []entry[DragFunc]
}

// NewDispatcher creates a dispatcher reporting the given size.
func NewDispatcher(width, height float64) *Dispatcher {
	return &Dispatcher{width: width, height: height}
}

// Size implements Source.
func (d *Dispatcher) Size() (float64, float64) { return d.width, d.height }

// SetSize changes the reported size, e.g. after a window resize.
func (d *Dispatcher) SetSize(width, height float64) {
	d.width, d.height = width, height
}

func (d *Dispatcher) id() HandlerID {
	d.next++
	return d.next
}

// OnMouseMotion implements Source.
func (d *Dispatcher) OnMouseMotion(fn MotionFunc) HandlerID {
	id := d.id()
	d.motion = append(d.motion, entry[MotionFunc]{id, fn})
	return id
}

// OnMousePress implements Source.
func (d *Dispatcher) OnMousePress(fn ButtonFunc) HandlerID {
	id := d.id()
	d.press = append(d.press, entry[ButtonFunc]{id, fn})
	return id
}

// OnMouseRelease implements Source.
func (d *Dispatcher) OnMouseRelease(fn ButtonFunc) HandlerID {
	id := d.id()
	d.release = append(d.release, entry[ButtonFunc]{id, fn})
	return id
}

// OnMouseDrag implements Source.
func (d *Dispatcher) OnMouseDrag(fn DragFunc) HandlerID {
	id := d.id()
	d.drag = append(d.drag, entry[DragFunc]{id, fn})
	return id
}

// Remove implements Source.
func (d *Dispatcher) Remove(id HandlerID) {
	if id == 0 {
		return
	}
	d.motion = without(d.motion, id)
	d.press = without(d.press, id)
	d.release = without(d.release, id)
	d.drag = without(d.drag, id)
}

func without[F any](list []entry[F], id HandlerID) []entry[F] {
	return slices.DeleteFunc(list, func(e entry[F]) bool { return e.id == id })
}

// MotionHandlers returns the number of motion subscriptions.
func (d *Dispatcher) MotionHandlers() int { return len(d.motion) }

// ButtonHandlers returns the number of press, release and drag subscriptions.
func (d *Dispatcher) ButtonHandlers() int {
	return len(d.press) + len(d.release) + len(d.drag)
}

// Handlers are invoked from a snapshot so a callback may subscribe or
// unsubscribe without disturbing the current delivery.

// MouseMotion delivers pointer motion to all motion subscribers.
func (d *Dispatcher) MouseMotion(x, y, dx, dy float64) {
	for _, e := range slices.Clone(d.motion) {
		e.fn(x, y, dx, dy)
	}
}

// MousePress delivers a button press.
func (d *Dispatcher) MousePress(x, y float64, buttons Buttons, mods Modifiers) {
	for _, e := range slices.Clone(d.press) {
		e.fn(x, y, buttons, mods)
	}
}

// MouseRelease delivers a button release.
func (d *Dispatcher) MouseRelease(x, y float64, buttons Buttons, mods Modifiers) {
	for _, e := range slices.Clone(d.release) {
		e.fn(x, y, buttons, mods)
	}
}

// MouseDrag delivers motion with buttons held.
func (d *Dispatcher) MouseDrag(x, y, dx, dy float64, buttons Buttons, mods Modifiers) {
	for _, e := range slices.Clone(d.drag) {
		e.fn(x, y, dx, dy, buttons, mods)
	}
}

var _ Source = (*Dispatcher)(nil)
