// Package container implements boxer's hierarchical split-pane layout tree.
//
// A tree is made of *Container nodes. Plain containers hand their whole area
// to their children; split containers (see NewHSplit and NewVSplit) divide it
// in two along one axis according to a ratio that the user can drag. Leaves,
// the nodes with no children, are the panes that carry views.
//
// The tree is mutable and single-threaded. Every structural change must be
// followed by Update on the root before the next input event is delivered:
//
//	root := container.New(container.Options{Name: "root", Source: window})
//	leaves, err := container.ChangeContainer(root, container.ActionSplitHorizontal)
//	// ChangeContainer has already called root.Update().
//
// Update runs two passes. The structural pass numbers nodes, finds the leaf
// set and re-subscribes exactly the current leaves to pointer motion on the
// input Source. The geometry pass resolves every node's position and size top
// down and announces leaf sizes with a Resized event.
//
// Ownership runs downward only: a parent owns its slots, a child keeps a
// non-owning pointer to its parent. Removing a child leaves an empty slot (a
// nil entry) so split containers keep their two positional slots stable.
package container

import (
	"slices"

	"github.com/google/uuid"

	"github.com/ioxu/boxer/pkg/geom"
	"github.com/ioxu/boxer/pkg/input"
)

// DefaultSize is the width and height of a container constructed without
// explicit dimensions.
const DefaultSize = 128.0

// Kind identifies the layout behaviour of a container.
type Kind int

const (
	// KindContainer passes its full area to every child.
	KindContainer Kind = iota
	// KindSplit is a split without an axis. Children share the full area.
	KindSplit
	// KindHSplit places child 0 on the left and child 1 on the right.
	KindHSplit
	// KindVSplit places child 0 at the bottom and child 1 on top.
	KindVSplit
)

// String returns the type name used in tree dumps.
func (k Kind) String() string {
	switch k {
	case KindSplit:
		return "SplitContainer"
	case KindHSplit:
		return "HSplitContainer"
	case KindVSplit:
		return "VSplitContainer"
	default:
		return "Container"
	}
}

// LayoutParent is implemented by anything that can place a child container.
// *Container implements it; split containers compute halves of their area.
type LayoutParent interface {
	ChildSize(child *Container) (width, height float64)
	ChildPosition(child *Container) geom.Vec2
}

var _ LayoutParent = (*Container)(nil)

// Options configure a new container.
type Options struct {
	Name string

	// Source delivers input and, for a root without explicit dimensions,
	// its size. Children inherit their parent's Source.
	Source input.Source

	// Width and Height default to DefaultSize when zero.
	Width, Height float64

	// Explicit pins Position, Width and Height: the geometry pass will not
	// overwrite them from the parent or the Source.
	Explicit bool
	Position geom.Vec2

	// Color and Batch are opaque drawing handles passed through to renderers
	// and to containers created by restructuring.
	Color any
	Batch any
}

// Container is a node in the layout tree. Construct with New, NewSplit,
// NewHSplit or NewVSplit.
type Container struct {
	// Name is a display label. It is not required to be unique.
	Name string
	// UID is a stable identifier assigned at construction.
	UID uuid.UUID

	Color any
	Batch any

	position geom.Vec2
	width    float64
	height   float64
	explicit bool
	source   input.Source

	parent *Container
	slots  []*Container
	split  *splitter

	// Refreshed by the structural pass.
	id          int
	depth       int
	isLeaf      bool
	root        *Container
	leaves      []*Container
	mouseInside bool

	motionSrc input.Source
	motionID  input.HandlerID

	observers     []observer
	splitDefaults SplitOptions

	viewIndex  int
	overlay    Action
	hasOverlay bool
}

// New creates a plain container with no children.
func New(opts Options) *Container {
	c := &Container{
		Name:      opts.Name,
		UID:       uuid.New(),
		Color:     opts.Color,
		Batch:     opts.Batch,
		position:  opts.Position,
		width:     opts.Width,
		height:    opts.Height,
		explicit:  opts.Explicit,
		source:    opts.Source,
		viewIndex: -1,
	}
	if c.Name == "" {
		c.Name = "container"
	}
	if c.width == 0 {
		c.width = DefaultSize
	}
	if c.height == 0 {
		c.height = DefaultSize
	}
	return c
}

// String returns "name (Kind)".
func (c *Container) String() string {
	return c.Name + " (" + c.Kind().String() + ")"
}

// Kind reports the layout behaviour of c.
func (c *Container) Kind() Kind {
	if c.split == nil {
		return KindContainer
	}
	return c.split.kind
}

// IsSplit reports whether c is any kind of split container.
func (c *Container) IsSplit() bool { return c.split != nil }

// ID returns the pre-order number assigned by the last structural pass.
func (c *Container) ID() int { return c.id }

// Depth returns the distance from the root found by the last structural pass.
func (c *Container) Depth() int { return c.depth }

// Position returns the bottom-left corner.
func (c *Container) Position() geom.Vec2 { return c.position }

// SetPosition sets the bottom-left corner. Unless c is explicit the next
// geometry pass recomputes it.
func (c *Container) SetPosition(p geom.Vec2) { c.position = p }

// Width returns the current width.
func (c *Container) Width() float64 { return c.width }

// Height returns the current height.
func (c *Container) Height() float64 { return c.height }

// SetSize sets width and height. Unless c is explicit the next geometry pass
// recomputes them.
func (c *Container) SetSize(width, height float64) {
	c.width, c.height = width, height
}

// Rect returns the area covered by c.
func (c *Container) Rect() geom.Rect {
	return geom.R(c.position.X, c.position.Y, c.width, c.height)
}

// Outline returns the rectangle renderers draw as the container border.
func (c *Container) Outline() geom.Rect { return c.Rect().Inset(outlineMargin) }

const outlineMargin = 1

// Explicit reports whether geometry is pinned.
func (c *Container) Explicit() bool { return c.explicit }

// SetExplicit pins or releases the current geometry.
func (c *Container) SetExplicit(explicit bool) { c.explicit = explicit }

// Source returns the input source, or nil.
func (c *Container) Source() input.Source { return c.source }

// SetSource changes the input source. Run Update afterwards so handlers move
// to the new source.
func (c *Container) SetSource(src input.Source) { c.source = src }

// Parent returns the parent, or nil for a root or a detached node.
func (c *Container) Parent() *Container { return c.parent }

// IsRoot reports whether c has no parent.
func (c *Container) IsRoot() bool { return c.parent == nil }

// IsLeaf reports whether the last structural pass found c without children.
func (c *Container) IsLeaf() bool { return c.isLeaf }

// RootContainer returns the root recorded by the last structural pass, or c
// itself if no pass has run.
func (c *Container) RootContainer() *Container {
	if c.root == nil {
		return c
	}
	return c.root
}

// Leaves returns the leaf set stored by the last Update called on c.
func (c *Container) Leaves() []*Container { return c.leaves }

// MouseInside reports whether the pointer was last seen inside c.
func (c *Container) MouseInside() bool { return c.mouseInside }

// ViewIndex returns the catalog index of the view shown in c, or -1.
func (c *Container) ViewIndex() int { return c.viewIndex }

// SetViewIndex records the catalog index of the view shown in c.
func (c *Container) SetViewIndex(i int) { c.viewIndex = i }

// SetOverlayHint asks renderers to preview action on c.
func (c *Container) SetOverlayHint(a Action) {
	c.overlay, c.hasOverlay = a, true
}

// OverlayHint returns the pending preview, if any.
func (c *Container) OverlayHint() (Action, bool) { return c.overlay, c.hasOverlay }

// ClearOverlayHint drops any pending preview.
func (c *Container) ClearOverlayHint() { c.hasOverlay = false }

// ChildCount returns the number of slots, empty ones included.
func (c *Container) ChildCount() int { return len(c.slots) }

// Child returns the occupant of slot i, or nil for an empty or missing slot.
func (c *Container) Child(i int) *Container {
	if i < 0 || i >= len(c.slots) {
		return nil
	}
	return c.slots[i]
}

// Children returns the occupied slots in order.
func (c *Container) Children() []*Container {
	out := make([]*Container, 0, len(c.slots))
	for _, child := range c.slots {
		if child != nil {
			out = append(out, child)
		}
	}
	return out
}

func (c *Container) occupied() int {
	n := 0
	for _, child := range c.slots {
		if child != nil {
			n++
		}
	}
	return n
}

func (c *Container) adopt(child *Container) {
	child.parent = c
	if c.source != nil {
		child.source = c.source
	}
}

// AddChild appends child. Adding a child that is already present does
// nothing.
func (c *Container) AddChild(child *Container) {
	if child == nil || slices.Contains(c.slots, child) {
		return
	}
	c.adopt(child)
	c.slots = append(c.slots, child)
}

// SetChild places child in slot index, padding with empty slots as needed.
// An existing occupant is orphaned. Negative indexes are ignored.
func (c *Container) SetChild(child *Container, index int) {
	if child == nil || index < 0 {
		return
	}
	for len(c.slots) <= index {
		c.slots = append(c.slots, nil)
	}
	if old := c.slots[index]; old != nil && old != child {
		old.parent = nil
		old.source = nil
		old.detach()
	}
	c.adopt(child)
	c.slots[index] = child
}

// RemoveChild empties child's slot and returns its index. The child loses
// its parent, its Source and its input subscriptions; its own children are
// left in place.
func (c *Container) RemoveChild(child *Container) (int, bool) {
	if child == nil {
		return -1, false
	}
	idx := slices.Index(c.slots, child)
	if idx < 0 {
		return -1, false
	}
	c.slots[idx] = nil
	child.parent = nil
	child.detach()
	child.source = nil
	return idx, true
}

// ReplaceChild puts repl into old's slot.
func (c *Container) ReplaceChild(old, repl *Container) (int, bool) {
	idx, ok := c.RemoveChild(old)
	if ok {
		c.SetChild(repl, idx)
	}
	return idx, ok
}

// RemoveChildren detaches every descendant of c and returns them appended to
// acc in pre-order: a child, then its descendants, then the next child.
// Afterwards c has no slots at all.
func (c *Container) RemoveChildren(acc []*Container) []*Container {
	for _, child := range c.slots {
		if child == nil {
			continue
		}
		child.parent = nil
		child.detach()
		child.source = nil
		child.mouseInside = false
		acc = append(acc, child)
		acc = child.RemoveChildren(acc)
	}
	c.slots = nil
	return acc
}

// ReplaceBy puts repl where c is. If c has a parent, repl takes c's slot.
// Otherwise repl becomes a root configured like c: it takes c's geometry,
// explicit flag, Source, event subscriptions and split defaults.
//
// Always continue with the returned container.
func (c *Container) ReplaceBy(repl *Container) *Container {
	if c.parent != nil {
		c.parent.ReplaceChild(c, repl)
		return repl
	}
	repl.explicit = c.explicit
	repl.position = c.position
	repl.width, repl.height = c.width, c.height
	repl.source = c.source
	repl.observers = append(repl.observers, c.observers...)
	repl.splitDefaults = c.splitDefaults
	c.observers = nil
	c.detach()
	return repl
}

// GetRootContainer walks parent pointers up to the root.
func (c *Container) GetRootContainer() *Container {
	n := c
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// Walk visits c and its descendants in pre-order, skipping empty slots.
// Returning false from fn prunes the subtree below that node.
func (c *Container) Walk(fn func(*Container) bool) {
	if !fn(c) {
		return
	}
	for _, child := range c.slots {
		if child != nil {
			child.Walk(fn)
		}
	}
}

// Find returns the container in c's subtree with the given UID.
func (c *Container) Find(id uuid.UUID) *Container {
	var found *Container
	c.Walk(func(n *Container) bool {
		if found != nil {
			return false
		}
		if n.UID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// LeafAt returns the leaf whose area contains (x, y), or nil.
func (c *Container) LeafAt(x, y float64) *Container {
	var hit *Container
	c.Walk(func(n *Container) bool {
		if hit != nil || !n.Rect().Contains(geom.V(x, y)) {
			return false
		}
		if n.occupied() == 0 {
			hit = n
		}
		return true
	})
	return hit
}

// collectLeaves returns the childless nodes under and including c.
func (c *Container) collectLeaves() []*Container {
	var out []*Container
	c.Walk(func(n *Container) bool {
		if n.occupied() == 0 {
			out = append(out, n)
		}
		return true
	})
	return out
}
