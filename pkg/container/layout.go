package container

import (
	"slices"
	"time"

	"github.com/ioxu/boxer/pkg/geom"
	"github.com/ioxu/boxer/pkg/observability"
)

// Update runs the structural pass and then the geometry pass over c's
// subtree, and stores the resulting leaf set on c. Call it on the root after
// every structural change.
func (c *Container) Update() {
	start := time.Now()
	count, leaves, _ := c.UpdateStructure()
	c.leaves = leaves
	c.UpdateGeometries()
	observability.Layout().OnUpdate(c.Name, count, len(leaves), time.Since(start))
}

// UpdateStructure walks c's subtree in pre-order. Every node gets its depth,
// a sequential id and the root (c), inherits its parent's Source, and drops
// its pointer-motion subscription. Nodes without children are then marked as
// leaves, re-subscribed and collected; the others are marked as branches and
// recursed into. Split containers re-subscribe their handle.
//
// It returns the number of nodes visited, the leaves in pre-order and the
// root.
func (c *Container) UpdateStructure() (int, []*Container, *Container) {
	count, leaves := c.updateStructure(0, 0, nil, c)
	return count, leaves, c
}

func (c *Container) updateStructure(depth, count int, leaves []*Container, root *Container) (int, []*Container) {
	c.depth = depth
	c.id = count
	count++
	c.root = root

	if c.parent != nil && c.parent.source != nil {
		c.source = c.parent.source
	}

	c.detachMotion()
	c.connectHandle()

	if c.occupied() == 0 {
		c.isLeaf = true
		c.attachMotion()
		return count, append(leaves, c)
	}

	c.isLeaf = false
	c.mouseInside = false
	leaves = slices.DeleteFunc(leaves, func(l *Container) bool { return l == c })
	for _, child := range c.slots {
		if child != nil {
			count, leaves = child.updateStructure(depth+1, count, leaves, root)
		}
	}
	return count, leaves
}

// UpdateGeometries resolves c's size and position, pins the split handle,
// announces leaf geometry with a Resized event and recurses into children.
func (c *Container) UpdateGeometries() {
	c.AvailableSizeFromParent()
	c.PositionFromParent()
	c.pinHandle()
	if c.isLeaf {
		c.Emit(Resized{Container: c})
	}
	for _, child := range c.slots {
		if child != nil {
			child.UpdateGeometries()
		}
	}
}

// AvailableSizeFromParent resolves and stores c's size. Explicit containers
// keep their size, children ask their parent, and a root without a parent
// takes the size of its Source.
func (c *Container) AvailableSizeFromParent() (float64, float64) {
	switch {
	case c.explicit:
	case c.parent != nil:
		c.width, c.height = c.parent.ChildSize(c)
	case c.source != nil:
		c.width, c.height = c.source.Size()
	}
	return c.width, c.height
}

// PositionFromParent resolves and stores c's position. A root that takes its
// size from a Source sits at the origin.
func (c *Container) PositionFromParent() geom.Vec2 {
	switch {
	case c.explicit:
	case c.parent != nil:
		c.position = c.parent.ChildPosition(c)
	case c.source != nil:
		c.position = geom.Vec2{}
	}
	return c.position
}

// OnMouseMotion tracks whether the pointer is inside c and emits
// MouseEntered or MouseExited on the transitions. Leaves receive it from the
// Source; repeated motion on the same side emits nothing.
func (c *Container) OnMouseMotion(x, y, _, _ float64) {
	inside := c.Rect().Contains(geom.V(x, y))
	switch {
	case inside && !c.mouseInside:
		c.mouseInside = true
		c.Emit(MouseEntered{Container: c})
	case !inside && c.mouseInside:
		c.mouseInside = false
		c.Emit(MouseExited{Container: c})
	}
}

// Listening reports whether c is subscribed to pointer motion.
func (c *Container) Listening() bool { return c.motionID != 0 }

func (c *Container) attachMotion() {
	if c.source == nil {
		return
	}
	c.motionSrc = c.source
	c.motionID = c.source.OnMouseMotion(c.OnMouseMotion)
}

func (c *Container) detachMotion() {
	if c.motionSrc != nil {
		c.motionSrc.Remove(c.motionID)
	}
	c.motionSrc, c.motionID = nil, 0
}

// detach drops every input subscription held by c itself.
func (c *Container) detach() {
	c.detachMotion()
	if c.split != nil {
		c.split.sub.Cancel()
	}
}
