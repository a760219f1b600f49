// Package view attaches pluggable content to the leaves of a layout tree.
//
// A View draws into a shared Batch owned by the Registry, one Batch per
// concrete view type. The Registry follows the tree it is attached to: it
// keeps view geometry in sync on resize, moves a view to the first new leaf
// when its leaf is split, discards it when its leaf is closed, and connects
// interactive views to input while the pointer is over their leaf.
//
// View types are registered on a Catalog under a display name:
//
//	catalog := view.NewCatalog()
//	_ = catalog.Register("graph", (*plugins.GraphView)(nil))
//	reg := view.NewRegistry(catalog, logger)
//	reg.Attach(root)
//	graph, _ := catalog.Lookup("graph")
//	_ = reg.ChangeContainerView(leaf, graph)
package view

import (
	"github.com/ioxu/boxer/pkg/container"
	"github.com/ioxu/boxer/pkg/input"
)

// View is content shown in a leaf container.
type View interface {
	// UpdateGeometries fits the view to c's current area.
	UpdateGeometries(c *container.Container)
}

// Initializer is implemented by views that create primitives in their
// type's shared batch. Init runs once, right after the view is instantiated.
type Initializer interface {
	Init(b *Batch)
}

// Releaser is implemented by views that must remove their primitives from
// the shared batch when they are discarded.
type Releaser interface {
	Release()
}

// Interactive is implemented by views that want input while the pointer is
// over their leaf.
type Interactive interface {
	ConnectHandlers(src input.Source)
	DisconnectHandlers(src input.Source)
}
