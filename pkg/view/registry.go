package view

import (
	"io"
	"reflect"

	"github.com/charmbracelet/log"

	"github.com/ioxu/boxer/pkg/container"
	"github.com/ioxu/boxer/pkg/errors"
	"github.com/ioxu/boxer/pkg/input"
	"github.com/ioxu/boxer/pkg/observability"
)

// Registry maps leaf containers to their views and keeps them in step with
// the tree it is attached to.
//
// A Registry is driven from the goroutine that owns the tree and is not safe
// for concurrent use.
type Registry struct {
	catalog *Catalog
	logger  *log.Logger

	views     map[*container.Container]View
	connected map[*container.Container]input.Source
	batches   map[reflect.Type]*Batch

	root *container.Container
	sub  container.Subscription
}

// NewRegistry creates an empty registry offering the types in catalog. A nil
// logger discards output.
func NewRegistry(catalog *Catalog, logger *log.Logger) *Registry {
	if catalog == nil {
		catalog = NewCatalog()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Registry{
		catalog:   catalog,
		logger:    logger,
		views:     make(map[*container.Container]View),
		connected: make(map[*container.Container]input.Source),
		batches:   make(map[reflect.Type]*Batch),
	}
}

// Catalog returns the catalog the registry instantiates views from.
func (r *Registry) Catalog() *Catalog { return r.catalog }

// Attach subscribes the registry to the tree rooted at root. A registry
// follows one tree at a time; attaching again moves it.
func (r *Registry) Attach(root *container.Container) {
	r.Detach()
	r.root = root
	r.sub = root.Subscribe(r.handle)
}

// Detach unsubscribes from the current tree. Views stay registered.
func (r *Registry) Detach() {
	if r.root == nil {
		return
	}
	r.root.GetRootContainer().Unsubscribe(r.sub)
	r.root, r.sub = nil, 0
}

// Root returns the root of the attached tree, or nil.
func (r *Registry) Root() *container.Container {
	if r.root == nil {
		return nil
	}
	return r.root.GetRootContainer()
}

func (r *Registry) handle(ev container.Event) {
	switch e := ev.(type) {
	case container.Resized:
		r.root = e.Container.GetRootContainer()
		if v, ok := r.views[e.Container]; ok {
			v.UpdateGeometries(e.Container)
		}
	case container.Split:
		r.ChangeContainerViewOnSplit(e.Original, e.NewLeaves, e.Root)
	case container.Collapsed:
		r.CollapseContainerView(e.Container, e.Root)
	case container.MouseEntered:
		r.connect(e.Container)
	case container.MouseExited:
		r.disconnect(e.Container)
	}
}

// View returns the view shown in c, or nil.
func (r *Registry) View(c *container.Container) View { return r.views[c] }

// ViewName returns the catalog name of the view shown in c, or "" if c has
// no view.
func (r *Registry) ViewName(c *container.Container) string {
	v, ok := r.views[c]
	if !ok {
		return ""
	}
	return r.typeName(v)
}

// Len returns the number of views in the registry.
func (r *Registry) Len() int { return len(r.views) }

// Each calls fn for every registered view in pre-order of the attached tree.
func (r *Registry) Each(fn func(c *container.Container, v View)) {
	root := r.Root()
	if root == nil {
		return
	}
	root.Walk(func(c *container.Container) bool {
		if v, ok := r.views[c]; ok {
			fn(c, v)
		}
		return true
	})
}

// Batch returns the shared batch for the concrete view type rt, or nil if no
// view of that type was ever created.
func (r *Registry) Batch(rt reflect.Type) *Batch { return r.batches[rt] }

// Batches returns the batches created so far in catalog order.
func (r *Registry) Batches() []*Batch {
	var out []*Batch
	for _, t := range r.catalog.types {
		if b, ok := r.batches[t.rtype]; ok {
			out = append(out, b)
		}
	}
	return out
}

func (r *Registry) batchFor(t *Type) *Batch {
	b, ok := r.batches[t.rtype]
	if !ok {
		b = NewBatch(t.Name)
		r.batches[t.rtype] = b
		observability.View().OnBatchCreated(t.Name)
		r.logger.Debug("batch created", "view", t.Name)
	}
	return b
}

func (r *Registry) typeName(v View) string {
	if idx := r.catalog.IndexOf(reflect.TypeOf(v)); idx >= 0 {
		return r.catalog.types[idx].Name
	}
	return reflect.TypeOf(v).String()
}

// ChangeContainerView shows a view of type t in the leaf c. A nil t removes
// the current view. Asking for the type already shown does nothing, so the
// existing instance and its state survive. Containers with children are
// rejected with ErrCodeInvalidTopology.
func (r *Registry) ChangeContainerView(c *container.Container, t *Type) error {
	if c == nil {
		return errors.New(errors.ErrCodeInvalidInput, "container is nil")
	}
	if len(c.Children()) > 0 {
		return errors.New(errors.ErrCodeInvalidTopology, "%q is not a leaf", c.Name)
	}
	if t != nil && (t.Index >= r.catalog.Len() || r.catalog.types[t.Index] != t) {
		return errors.New(errors.ErrCodeInvalidViewType, "view type %q is not in this registry's catalog", t.Name)
	}

	old, had := r.views[c]
	if t == nil {
		if !had {
			return nil
		}
		r.discard(c, old)
		c.SetViewIndex(-1)
		c.Emit(container.ViewChanged{Container: c, View: container.ViewSelection{Index: -1, Name: NoneName}})
		return nil
	}
	if had && reflect.TypeOf(old) == t.rtype {
		return nil
	}
	if had {
		r.discard(c, old)
	}

	v := t.New()
	if in, ok := v.(Initializer); ok {
		in.Init(r.batchFor(t))
	}
	r.views[c] = v
	v.UpdateGeometries(c)
	c.SetViewIndex(t.Index)
	observability.View().OnViewCreated(t.Name, c.Name)
	r.logger.Debug("view created", "view", t.Name, "container", c.Name)

	c.Emit(container.ViewChanged{Container: c, View: container.ViewSelection{Index: t.Index, Name: t.Name}})
	if c.MouseInside() {
		r.connect(c)
	}
	return nil
}

// ChangeContainerViewOnSplit moves the view of original, if any, to the
// first of the leaves that replaced it. The instance is kept. root is the
// root of the tree after the split.
func (r *Registry) ChangeContainerViewOnSplit(original *container.Container, leaves [2]*container.Container, root *container.Container) {
	if root != nil && r.root != nil {
		r.root = root
	}
	v, ok := r.views[original]
	if !ok {
		return
	}
	r.disconnect(original)
	delete(r.views, original)
	original.SetViewIndex(-1)

	target := leaves[0]
	r.views[target] = v
	v.UpdateGeometries(target)
	idx := r.catalog.IndexOf(reflect.TypeOf(v))
	target.SetViewIndex(idx)

	name := r.typeName(v)
	observability.View().OnViewMigrated(name, original.Name, target.Name)
	r.logger.Debug("view migrated", "view", name, "from", original.Name, "to", target.Name)
	target.Emit(container.ViewChanged{Container: target, View: container.ViewSelection{Index: idx, Name: name}})
	if target.MouseInside() {
		r.connect(target)
	}
}

// CollapseContainerView drops the view of a container removed from the tree
// rooted at root.
func (r *Registry) CollapseContainerView(c *container.Container, root *container.Container) {
	if root != nil && r.root != nil {
		r.root = root
	}
	v, ok := r.views[c]
	if !ok {
		return
	}
	r.discard(c, v)
	c.SetViewIndex(-1)
}

func (r *Registry) discard(c *container.Container, v View) {
	r.disconnect(c)
	delete(r.views, c)
	if rel, ok := v.(Releaser); ok {
		rel.Release()
	}
	name := r.typeName(v)
	observability.View().OnViewDiscarded(name, c.Name)
	r.logger.Debug("view discarded", "view", name, "container", c.Name)
}

func (r *Registry) connect(c *container.Container) {
	if _, done := r.connected[c]; done {
		return
	}
	iv, ok := r.views[c].(Interactive)
	src := c.Source()
	if !ok || src == nil {
		return
	}
	iv.ConnectHandlers(src)
	r.connected[c] = src
}

func (r *Registry) disconnect(c *container.Container) {
	src, ok := r.connected[c]
	if !ok {
		return
	}
	delete(r.connected, c)
	if iv, ok := r.views[c].(Interactive); ok {
		iv.DisconnectHandlers(src)
	}
}
