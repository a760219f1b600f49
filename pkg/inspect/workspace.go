package inspect

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ioxu/boxer/pkg/cache"
	"github.com/ioxu/boxer/pkg/container"
	"github.com/ioxu/boxer/pkg/errors"
	"github.com/ioxu/boxer/pkg/render/treeviz"
	"github.com/ioxu/boxer/pkg/view"
)

// svgCacheEntries bounds the rendered SVGs kept per workspace.
const svgCacheEntries = 16

// Workspace serializes access to one tree and its view registry.
type Workspace struct {
	mu     sync.Mutex
	root   *container.Container
	reg    *view.Registry
	logger *log.Logger
	svg    *treeviz.Renderer
}

// NewWorkspace wraps root, which must already be attached to reg. The tree
// is updated once so the first snapshot is current.
func NewWorkspace(root *container.Container, reg *view.Registry, logger *log.Logger) *Workspace {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	root.Update()
	return &Workspace{
		root:   root,
		reg:    reg,
		logger: logger,
		svg:    treeviz.NewRenderer(cache.NewMemoryCache(svgCacheEntries)),
	}
}

// SetRenderCache replaces the in-memory SVG cache, e.g. with a shared one.
// Call it before serving.
func (w *Workspace) SetRenderCache(c cache.Cache) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.svg = treeviz.NewRenderer(c)
}

// Root returns the current root. The tree must not be touched outside Do.
func (w *Workspace) Root() *container.Container {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.root
}

// Do runs fn with exclusive access to the tree. The root is re-derived
// afterwards, since close split can replace it.
func (w *Workspace) Do(fn func(root *container.Container, reg *view.Registry) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	err := fn(w.root, w.reg)
	if r := w.reg.Root(); r != nil {
		w.root = r
	}
	return err
}

// Tree returns a snapshot of the whole tree.
func (w *Workspace) Tree() *Node {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Snapshot(w.root, w.reg.ViewName)
}

// Leaves returns the leaves in pre-order.
func (w *Workspace) Leaves() []Leaf {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Leaf, 0, len(w.root.Leaves()))
	for _, c := range w.root.Leaves() {
		out = append(out, leafOf(c, w.reg.ViewName))
	}
	return out
}

// DOT returns the tree as Graphviz DOT source.
func (w *Workspace) DOT() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return treeviz.ToDOT(w.root, treeviz.Options{Detailed: true, Holes: true, ViewName: w.reg.ViewName})
}

// SVG renders the tree with Graphviz. An unchanged tree is served from the
// render cache.
func (w *Workspace) SVG(ctx context.Context) ([]byte, error) {
	w.mu.Lock()
	r := w.svg
	w.mu.Unlock()
	svg, hit, err := r.SVG(ctx, w.DOT())
	if err != nil {
		return nil, err
	}
	w.logger.Debug("tree rendered", "bytes", len(svg), "cached", hit)
	return svg, nil
}

// Views lists the registered view types, "none" first with index -1.
func (w *Workspace) Views() []ViewType {
	w.mu.Lock()
	defer w.mu.Unlock()
	types := w.reg.Catalog().Types()
	out := make([]ViewType, 0, len(types)+1)
	out = append(out, ViewType{Index: -1, Name: view.NoneName})
	for _, t := range types {
		out = append(out, ViewType{Index: t.Index, Name: t.Name})
	}
	return out
}

func (w *Workspace) find(uid string) (*container.Container, error) {
	id, err := uuid.Parse(uid)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid container id %q", uid)
	}
	c := w.root.Find(id)
	if c == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "no container %s in the tree", uid)
	}
	return c, nil
}

// Apply runs a restructuring action on the container with the given UID and
// returns the containers the action reports.
func (w *Workspace) Apply(uid, action string) ([]Leaf, error) {
	a, err := container.ParseAction(action)
	if err != nil {
		return nil, err
	}

	var out []Leaf
	err = w.Do(func(root *container.Container, reg *view.Registry) error {
		c, err := w.find(uid)
		if err != nil {
			return err
		}
		result, err := container.ChangeContainer(c, a)
		if err != nil {
			return err
		}
		for _, r := range result {
			out = append(out, leafOf(r, reg.ViewName))
		}
		return nil
	})
	if err != nil {
		w.logger.Debug("action rejected", "action", a, "container", uid, "err", err)
		return nil, err
	}
	w.logger.Info("action applied", "action", a, "container", uid)
	return out, nil
}

// SetView shows the named view type in the leaf with the given UID. "none"
// removes the current view.
func (w *Workspace) SetView(uid, name string) error {
	return w.Do(func(_ *container.Container, reg *view.Registry) error {
		c, err := w.find(uid)
		if err != nil {
			return err
		}
		t, err := reg.Catalog().Lookup(name)
		if err != nil {
			return err
		}
		return reg.ChangeContainerView(c, t)
	})
}
