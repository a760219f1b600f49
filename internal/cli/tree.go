package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ioxu/boxer/pkg/config"
	"github.com/ioxu/boxer/pkg/container"
	"github.com/ioxu/boxer/pkg/errors"
	"github.com/ioxu/boxer/pkg/input"
	"github.com/ioxu/boxer/pkg/view"
	"github.com/ioxu/boxer/pkg/view/plugins"
)

// tree bundles a layout tree with its registry and the dispatcher standing
// in for the window.
type tree struct {
	src  *input.Dispatcher
	root *container.Container
	reg  *view.Registry
}

// newTree builds the configured root, attaches a registry with the stock
// views and shows the default view in the root leaf.
func newTree(cfg *config.Config, logger *log.Logger) (*tree, error) {
	src := input.NewDispatcher(cfg.Window.Width, cfg.Window.Height)
	root := cfg.NewRoot(src)
	reg := view.NewRegistry(plugins.NewCatalog(), logger)
	reg.Attach(root)
	root.Update()

	t := &tree{src: src, root: root, reg: reg}
	if name := cfg.Views.Default; name != "" {
		if err := t.setView(root, name); err != nil {
			return nil, fmt.Errorf("default view: %w", err)
		}
	}
	return t, nil
}

// sync re-derives the root after an operation that may have replaced it.
func (t *tree) sync() {
	if r := t.reg.Root(); r != nil {
		t.root = r
	}
}

func (t *tree) apply(c *container.Container, a container.Action) ([]*container.Container, error) {
	out, err := container.ChangeContainer(c, a)
	t.sync()
	return out, err
}

func (t *tree) setView(c *container.Container, name string) error {
	typ, err := t.reg.Catalog().Lookup(name)
	if err != nil {
		return err
	}
	return t.reg.ChangeContainerView(c, typ)
}

// run executes startup steps in order.
func (t *tree) run(steps []config.Startup) error {
	for i, s := range steps {
		leaves := t.root.Leaves()
		if s.Leaf >= len(leaves) {
			return errors.New(errors.ErrCodeInvalidConfig, "step %d: leaf %d out of range, the tree has %d leaves", i, s.Leaf, len(leaves))
		}
		leaf := leaves[s.Leaf]
		if s.Action != "" {
			a, err := container.ParseAction(s.Action)
			if err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
			if _, err := t.apply(leaf, a); err != nil {
				return fmt.Errorf("step %d: %s on %q: %w", i, a, leaf.Name, err)
			}
			continue
		}
		if err := t.setView(leaf, s.View); err != nil {
			return fmt.Errorf("step %d: view %q on %q: %w", i, s.View, leaf.Name, err)
		}
	}
	return nil
}

// nodeCount counts the containers in the tree.
func (t *tree) nodeCount() int {
	n := 0
	t.root.Walk(func(*container.Container) bool {
		n++
		return true
	})
	return n
}

// parseSteps turns --step values into startup steps. A value is
// "LEAF:ACTION" or "LEAF:view=NAME".
func parseSteps(values []string) ([]config.Startup, error) {
	steps := make([]config.Startup, 0, len(values))
	for _, v := range values {
		idx, name, ok := strings.Cut(v, ":")
		if !ok || name == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "step %q: want LEAF:ACTION or LEAF:view=NAME", v)
		}
		leaf, err := strconv.Atoi(idx)
		if err != nil || leaf < 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "step %q: leaf must be a non-negative integer", v)
		}
		s := config.Startup{Leaf: leaf}
		if viewName, isView := strings.CutPrefix(name, "view="); isView {
			s.View = viewName
		} else {
			s.Action = name
		}
		steps = append(steps, s)
	}
	return steps, nil
}
