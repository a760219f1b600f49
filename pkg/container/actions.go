package container

import (
	"slices"
	"strings"
	"time"

	"github.com/ioxu/boxer/pkg/errors"
	"github.com/ioxu/boxer/pkg/observability"
)

// Action is a restructuring operation offered to the user.
type Action int

const (
	// ActionSplitHorizontal replaces a leaf with an HSplit of two new leaves.
	ActionSplitHorizontal Action = iota
	// ActionSplitVertical replaces a leaf with a VSplit of two new leaves.
	ActionSplitVertical
	// ActionClose removes a pane and promotes its sibling into the
	// grandparent, collapsing the split.
	ActionClose
	// ActionCloseSplit replaces the parent split with this pane, discarding
	// the other side.
	ActionCloseSplit
	// ActionCloseOthers keeps only this pane under the root.
	ActionCloseOthers
)

var actionLabels = [...]string{
	ActionSplitHorizontal: "split horizontal",
	ActionSplitVertical:   "split vertical",
	ActionClose:           "close",
	ActionCloseSplit:      "close split",
	ActionCloseOthers:     "close others",
}

// Actions returns every action in menu order.
func Actions() []Action {
	return []Action{ActionSplitHorizontal, ActionSplitVertical, ActionClose, ActionCloseSplit, ActionCloseOthers}
}

// String returns the menu label of a.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionLabels) {
		return "unknown"
	}
	return actionLabels[a]
}

// ParseAction resolves a menu label. Dashes and underscores may stand in for
// spaces, case is ignored, and "hsplit"/"vsplit" are accepted as shorthands.
func ParseAction(s string) (Action, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", " ", "_", " ").Replace(norm)
	switch norm {
	case "hsplit":
		return ActionSplitHorizontal, nil
	case "vsplit":
		return ActionSplitVertical, nil
	}
	for i, label := range actionLabels {
		if label == norm {
			return Action(i), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidAction, "unknown action %q", s)
}

// ChangeContainer applies action to c, updates the tree from its root and
// emits the matching events. The tree is left untouched when an error is
// returned.
//
// Splits return the two new leaves. Close returns the promoted sibling,
// if any. Close split and close others return c.
func ChangeContainer(c *Container, action Action) ([]*Container, error) {
	start := time.Now()
	var (
		out []*Container
		err error
	)
	switch action {
	case ActionSplitHorizontal:
		out, err = splitContainer(c, KindHSplit)
	case ActionSplitVertical:
		out, err = splitContainer(c, KindVSplit)
	case ActionClose:
		out, err = closeContainer(c)
	case ActionCloseSplit:
		out, err = closeSplit(c)
	case ActionCloseOthers:
		out, err = closeOthers(c)
	default:
		err = errors.New(errors.ErrCodeInvalidAction, "unknown action %d", int(action))
	}
	observability.Layout().OnRestructure(action.String(), c.Name, len(out), time.Since(start), err)
	return out, err
}

func splitContainer(c *Container, kind Kind) ([]*Container, error) {
	if c.occupied() != 0 {
		return nil, errors.New(errors.ErrCodeInvalidTopology, "cannot split %q: only leaves can be split", c.Name)
	}

	suffix := "_hsplit"
	if kind == KindVSplit {
		suffix = "_vsplit"
	}
	sopts := c.GetRootContainer().splitDefaults
	sopts.DefaultChildren = true
	s := newSplit(kind, Options{
		Name:   c.Name + suffix,
		Source: c.source,
		Color:  c.Color,
		Batch:  c.Batch,
	}, sopts)

	if c.parent == nil {
		c.SetChild(s, 0)
	} else {
		c.ReplaceBy(s)
	}

	root := s.GetRootContainer()
	root.ClearOverlayHint()
	root.Update()

	leaves := [2]*Container{s.slots[0], s.slots[1]}
	root.Emit(Split{Original: c, NewLeaves: leaves, Root: root})
	return leaves[:], nil
}

func closeContainer(c *Container) ([]*Container, error) {
	parent := c.parent
	if parent == nil {
		return nil, errors.New(errors.ErrCodeInvalidTopology, "closing a root container is not allowed")
	}
	if parent.split == nil {
		return nil, errors.New(errors.ErrCodeInvalidTopology, "cannot close %q: its parent %q is not a split", c.Name, parent.Name)
	}
	grand := parent.parent
	if grand == nil {
		return nil, errors.New(errors.ErrCodeInvalidTopology, "cannot close %q: its split %q is the root", c.Name, parent.Name)
	}

	var sibling *Container
	for _, s := range parent.slots[:min(2, len(parent.slots))] {
		if s != nil && s != c {
			sibling = s
			break
		}
	}

	root := grand.GetRootContainer()
	closed := c.collectLeaves()
	if c.occupied() != 0 {
		closed = append(closed, c)
	}
	c.RemoveChildren(nil)
	parent.RemoveChild(c)

	if sibling != nil {
		parent.RemoveChild(sibling)
		idx, _ := grand.RemoveChild(parent)
		grand.SetChild(sibling, idx)
		root = sibling.GetRootContainer()
	} else {
		grand.RemoveChild(parent)
	}

	for _, n := range closed {
		root.Emit(Collapsed{Container: n, Root: root})
	}
	root.ClearOverlayHint()
	root.Update()

	if sibling == nil {
		return nil, nil
	}
	return []*Container{sibling}, nil
}

func closeSplit(c *Container) ([]*Container, error) {
	parent := c.parent
	if parent == nil {
		return nil, errors.New(errors.ErrCodeInvalidTopology, "cannot close split on %q: it has no parent", c.Name)
	}
	if parent.split == nil {
		return nil, errors.New(errors.ErrCodeInvalidTopology, "cannot close split on %q: its parent %q is not a split", c.Name, parent.Name)
	}

	root := parent.GetRootContainer()
	idx := slices.Index(parent.slots, c)
	parent.slots[idx] = nil
	c.parent = nil

	var closed []*Container
	for _, other := range parent.slots {
		if other != nil {
			closed = append(closed, other.collectLeaves()...)
		}
	}
	parent.RemoveChildren(nil)
	for _, n := range closed {
		root.Emit(Collapsed{Container: n, Root: root})
	}

	c = parent.ReplaceBy(c)
	root = c.GetRootContainer()
	root.ClearOverlayHint()
	root.Update()
	return []*Container{c}, nil
}

func closeOthers(c *Container) ([]*Container, error) {
	root := c.GetRootContainer()

	if c != root {
		parent := c.parent
		parent.slots[slices.Index(parent.slots, c)] = nil
		c.parent = nil
	}

	var closed []*Container
	for _, child := range root.slots {
		if child != nil {
			closed = append(closed, child.collectLeaves()...)
		}
	}
	root.RemoveChildren(nil)
	for _, n := range closed {
		root.Emit(Collapsed{Container: n, Root: root})
	}

	if c != root {
		root.SetChild(c, 0)
	}
	root.ClearOverlayHint()
	root.Update()
	return []*Container{c}, nil
}

// Subdivide splits c, then each resulting leaf, depth times. With alternate
// set the axis flips at every level, starting horizontal. It returns the
// 2^depth leaves created at the last level.
func Subdivide(c *Container, depth int, alternate bool) ([]*Container, error) {
	action := ActionSplitHorizontal
	leaves := []*Container{c}
	for range depth {
		var next []*Container
		for _, leaf := range leaves {
			created, err := ChangeContainer(leaf, action)
			if err != nil {
				return nil, err
			}
			next = append(next, created...)
		}
		leaves = next
		if alternate {
			if action == ActionSplitHorizontal {
				action = ActionSplitVertical
			} else {
				action = ActionSplitHorizontal
			}
		}
	}
	return leaves, nil
}
