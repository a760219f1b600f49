package container

import (
	"slices"
	"testing"

	"github.com/ioxu/boxer/pkg/geom"
	"github.com/ioxu/boxer/pkg/input"
)

// buildTree returns a root with an hsplit whose right side is a vsplit.
func buildTree(t *testing.T, src input.Source) *Container {
	t.Helper()
	root := New(Options{Name: "root", Source: src, Width: 615, Height: 320, Position: geom.V(50, 50), Explicit: true})
	leaves, err := ChangeContainer(root, ActionSplitHorizontal)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ChangeContainer(leaves[1], ActionSplitVertical); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestLeafInvariant(t *testing.T) {
	d := input.NewDispatcher(800, 600)
	root := buildTree(t, d)

	// Add an odd shape: a plain branch with a hole.
	extra := New(Options{Name: "extra"})
	extra.AddChild(New(Options{Name: "extra_a"}))
	extra.AddChild(New(Options{Name: "extra_b"}))
	extra.RemoveChild(extra.Child(0))
	root.AddChild(extra)
	root.Update()

	leaves := root.Leaves()
	root.Walk(func(n *Container) bool {
		childless := len(n.Children()) == 0
		if childless != slices.Contains(leaves, n) {
			t.Errorf("%s: childless=%v but in leaf set=%v", n.Name, childless, !childless)
		}
		if childless != n.IsLeaf() || childless != n.Listening() {
			t.Errorf("%s: IsLeaf=%v Listening=%v, want %v", n.Name, n.IsLeaf(), n.Listening(), childless)
		}
		return true
	})

	if d.MotionHandlers() != len(leaves) {
		t.Errorf("source has %d motion handlers, want one per leaf (%d)", d.MotionHandlers(), len(leaves))
	}
}

func TestUpdateIsIdempotent(t *testing.T) {
	root := buildTree(t, input.NewDispatcher(800, 600))

	snapshot := func() []geom.Rect {
		var out []geom.Rect
		root.Walk(func(n *Container) bool {
			out = append(out, n.Rect())
			return true
		})
		return out
	}

	root.Update()
	first := snapshot()
	root.Update()
	if second := snapshot(); !slices.Equal(first, second) {
		t.Errorf("geometry changed between updates:\n%v\n%v", first, second)
	}
}

func TestUpdateStructureNumbersPreOrder(t *testing.T) {
	root := buildTree(t, nil)
	count, leaves, r := root.UpdateStructure()

	if r != root {
		t.Error("UpdateStructure did not return the receiver as root")
	}
	if count != 6 {
		t.Errorf("count = %d, want 6", count)
	}
	if len(leaves) != 3 {
		t.Errorf("len(leaves) = %d, want 3", len(leaves))
	}

	want := 0
	root.Walk(func(n *Container) bool {
		if n.ID() != want {
			t.Errorf("%s: ID() = %d, want %d", n.Name, n.ID(), want)
		}
		want++
		return true
	})

	if d := root.Child(0).Child(1).Child(0).Depth(); d != 3 {
		t.Errorf("vsplit child depth = %d, want 3", d)
	}
}

func TestRootTakesSourceSize(t *testing.T) {
	d := input.NewDispatcher(800, 600)
	root := New(Options{Name: "root", Source: d, Position: geom.V(40, 40)})
	root.Update()

	if root.Width() != 800 || root.Height() != 600 || root.Position() != (geom.Vec2{}) {
		t.Errorf("root = %vx%v at %+v, want 800x600 at origin", root.Width(), root.Height(), root.Position())
	}

	d.SetSize(1024, 768)
	root.Update()
	if root.Width() != 1024 || root.Height() != 768 {
		t.Errorf("root = %vx%v after resize, want 1024x768", root.Width(), root.Height())
	}
}

func TestChildrenInheritSource(t *testing.T) {
	d := input.NewDispatcher(100, 100)
	root := New(Options{Source: d})
	child := New(Options{})
	grandchild := New(Options{})
	child.AddChild(grandchild)
	root.AddChild(child)
	root.Update()

	if grandchild.Source() != input.Source(d) {
		t.Error("grandchild did not inherit the source")
	}
	if d.MotionHandlers() != 1 {
		t.Errorf("MotionHandlers() = %d, want 1", d.MotionHandlers())
	}
}

func TestMouseEnterExit(t *testing.T) {
	d := input.NewDispatcher(200, 100)
	root := New(Options{Name: "root", Source: d})
	leaves, err := ChangeContainer(root, ActionSplitHorizontal)
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	root.Subscribe(func(ev Event) {
		switch e := ev.(type) {
		case MouseEntered:
			got = append(got, "enter "+e.Container.Name)
		case MouseExited:
			got = append(got, "exit "+e.Container.Name)
		}
	})

	d.MouseMotion(10, 10, 0, 0)
	d.MouseMotion(20, 10, 10, 0)
	d.MouseMotion(150, 10, 130, 0)

	want := []string{
		"enter " + leaves[0].Name,
		"exit " + leaves[0].Name,
		"enter " + leaves[1].Name,
	}
	if !slices.Equal(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
	if !leaves[1].MouseInside() || leaves[0].MouseInside() {
		t.Error("MouseInside flags out of date")
	}
}

func TestResizedEmittedPerLeaf(t *testing.T) {
	root := buildTree(t, nil)

	resized := map[*Container]int{}
	sub := root.Subscribe(func(ev Event) {
		if e, ok := ev.(Resized); ok {
			resized[e.Container]++
		}
	})
	root.Update()

	if len(resized) != 3 {
		t.Errorf("Resized for %d containers, want 3", len(resized))
	}
	for c := range resized {
		if !c.IsLeaf() {
			t.Errorf("Resized emitted for branch %s", c.Name)
		}
	}

	root.Unsubscribe(sub)
	clear(resized)
	root.Update()
	if len(resized) != 0 {
		t.Error("observer still called after Unsubscribe")
	}
}
