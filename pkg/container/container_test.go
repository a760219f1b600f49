package container

import (
	"slices"
	"testing"

	"github.com/ioxu/boxer/pkg/geom"
	"github.com/ioxu/boxer/pkg/input"
)

func TestChildCount(t *testing.T) {
	tests := []struct {
		name     string
		children int
	}{
		{"one", 1},
		{"five", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(Options{})
			for range tt.children {
				c.AddChild(New(Options{}))
			}
			c.Update()
			if c.ChildCount() != tt.children {
				t.Errorf("ChildCount() = %d, want %d", c.ChildCount(), tt.children)
			}
		})
	}
}

func TestAddChildIsIdempotent(t *testing.T) {
	parent := New(Options{Name: "parent"})
	child := New(Options{Name: "child"})
	parent.AddChild(child)
	parent.AddChild(child)

	if parent.ChildCount() != 1 {
		t.Errorf("ChildCount() = %d, want 1", parent.ChildCount())
	}
	if child.Parent() != parent {
		t.Error("child.Parent() is not parent")
	}
}

func TestNewDefaults(t *testing.T) {
	c := New(Options{})
	if c.Name != "container" {
		t.Errorf("Name = %q, want container", c.Name)
	}
	if c.Width() != DefaultSize || c.Height() != DefaultSize {
		t.Errorf("size = %vx%v, want %vx%v", c.Width(), c.Height(), DefaultSize, DefaultSize)
	}
	if c.ViewIndex() != -1 {
		t.Errorf("ViewIndex() = %d, want -1", c.ViewIndex())
	}
	if New(Options{}).UID == c.UID {
		t.Error("two containers share a UID")
	}
}

func TestExplicitDimensions(t *testing.T) {
	tests := []struct {
		name     string
		explicit bool
		keep     bool
	}{
		{"explicit keeps position", true, true},
		{"implicit takes parent position", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent := New(Options{Name: "parent"})
			child := New(Options{Position: geom.V(123, 456), Explicit: tt.explicit})
			parent.AddChild(child)
			parent.Update()

			got := child.PositionFromParent() == geom.V(123, 456)
			if got != tt.keep {
				t.Errorf("PositionFromParent() = %+v, kept explicit position = %v, want %v",
					child.PositionFromParent(), got, tt.keep)
			}
		})
	}
}

func TestPositionFromExplicitParent(t *testing.T) {
	parent := New(Options{Name: "parent_container", Position: geom.V(123, 456), Explicit: true})
	child := New(Options{Name: "child_container"})
	parent.AddChild(child)
	parent.Update()

	if got := child.PositionFromParent(); got != geom.V(123, 456) {
		t.Errorf("PositionFromParent() = %+v, want (123, 456)", got)
	}
}

func TestSetChildPadsSlots(t *testing.T) {
	parent := New(Options{})
	child := New(Options{})
	parent.SetChild(child, 4)
	if parent.ChildCount() != 5 {
		t.Errorf("ChildCount() = %d, want 5", parent.ChildCount())
	}

	parent = New(Options{})
	c1, c2 := New(Options{}), New(Options{})
	parent.AddChild(c1)
	parent.SetChild(c2, 5)

	want := []*Container{c1, nil, nil, nil, nil, c2}
	if !slices.Equal(parent.slots, want) {
		t.Errorf("slots = %v, want %v", parent.slots, want)
	}
	if got := parent.Children(); len(got) != 2 {
		t.Errorf("Children() returned %d containers, want 2", len(got))
	}
}

func TestSetChildOrphansOccupant(t *testing.T) {
	d := input.NewDispatcher(100, 100)
	parent := New(Options{Source: d})
	old, repl := New(Options{}), New(Options{})
	parent.SetChild(old, 0)
	parent.Update()
	parent.SetChild(repl, 0)

	if old.Parent() != nil {
		t.Error("overwritten occupant still has a parent")
	}
	if old.Source() != nil {
		t.Error("overwritten occupant still has a source")
	}
	if repl.Source() != input.Source(d) {
		t.Error("replacement did not inherit the source")
	}
	if parent.Child(0) != repl {
		t.Error("slot 0 does not hold the replacement")
	}
}

func TestRemoveChild(t *testing.T) {
	parent := New(Options{})
	c1, c2, c3 := New(Options{}), New(Options{}), New(Options{})
	parent.AddChild(c1)
	parent.AddChild(c2)
	parent.AddChild(c3)

	idx, ok := parent.RemoveChild(c3)
	if !ok || idx != 2 {
		t.Errorf("RemoveChild(c3) = %d, %v, want 2, true", idx, ok)
	}

	parent.RemoveChild(c1)
	want := []*Container{nil, c2, nil}
	if !slices.Equal(parent.slots, want) {
		t.Errorf("slots = %v, want holes left in place", parent.slots)
	}
	if c1.Parent() != nil {
		t.Error("removed child kept its parent")
	}

	if _, ok := parent.RemoveChild(New(Options{})); ok {
		t.Error("RemoveChild of a stranger reported success")
	}
}

func TestRemoveChildren(t *testing.T) {
	t.Run("flat", func(t *testing.T) {
		parent := New(Options{})
		c1, c2, c3 := New(Options{}), New(Options{}), New(Options{})
		parent.AddChild(c1)
		parent.AddChild(c2)
		parent.AddChild(c3)

		removed := parent.RemoveChildren(nil)
		if !slices.Equal(removed, []*Container{c1, c2, c3}) {
			t.Errorf("RemoveChildren() = %v", removed)
		}
		if parent.ChildCount() != 0 {
			t.Errorf("ChildCount() = %d, want 0", parent.ChildCount())
		}
	})

	t.Run("recursive", func(t *testing.T) {
		parent := New(Options{Name: "parent"})
		c1 := New(Options{Name: "child1"})
		c2 := New(Options{Name: "child2"})
		c3 := New(Options{Name: "child3"})
		c4 := New(Options{Name: "child4"})
		parent.AddChild(c1)
		c1.AddChild(c2)
		c2.AddChild(c3)
		c3.AddChild(c4)

		removed := parent.RemoveChildren(nil)
		if !slices.Equal(removed, []*Container{c1, c2, c3, c4}) {
			t.Errorf("RemoveChildren() = %v, want child1..child4", removed)
		}
		for _, c := range removed {
			if c.Parent() != nil || c.ChildCount() != 0 {
				t.Errorf("%s not fully detached", c.Name)
			}
		}
	})

	t.Run("pre-order", func(t *testing.T) {
		root := New(Options{})
		a, a1, b := New(Options{Name: "a"}), New(Options{Name: "a1"}), New(Options{Name: "b"})
		root.AddChild(a)
		a.AddChild(a1)
		root.AddChild(b)

		removed := root.RemoveChildren(nil)
		if !slices.Equal(removed, []*Container{a, a1, b}) {
			t.Errorf("RemoveChildren() = %v, want [a a1 b]", removed)
		}
	})
}

func TestReplaceChild(t *testing.T) {
	parent := New(Options{})
	c1, c2 := New(Options{}), New(Options{})
	parent.AddChild(c1)

	idx, ok := parent.ReplaceChild(c1, c2)
	if !ok || idx != 0 {
		t.Errorf("ReplaceChild() = %d, %v, want 0, true", idx, ok)
	}
	if parent.Child(0) != c2 || c2.Parent() != parent {
		t.Error("replacement not installed")
	}
}

func TestReplaceBy(t *testing.T) {
	t.Run("with parent", func(t *testing.T) {
		parent := New(Options{})
		original := New(Options{})
		parent.SetChild(original, 0)

		repl := New(Options{Name: "new container"})
		if got := original.ReplaceBy(repl); got != repl {
			t.Error("ReplaceBy did not return the replacement")
		}
		if parent.Child(0) != repl {
			t.Error("parent slot not replaced")
		}
	})

	t.Run("without parent", func(t *testing.T) {
		old := New(Options{Name: "old_container", Width: 300, Height: 200, Position: geom.V(5, 6), Explicit: true})
		repl := New(Options{Name: "new_container"})

		var seen int
		old.Subscribe(func(Event) { seen++ })

		got := old.ReplaceBy(repl)
		if got != repl {
			t.Fatal("ReplaceBy did not return the replacement")
		}
		if repl.Width() != 300 || repl.Height() != 200 || repl.Position() != geom.V(5, 6) || !repl.Explicit() {
			t.Errorf("replacement not configured like the old root: %vx%v at %+v", repl.Width(), repl.Height(), repl.Position())
		}

		repl.Emit(Resized{Container: repl})
		if seen != 1 {
			t.Errorf("observers not carried over, seen = %d", seen)
		}
	})
}

func TestGetRootContainer(t *testing.T) {
	root := New(Options{Name: "root"})
	one := New(Options{Name: "one"})
	two := New(Options{Name: "two"})
	three := New(Options{Name: "three"})
	root.AddChild(one)
	one.AddChild(two)
	two.AddChild(three)

	if three.GetRootContainer() != root {
		t.Error("GetRootContainer() did not reach root")
	}
	if three.RootContainer() != three {
		t.Error("RootContainer() before Update should be the node itself")
	}
	root.Update()
	if three.RootContainer() != root {
		t.Error("RootContainer() after Update should be root")
	}
}

func TestFindAndLeafAt(t *testing.T) {
	root := New(Options{Name: "root", Width: 200, Height: 100, Explicit: true})
	leaves, err := ChangeContainer(root, ActionSplitHorizontal)
	if err != nil {
		t.Fatal(err)
	}

	if got := root.Find(leaves[1].UID); got != leaves[1] {
		t.Errorf("Find() = %v, want %v", got, leaves[1])
	}
	if got := root.LeafAt(10, 50); got != leaves[0] {
		t.Errorf("LeafAt(10, 50) = %v, want left leaf", got)
	}
	if got := root.LeafAt(150, 50); got != leaves[1] {
		t.Errorf("LeafAt(150, 50) = %v, want right leaf", got)
	}
	if got := root.LeafAt(500, 50); got != nil {
		t.Errorf("LeafAt outside = %v, want nil", got)
	}
}

func TestOutline(t *testing.T) {
	c := New(Options{Width: 10, Height: 20, Position: geom.V(1, 2)})
	if got := c.Outline(); got != geom.R(2, 3, 8, 18) {
		t.Errorf("Outline() = %+v", got)
	}
}
