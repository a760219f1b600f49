package inspect

import (
	"github.com/ioxu/boxer/pkg/container"
)

// Node is the JSON form of a container and its subtree.
type Node struct {
	UID         string  `json:"uid"`
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Kind        string  `json:"kind"`
	Depth       int     `json:"depth"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Leaf        bool    `json:"leaf"`
	Explicit    bool    `json:"explicit,omitempty"`
	Ratio       float64 `json:"ratio,omitempty"`
	View        string  `json:"view,omitempty"`
	MouseInside bool    `json:"mouse_inside,omitempty"`
	Holes       []int   `json:"holes,omitempty"`
	Children    []*Node `json:"children,omitempty"`
}

// Leaf is the JSON form of a leaf in a flat listing.
type Leaf struct {
	UID    string  `json:"uid"`
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	View   string  `json:"view,omitempty"`
}

// ViewType is the JSON form of a catalog entry.
type ViewType struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// Snapshot converts the tree under c. viewName may be nil.
func Snapshot(c *container.Container, viewName func(*container.Container) string) *Node {
	p := c.Position()
	n := &Node{
		UID:         c.UID.String(),
		ID:          c.ID(),
		Name:        c.Name,
		Kind:        c.Kind().String(),
		Depth:       c.Depth(),
		X:           p.X,
		Y:           p.Y,
		Width:       c.Width(),
		Height:      c.Height(),
		Leaf:        c.IsLeaf(),
		Explicit:    c.Explicit(),
		Ratio:       c.Ratio(),
		MouseInside: c.MouseInside(),
	}
	if viewName != nil {
		n.View = viewName(c)
	}
	for i := range c.ChildCount() {
		child := c.Child(i)
		if child == nil {
			n.Holes = append(n.Holes, i)
			continue
		}
		n.Children = append(n.Children, Snapshot(child, viewName))
	}
	return n
}

func leafOf(c *container.Container, viewName func(*container.Container) string) Leaf {
	p := c.Position()
	l := Leaf{UID: c.UID.String(), Name: c.Name, X: p.X, Y: p.Y, Width: c.Width(), Height: c.Height()}
	if viewName != nil {
		l.View = viewName(c)
	}
	return l
}
