package container

import (
	"slices"
	"sync/atomic"
)

// Event is something that happened in a tree. Events are delivered to the
// observers subscribed on the root of the tree at the time of emission.
//
// The concrete types are MouseEntered, MouseExited, Resized, Split,
// Collapsed and ViewChanged.
type Event interface {
	event()
}

// MouseEntered is emitted when the pointer moves into a leaf.
type MouseEntered struct{ Container *Container }

// MouseExited is emitted when the pointer leaves a leaf.
type MouseExited struct{ Container *Container }

// Resized is emitted for every leaf by each geometry pass.
type Resized struct{ Container *Container }

// Split is emitted after Original was replaced by a split container whose
// two new leaves are NewLeaves.
type Split struct {
	Original  *Container
	NewLeaves [2]*Container
	Root      *Container
}

// Collapsed is emitted for every container removed by a close operation.
type Collapsed struct {
	Container *Container
	Root      *Container
}

// ViewSelection names the catalog entry shown in a leaf. Index is -1 and
// Name "none" when no view is attached.
type ViewSelection struct {
	Index int
	Name  string
}

// ViewChanged is emitted when the view shown in a leaf changes.
type ViewChanged struct {
	Container *Container
	View      ViewSelection
}

func (MouseEntered) event() {}
func (MouseExited) event()  {}
func (Resized) event()      {}
func (Split) event()        {}
func (Collapsed) event()    {}
func (ViewChanged) event()  {}

// Subscription identifies an observer registered with Subscribe.
type Subscription uint64

var nextSubscription atomic.Uint64

type observer struct {
	id Subscription
	fn func(Event)
}

// Subscribe registers fn for events emitted anywhere in the tree while c is
// its root.
func (c *Container) Subscribe(fn func(Event)) Subscription {
	id := Subscription(nextSubscription.Add(1))
	c.observers = append(c.observers, observer{id: id, fn: fn})
	return id
}

// Unsubscribe removes an observer. Unknown subscriptions are ignored.
func (c *Container) Unsubscribe(s Subscription) {
	c.observers = slices.DeleteFunc(c.observers, func(o observer) bool { return o.id == s })
}

// Emit delivers ev to the observers of c's current root.
func (c *Container) Emit(ev Event) {
	c.GetRootContainer().dispatch(ev)
}

func (c *Container) dispatch(ev Event) {
	for _, o := range slices.Clone(c.observers) {
		o.fn(ev)
	}
}
